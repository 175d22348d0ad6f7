// internal/game/tracker.go
//
// Constraint tracking for limited-use moves.
// Validate answers "may this move be played given this player's state";
// Commit records usage once a round is finalized. Validate has no side
// effects, so calling it repeatedly without a Commit in between always
// returns the same outcome.

package game

// Validate checks a canonical move against the player's current state.
//   - Unclear is never valid.
//   - Bomb is valid exactly once per match.
//   - Rock/paper/scissors are always valid.
func Validate(m Move, st PlayerState) ValidationOutcome {
	switch {
	case m == Unclear:
		return ValidationOutcome{Valid: false, Reason: "move could not be determined"}
	case m == Bomb && st.BombUsed:
		return ValidationOutcome{Valid: false, Reason: "bomb already used this game"}
	default:
		return ValidationOutcome{Valid: true, Reason: "move is available"}
	}
}

// Commit records the finalized move of a round onto the player state.
// Only a valid bomb flips BombUsed; an invalid move never mutates
// anything, even if the raw text said "bomb".
func Commit(m Move, valid bool, st PlayerState) PlayerState {
	if valid && m == Bomb {
		st.BombUsed = true
	}
	return st
}

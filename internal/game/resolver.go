// internal/game/resolver.go
//
// Pure round resolution. Given both sides' canonical moves and their
// validity, decide the outcome and attach a short explanation naming
// the rule that fired.
//
// Priority order:
//   1. both invalid            → draw
//   2. exactly one invalid     → the other side wins by forfeit
//   3. bomb vs bomb            → draw; bomb vs anything else → bomb wins
//   4. cyclic dominance        → rock > scissors > paper > rock
//
// Unclear counts as invalid and can only reach rules 1–2.

package game

// beats is the cyclic dominance table: key defeats value.
var beats = map[Move]Move{
	Rock:     Scissors,
	Scissors: Paper,
	Paper:    Rock,
}

// verbs give the explanations their flavor ("rock crushes scissors").
var verbs = map[Move]string{
	Rock:     "crushes",
	Scissors: "cuts",
	Paper:    "wraps",
}

// Resolve judges one round. Player is side A, bot is side B.
func Resolve(playerMove Move, playerValid bool, botMove Move, botValid bool) (Outcome, string) {
	switch {
	case !playerValid && !botValid:
		return Draw, "both moves were invalid; the round is a draw"
	case !playerValid:
		return BotWins, "player move was invalid; bot wins by forfeit"
	case !botValid:
		return PlayerWins, "bot move was invalid; player wins by forfeit"
	}

	if playerMove == Bomb || botMove == Bomb {
		switch {
		case playerMove == Bomb && botMove == Bomb:
			return Draw, "both players used their bomb; the blasts cancel out"
		case playerMove == Bomb:
			return PlayerWins, "bomb defeats " + string(botMove)
		default:
			return BotWins, "bomb defeats " + string(playerMove)
		}
	}

	if playerMove == botMove {
		return Draw, "both players drew the same move (" + string(playerMove) + ")"
	}
	if beats[playerMove] == botMove {
		return PlayerWins, string(playerMove) + " " + verbs[playerMove] + " " + string(botMove)
	}
	return BotWins, string(botMove) + " " + verbs[botMove] + " " + string(playerMove)
}

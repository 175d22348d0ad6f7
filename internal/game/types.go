// internal/game/types.go
//
// Core type definitions for the RPS-Plus round engine.
// Defines:
//   - Move: canonical move enum (rock/paper/scissors/bomb) plus the
//     Unclear sentinel for unreadable input.
//   - MoveInterpretation: raw text → canonical move, with a note.
//   - PlayerState: per-player bomb usage and score.
//   - ValidationOutcome: whether a move may be played right now.
//   - Outcome / RoundResult: the judged result of one round.

package game

// Move is a canonical move in the normalized form all game logic
// operates on. Unclear is a sentinel, not a playable move: it means no
// single canonical move could be determined from the input.
type Move string

const (
	Rock     Move = "rock"
	Paper    Move = "paper"
	Scissors Move = "scissors"
	Bomb     Move = "bomb"
	Unclear  Move = "unclear"
)

// Playable reports whether m is one of the four real moves.
func (m Move) Playable() bool {
	switch m {
	case Rock, Paper, Scissors, Bomb:
		return true
	}
	return false
}

// MoveInterpretation records how a piece of raw input was read.
// Immutable once produced; Note feeds the round explanation.
type MoveInterpretation struct {
	RawText   string `json:"rawText"`
	Canonical Move   `json:"move"`
	Note      string `json:"note"` // which surface form matched, or why unclear
}

// PlayerState is the per-participant mutable state. One instance per
// side (player, bot), created at match start and mutated only by the
// orchestrator after a round is finalized. BombUsed goes false→true at
// most once and never back.
type PlayerState struct {
	BombUsed bool `json:"bombUsed"`
	Score    int  `json:"score"`
}

// ValidationOutcome is derived from a Move plus the owning PlayerState.
// It is never persisted on its own.
type ValidationOutcome struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

// Outcome labels who won a round.
type Outcome string

const (
	PlayerWins Outcome = "player_wins"
	BotWins    Outcome = "bot_wins"
	Draw       Outcome = "draw"
)

// RoundResult is the full judged record of one round. Created once per
// round, immutable after creation, appended to the match history.
type RoundResult struct {
	Round          int                `json:"round"`
	PlayerMove     MoveInterpretation `json:"playerMove"`
	PlayerValidity ValidationOutcome  `json:"playerValid"`
	BotMove        MoveInterpretation `json:"botMove"`
	BotValidity    ValidationOutcome  `json:"botValid"`
	Outcome        Outcome            `json:"winner"`
	Explanation    string             `json:"explanation"`
	PlayerScore    int                `json:"playerScore"`
	BotScore       int                `json:"botScore"`
	PlayerBombUsed bool               `json:"playerBombUsed"`
	BotBombUsed    bool               `json:"botBombUsed"`
}

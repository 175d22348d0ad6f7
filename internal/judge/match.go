// internal/judge/match.go
//
// Round-judgment orchestrator for a single match.
// Responsibilities:
//   - Hold the only mutable game state: both PlayerStates and the
//     ordered round history.
//   - Per round: interpret the player's text through the Backend,
//     pick and validate the bot's move, resolve, commit usage, award
//     the point, and append the immutable RoundResult.
//   - Track match completion against a win target.
//
// Rounds are strictly sequential; the mutex only guards against
// concurrent HTTP callers hitting the same match ID.

package judge

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/rps-plus/internal/game"
)

// DefaultWinTarget ends a match when one side reaches this score.
const DefaultWinTarget = 3

// ErrMatchFinished is returned when a round is played on a completed
// match.
var ErrMatchFinished = errors.New("match finished")

// Match is one player-versus-bot game.
type Match struct {
	ID        string             `json:"id"`
	Player    game.PlayerState   `json:"player"`
	Bot       game.PlayerState   `json:"bot"`
	History   []game.RoundResult `json:"history"`
	WinTarget int                `json:"winTarget"`
	Finished  bool               `json:"finished"`
	Winner    game.Outcome       `json:"winner,omitempty"` // set when Finished

	backend Backend
	policy  Policy
	mu      sync.Mutex
}

// NewMatch constructs a fresh match. A non-positive winTarget falls
// back to DefaultWinTarget.
func NewMatch(backend Backend, policy Policy, winTarget int) *Match {
	if backend == nil || policy == nil {
		panic("judge: NewMatch requires a backend and a policy")
	}
	if winTarget <= 0 {
		winTarget = DefaultWinTarget
	}
	return &Match{
		ID:        randomID(),
		History:   []game.RoundResult{},
		WinTarget: winTarget,
		backend:   backend,
		policy:    policy,
	}
}

// PlayRound judges one round from the player's raw text, letting the
// bot policy choose the opposing move.
func (m *Match) PlayRound(ctx context.Context, playerText string) (game.RoundResult, error) {
	return m.playRound(ctx, playerText, "")
}

// PlayRoundVs judges one round against a pre-chosen bot move, for
// callers that drive the bot themselves.
func (m *Match) PlayRoundVs(ctx context.Context, playerText string, botMove game.Move) (game.RoundResult, error) {
	if !botMove.Playable() {
		panic(fmt.Sprintf("judge: PlayRoundVs with unplayable bot move %q", botMove))
	}
	return m.playRound(ctx, playerText, botMove)
}

func (m *Match) playRound(ctx context.Context, playerText string, forcedBot game.Move) (game.RoundResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Finished {
		return game.RoundResult{}, ErrMatchFinished
	}
	round := len(m.History) + 1

	playerInterp, playerValid := m.backend.InterpretAndValidate(ctx, playerText, m.Player)

	botMove := forcedBot
	note := "chosen by caller"
	if botMove == "" {
		botMove = m.policy.Choose(round, m.Bot, m.Player)
		note = "chosen by bot policy"
	}
	botInterp := game.MoveInterpretation{RawText: string(botMove), Canonical: botMove, Note: note}
	botValid := game.Validate(botMove, m.Bot)

	outcome, explanation := game.Resolve(playerInterp.Canonical, playerValid.Valid, botInterp.Canonical, botValid.Valid)

	// Commit usage for the finalized moves, then award the point.
	m.Player = game.Commit(playerInterp.Canonical, playerValid.Valid, m.Player)
	m.Bot = game.Commit(botInterp.Canonical, botValid.Valid, m.Bot)
	switch outcome {
	case game.PlayerWins:
		m.Player.Score++
	case game.BotWins:
		m.Bot.Score++
	}

	result := game.RoundResult{
		Round:          round,
		PlayerMove:     playerInterp,
		PlayerValidity: playerValid,
		BotMove:        botInterp,
		BotValidity:    botValid,
		Outcome:        outcome,
		Explanation:    explanation,
		PlayerScore:    m.Player.Score,
		BotScore:       m.Bot.Score,
		PlayerBombUsed: m.Player.BombUsed,
		BotBombUsed:    m.Bot.BombUsed,
	}
	m.History = append(m.History, result)

	if m.Player.Score >= m.WinTarget {
		m.Finished, m.Winner = true, game.PlayerWins
	} else if m.Bot.Score >= m.WinTarget {
		m.Finished, m.Winner = true, game.BotWins
	}

	log.Debug().
		Str("match", m.ID).
		Int("round", round).
		Str("player", string(playerInterp.Canonical)).
		Str("bot", string(botInterp.Canonical)).
		Str("winner", string(outcome)).
		Msg("round judged")

	return result, nil
}

// Snapshot returns a copy of the match safe to serialize without
// holding the lock during encoding.
func (m *Match) Snapshot() Match {
	m.mu.Lock()
	defer m.mu.Unlock()
	history := make([]game.RoundResult, len(m.History))
	copy(history, m.History)
	return Match{
		ID:        m.ID,
		Player:    m.Player,
		Bot:       m.Bot,
		History:   history,
		WinTarget: m.WinTarget,
		Finished:  m.Finished,
		Winner:    m.Winner,
	}
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

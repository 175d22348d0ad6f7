// internal/judge/backend.go
//
// Judgment backend abstraction.
// A Backend turns one side's raw text plus that side's current state
// into a MoveInterpretation and a ValidationOutcome. The orchestrator
// only ever talks to this interface, so the local rule-table backend
// and the remote reasoning-service backend are interchangeable.
//
// Backends fail closed: any condition that prevents a confident
// reading is reported as Unclear/invalid, never as a crash.

package judge

import (
	"context"

	"github.com/robalobadob/rps-plus/internal/game"
)

// Backend interprets and validates a single side's move for one round.
type Backend interface {
	InterpretAndValidate(ctx context.Context, rawText string, st game.PlayerState) (game.MoveInterpretation, game.ValidationOutcome)
}

// Local is the rule-table backend: vocabulary canonicalization plus
// constraint checks, entirely in process.
type Local struct {
	Vocab game.Vocabulary
}

// NewLocal constructs a Local backend over the given vocabulary.
func NewLocal(v game.Vocabulary) *Local { return &Local{Vocab: v} }

// InterpretAndValidate canonicalizes the text and validates the result
// against the player's state.
func (l *Local) InterpretAndValidate(_ context.Context, rawText string, st game.PlayerState) (game.MoveInterpretation, game.ValidationOutcome) {
	interp := game.Canonicalize(rawText, l.Vocab)
	return interp, game.Validate(interp.Canonical, st)
}

// internal/judge/policy.go
//
// Bot move selection. A Policy is consulted by the orchestrator each
// round; swapping policies never touches resolution logic.
//
// All built-in policies share the same bomb discipline: hold the bomb
// unless trailing by more than one round, then spend it.

package judge

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"

	"github.com/robalobadob/rps-plus/internal/game"
)

// Policy picks the bot's move for a round given both sides' state.
type Policy interface {
	Choose(round int, self, opponent game.PlayerState) game.Move
}

// basicMoves is what a policy rotates or samples over when not bombing.
var basicMoves = [...]game.Move{game.Rock, game.Paper, game.Scissors}

// shouldBomb is the shared bomb discipline.
func shouldBomb(self, opponent game.PlayerState) bool {
	return !self.BombUsed && opponent.Score-self.Score > 1
}

// RotatePolicy cycles rock → paper → scissors by round number.
type RotatePolicy struct{}

func (RotatePolicy) Choose(round int, self, opponent game.PlayerState) game.Move {
	if shouldBomb(self, opponent) {
		return game.Bomb
	}
	return basicMoves[(round-1)%len(basicMoves)]
}

// RandomPolicy samples uniformly among the basic moves using
// crypto/rand, like the rest of this codebase's randomness.
type RandomPolicy struct{}

func (RandomPolicy) Choose(round int, self, opponent game.PlayerState) game.Move {
	if shouldBomb(self, opponent) {
		return game.Bomb
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(basicMoves))))
	if err != nil {
		return basicMoves[(round-1)%len(basicMoves)]
	}
	return basicMoves[n.Int64()]
}

// SeededPolicy plays a deterministic pseudo-random sequence from a
// seed. The daily gauntlet uses it so every player faces the same bot
// sequence for a given date.
type SeededPolicy struct {
	rng *mrand.Rand
}

// NewSeededPolicy constructs a policy from a fixed seed.
func NewSeededPolicy(seed int64) *SeededPolicy {
	return &SeededPolicy{rng: mrand.New(mrand.NewSource(seed))}
}

func (p *SeededPolicy) Choose(round int, self, opponent game.PlayerState) game.Move {
	if shouldBomb(self, opponent) {
		return game.Bomb
	}
	return basicMoves[p.rng.Intn(len(basicMoves))]
}

// ScriptedPolicy plays a fixed sequence, cycling when it runs out.
// Used in tests.
type ScriptedPolicy struct {
	Moves []game.Move
}

func (p ScriptedPolicy) Choose(round int, self, opponent game.PlayerState) game.Move {
	if len(p.Moves) == 0 {
		return game.Rock
	}
	return p.Moves[(round-1)%len(p.Moves)]
}

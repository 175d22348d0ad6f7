package store

import (
	"context"
	"errors"
	"testing"

	"github.com/robalobadob/rps-plus/internal/game"
	"github.com/robalobadob/rps-plus/internal/judge"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	m := judge.NewMatch(judge.NewLocal(game.Vocabulary{"rock": game.Rock}), judge.RotatePolicy{}, 3)
	if err := s.Save(ctx, m); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != m {
		t.Fatal("Get must return the saved match")
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

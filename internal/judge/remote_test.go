package judge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/robalobadob/rps-plus/internal/game"
)

func remoteFor(t *testing.T, handler http.HandlerFunc) *Remote {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRemote(srv.URL, time.Second)
}

func TestRemoteWellFormedResponse(t *testing.T) {
	rb := remoteFor(t, func(w http.ResponseWriter, r *http.Request) {
		var req judgeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Instructions == "" || req.Input != "definitely rock" {
			t.Errorf("unexpected request: %+v", req)
		}
		_, _ = w.Write([]byte(`{"move":"rock","valid":true,"reason":"text names rock"}`))
	})

	interp, valid := rb.InterpretAndValidate(context.Background(), "definitely rock", game.PlayerState{})
	if interp.Canonical != game.Rock || !valid.Valid {
		t.Fatalf("got %s / %+v", interp.Canonical, valid)
	}
	if interp.Note != "text names rock" {
		t.Fatalf("note = %q", interp.Note)
	}
}

func TestRemoteFailsClosed(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`the player clearly means rock`))
		}},
		{"missing fields", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"move":"rock"}`))
		}},
		{"unknown move", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"move":"dynamite","valid":true,"reason":"boom"}`))
		}},
		{"error status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := remoteFor(t, tt.handler)
			interp, valid := rb.InterpretAndValidate(context.Background(), "rock", game.PlayerState{})
			if interp.Canonical != game.Unclear {
				t.Fatalf("move = %s, want unclear", interp.Canonical)
			}
			if valid.Valid {
				t.Fatal("validity must be false on a degraded response")
			}
		})
	}
}

func TestRemoteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore
	rb := NewRemote(srv.URL, 250*time.Millisecond)

	interp, valid := rb.InterpretAndValidate(context.Background(), "rock", game.PlayerState{})
	if interp.Canonical != game.Unclear || valid.Valid {
		t.Fatalf("transport failure must fail closed, got %s / %+v", interp.Canonical, valid)
	}
}

func TestRemoteCannotOverruleConstraints(t *testing.T) {
	rb := remoteFor(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"move":"bomb","valid":true,"reason":"player wants the bomb"}`))
	})

	// Bomb already spent; the service's "valid" is clamped locally.
	interp, valid := rb.InterpretAndValidate(context.Background(), "bomb", game.PlayerState{BombUsed: true})
	if interp.Canonical != game.Bomb {
		t.Fatalf("move = %s, want bomb", interp.Canonical)
	}
	if valid.Valid {
		t.Fatal("spent bomb must stay invalid")
	}
	if valid.Reason != "bomb already used this game" {
		t.Fatalf("reason = %q", valid.Reason)
	}
}

// The orchestrator never crashes when the backend is degraded: the
// round proceeds with forfeiture semantics.
func TestMatchWithDegradedRemote(t *testing.T) {
	rb := remoteFor(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})
	m := NewMatch(rb, ScriptedPolicy{Moves: []game.Move{game.Rock}}, 10)

	res, err := m.PlayRound(context.Background(), "rock")
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != game.BotWins {
		t.Fatalf("outcome = %s, want bot_wins by forfeit", res.Outcome)
	}
}

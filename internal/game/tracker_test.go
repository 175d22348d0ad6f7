package game

import "testing"

func TestValidate(t *testing.T) {
	fresh := PlayerState{}
	spent := PlayerState{BombUsed: true}

	tests := []struct {
		name  string
		move  Move
		state PlayerState
		valid bool
	}{
		{"rock always valid", Rock, fresh, true},
		{"paper always valid", Paper, spent, true},
		{"scissors always valid", Scissors, spent, true},
		{"first bomb valid", Bomb, fresh, true},
		{"second bomb invalid", Bomb, spent, false},
		{"unclear never valid", Unclear, fresh, false},
		{"unclear never valid after bomb", Unclear, spent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.move, tt.state)
			if got.Valid != tt.valid {
				t.Fatalf("Validate(%s, %+v).Valid = %v, want %v (%s)", tt.move, tt.state, got.Valid, tt.valid, got.Reason)
			}
			if got.Reason == "" {
				t.Fatal("Reason must never be empty")
			}
		})
	}
}

func TestValidateIdempotent(t *testing.T) {
	st := PlayerState{}
	first := Validate(Bomb, st)
	second := Validate(Bomb, st)
	if first != second {
		t.Fatalf("repeated Validate without Commit differed: %+v vs %+v", first, second)
	}
}

func TestCommit(t *testing.T) {
	st := PlayerState{Score: 2}

	// Valid bomb flips the flag, once and forever.
	st = Commit(Bomb, true, st)
	if !st.BombUsed {
		t.Fatal("valid bomb must set BombUsed")
	}
	if v := Validate(Bomb, st); v.Valid {
		t.Fatal("bomb must be invalid for the rest of the match")
	}

	// Invalid bomb never mutates, even though the move says bomb.
	st2 := Commit(Bomb, false, PlayerState{})
	if st2.BombUsed {
		t.Fatal("invalid bomb must not set BombUsed")
	}

	// Basic moves never touch the flag.
	st3 := Commit(Rock, true, PlayerState{})
	if st3.BombUsed {
		t.Fatal("rock must not set BombUsed")
	}

	// Score is untouched by Commit.
	if st.Score != 2 {
		t.Fatalf("Commit must not change score, got %d", st.Score)
	}
}

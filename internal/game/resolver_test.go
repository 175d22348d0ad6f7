package game

import (
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		player      Move
		playerValid bool
		bot         Move
		botValid    bool
		want        Outcome
		explainHas  string
	}{
		{"both invalid", Unclear, false, Bomb, false, Draw, "both moves were invalid"},
		{"player invalid forfeits", Unclear, false, Rock, true, BotWins, "forfeit"},
		{"bot invalid forfeits", Paper, true, Unclear, false, PlayerWins, "forfeit"},
		{"invalid bomb forfeits despite opponent move", Bomb, false, Scissors, true, BotWins, "forfeit"},
		{"bomb vs bomb", Bomb, true, Bomb, true, Draw, "cancel"},
		{"bomb beats rock", Bomb, true, Rock, true, PlayerWins, "bomb defeats rock"},
		{"bomb beats paper from bot side", Paper, true, Bomb, true, BotWins, "bomb defeats paper"},
		{"rock beats scissors", Rock, true, Scissors, true, PlayerWins, "rock crushes scissors"},
		{"scissors beats paper", Scissors, true, Paper, true, PlayerWins, "scissors cuts paper"},
		{"paper beats rock", Paper, true, Rock, true, PlayerWins, "paper wraps rock"},
		{"scissors loses to rock", Scissors, true, Rock, true, BotWins, "rock crushes scissors"},
		{"same move draws", Paper, true, Paper, true, Draw, "same move"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, explain := Resolve(tt.player, tt.playerValid, tt.bot, tt.botValid)
			if got != tt.want {
				t.Fatalf("Resolve = %s, want %s (%s)", got, tt.want, explain)
			}
			if !strings.Contains(explain, tt.explainHas) {
				t.Fatalf("explanation %q missing %q", explain, tt.explainHas)
			}
		})
	}
}

// Swapping sides must swap the outcome label; draw mirrors itself.
func TestResolveSymmetry(t *testing.T) {
	moves := []Move{Rock, Paper, Scissors, Bomb, Unclear}
	mirror := map[Outcome]Outcome{PlayerWins: BotWins, BotWins: PlayerWins, Draw: Draw}

	for _, a := range moves {
		for _, b := range moves {
			aValid := a != Unclear
			bValid := b != Unclear
			fwd, _ := Resolve(a, aValid, b, bValid)
			rev, _ := Resolve(b, bValid, a, aValid)
			if mirror[fwd] != rev {
				t.Fatalf("Resolve(%s,%s)=%s but Resolve(%s,%s)=%s", a, b, fwd, b, a, rev)
			}
		}
	}
}

package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/robalobadob/rps-plus/internal/daily"
	"github.com/robalobadob/rps-plus/internal/game"
)

// dailyClient keeps cookies between requests so the anonymous identity
// stays stable across the gauntlet flow.
func dailyClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}
}

func postJSONWith(t *testing.T, c *http.Client, url string, body any, out any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	res, err := c.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = res.Body.Close() })
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return res
}

// playDailyToEnd submits moves until the gauntlet match finishes.
func playDailyToEnd(t *testing.T, c *http.Client, srv *httptest.Server) {
	t.Helper()
	for i := 0; i < 50; i++ {
		var round dailyRoundRes
		res := postJSONWith(t, c, srv.URL+"/daily/round", dailyRoundReq{Text: "rock"}, &round)
		if res.StatusCode != http.StatusOK {
			t.Fatalf("daily round status = %d", res.StatusCode)
		}
		if round.MatchFinished {
			return
		}
	}
	t.Fatal("gauntlet did not finish")
}

func TestDailyOneAttemptPerDay(t *testing.T) {
	t.Setenv("WIN_TARGET", "1")
	srv := testServer(t)
	c := dailyClient(t)

	var created dailyNewRes
	res := postJSONWith(t, c, srv.URL+"/daily/new", nil, &created)
	if res.StatusCode != http.StatusOK || created.MatchID == "" || created.Played {
		t.Fatalf("daily new: status=%d res=%+v", res.StatusCode, created)
	}

	// Asking again mid-run hands back the same session.
	var again dailyNewRes
	postJSONWith(t, c, srv.URL+"/daily/new", nil, &again)
	if again.MatchID != created.MatchID || again.Played {
		t.Fatalf("mid-run new must reuse the session: %+v", again)
	}

	playDailyToEnd(t, c, srv)

	// The scored attempt is spent for the rest of the day.
	var spent dailyNewRes
	res = postJSONWith(t, c, srv.URL+"/daily/new", nil, &spent)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if !spent.Played || spent.MatchID != "" {
		t.Fatalf("attempt must be spent: %+v", spent)
	}

	// And further rounds are refused.
	res = postJSONWith(t, c, srv.URL+"/daily/round", dailyRoundReq{Text: "rock"}, nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("round after finish status = %d, want 404", res.StatusCode)
	}
}

func TestDailyMatchRejectedOnGenericRoute(t *testing.T) {
	t.Setenv("WIN_TARGET", "1")
	srv := testServer(t)
	c := dailyClient(t)

	var created dailyNewRes
	postJSONWith(t, c, srv.URL+"/daily/new", nil, &created)
	if created.MatchID == "" {
		t.Fatalf("daily new: %+v", created)
	}

	// The generic round endpoint must not advance a gauntlet match;
	// that would finish it without recording the daily result.
	res := postJSONWith(t, c, srv.URL+"/match/round", roundReq{MatchID: created.MatchID, Text: "rock"}, nil)
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", res.StatusCode)
	}

	// The gauntlet route still works.
	var round dailyRoundRes
	res = postJSONWith(t, c, srv.URL+"/daily/round", dailyRoundReq{Text: "rock"}, &round)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("daily round status = %d", res.StatusCode)
	}
}

func TestDailyLeaderboardAfterRun(t *testing.T) {
	t.Setenv("WIN_TARGET", "1")
	srv := testServer(t)
	c := dailyClient(t)

	var created dailyNewRes
	postJSONWith(t, c, srv.URL+"/daily/new", nil, &created)
	if created.MatchID == "" {
		t.Fatalf("daily new: %+v", created)
	}
	playDailyToEnd(t, c, srv)

	res, err := c.Get(srv.URL + "/daily/leaderboard")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	var board struct {
		Date string        `json:"date"`
		Rows []daily.LBRow `json:"rows"`
	}
	if err := json.NewDecoder(res.Body).Decode(&board); err != nil {
		t.Fatal(err)
	}
	if board.Date != created.Date {
		t.Fatalf("date = %q, want %q", board.Date, created.Date)
	}
	if len(board.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(board.Rows))
	}
	if board.Rows[0].Rounds < 1 {
		t.Fatalf("recorded run is empty: %+v", board.Rows[0])
	}
}

func TestWinTargetFromEnv(t *testing.T) {
	t.Setenv("WIN_TARGET", "2")
	srv := testServer(t, game.Scissors, game.Scissors)

	var created newMatchRes
	res := postJSON(t, srv.URL+"/match/new", newMatchReq{}, &created)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if created.WinTarget != 2 {
		t.Fatalf("winTarget = %d, want 2 from env", created.WinTarget)
	}

	// An explicit request target still wins over the env default.
	res = postJSON(t, srv.URL+"/match/new", newMatchReq{WinTarget: 5}, &created)
	if res.StatusCode != http.StatusOK || created.WinTarget != 5 {
		t.Fatalf("explicit target: status=%d winTarget=%d", res.StatusCode, created.WinTarget)
	}
}

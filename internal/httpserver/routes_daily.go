// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Gauntlet" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's gauntlet (creates or reuses session)
//   - POST /daily/round       → submit a move for today's gauntlet match
//   - GET  /daily/leaderboard → top results for today (or a given date)
//
// Each identity gets one scored attempt per day (enforced by DB +
// in-memory session). The bot's move sequence is derived from
// HMAC(DAILY_SALT, date), so every player faces the same bot that day.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/rps-plus/internal/daily"
	"github.com/robalobadob/rps-plus/internal/game"
	"github.com/robalobadob/rps-plus/internal/judge"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by userID|date
	matchIDs map[string]struct{}      // live matches owned by the gauntlet
	mu       sync.Mutex               // guards sessions and matchIDs
}

// dailySession holds transient state for an in-progress gauntlet run.
type dailySession struct {
	MatchID  string
	UserID   string
	Date     string
	Finished bool
}

// mountDaily registers all /daily routes and returns the daily server
// so generic match routes can refuse gauntlet matches.
func (s *Server) mountDaily() *dailyServer {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailySession),
		matchIDs: make(map[string]struct{}),
	}
	s.r.With(s.withOptionalAuth()).Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/round", dd.handleRound)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
	return dd
}

// ownsMatch reports whether a live match belongs to the gauntlet.
// Such matches only advance through /daily/round, so their session and
// result bookkeeping cannot be bypassed.
func (d *dailyServer) ownsMatch(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.matchIDs[id]
	return ok
}

// identity returns the authenticated user ID if logged in, otherwise a
// stable anonymous ID.
func (d *dailyServer) identity(w http.ResponseWriter, r *http.Request) string {
	if me := currentUser(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// ---------------------------------------------------------------------------
// /daily/new

type dailyNewRes struct {
	MatchID string `json:"matchId"`
	Date    string `json:"date"`
	Played  bool   `json:"played"`
}

// handleNew creates or reuses today's gauntlet session.
// A DB row for (user, today) means the scored attempt is spent.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.identity(w, r)
	now := time.Now().UTC()
	date := daily.DateKey(now)

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	if sess, ok := d.sessions[key]; ok && !sess.Finished {
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(dailyNewRes{MatchID: sess.MatchID, Date: date, Played: false})
		return
	}

	m := judge.NewMatch(d.srv.backend, judge.NewSeededPolicy(daily.Seed(now, d.salt)), defaultWinTarget())
	d.sessions[key] = &dailySession{MatchID: m.ID, UserID: uid, Date: date}
	d.matchIDs[m.ID] = struct{}{}
	d.mu.Unlock()

	if err := d.srv.store.Save(r.Context(), m); err != nil {
		log.Error().Err(err).Msg("save daily match")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(dailyNewRes{MatchID: m.ID, Date: date, Played: false})
}

// ---------------------------------------------------------------------------
// /daily/round

type dailyRoundReq struct {
	Text string `json:"text"`
}
type dailyRoundRes struct {
	Result        game.RoundResult `json:"result"`
	MatchFinished bool             `json:"matchFinished"`
	MatchWinner   game.Outcome     `json:"matchWinner,omitempty"`
}

// handleRound judges one gauntlet round; when the match ends, the
// attempt is persisted and the session closed.
func (d *dailyServer) handleRound(w http.ResponseWriter, r *http.Request) {
	uid := d.identity(w, r)
	date := daily.DateKey(time.Now().UTC())

	d.mu.Lock()
	sess, ok := d.sessions[uid+"|"+date]
	d.mu.Unlock()
	if !ok || sess.Finished {
		http.Error(w, `{"error":"no_active_daily"}`, http.StatusNotFound)
		return
	}

	var req dailyRoundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	m, err := d.srv.store.Get(r.Context(), sess.MatchID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	res, err := m.PlayRound(r.Context(), req.Text)
	if errors.Is(err, judge.ErrMatchFinished) {
		http.Error(w, `{"error":"match_finished"}`, http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"judge_failed"}`, http.StatusInternalServerError)
		return
	}
	if err := d.srv.store.Save(r.Context(), m); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	if m.Finished {
		d.mu.Lock()
		sess.Finished = true
		d.mu.Unlock()
		err := d.store.InsertResult(r.Context(), daily.Result{
			UserID:    uid,
			Date:      date,
			RoundsWon: m.Player.Score,
			Rounds:    len(m.History),
			Won:       m.Winner == game.PlayerWins,
		})
		if err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	}

	_ = json.NewEncoder(w).Encode(dailyRoundRes{Result: res, MatchFinished: m.Finished, MatchWinner: m.Winner})
}

// ---------------------------------------------------------------------------
// /daily/leaderboard

// handleLeaderboard returns the top attempts for ?date= (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = daily.DateKey(time.Now().UTC())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"date": date, "rows": rows})
}

// internal/httpserver/server.go
//
// HTTP wiring for the RPS-Plus judge backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/vocab".
//   - Match endpoints (optional auth): POST /match/new, POST /match/round,
//     GET /match/{id}.
//   - Daily gauntlet endpoints: mounted under /daily (see routes_daily.go).
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me,
//     /matches/mine.
//   - Database persistence for matches, rounds, and user stats.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled so cookies work.
//   - Optional auth decorates requests with user context when a valid
//     token is present; guests can still play.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/rps-plus/internal/game"
	"github.com/robalobadob/rps-plus/internal/judge"
	"github.com/robalobadob/rps-plus/internal/store"
	"github.com/robalobadob/rps-plus/internal/vocab"
)

// Server bundles router, live match store, and DB handle.
type Server struct {
	r       *chi.Mux
	store   store.Store
	db      *sql.DB
	backend judge.Backend
	policy  func() judge.Policy // fresh policy per match
	daily   *dailyServer
}

// New constructs a Server, installs middleware, and registers routes.
// backend judges the player side; newPolicy supplies the bot policy for
// each non-daily match.
func New(st store.Store, db *sql.DB, backend judge.Backend, newPolicy func() judge.Policy) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		db:      db,
		backend: backend,
		policy:  newPolicy,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(15 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"rps-plus-go","endpoints":["/health","POST /match/new","POST /match/round","GET /match/{id}","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/vocab", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(vocab.Stats())
	})

	// Match endpoints — OPTIONAL AUTH (guests can play)
	s.r.With(s.withOptionalAuth()).Post("/match/new", s.handleNewMatch)
	s.r.With(s.withOptionalAuth()).Post("/match/round", s.handleRound)
	s.r.With(s.withOptionalAuth()).Get("/match/{id}", s.handleGetMatch)

	// Daily gauntlet — OPTIONAL AUTH (one scored attempt per identity per day)
	s.daily = s.mountDaily()

	// Auth + profile/stats
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ MATCH --------------------------------------

// newMatchReq/Res payloads for POST /match/new.
type newMatchReq struct {
	WinTarget int `json:"winTarget"` // optional; defaults server-side
}
type newMatchRes struct {
	MatchID   string `json:"matchId"`
	WinTarget int    `json:"winTarget"`
}

// handleNewMatch creates a live match and persists a DB owner row
// (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewMatch(w http.ResponseWriter, r *http.Request) {
	var req newMatchReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	target := req.WinTarget
	if target <= 0 {
		target = defaultWinTarget()
	}
	m := judge.NewMatch(s.backend, s.policy(), target)
	if err := s.store.Save(r.Context(), m); err != nil {
		log.Error().Err(err).Msg("save match")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if me := currentUser(r); me != nil {
		_, err := s.db.Exec(`INSERT INTO matches (id, user_id, started_at, status, rounds, win_target)
		                     VALUES (?,?,?,?,0,?)`, m.ID, me.ID, now, "playing", m.WinTarget)
		if err != nil {
			log.Warn().Err(err).Str("matchId", m.ID).Msg("insert user match row")
		}
	} else {
		anon := s.ensureAnonID(w, r)
		_, err := s.db.Exec(`INSERT INTO matches (id, anonymous_id, started_at, status, rounds, win_target)
		                     VALUES (?,?,?,?,0,?)`, m.ID, anon, now, "playing", m.WinTarget)
		if err != nil {
			log.Warn().Err(err).Str("matchId", m.ID).Msg("insert anon match row")
		}
	}

	_ = json.NewEncoder(w).Encode(newMatchRes{MatchID: m.ID, WinTarget: m.WinTarget})
}

// roundReq/Res payloads for POST /match/round.
type roundReq struct {
	MatchID string `json:"matchId"`
	Text    string `json:"text"`
}
type roundRes struct {
	Result        game.RoundResult `json:"result"`
	MatchFinished bool             `json:"matchFinished"`
	MatchWinner   game.Outcome     `json:"matchWinner,omitempty"`
}

// handleRound judges one round of a live match, persists progress, and
// (if the match ends) updates user stats in a best-effort transaction.
func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	var req roundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	// Gauntlet matches only advance through /daily/round; letting them
	// through here would skip the daily result bookkeeping.
	if s.daily.ownsMatch(req.MatchID) {
		http.Error(w, `{"error":"daily_match"}`, http.StatusForbidden)
		return
	}
	m, err := s.store.Get(r.Context(), req.MatchID)
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
	if err := s.store.Save(r.Context(), m); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	s.persistRound(w, r, m, res)

	_ = json.NewEncoder(w).Encode(roundRes{Result: res, MatchFinished: m.Finished, MatchWinner: m.Winner})
}

// persistRound writes the round row and match counters; best effort,
// non-fatal if it fails.
func (s *Server) persistRound(w http.ResponseWriter, r *http.Request, m *judge.Match, res game.RoundResult) {
	ownerClause := `anonymous_id=?`
	ownerArg := any(s.ensureAnonID(w, r))
	if me := currentUser(r); me != nil {
		ownerClause = `user_id=?`
		ownerArg = any(me.ID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin round tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT INTO rounds (match_id, round, player_move, player_valid, bot_move, bot_valid, winner, explanation)
	                      VALUES (?,?,?,?,?,?,?,?)`,
		m.ID, res.Round, string(res.PlayerMove.Canonical), res.PlayerValidity.Valid,
		string(res.BotMove.Canonical), res.BotValidity.Valid, string(res.Outcome), res.Explanation); err != nil {
		log.Warn().Err(err).Msg("insert round")
	}
	if _, err := tx.Exec(`UPDATE matches SET rounds = rounds + 1 WHERE id=? AND `+ownerClause, m.ID, ownerArg); err != nil {
		log.Warn().Err(err).Msg("update match rounds")
	}

	if m.Finished {
		status := "lost"
		if m.Winner == game.PlayerWins {
			status = "won"
		}
		if _, err := tx.Exec(`UPDATE matches SET status=?, finished_at=? WHERE id=? AND `+ownerClause,
			status, time.Now().UTC().Format(time.RFC3339), m.ID, ownerArg); err != nil {
			log.Warn().Err(err).Msg("finish match")
		}
		if me := currentUser(r); me != nil {
			if err := s.bumpStats(tx, me.ID, m.Winner == game.PlayerWins); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit round tx")
	}
}

// handleGetMatch returns the match snapshot including full history.
func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	snap := m.Snapshot()
	_ = json.NewEncoder(w).Encode(&snap)
}

// bumpStats increments matches played; updates wins and streak based on
// result (within tx).
func (s *Server) bumpStats(tx *sql.Tx, userID string, won bool) error {
	var gp, wins, streak int
	row := tx.QueryRow(`SELECT games_played, wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err := tx.Exec(`UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID)
	return err
}

// defaultWinTarget reads WIN_TARGET, falling back to the engine
// default. Used when a match request does not name its own target.
func defaultWinTarget() int {
	if v := os.Getenv("WIN_TARGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return judge.DefaultWinTarget
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/rps-plus/internal/httpserver"
	"github.com/robalobadob/rps-plus/internal/judge"
	"github.com/robalobadob/rps-plus/internal/store"
	"github.com/robalobadob/rps-plus/internal/vocab"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := vocab.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load move vocabulary")
	}

	db, err := openDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	srv := httpserver.New(store.NewMemoryStore(), db, pickBackend(), pickPolicy)
	port := getEnv("PORT", "5180")
	log.Info().Str("port", port).Str("backend", getEnv("JUDGE_BACKEND", "local")).Msg("starting rps-plus-go")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// pickBackend selects the judgment backend from JUDGE_BACKEND:
// "local" (rule table, default) or "remote" (external reasoning
// service at JUDGE_URL, fail-closed).
func pickBackend() judge.Backend {
	switch getEnv("JUDGE_BACKEND", "local") {
	case "remote":
		url := os.Getenv("JUDGE_URL")
		if url == "" {
			log.Fatal().Msg("JUDGE_BACKEND=remote requires JUDGE_URL")
		}
		timeout := 5 * time.Second
		if v := os.Getenv("JUDGE_TIMEOUT_MS"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				timeout = time.Duration(n) * time.Millisecond
			}
		}
		return judge.NewRemote(url, timeout)
	default:
		return judge.NewLocal(vocab.Table())
	}
}

// pickPolicy supplies a fresh bot policy per match (BOT_POLICY:
// "random" default, or "rotate").
func pickPolicy() judge.Policy {
	switch getEnv("BOT_POLICY", "random") {
	case "rotate":
		return judge.RotatePolicy{}
	default:
		return judge.RandomPolicy{}
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

package daily

import (
	"context"
	"database/sql"
)

// Result is one user's finished gauntlet attempt for a date.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	RoundsWon int    `json:"roundsWon"`
	Rounds    int    `json:"rounds"`
	Won       bool   `json:"won"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether the user has a recorded attempt for
// the date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records an attempt; duplicate (user, date) rows are
// ignored, so only the first finished attempt counts.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	won := 0
	if r.Won {
		won = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, rounds_won, rounds, won)
		 VALUES(?,?,?,?,?)`, r.UserID, r.Date, r.RoundsWon, r.Rounds, won,
	)
	return err
}

// LBRow is one leaderboard entry.
type LBRow struct {
	UserID    string `json:"userId"`
	RoundsWon int    `json:"roundsWon"`
	Rounds    int    `json:"rounds"`
}

// Leaderboard ranks a date's attempts: most rounds won, then fewest
// rounds taken, then earliest finish.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, rounds_won, rounds
		 FROM daily_results
		 WHERE date=?
		 ORDER BY rounds_won DESC, rounds ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.RoundsWon, &r.Rounds); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

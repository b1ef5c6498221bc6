package store

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS session_results (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL,
		session_id    TEXT    NOT NULL UNIQUE,
		game          TEXT    NOT NULL,
		start_level   REAL    NOT NULL,
		final_level   REAL    NOT NULL,
		total_correct INTEGER NOT NULL,
		total_wrong   INTEGER NOT NULL,
		best_streak   INTEGER NOT NULL,
		rounds        INTEGER NOT NULL,
		accuracy      REAL    NOT NULL,
		outcome       TEXT    NOT NULL,
		reason        TEXT    NOT NULL DEFAULT '',
		tier          TEXT    NOT NULL,
		started_at    INTEGER NOT NULL,
		duration_ms   INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_session_results_game ON session_results (game, started_at)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence    INTEGER NOT NULL,
		session_id  TEXT    NOT NULL,
		game        TEXT    NOT NULL,
		round       INTEGER NOT NULL,
		item_key    TEXT    NOT NULL,
		correct     INTEGER NOT NULL,
		fast        INTEGER NOT NULL,
		level_after REAL    NOT NULL,
		adjustment  TEXT    NOT NULL,
		magnitude   REAL    NOT NULL,
		answered_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_answer_events_session ON answer_events (session_id, round)`,
	`CREATE TABLE IF NOT EXISTS resume_levels (
		game       TEXT    PRIMARY KEY,
		level      REAL    NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
}

// migrate creates missing tables and indexes.
func migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

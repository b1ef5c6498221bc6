package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LevelRepo remembers the last level reached per game so the next session
// can resume from it.
type LevelRepo interface {
	Save(ctx context.Context, game string, level float64) error

	// Load returns the saved level for game, or ErrNotFound.
	Load(ctx context.Context, game string) (float64, error)
}

type levelRepo struct {
	db *sql.DB
}

func (r *levelRepo) Save(ctx context.Context, game string, level float64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO resume_levels (game, level, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(game) DO UPDATE SET level = excluded.level, updated_at = excluded.updated_at`,
		game, level, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save level for %q: %w", game, err)
	}
	return nil
}

func (r *levelRepo) Load(ctx context.Context, game string) (float64, error) {
	var level float64
	err := r.db.QueryRowContext(ctx,
		`SELECT level FROM resume_levels WHERE game = ?`, game).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("level for %q: %w", game, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("load level for %q: %w", game, err)
	}
	return level, nil
}

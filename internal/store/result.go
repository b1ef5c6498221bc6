package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Result is one finished or abandoned session.
type Result struct {
	Sequence     int64
	SessionID    string
	Game         string
	StartLevel   float64
	FinalLevel   float64
	TotalCorrect int
	TotalWrong   int
	BestStreak   int
	Rounds       int
	Accuracy     float64
	Outcome      string
	Reason       string
	Tier         string
	StartedAt    time.Time
	Duration     time.Duration
}

// GameTotals aggregates every result recorded for one game.
type GameTotals struct {
	Game         string
	Sessions     int
	Completed    int
	TotalCorrect int
	TotalWrong   int
	BestLevel    float64
	BestStreak   int
	LastPlayed   time.Time
}

// Accuracy returns the ratio of correct answers across all sessions.
func (g GameTotals) Accuracy() float64 {
	n := g.TotalCorrect + g.TotalWrong
	if n == 0 {
		return 0
	}
	return float64(g.TotalCorrect) / float64(n)
}

// ResultRepo records session results.
type ResultRepo interface {
	// Append stores r. Appending a session ID twice fails.
	Append(ctx context.Context, r Result) error

	// Recent returns up to limit results, newest first. An empty game
	// matches every game; limit <= 0 means no limit.
	Recent(ctx context.Context, game string, limit int) ([]Result, error)

	// Best returns the result with the highest final level for game, or
	// ErrNotFound.
	Best(ctx context.Context, game string) (Result, error)

	// Totals aggregates results per game, sorted by game.
	Totals(ctx context.Context) ([]GameTotals, error)
}

type resultRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

const resultColumns = `sequence, session_id, game, start_level, final_level, total_correct,
	total_wrong, best_streak, rounds, accuracy, outcome, reason, tier, started_at, duration_ms`

func (r *resultRepo) Append(ctx context.Context, res Result) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_results (`+resultColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, res.SessionID, res.Game, res.StartLevel, res.FinalLevel, res.TotalCorrect,
		res.TotalWrong, res.BestStreak, res.Rounds, res.Accuracy, res.Outcome, res.Reason,
		res.Tier, res.StartedAt.UnixMilli(), res.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("save session result: %w", err)
	}
	return nil
}

func (r *resultRepo) Recent(ctx context.Context, game string, limit int) ([]Result, error) {
	query := `SELECT ` + resultColumns + ` FROM session_results`
	var args []any
	if game != "" {
		query += ` WHERE game = ?`
		args = append(args, game)
	}
	query += ` ORDER BY sequence DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

func (r *resultRepo) Best(ctx context.Context, game string) (Result, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+resultColumns+` FROM session_results
		WHERE game = ?
		ORDER BY final_level DESC, total_correct DESC, sequence ASC
		LIMIT 1`, game)
	res, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, fmt.Errorf("best result for %q: %w", game, ErrNotFound)
	}
	return res, err
}

func (r *resultRepo) Totals(ctx context.Context) ([]GameTotals, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT game,
			COUNT(*),
			SUM(CASE WHEN outcome = 'completed' THEN 1 ELSE 0 END),
			SUM(total_correct),
			SUM(total_wrong),
			MAX(final_level),
			MAX(best_streak),
			MAX(started_at)
		FROM session_results
		GROUP BY game
		ORDER BY game`)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	var out []GameTotals
	for rows.Next() {
		var (
			t    GameTotals
			last int64
		)
		if err := rows.Scan(&t.Game, &t.Sessions, &t.Completed, &t.TotalCorrect,
			&t.TotalWrong, &t.BestLevel, &t.BestStreak, &last); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		t.LastPlayed = time.UnixMilli(last)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate totals: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (Result, error) {
	var (
		res        Result
		startedAt  int64
		durationMs int64
	)
	err := row.Scan(&res.Sequence, &res.SessionID, &res.Game, &res.StartLevel, &res.FinalLevel,
		&res.TotalCorrect, &res.TotalWrong, &res.BestStreak, &res.Rounds, &res.Accuracy,
		&res.Outcome, &res.Reason, &res.Tier, &startedAt, &durationMs)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, err
	}
	if err != nil {
		return Result{}, fmt.Errorf("scan result: %w", err)
	}
	res.StartedAt = time.UnixMilli(startedAt)
	res.Duration = time.Duration(durationMs) * time.Millisecond
	return res, nil
}

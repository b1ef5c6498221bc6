package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AnswerEvent is one answered round.
type AnswerEvent struct {
	Sequence   int64
	SessionID  string
	Game       string
	Round      int
	ItemKey    string
	Correct    bool
	Fast       bool
	LevelAfter float64
	Adjustment string
	Magnitude  float64
	AnsweredAt time.Time
}

// AnswerRepo provides append and per-session access to answer events.
type AnswerRepo interface {
	Append(ctx context.Context, ev AnswerEvent) error

	// ForSession returns a session's answers in round order.
	ForSession(ctx context.Context, sessionID string) ([]AnswerEvent, error)
}

type answerRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *answerRepo) Append(ctx context.Context, ev AnswerEvent) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answer_events (sequence, session_id, game, round, item_key, correct, fast,
			level_after, adjustment, magnitude, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, ev.SessionID, ev.Game, ev.Round, ev.ItemKey, ev.Correct, ev.Fast,
		ev.LevelAfter, ev.Adjustment, ev.Magnitude, ev.AnsweredAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *answerRepo) ForSession(ctx context.Context, sessionID string) ([]AnswerEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT sequence, session_id, game, round, item_key, correct, fast, level_after,
			adjustment, magnitude, answered_at
		FROM answer_events WHERE session_id = ? ORDER BY round, sequence`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEvent
	for rows.Next() {
		var (
			ev         AnswerEvent
			answeredAt int64
		)
		if err := rows.Scan(&ev.Sequence, &ev.SessionID, &ev.Game, &ev.Round, &ev.ItemKey,
			&ev.Correct, &ev.Fast, &ev.LevelAfter, &ev.Adjustment, &ev.Magnitude, &answeredAt); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		ev.AnsweredAt = time.UnixMilli(answeredAt)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer events: %w", err)
	}
	return out, nil
}

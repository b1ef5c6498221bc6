package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult(id, game string, final float64, at time.Time) Result {
	return Result{
		SessionID:    id,
		Game:         game,
		StartLevel:   10,
		FinalLevel:   final,
		TotalCorrect: 7,
		TotalWrong:   3,
		BestStreak:   5,
		Rounds:       10,
		Accuracy:     0.7,
		Outcome:      "completed",
		Reason:       "rounds",
		Tier:         "Skilled",
		StartedAt:    at,
		Duration:     95 * time.Second,
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		// journal_mode stays "memory" for in-memory databases; covered by
		// the file-backed test below.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL
		{"busy_timeout", "5000"},
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got), tt.pragma)
		assert.Equal(t, tt.want, got, tt.pragma)
	}
}

func TestOpen_FileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "homebook.db")
	require.NoError(t, EnsureDir(path))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homebook.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Levels().Save(ctx, "speed-math", 17.25))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	level, err := s.Levels().Load(ctx, "speed-math")
	require.NoError(t, err)
	assert.Equal(t, 17.25, level)
}

func TestResults_AppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.Results()
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, sampleResult("s1", "speed-math", 12, base)))
	require.NoError(t, repo.Append(ctx, sampleResult("s2", "fractions", 8, base.Add(time.Hour))))
	require.NoError(t, repo.Append(ctx, sampleResult("s3", "speed-math", 14, base.Add(2*time.Hour))))

	all, err := repo.Recent(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"s3", "s2", "s1"}, []string{all[0].SessionID, all[1].SessionID, all[2].SessionID})

	got := all[2]
	want := sampleResult("s1", "speed-math", 12, base)
	want.Sequence = got.Sequence
	assert.True(t, want.StartedAt.Equal(got.StartedAt))
	got.StartedAt = want.StartedAt
	assert.Equal(t, want, got)

	speed, err := repo.Recent(ctx, "speed-math", 1)
	require.NoError(t, err)
	require.Len(t, speed, 1)
	assert.Equal(t, "s3", speed[0].SessionID)

	none, err := repo.Recent(ctx, "unknown", 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestResults_DuplicateSessionRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := sampleResult("dup", "speed-math", 12, time.Now())

	require.NoError(t, s.Results().Append(ctx, r))
	assert.Error(t, s.Results().Append(ctx, r))
}

func TestResults_Best(t *testing.T) {
	s := openTestStore(t)
	repo := s.Results()
	ctx := context.Background()
	now := time.Now()

	_, err := repo.Best(ctx, "speed-math")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Append(ctx, sampleResult("a", "speed-math", 12, now)))
	require.NoError(t, repo.Append(ctx, sampleResult("b", "speed-math", 21.5, now)))
	require.NoError(t, repo.Append(ctx, sampleResult("c", "speed-math", 18, now)))
	require.NoError(t, repo.Append(ctx, sampleResult("d", "fractions", 40, now)))

	best, err := repo.Best(ctx, "speed-math")
	require.NoError(t, err)
	assert.Equal(t, "b", best.SessionID)
	assert.Equal(t, 21.5, best.FinalLevel)
}

func TestResults_Totals(t *testing.T) {
	s := openTestStore(t)
	repo := s.Results()
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	abandoned := sampleResult("x", "speed-math", 9, base.Add(time.Hour))
	abandoned.Outcome = "abandoned"
	abandoned.BestStreak = 9
	require.NoError(t, repo.Append(ctx, sampleResult("w", "speed-math", 12, base)))
	require.NoError(t, repo.Append(ctx, abandoned))
	require.NoError(t, repo.Append(ctx, sampleResult("y", "fractions", 30, base)))

	totals, err := repo.Totals(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, "fractions", totals[0].Game)
	speed := totals[1]
	assert.Equal(t, "speed-math", speed.Game)
	assert.Equal(t, 2, speed.Sessions)
	assert.Equal(t, 1, speed.Completed)
	assert.Equal(t, 14, speed.TotalCorrect)
	assert.Equal(t, 12.0, speed.BestLevel)
	assert.Equal(t, 9, speed.BestStreak)
	assert.InDelta(t, 0.7, speed.Accuracy(), 1e-9)
	assert.True(t, speed.LastPlayed.Equal(base.Add(time.Hour)))
}

func TestLevels_SaveLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.Levels()
	ctx := context.Background()

	_, err := repo.Load(ctx, "grid")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(ctx, "grid", 6))
	require.NoError(t, repo.Save(ctx, "grid", 7.5))

	level, err := repo.Load(ctx, "grid")
	require.NoError(t, err)
	assert.Equal(t, 7.5, level)
}

func TestAnswers_AppendAndForSession(t *testing.T) {
	s := openTestStore(t)
	repo := s.Answers()
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	for round := 1; round <= 3; round++ {
		require.NoError(t, repo.Append(ctx, AnswerEvent{
			SessionID:  "s1",
			Game:       "speed-math",
			Round:      round,
			ItemKey:    fmt.Sprintf("k%d", round),
			Correct:    round != 2,
			Fast:       round == 3,
			LevelAfter: 10 + float64(round),
			Adjustment: "none",
			AnsweredAt: at.Add(time.Duration(round) * time.Second),
		}))
	}
	require.NoError(t, repo.Append(ctx, AnswerEvent{SessionID: "other", Game: "g", Round: 1, ItemKey: "z", AnsweredAt: at}))

	events, err := repo.ForSession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "k1", events[0].ItemKey)
	assert.False(t, events[1].Correct)
	assert.True(t, events[2].Fast)
	assert.Equal(t, 13.0, events[2].LevelAfter)
	assert.Less(t, events[0].Sequence, events[1].Sequence)
	assert.True(t, events[2].AnsweredAt.Equal(at.Add(3*time.Second)))
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Answers().Append(ctx, AnswerEvent{SessionID: "s", Game: "g", Round: 1, ItemKey: "k", AnsweredAt: time.Now()}))
	require.NoError(t, s.Results().Append(ctx, sampleResult("s", "g", 10, time.Now())))

	events, err := s.Answers().ForSession(ctx, "s")
	require.NoError(t, err)
	results, err := s.Results().Recent(ctx, "g", 1)
	require.NoError(t, err)
	assert.Less(t, events[0].Sequence, results[0].Sequence)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Results().Append(ctx, sampleResult("s", "g", 10, time.Now())))
	require.NoError(t, s.Levels().Save(ctx, "g", 10))
	require.NoError(t, s.Reset(ctx))

	results, err := s.Results().Recent(ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
	_, err = s.Levels().Load(ctx, "g")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "homebook", "homebook.db"), p)
	assert.DirExists(t, filepath.Dir(p))
}

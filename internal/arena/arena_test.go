package arena

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/homebook/internal/content"
	"github.com/abhisek/homebook/internal/levels"
	"github.com/abhisek/homebook/internal/problemgen"
	"github.com/abhisek/homebook/internal/session"
	"github.com/abhisek/homebook/internal/store"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	pools, err := BuiltinPools()
	require.NoError(t, err)
	c, err := NewCatalog(pools...)
	require.NoError(t, err)
	return c
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestCatalog_Order(t *testing.T) {
	c := testCatalog(t)
	assert.Equal(t, []string{
		"speed-math", "quick-pick", "fraction-frenzy", "decimal-dash",
		"capitals", "spelling",
	}, c.IDs())

	g, ok := c.Lookup("capitals")
	require.True(t, ok)
	assert.False(t, g.Generated())
	assert.Equal(t, "Capitals", g.Title)

	_, ok = c.Lookup("chess")
	assert.False(t, ok)
}

func TestCatalog_DuplicatePool(t *testing.T) {
	pool := content.Pool{Game: "speed-math", Items: []content.Item{{Key: "a", MinLevel: 1, MaxLevel: 50}}}
	_, err := NewCatalog(pool)
	assert.Error(t, err)
}

func TestBuiltinPools_EveryItemPlayable(t *testing.T) {
	pools, err := BuiltinPools()
	require.NoError(t, err)
	require.Len(t, pools, 2)

	for _, p := range pools {
		require.NotEmpty(t, p.Items, p.Game)
		for _, it := range p.Items {
			prompt := PromptFor(session.Item{Key: it.Key, Pool: &it})
			assert.NotEqual(t, it.Key, prompt.Text, "%s/%s has no prompt", p.Game, it.Key)
			assert.True(t, prompt.Check(prompt.Answer), "%s/%s", p.Game, it.Key)
		}
	}
}

func TestPromptCheck_NumericAnswer(t *testing.T) {
	p := Prompt{Text: "How many legs does a tripod have?", Answer: "3", Choices: []string{"2", "4", "3"}}

	assert.True(t, p.Check("3"))
	assert.False(t, p.Check("2"), "a literal choice is not an index")
	assert.False(t, p.Check("1"))

	byIndex := Prompt{Answer: "Tokyo", Choices: []string{"Osaka", "Tokyo"}}
	assert.True(t, byIndex.Check("2"))
	assert.False(t, byIndex.Check("3"), "out of range")
}

func TestGame_SourcesServeItems(t *testing.T) {
	c := testCatalog(t)
	ctx := context.Background()

	for _, g := range c.Games() {
		t.Run(g.ID, func(t *testing.T) {
			src, err := g.Source(content.NewSeededRNG(1))
			require.NoError(t, err)

			item, err := src.Next(ctx, 12, content.NewMemory())
			require.NoError(t, err)
			assert.NotEmpty(t, item.Key)

			p := PromptFor(item)
			assert.NotEmpty(t, p.Text)
			assert.True(t, p.Check(p.Answer), "own answer must check for %s", item.Key)
			if g.Format == problemgen.FormatMultipleChoice {
				assert.Contains(t, p.Choices, p.Answer)
			}
		})
	}
}

func TestGame_TimerAndTier(t *testing.T) {
	c := testCatalog(t)

	speed, _ := c.Lookup("speed-math")
	assert.Equal(t, levels.Arithmetic(20).TimerSeconds, speed.TimerSeconds(20))
	assert.Equal(t, levels.LabelForLevel(20), speed.Tier(20))
	assert.NotNil(t, speed.Params(20))

	capitals, _ := c.Lookup("capitals")
	assert.Equal(t, defaultPoolTimer, capitals.TimerSeconds(20))
	assert.Nil(t, capitals.Params(20))
	assert.Equal(t, levels.LabelForLevel(20), capitals.Tier(20))
}

func TestGame_SessionConfig(t *testing.T) {
	c := testCatalog(t)

	speed, _ := c.Lookup("speed-math")
	cfg := speed.SessionConfig(25, 0)
	assert.Equal(t, "speed-math", cfg.Game)
	assert.Equal(t, 25, cfg.Rounds)
	assert.Zero(t, cfg.CountdownTicks)

	quick, _ := c.Lookup("quick-pick")
	cfg = quick.SessionConfig(25, 3)
	assert.Zero(t, cfg.Rounds, "lives-only games keep no round limit")
	assert.Equal(t, 3, cfg.MaxLives)
}

func TestGame_UnsupportedDomain(t *testing.T) {
	g := Game{ID: "grid", Domain: levels.DomainGrid}
	_, err := g.Source(nil)
	assert.ErrorIs(t, err, problemgen.ErrUnsupportedDomain)
}

func TestPromptFor_PoolPayload(t *testing.T) {
	item := session.Item{
		Key: "japan",
		Pool: &content.Item{
			Key: "japan",
			Payload: map[string]any{
				"prompt":  "What is the capital of Japan?",
				"answer":  "Tokyo",
				"choices": []any{"Osaka", "Tokyo"},
				"hint":    "It hosted the 2020 Olympics",
			},
		},
	}
	p := PromptFor(item)
	assert.Equal(t, "What is the capital of Japan?", p.Text)
	assert.Equal(t, []string{"Osaka", "Tokyo"}, p.Choices)
	assert.NotEmpty(t, p.Hint)
	assert.True(t, p.Check(" tokyo "))
	assert.True(t, p.Check("2"))
	assert.False(t, p.Check("1"))
	assert.False(t, p.Check(""))

	bare := PromptFor(session.Item{Key: "raw", Pool: &content.Item{Key: "raw", Payload: "x"}})
	assert.Equal(t, "raw", bare.Text)
	assert.False(t, bare.Check("raw"), "no answer means nothing checks")
}

func TestParseScript(t *testing.T) {
	steps, err := ParseScript("cF, w s")
	require.NoError(t, err)
	assert.Equal(t, []Step{{Correct: true}, {Correct: true, Fast: true}, {}, {}}, steps)

	_, err = ParseScript("CCX")
	assert.Error(t, err)
	_, err = ParseScript("  ")
	assert.Error(t, err)
}

func TestSimulate_BumpAfterFiveCorrect(t *testing.T) {
	c := testCatalog(t)
	speed, _ := c.Lookup("speed-math")
	steps, err := ParseScript("CCCCC")
	require.NoError(t, err)

	run, err := Simulate(context.Background(), speed, steps, 10, content.NewSeededRNG(2), nil)
	require.NoError(t, err)
	require.Len(t, run.Feedback, 5)
	assert.InDelta(t, 11.5, run.Summary.FinalLevel, 1e-9)
	assert.Equal(t, session.OutcomeCompleted, run.Summary.Outcome)
	assert.Equal(t, session.ReasonRounds, run.Summary.Reason)
}

func TestSimulate_LivesCutScriptShort(t *testing.T) {
	c := testCatalog(t)
	quick, _ := c.Lookup("quick-pick")
	steps, err := ParseScript("WWWCCC")
	require.NoError(t, err)

	run, err := Simulate(context.Background(), quick, steps, 10, content.NewSeededRNG(2), nil)
	require.NoError(t, err)
	assert.Len(t, run.Feedback, 3)
	assert.Equal(t, session.ReasonLives, run.Summary.Reason)
}

func TestRecorder_PersistsSession(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	c := testCatalog(t)
	speed, _ := c.Lookup("speed-math")
	steps, err := ParseScript("CCWFC")
	require.NoError(t, err)

	rec := NewRecorder(ctx, st, nil)
	run, err := Simulate(ctx, speed, steps, 8, content.NewSeededRNG(4), rec)
	require.NoError(t, err)

	results, err := st.Results().Recent(ctx, "speed-math", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, run.Summary.SessionID, results[0].SessionID)
	assert.Equal(t, 4, results[0].TotalCorrect)
	assert.Equal(t, "completed", results[0].Outcome)

	answers, err := st.Answers().ForSession(ctx, run.Summary.SessionID)
	require.NoError(t, err)
	require.Len(t, answers, 5)
	assert.False(t, answers[2].Correct)
	assert.True(t, answers[3].Fast)

	assert.InDelta(t, run.Summary.FinalLevel, ResumeLevel(ctx, st, "speed-math", 1), 1e-9)
	assert.Equal(t, 7.0, ResumeLevel(ctx, st, "capitals", 7))
	assert.Equal(t, 3.0, ResumeLevel(ctx, nil, "speed-math", 3))
}

func TestRecorder_AbandonedSessionRecorded(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	c := testCatalog(t)
	capitals, _ := c.Lookup("capitals")

	src, err := capitals.Source(content.NewSeededRNG(9))
	require.NoError(t, err)
	rec := NewRecorder(ctx, st, nil)
	s := NewSession(capitals.SessionConfig(0, 1), src, rec)

	require.NoError(t, s.Start(ctx, 5))
	require.NoError(t, s.Quit())

	results, err := st.Results().Recent(ctx, "capitals", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "abandoned", results[0].Outcome)
	assert.Equal(t, "quit", results[0].Reason)

	_, err = st.Levels().Load(ctx, "capitals")
	assert.ErrorIs(t, err, store.ErrNotFound, "no rounds played, no resume level")
}

func TestRecorder_ContextBoundsWrites(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	c := testCatalog(t)
	speed, _ := c.Lookup("speed-math")
	steps, err := ParseScript("CW")
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	run, err := Simulate(ctx, speed, steps, 5, content.NewSeededRNG(1), NewRecorder(cancelled, st, nil))
	require.NoError(t, err, "failed writes never interrupt play")
	assert.Len(t, run.Feedback, 2)

	results, err := st.Results().Recent(ctx, "speed-math", 0)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = Simulate(ctx, speed, steps, 5, content.NewSeededRNG(1), NewRecorder(nil, st, nil))
	require.NoError(t, err)
	results, err = st.Results().Recent(ctx, "speed-math", 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

package home

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/homebook/internal/arena"
	"github.com/abhisek/homebook/internal/router"
	"github.com/abhisek/homebook/internal/screens/game"
	"github.com/abhisek/homebook/internal/screens/history"
	"github.com/abhisek/homebook/internal/store"
)

func testCatalog(t *testing.T) *arena.Catalog {
	t.Helper()
	pools, err := arena.BuiltinPools()
	require.NoError(t, err)
	cat, err := arena.NewCatalog(pools...)
	require.NoError(t, err)
	return cat
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestHomeScreen_MenuListsGames(t *testing.T) {
	cat := testCatalog(t)
	h := New(cat, game.Deps{})

	require.Len(t, h.menu.Items, len(cat.Games())+2)
	assert.Equal(t, "SPEED MATH", h.menu.Items[0].Label)
	assert.True(t, h.menu.Items[len(cat.Games())].Disabled, "history needs a store")
	assert.Equal(t, MascotIdle, h.mascot)
}

func TestHomeScreen_EnterPushesGame(t *testing.T) {
	h := New(testCatalog(t), game.Deps{})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	gs, ok := msg.Screen.(*game.GameScreen)
	require.True(t, ok)
	assert.Equal(t, "Speed Math", gs.Title())
}

func TestHomeScreen_History(t *testing.T) {
	cat := testCatalog(t)
	h := New(cat, game.Deps{Ctx: context.Background(), Store: openTestStore(t)})

	for range cat.Games() {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = msg.Screen.(*history.HistoryScreen)
	assert.True(t, ok)
}

func TestHomeScreen_RefreshReadsStore(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	h := New(testCatalog(t), game.Deps{Ctx: ctx, Store: st})
	assert.Contains(t, h.View(100, 40), "★ 0 PLAYED")

	require.NoError(t, st.Results().Append(ctx, store.Result{
		SessionID:    "s-1",
		Game:         "speed-math",
		StartLevel:   5,
		FinalLevel:   8,
		TotalCorrect: 9,
		TotalWrong:   1,
		BestStreak:   6,
		Rounds:       10,
		Accuracy:     0.9,
		Outcome:      "completed",
		Reason:       "rounds",
		Tier:         "Casual",
		StartedAt:    time.Now(),
	}))
	require.NoError(t, st.Levels().Save(ctx, "speed-math", 8))

	h.Refresh()
	view := h.View(100, 40)
	assert.Contains(t, view, "★ 1 PLAYED")
	assert.Contains(t, view, "Lv 8.0")
	assert.Equal(t, MascotCelebrating, h.mascot)
}

func TestMascotFor(t *testing.T) {
	assert.Equal(t, MascotIdle, mascotFor(nil))
	assert.Equal(t, MascotAlert, mascotFor(&store.Result{Outcome: "abandoned", Accuracy: 1}))
	assert.Equal(t, MascotCelebrating, mascotFor(&store.Result{Outcome: "completed", Accuracy: 0.8}))
	assert.Equal(t, MascotIdle, mascotFor(&store.Result{Outcome: "completed", Accuracy: 0.5}))
}

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(key string, lo, hi int) Item {
	return Item{Key: key, MinLevel: lo, MaxLevel: hi, Payload: key}
}

func memoryOf(keys ...string) *Memory {
	m := NewMemory()
	for _, k := range keys {
		m.Add(k)
	}
	return m
}

func TestPick_PrefersUnseen(t *testing.T) {
	pool := []Item{item("A", 20, 30), item("B", 20, 30)}
	rng := NewSeededRNG(1)

	for i := 0; i < 50; i++ {
		got := Pick(25, pool, memoryOf("A"), rng)
		require.Equal(t, "B", got.Key)
	}
}

func TestPick_UnfilteredFallback(t *testing.T) {
	pool := []Item{item("C", 10, 15)}

	got, stage := PickWithStage(1, pool, NewMemory(), NewSeededRNG(1))
	assert.Equal(t, "C", got.Key)
	assert.Equal(t, StageAny, stage)
}

func TestPick_NeverReturnsSeenWhenTwoUnseenMatch(t *testing.T) {
	pool := []Item{
		item("a", 1, 10), item("b", 1, 10), item("c", 5, 10),
		item("d", 1, 3), item("e", 40, 50),
	}
	seen := memoryOf("a", "d")
	rng := NewSeededRNG(42)

	counts := map[string]int{}
	for i := 0; i < 500; i++ {
		got, stage := PickWithStage(6, pool, seen, rng)
		require.Equal(t, StageExact, stage)
		require.False(t, seen.Has(got.Key), "picked seen item %s", got.Key)
		counts[got.Key]++
	}
	assert.Greater(t, counts["b"], 0)
	assert.Greater(t, counts["c"], 0)
}

func TestPick_WidensWhenPrimaryIsThin(t *testing.T) {
	// One exact unseen item; the widened window adds a neighbour.
	pool := []Item{item("exact", 10, 10), item("near", 13, 20), item("far", 30, 40)}
	rng := NewSeededRNG(3)

	seenKeys := map[string]bool{}
	for i := 0; i < 200; i++ {
		got, stage := PickWithStage(10, pool, NewMemory(), rng)
		require.Equal(t, StageWidened, stage)
		require.NotEqual(t, "far", got.Key)
		seenKeys[got.Key] = true
	}
	assert.True(t, seenKeys["exact"])
	assert.True(t, seenKeys["near"])
}

func TestPick_BoundaryLevelWithSingleItem(t *testing.T) {
	pool := []Item{item("only", 20, 30), item("other", 40, 50)}

	got, stage := PickWithStage(20, pool, NewMemory(), NewSeededRNG(9))
	assert.Equal(t, "only", got.Key)
	assert.Equal(t, StageExact, stage)

	// Level just outside the range still reaches the item through widening.
	got, stage = PickWithStage(17, pool, NewMemory(), NewSeededRNG(9))
	assert.Equal(t, "only", got.Key)
	assert.Equal(t, StageWidened, stage)
}

func TestPick_SeenFallbackWithinOriginalRange(t *testing.T) {
	pool := []Item{item("x", 1, 5), item("y", 1, 5), item("z", 30, 40)}
	seen := memoryOf("x", "y")

	for i := 0; i < 50; i++ {
		got, stage := PickWithStage(3, pool, seen, NewSeededRNG(uint64(i)))
		require.Equal(t, StageSeen, stage)
		require.Contains(t, []string{"x", "y"}, got.Key)
	}
}

func TestPick_WidenedExcludesSeen(t *testing.T) {
	pool := []Item{item("exact", 10, 10), item("near", 12, 14)}
	seen := memoryOf("near")

	got, stage := PickWithStage(10, pool, seen, NewSeededRNG(5))
	assert.Equal(t, "exact", got.Key)
	assert.Equal(t, StageExact, stage)
}

func TestPick_RoundsAndClampsLevel(t *testing.T) {
	pool := []Item{item("low", 1, 1), item("top", 50, 50), item("mid", 25, 25)}

	assert.Equal(t, "low", Pick(-7, pool, memoryOf("mid", "top"), NewSeededRNG(1)).Key)
	assert.Equal(t, "top", Pick(88, pool, memoryOf("mid", "low"), NewSeededRNG(1)).Key)
	assert.Equal(t, "mid", Pick(24.6, pool, memoryOf("low", "top"), NewSeededRNG(1)).Key)
}

func TestPick_AlwaysReturnsPoolItem(t *testing.T) {
	pool := []Item{item("a", 1, 3), item("b", 20, 22), item("c", 48, 50)}
	rng := NewSeededRNG(11)
	seen := NewMemory()

	for l := -10.0; l <= 60; l += 0.5 {
		got := Pick(l, pool, seen, rng)
		assert.Contains(t, []string{"a", "b", "c"}, got.Key)
		seen.Add(got.Key)
	}
}

func TestPick_EmptyPoolPanics(t *testing.T) {
	assert.Panics(t, func() { Pick(10, nil, NewMemory(), NewSeededRNG(1)) })
}

func TestPick_NilMemoryAndRNG(t *testing.T) {
	pool := []Item{item("a", 1, 50)}
	assert.Equal(t, "a", Pick(10, pool, nil, nil).Key)
}

func TestSelector_RecordsSeenAndCyclesPool(t *testing.T) {
	pool := []Item{item("a", 1, 50), item("b", 1, 50), item("c", 1, 50)}
	sel := NewSelector(pool, NewSeededRNG(2))
	seen := NewMemory()

	got := map[string]bool{}
	for i := 0; i < 3; i++ {
		got[sel.Pick(10, seen).Key] = true
	}
	assert.Len(t, got, 3, "three picks from three items must not repeat")
	assert.Equal(t, 3, seen.Len())

	// Exhausted: falls back to seen items in range.
	next := sel.Pick(10, seen)
	assert.Contains(t, []string{"a", "b", "c"}, next.Key)
	assert.Equal(t, 3, sel.Len())
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	m.Add("x")
	m.Add("y")
	m.Add("x")

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"x", "y"}, m.Keys())
	assert.True(t, m.Has("y"))

	m.Reset()
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Has("x"))

	var zero Memory
	zero.Add("z")
	assert.True(t, zero.Has("z"))

	var nilMem *Memory
	assert.False(t, nilMem.Has("z"))
	assert.Equal(t, 0, nilMem.Len())
}

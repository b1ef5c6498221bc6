package content

import "github.com/abhisek/homebook/internal/levels"

// WidenBy is how far the level window grows on each side when too few
// unseen items match the level exactly.
const WidenBy = 5

// minPrimary is the number of exact-level unseen items below which the
// window is widened.
const minPrimary = 2

// Stage identifies which fallback stage produced a pick.
type Stage int

const (
	StageExact   Stage = iota // unseen, range covers the level
	StageWidened              // unseen, range within ±WidenBy of the level
	StageSeen                 // already seen, range covers the level
	StageAny                  // whole pool
)

func (t Stage) String() string {
	switch t {
	case StageExact:
		return "exact"
	case StageWidened:
		return "widened"
	case StageSeen:
		return "seen"
	default:
		return "any"
	}
}

// Pick returns the next item for level from pool, avoiding keys in seen.
// It never fails for a non-empty pool. An empty pool is a caller bug and
// panics. The caller adds the returned key to seen.
func Pick(level float64, pool []Item, seen *Memory, rng RandomSource) Item {
	item, _ := PickWithStage(level, pool, seen, rng)
	return item
}

// PickWithStage is Pick that also reports which fallback stage was used.
func PickWithStage(level float64, pool []Item, seen *Memory, rng RandomSource) (Item, Stage) {
	if len(pool) == 0 {
		panic("content: Pick called with an empty pool")
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	r := levels.Round(level)

	candidates := make([]int, 0, len(pool))
	for i, it := range pool {
		if it.Covers(r) && !seen.Has(it.Key) {
			candidates = append(candidates, i)
		}
	}
	stage := StageExact

	if len(candidates) < minPrimary {
		lo, hi := r-WidenBy, r+WidenBy
		for i, it := range pool {
			if it.Covers(r) || seen.Has(it.Key) {
				continue // exact matches are already in; seen stay out
			}
			if it.Overlaps(lo, hi) {
				candidates = append(candidates, i)
				stage = StageWidened
			}
		}
	}

	if len(candidates) == 0 {
		stage = StageSeen
		for i, it := range pool {
			if it.Covers(r) {
				candidates = append(candidates, i)
			}
		}
	}

	if len(candidates) == 0 {
		return pool[rng.IntN(len(pool))], StageAny
	}
	return pool[candidates[rng.IntN(len(candidates))]], stage
}

// Selector bundles a pool with its random source.
type Selector struct {
	pool []Item
	rng  RandomSource
}

// NewSelector returns a Selector over pool. A nil rng uses DefaultRNG.
func NewSelector(pool []Item, rng RandomSource) *Selector {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Selector{pool: pool, rng: rng}
}

// Pick selects the next item for level and records it in seen.
func (s *Selector) Pick(level float64, seen *Memory) Item {
	it, _ := s.Peek(level, seen)
	if seen != nil {
		seen.Add(it.Key)
	}
	return it
}

// Peek selects the next item for level without recording it.
func (s *Selector) Peek(level float64, seen *Memory) (Item, Stage) {
	return PickWithStage(level, s.pool, seen, s.rng)
}

// Len returns the pool size.
func (s *Selector) Len() int {
	return len(s.pool)
}

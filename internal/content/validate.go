package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/homebook/internal/levels"
)

// ErrInvalidPool is wrapped by every pool validation failure.
var ErrInvalidPool = errors.New("invalid content pool")

// Validate checks the pool preconditions Pick relies on: at least one item,
// non-empty unique keys and ranges within [1, 50].
func Validate(pool []Item) error {
	if len(pool) == 0 {
		return fmt.Errorf("%w: pool is empty", ErrInvalidPool)
	}

	var problems []string
	keys := make(map[string]int, len(pool))
	for i, it := range pool {
		switch {
		case strings.TrimSpace(it.Key) == "":
			problems = append(problems, fmt.Sprintf("item %d: empty key", i))
		case keys[it.Key] > 0:
			problems = append(problems, fmt.Sprintf("item %d: duplicate key %q (first at item %d)", i, it.Key, keys[it.Key]-1))
		default:
			keys[it.Key] = i + 1
		}
		if it.MinLevel < int(levels.MinLevel) || it.MaxLevel > int(levels.MaxLevel) {
			problems = append(problems, fmt.Sprintf("item %d (%s): range %d-%d outside %d-%d",
				i, it.Key, it.MinLevel, it.MaxLevel, int(levels.MinLevel), int(levels.MaxLevel)))
		}
		if it.MinLevel > it.MaxLevel {
			problems = append(problems, fmt.Sprintf("item %d (%s): min_level %d above max_level %d", i, it.Key, it.MinLevel, it.MaxLevel))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPool, strings.Join(problems, "; "))
	}
	return nil
}

// Coverage counts, for every whole level, how many items cover it.
// Index 0 is unused.
func Coverage(pool []Item) []int {
	out := make([]int, int(levels.MaxLevel)+1)
	for _, it := range pool {
		lo := max(it.MinLevel, int(levels.MinLevel))
		hi := min(it.MaxLevel, int(levels.MaxLevel))
		for l := lo; l <= hi; l++ {
			out[l]++
		}
	}
	return out
}

// Gaps returns the whole levels no item covers.
func Gaps(pool []Item) []int {
	var gaps []int
	cov := Coverage(pool)
	for l := int(levels.MinLevel); l < len(cov); l++ {
		if cov[l] == 0 {
			gaps = append(gaps, l)
		}
	}
	return gaps
}

// Package content holds leveled content items and selects the next one for
// a player: level-appropriate, unseen material first, widening gracefully
// when the pool runs thin.
package content

// Item is one piece of content from a game's pool. The engine never looks
// inside Payload.
type Item struct {
	// Key is the stable identity used for recency tracking.
	Key string `yaml:"key" json:"key"`

	// MinLevel and MaxLevel bound the whole levels the item suits.
	MinLevel int `yaml:"min_level" json:"min_level"`
	MaxLevel int `yaml:"max_level" json:"max_level"`

	Payload any `yaml:"payload" json:"payload"`
}

// Covers reports whether level lies within the item's range.
func (it Item) Covers(level int) bool {
	return it.MinLevel <= level && level <= it.MaxLevel
}

// Overlaps reports whether the item's range intersects [lo, hi].
func (it Item) Overlaps(lo, hi int) bool {
	return it.MinLevel <= hi && lo <= it.MaxLevel
}

// Memory is the set of keys already shown in the current session.
type Memory struct {
	seen  map[string]struct{}
	order []string
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{seen: make(map[string]struct{})}
}

// Add records key as seen. Adding a key twice is a no-op.
func (m *Memory) Add(key string) {
	if m.seen == nil {
		m.seen = make(map[string]struct{})
	}
	if _, ok := m.seen[key]; ok {
		return
	}
	m.seen[key] = struct{}{}
	m.order = append(m.order, key)
}

// Has reports whether key has been seen. A nil Memory has seen nothing.
func (m *Memory) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.seen[key]
	return ok
}

// Len returns the number of distinct keys seen.
func (m *Memory) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Keys returns seen keys in the order they were first added.
func (m *Memory) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Reset forgets every key.
func (m *Memory) Reset() {
	m.seen = make(map[string]struct{})
	m.order = nil
}

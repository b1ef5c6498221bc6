package levels

// Tier is a display band for a level. It is presentational metadata only and
// must not drive content selection.
type Tier struct {
	Index int
	Label string
	Color string // hex, e.g. "#22C55E"
	Emoji string
}

// tierWidth is the number of levels in each band.
const tierWidth = 5

var tiers = []Tier{
	{Index: 0, Label: "Easy", Color: "#22C55E", Emoji: "🌱"},
	{Index: 1, Label: "Casual", Color: "#84CC16", Emoji: "🙂"},
	{Index: 2, Label: "Steady", Color: "#14B8A6", Emoji: "🚶"},
	{Index: 3, Label: "Skilled", Color: "#0EA5E9", Emoji: "🎯"},
	{Index: 4, Label: "Hard", Color: "#6366F1", Emoji: "💪"},
	{Index: 5, Label: "Expert", Color: "#8B5CF6", Emoji: "🧠"},
	{Index: 6, Label: "Master", Color: "#D946EF", Emoji: "🏅"},
	{Index: 7, Label: "Heroic", Color: "#F97316", Emoji: "🦸"},
	{Index: 8, Label: "Legendary", Color: "#F43F5E", Emoji: "🐉"},
	{Index: 9, Label: "Mythic", Color: "#FACC15", Emoji: "👑"},
}

// Tiers returns all tiers in ascending order.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// TierIndex returns the band index 0..9 for level. Levels 1-5 are band 0,
// 46-50 band 9; fractional levels fall into the band of their whole part.
func TierIndex(level float64) int {
	idx := int(Clamp(level)-MinLevel) / tierWidth
	if idx >= len(tiers) {
		idx = len(tiers) - 1
	}
	return idx
}

// LabelForLevel returns the display tier for level.
func LabelForLevel(level float64) Tier {
	return tiers[TierIndex(level)]
}

// LevelRange returns the inclusive whole-level bounds of the tier.
func (t Tier) LevelRange() (lo, hi int) {
	lo = int(MinLevel) + t.Index*tierWidth
	return lo, lo + tierWidth - 1
}

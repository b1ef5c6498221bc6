package levels

import "strconv"

// GridParams drives board games such as memory match and pattern grids.
type GridParams struct {
	// GridSize is the board edge length (3-8).
	GridSize int

	// Pairs is the number of matching pairs that fit on the board.
	Pairs int

	// RevealMillis is how long a flipped or flashed cell stays visible.
	RevealMillis int

	TimerSeconds int

	Tier Tier
}

// Grid maps level to board parameters.
func Grid(level float64) GridParams {
	l := Clamp(level)
	size := int(lerp(l, MinLevel, MaxLevel, 3, 8))

	return GridParams{
		GridSize:     size,
		Pairs:        size * size / 2,
		RevealMillis: roundInt(lerp(l, MinLevel, MaxLevel, 2500, 600)/50) * 50,
		TimerSeconds: roundInt(lerp(l, MinLevel, MaxLevel, 90, 40)),
		Tier:         LabelForLevel(l),
	}
}

func (p GridParams) DisplayTier() Tier { return p.Tier }

func (p GridParams) Fields() []Field {
	return []Field{
		{"grid", strconv.Itoa(p.GridSize) + "x" + strconv.Itoa(p.GridSize)},
		{"pairs", strconv.Itoa(p.Pairs)},
		{"reveal_ms", strconv.Itoa(p.RevealMillis)},
		{"timer_s", strconv.Itoa(p.TimerSeconds)},
	}
}

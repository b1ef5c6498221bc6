package levels

import "strconv"

// DecimalParams drives the decimal games and worksheets.
type DecimalParams struct {
	// Places is the number of digits after the decimal point (1-3).
	Places int

	// MaxWhole bounds the whole-number part of operands.
	MaxWhole int

	Operations   []Operation
	TimerSeconds int

	Tier Tier
}

var decimalUnlocks = []opUnlock{
	{OpAdd, MinLevel},
	{OpSubtract, 8},
	{OpMultiply, 25},
	{OpDivide, 40},
}

// Decimals maps level to decimal generation parameters.
func Decimals(level float64) DecimalParams {
	l := Clamp(level)

	places := 1
	switch {
	case l >= 34:
		places = 3
	case l >= 17:
		places = 2
	}

	return DecimalParams{
		Places:       places,
		MaxWhole:     roundInt(piecewise(l, segment{1, 25, 9, 99}, segment{25, 50, 99, 999})),
		Operations:   enabledOps(l, decimalUnlocks),
		TimerSeconds: roundInt(lerp(l, MinLevel, MaxLevel, 40, 12)),
		Tier:         LabelForLevel(l),
	}
}

func (p DecimalParams) DisplayTier() Tier { return p.Tier }

func (p DecimalParams) Fields() []Field {
	return []Field{
		{"places", strconv.Itoa(p.Places)},
		{"max_whole", strconv.Itoa(p.MaxWhole)},
		{"operations", joinOps(p.Operations)},
		{"timer_s", strconv.Itoa(p.TimerSeconds)},
	}
}

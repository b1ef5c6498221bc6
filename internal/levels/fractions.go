package levels

import "strconv"

// FractionParams drives the fraction games and worksheets.
type FractionParams struct {
	// Denominators is the pool denominators are drawn from.
	Denominators []int

	// MaxDenominator is the largest entry of Denominators.
	MaxDenominator int

	Operations []Operation

	// RequireSimplification asks for answers in lowest terms.
	RequireSimplification bool

	// AllowImproper permits improper fractions in questions and answers.
	AllowImproper bool

	// MixedNumbers enables mixed-number operands.
	MixedNumbers bool

	TimerSeconds int

	Tier Tier
}

var (
	easyDenominators   = []int{2, 3, 4, 5, 6}
	mediumDenominators = []int{2, 3, 4, 5, 6, 8, 10}
	hardDenominators   = []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
)

var fractionUnlocks = []opUnlock{
	{OpAdd, MinLevel},
	{OpSubtract, MinLevel},
	{OpMultiply, 25},
	{OpDivide, 40},
}

// Fractions maps level to fraction generation parameters.
func Fractions(level float64) FractionParams {
	l := Clamp(level)

	var pool []int
	switch {
	case l >= 34:
		pool = hardDenominators
	case l >= 17:
		pool = mediumDenominators
	default:
		pool = easyDenominators
	}
	dens := make([]int, len(pool))
	copy(dens, pool)

	return FractionParams{
		Denominators:          dens,
		MaxDenominator:        dens[len(dens)-1],
		Operations:            enabledOps(l, fractionUnlocks),
		RequireSimplification: l >= 10,
		AllowImproper:         l >= 20,
		MixedNumbers:          l >= 34,
		TimerSeconds:          roundInt(lerp(l, MinLevel, MaxLevel, 45, 15)),
		Tier:                  LabelForLevel(l),
	}
}

func (p FractionParams) DisplayTier() Tier { return p.Tier }

func (p FractionParams) Fields() []Field {
	return []Field{
		{"denominators", joinInts(p.Denominators)},
		{"operations", joinOps(p.Operations)},
		{"simplify", strconv.FormatBool(p.RequireSimplification)},
		{"improper", strconv.FormatBool(p.AllowImproper)},
		{"mixed", strconv.FormatBool(p.MixedNumbers)},
		{"timer_s", strconv.Itoa(p.TimerSeconds)},
	}
}

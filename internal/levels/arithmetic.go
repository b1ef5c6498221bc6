package levels

import "strconv"

// ArithmeticParams drives the speed-math and worksheet arithmetic games.
type ArithmeticParams struct {
	Operations []Operation

	// MinOperand and MaxOperand bound addition and subtraction operands.
	MinOperand int
	MaxOperand int

	// MaxResult caps the sum of an addition problem.
	MaxResult int

	// MulMax bounds both factors of a multiplication and the divisor and
	// quotient of a division.
	MulMax int

	// TimerSeconds is the per-question time budget.
	TimerSeconds int

	// Choices is the number of options in multiple-choice rounds.
	Choices int

	Tier Tier
}

var arithmeticUnlocks = []opUnlock{
	{OpAdd, MinLevel},
	{OpSubtract, 6},
	{OpMultiply, 16},
	{OpDivide, 26},
}

// Arithmetic maps level to arithmetic generation parameters. Ranges follow
// the easy (1-10), medium (10-100) and hard (100-1000) worksheet bands and
// keep widening past them.
func Arithmetic(level float64) ArithmeticParams {
	l := Clamp(level)

	maxOperand := roundInt(piecewise(l,
		segment{1, 15, 10, 100},
		segment{15, 35, 100, 1000},
		segment{35, 50, 1000, 9999},
	))
	minOperand := roundInt(piecewise(l,
		segment{1, 15, 1, 1},
		segment{15, 35, 1, 10},
		segment{35, 50, 10, 100},
	))
	mulMax := roundInt(piecewise(l,
		segment{1, 16, 5, 5},
		segment{16, 30, 5, 12},
		segment{30, 50, 12, 25},
	))

	choices := 3
	switch {
	case l >= 30:
		choices = 5
	case l >= 10:
		choices = 4
	}

	return ArithmeticParams{
		Operations:   enabledOps(l, arithmeticUnlocks),
		MinOperand:   minOperand,
		MaxOperand:   maxOperand,
		MaxResult:    2 * maxOperand,
		MulMax:       mulMax,
		TimerSeconds: roundInt(lerp(l, MinLevel, MaxLevel, 30, 8)),
		Choices:      choices,
		Tier:         LabelForLevel(l),
	}
}

func (p ArithmeticParams) DisplayTier() Tier { return p.Tier }

func (p ArithmeticParams) Fields() []Field {
	return []Field{
		{"operations", joinOps(p.Operations)},
		{"operands", strconv.Itoa(p.MinOperand) + "-" + strconv.Itoa(p.MaxOperand)},
		{"max_result", strconv.Itoa(p.MaxResult)},
		{"mul_max", strconv.Itoa(p.MulMax)},
		{"timer_s", strconv.Itoa(p.TimerSeconds)},
		{"choices", strconv.Itoa(p.Choices)},
	}
}

package levels

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sweep returns levels across and slightly beyond the valid range.
func sweep() []float64 {
	var out []float64
	for l := -5.0; l <= 55; l += 0.25 {
		out = append(out, l)
	}
	return out
}

type numericField struct {
	name string
	get  func(level float64) float64
	// increasing is true for non-decreasing fields, false for non-increasing.
	increasing bool
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func TestMappings_Monotonic(t *testing.T) {
	fields := []numericField{
		{"arith.ops", func(l float64) float64 { return float64(len(Arithmetic(l).Operations)) }, true},
		{"arith.min_operand", func(l float64) float64 { return float64(Arithmetic(l).MinOperand) }, true},
		{"arith.max_operand", func(l float64) float64 { return float64(Arithmetic(l).MaxOperand) }, true},
		{"arith.max_result", func(l float64) float64 { return float64(Arithmetic(l).MaxResult) }, true},
		{"arith.mul_max", func(l float64) float64 { return float64(Arithmetic(l).MulMax) }, true},
		{"arith.choices", func(l float64) float64 { return float64(Arithmetic(l).Choices) }, true},
		{"arith.timer", func(l float64) float64 { return float64(Arithmetic(l).TimerSeconds) }, false},
		{"frac.max_den", func(l float64) float64 { return float64(Fractions(l).MaxDenominator) }, true},
		{"frac.pool", func(l float64) float64 { return float64(len(Fractions(l).Denominators)) }, true},
		{"frac.ops", func(l float64) float64 { return float64(len(Fractions(l).Operations)) }, true},
		{"frac.simplify", func(l float64) float64 { return boolf(Fractions(l).RequireSimplification) }, true},
		{"frac.improper", func(l float64) float64 { return boolf(Fractions(l).AllowImproper) }, true},
		{"frac.mixed", func(l float64) float64 { return boolf(Fractions(l).MixedNumbers) }, true},
		{"frac.timer", func(l float64) float64 { return float64(Fractions(l).TimerSeconds) }, false},
		{"dec.places", func(l float64) float64 { return float64(Decimals(l).Places) }, true},
		{"dec.max_whole", func(l float64) float64 { return float64(Decimals(l).MaxWhole) }, true},
		{"dec.ops", func(l float64) float64 { return float64(len(Decimals(l).Operations)) }, true},
		{"dec.timer", func(l float64) float64 { return float64(Decimals(l).TimerSeconds) }, false},
		{"grid.size", func(l float64) float64 { return float64(Grid(l).GridSize) }, true},
		{"grid.pairs", func(l float64) float64 { return float64(Grid(l).Pairs) }, true},
		{"grid.reveal", func(l float64) float64 { return float64(Grid(l).RevealMillis) }, false},
		{"grid.timer", func(l float64) float64 { return float64(Grid(l).TimerSeconds) }, false},
		{"tier.index", func(l float64) float64 { return float64(TierIndex(l)) }, true},
	}

	levels := sweep()
	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			prev := f.get(levels[0])
			for _, l := range levels[1:] {
				cur := f.get(l)
				if f.increasing && cur < prev {
					t.Fatalf("%s decreased at level %g: %g -> %g", f.name, l, prev, cur)
				}
				if !f.increasing && cur > prev {
					t.Fatalf("%s increased at level %g: %g -> %g", f.name, l, prev, cur)
				}
				prev = cur
			}
		})
	}
}

func TestMappings_Deterministic(t *testing.T) {
	for _, d := range Domains() {
		m, ok := Lookup(d)
		require.True(t, ok)
		for _, l := range sweep() {
			assert.True(t, reflect.DeepEqual(m(l), m(l)), "%s at %g", d, l)
		}
	}
}

func TestMappings_ClampInput(t *testing.T) {
	assert.Equal(t, Arithmetic(1), Arithmetic(-100))
	assert.Equal(t, Arithmetic(50), Arithmetic(1000))
	assert.Equal(t, Fractions(1), Fractions(math.NaN()))
	assert.Equal(t, Grid(50), Grid(math.Inf(1)))
}

func TestArithmetic_Endpoints(t *testing.T) {
	low := Arithmetic(1)
	assert.Equal(t, []Operation{OpAdd}, low.Operations)
	assert.Equal(t, 1, low.MinOperand)
	assert.Equal(t, 10, low.MaxOperand)
	assert.Equal(t, 20, low.MaxResult)
	assert.Equal(t, 30, low.TimerSeconds)

	high := Arithmetic(50)
	assert.Equal(t, []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}, high.Operations)
	assert.Equal(t, 100, high.MinOperand)
	assert.Equal(t, 9999, high.MaxOperand)
	assert.Equal(t, 25, high.MulMax)
	assert.Equal(t, 8, high.TimerSeconds)

	assert.Equal(t, []Operation{OpAdd, OpSubtract}, Arithmetic(6).Operations)
}

func TestFractions_DenominatorPools(t *testing.T) {
	assert.Equal(t, []int{2, 3, 4, 5, 6}, Fractions(1).Denominators)
	assert.Equal(t, []int{2, 3, 4, 5, 6, 8, 10}, Fractions(20).Denominators)
	assert.Equal(t, 12, Fractions(50).MaxDenominator)

	// Callers must not be able to corrupt the shared pools.
	p := Fractions(1)
	p.Denominators[0] = 99
	assert.Equal(t, 2, Fractions(1).Denominators[0])
}

func TestGrid_Endpoints(t *testing.T) {
	assert.Equal(t, 3, Grid(1).GridSize)
	assert.Equal(t, 4, Grid(1).Pairs)
	assert.Equal(t, 8, Grid(50).GridSize)
	assert.Equal(t, 600, Grid(50).RevealMillis)
}

func TestLabelForLevel(t *testing.T) {
	tests := []struct {
		level float64
		want  string
	}{
		{1, "Easy"},
		{5.9, "Easy"},
		{6, "Casual"},
		{23, "Hard"},
		{25.4, "Hard"},
		{26, "Expert"},
		{46, "Mythic"},
		{50, "Mythic"},
		{-3, "Easy"},
		{120, "Mythic"},
	}
	for _, tt := range tests {
		if got := LabelForLevel(tt.level).Label; got != tt.want {
			t.Errorf("LabelForLevel(%g) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestTiers_CoverRange(t *testing.T) {
	all := Tiers()
	require.Len(t, all, 10)

	next := 1
	for i, tier := range all {
		assert.Equal(t, i, tier.Index)
		lo, hi := tier.LevelRange()
		assert.Equal(t, next, lo)
		next = hi + 1
		assert.NotEmpty(t, tier.Color)
		assert.NotEmpty(t, tier.Emoji)
	}
	assert.Equal(t, 51, next)
}

func TestParams_TierMatchesLabel(t *testing.T) {
	for _, d := range Domains() {
		m, _ := Lookup(d)
		for _, l := range []float64{1, 12.5, 33, 50} {
			assert.Equal(t, LabelForLevel(l), m(l).DisplayTier(), "%s at %g", d, l)
			assert.NotEmpty(t, m(l).Fields())
		}
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1, Round(0.2))
	assert.Equal(t, 25, Round(24.5))
	assert.Equal(t, 24, Round(24.49))
	assert.Equal(t, 50, Round(73))
}

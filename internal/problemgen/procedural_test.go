package problemgen

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/homebook/internal/content"
	"github.com/abhisek/homebook/internal/levels"
)

func newTestGenerator(seed uint64) *Procedural {
	return NewProcedural(content.NewSeededRNG(seed), DefaultConfig())
}

func domainOps(domain levels.Domain, level float64) []levels.Operation {
	switch domain {
	case levels.DomainArithmetic:
		return levels.Arithmetic(level).Operations
	case levels.DomainFractions:
		return levels.Fractions(level).Operations
	default:
		return levels.Decimals(level).Operations
	}
}

func TestProcedural_GeneratesValidQuestionsAcrossLevels(t *testing.T) {
	g := newTestGenerator(7)
	ctx := context.Background()

	for _, domain := range []levels.Domain{levels.DomainArithmetic, levels.DomainFractions, levels.DomainDecimals} {
		for level := 1.0; level <= 50; level += 3.5 {
			for range 20 {
				q, err := g.Generate(ctx, GenerateInput{Domain: domain, Level: level})
				require.NoError(t, err, "%s at %.1f", domain, level)

				assert.NotEmpty(t, q.ID)
				assert.Equal(t, domain, q.Domain)
				assert.Equal(t, level, q.Level)
				assert.Equal(t, FormatNumeric, q.Format)
				assert.Empty(t, q.Choices)
				assert.Contains(t, domainOps(domain, level), q.Operation)
				assert.True(t, CheckAnswer(q.Answer, q), "%q answer %q rejected", q.Text, q.Answer)
				assert.Nil(t, (&MathCheckValidator{}).Validate(q), q.Text)
			}
		}
	}
}

func TestProcedural_ClampsLevel(t *testing.T) {
	g := newTestGenerator(1)
	q, err := g.Generate(context.Background(), GenerateInput{Domain: levels.DomainArithmetic, Level: 400})
	require.NoError(t, err)
	assert.Equal(t, levels.MaxLevel, q.Level)
}

func TestProcedural_LowLevelArithmeticIsAddition(t *testing.T) {
	g := newTestGenerator(3)
	for range 30 {
		q, err := g.Generate(context.Background(), GenerateInput{Domain: levels.DomainArithmetic, Level: 1})
		require.NoError(t, err)
		assert.Equal(t, levels.OpAdd, q.Operation)
	}
}

func TestProcedural_MultipleChoice(t *testing.T) {
	g := newTestGenerator(11)
	ctx := context.Background()

	for _, level := range []float64{1, 12, 30, 50} {
		q, err := g.Generate(ctx, GenerateInput{Domain: levels.DomainArithmetic, Level: level, Format: FormatMultipleChoice})
		require.NoError(t, err)
		assert.Len(t, q.Choices, levels.Arithmetic(level).Choices)
		assert.Contains(t, q.Choices, q.Answer)

		idx := slices.Index(q.Choices, q.Answer) + 1
		assert.True(t, CheckAnswer(string(rune('0'+idx)), q))
	}

	for _, domain := range []levels.Domain{levels.DomainFractions, levels.DomainDecimals} {
		q, err := g.Generate(ctx, GenerateInput{Domain: domain, Level: 25, Format: FormatMultipleChoice})
		require.NoError(t, err)
		assert.Len(t, q.Choices, 4)
		assert.Contains(t, q.Choices, q.Answer)
	}
}

func TestProcedural_SameSeedSameQuestions(t *testing.T) {
	texts := func(seed uint64) []string {
		g := newTestGenerator(seed)
		var out []string
		for _, level := range []float64{2, 18, 36, 49} {
			q, err := g.Generate(context.Background(), GenerateInput{Domain: levels.DomainFractions, Level: level})
			require.NoError(t, err)
			out = append(out, q.Text)
		}
		return out
	}
	assert.Equal(t, texts(99), texts(99))
}

// seenFirst reports the first n lookups as already seen.
type seenFirst struct {
	n, calls int
}

func (s *seenFirst) Has(string) bool {
	s.calls++
	return s.calls <= s.n
}

func TestProcedural_RetriesSeenKeys(t *testing.T) {
	g := newTestGenerator(5)
	seen := &seenFirst{n: 3}

	q, err := g.Generate(context.Background(), GenerateInput{Domain: levels.DomainArithmetic, Level: 20, Seen: seen})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, 4, seen.calls)
}

func TestProcedural_AllSeenFallsBackToRepeat(t *testing.T) {
	g := newTestGenerator(5)
	seen := &seenFirst{n: 1000}

	q, err := g.Generate(context.Background(), GenerateInput{Domain: levels.DomainDecimals, Level: 10, Seen: seen})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, DefaultConfig().MaxAttempts, seen.calls)
}

func TestProcedural_SeenMemoryAvoidsRepeats(t *testing.T) {
	g := newTestGenerator(42)
	seen := content.NewMemory()

	q1, err := g.Generate(context.Background(), GenerateInput{Domain: levels.DomainArithmetic, Level: 40, Seen: seen})
	require.NoError(t, err)
	seen.Add(q1.Key())

	q2, err := g.Generate(context.Background(), GenerateInput{Domain: levels.DomainArithmetic, Level: 40, Seen: seen})
	require.NoError(t, err)
	assert.NotEqual(t, q1.Key(), q2.Key())
}

type rejectAll struct{ retryable bool }

func (rejectAll) Name() string { return "reject" }

func (r rejectAll) Validate(*Question) *ValidationError {
	return &ValidationError{Validator: "reject", Message: "no", Retryable: r.retryable}
}

func TestProcedural_ValidationFailures(t *testing.T) {
	for _, retryable := range []bool{true, false} {
		g := NewProcedural(content.NewSeededRNG(1), Config{Validators: []Validator{rejectAll{retryable}}})
		_, err := g.Generate(context.Background(), GenerateInput{Domain: levels.DomainArithmetic, Level: 5})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrGenerationFailed)

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	}
}

func TestProcedural_Errors(t *testing.T) {
	g := newTestGenerator(1)

	_, err := g.Generate(context.Background(), GenerateInput{Domain: levels.DomainGrid, Level: 5})
	assert.ErrorIs(t, err, ErrUnsupportedDomain)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Generate(ctx, GenerateInput{Domain: levels.DomainArithmetic, Level: 5})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSupports(t *testing.T) {
	assert.True(t, Supports(levels.DomainArithmetic))
	assert.True(t, Supports(levels.DomainFractions))
	assert.True(t, Supports(levels.DomainDecimals))
	assert.False(t, Supports(levels.DomainGrid))
}

package problemgen

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/abhisek/homebook/internal/content"
	"github.com/abhisek/homebook/internal/levels"
)

// Procedural builds questions from the level parameters of a domain.
type Procedural struct {
	rng    content.RandomSource
	config Config
	newID  func() string
}

// NewProcedural creates a generator drawing randomness from rng. A nil rng
// uses the process-wide source.
func NewProcedural(rng content.RandomSource, cfg Config) *Procedural {
	if rng == nil {
		rng = content.DefaultRNG()
	}
	def := DefaultConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.DefaultChoices < minChoices {
		cfg.DefaultChoices = def.DefaultChoices
	}
	return &Procedural{rng: rng, config: cfg, newID: uuid.NewString}
}

// Supports reports whether domain has a question builder.
func Supports(domain levels.Domain) bool {
	switch domain {
	case levels.DomainArithmetic, levels.DomainFractions, levels.DomainDecimals:
		return true
	}
	return false
}

// Generate builds a question for input. Questions whose key is already in
// input.Seen are regenerated; when every attempt repeats, the last valid
// repeat is returned rather than failing.
func (g *Procedural) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	if !Supports(input.Domain) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDomain, input.Domain)
	}
	format := input.Format
	if format == "" {
		format = FormatNumeric
	}
	level := levels.Clamp(input.Level)

	var (
		repeat  *Question
		lastErr *ValidationError
	)
	for attempt := 0; attempt < g.config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		q := g.build(input.Domain, level, format)
		if verr := runValidators(q, g.config.Validators); verr != nil {
			if !verr.Retryable {
				return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, verr)
			}
			lastErr = verr
			continue
		}
		if input.Seen != nil && input.Seen.Has(q.Key()) {
			repeat = q
			continue
		}
		return q, nil
	}

	if repeat != nil {
		return repeat, nil
	}
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrGenerationFailed, g.config.MaxAttempts, lastErr)
}

func (g *Procedural) build(domain levels.Domain, level float64, format AnswerFormat) *Question {
	var (
		q       *Question
		choices int
		variant func(off int) (string, bool)
	)
	switch domain {
	case levels.DomainArithmetic:
		q, variant, choices = g.arithmetic(level)
	case levels.DomainFractions:
		q, variant = g.fractions(level)
		choices = g.config.DefaultChoices
	case levels.DomainDecimals:
		q, variant = g.decimals(level)
		choices = g.config.DefaultChoices
	}

	q.ID = g.newID()
	q.Domain = domain
	q.Level = level
	q.Format = format
	if format == FormatMultipleChoice {
		q.Choices = g.choices(q.Answer, choices, variant)
	}
	return q
}

// between returns a uniform integer in [lo, hi].
func (g *Procedural) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Procedural) pickOp(ops []levels.Operation) levels.Operation {
	return ops[g.rng.IntN(len(ops))]
}

// mulMin is the smallest factor used alongside a factor bound of mulMax.
func mulMin(mulMax int) int {
	return max(1, mulMax*2/5)
}

func (g *Procedural) arithmetic(level float64) (*Question, func(int) (string, bool), int) {
	p := levels.Arithmetic(level)
	op := g.pickOp(p.Operations)

	var a, b, ans int
	var hint string
	switch op {
	case levels.OpAdd:
		a = g.between(p.MinOperand, p.MaxOperand)
		b = g.between(p.MinOperand, max(p.MinOperand, min(p.MaxOperand, p.MaxResult-a)))
		ans = a + b
		hint = "Add the ones first, then carry."
	case levels.OpSubtract:
		a = g.between(p.MinOperand, p.MaxOperand)
		b = g.between(p.MinOperand, max(p.MinOperand, a))
		if b > a {
			a, b = b, a
		}
		ans = a - b
		hint = "Count up from the smaller number."
	case levels.OpMultiply:
		lo := mulMin(p.MulMax)
		a = g.between(lo, p.MulMax)
		b = g.between(lo, p.MulMax)
		ans = a * b
		hint = "Break one factor into tens and ones."
	case levels.OpDivide:
		lo := mulMin(p.MulMax)
		b = g.between(max(2, lo), p.MulMax)
		ans = g.between(lo, p.MulMax)
		a = b * ans
		hint = fmt.Sprintf("Which number times %d makes %d?", b, a)
	}

	answer := strconv.Itoa(ans)
	q := &Question{
		Text:        fmt.Sprintf("What is %d %s %d?", a, op.Symbol(), b),
		Answer:      answer,
		AnswerType:  AnswerTypeInteger,
		Hint:        hint,
		Explanation: fmt.Sprintf("%d %s %d = %s", a, op.Symbol(), b, answer),
		Operation:   op,
	}
	variant := func(off int) (string, bool) {
		v := ans + off
		return strconv.Itoa(v), v >= 0
	}
	return q, variant, p.Choices
}

// operand is a fraction operand, optionally shown as a mixed number.
type operand struct {
	whole, num, den int64
}

func (o operand) improper() int64 { return o.whole*o.den + o.num }

func (o operand) String() string {
	if o.whole > 0 {
		return fmt.Sprintf("%d %d/%d", o.whole, o.num, o.den)
	}
	return fmt.Sprintf("%d/%d", o.num, o.den)
}

// less reports whether o is strictly smaller than other.
func (o operand) less(other operand) bool {
	return o.improper()*other.den < other.improper()*o.den
}

func (g *Procedural) fraction(p levels.FractionParams) operand {
	den := int64(p.Denominators[g.rng.IntN(len(p.Denominators))])
	if p.MixedNumbers && g.rng.IntN(2) == 0 {
		return operand{
			whole: int64(g.between(1, 3)),
			num:   int64(g.between(1, int(den)-1)),
			den:   den,
		}
	}
	hi := int(den) - 1
	if p.AllowImproper {
		hi = 2*int(den) - 1
	}
	return operand{num: int64(g.between(1, hi)), den: den}
}

func fractionSymbol(op levels.Operation) string {
	if op == levels.OpDivide {
		return "÷"
	}
	return op.Symbol()
}

func (g *Procedural) fractions(level float64) (*Question, func(int) (string, bool)) {
	p := levels.Fractions(level)
	op := g.pickOp(p.Operations)
	a, b := g.fraction(p), g.fraction(p)
	if op == levels.OpSubtract && a.less(b) {
		a, b = b, a
	}

	aN, aD := a.improper(), a.den
	bN, bD := b.improper(), b.den
	var rN, rD int64
	var hint string
	switch op {
	case levels.OpAdd:
		rN, rD = aN*bD+bN*aD, aD*bD
		hint = "Find a common denominator first."
	case levels.OpSubtract:
		rN, rD = aN*bD-bN*aD, aD*bD
		hint = "Find a common denominator first."
	case levels.OpMultiply:
		rN, rD = aN*bN, aD*bD
		hint = "Multiply the tops, then the bottoms."
	case levels.OpDivide:
		rN, rD = aN*bD, aD*bN
		hint = "Flip the second fraction and multiply."
	}
	rN, rD = reduce(rN, rD)

	q := &Question{
		Text:        fmt.Sprintf("What is %s %s %s?", a, fractionSymbol(op), b),
		Answer:      formatFraction(rN, rD),
		AnswerType:  AnswerTypeFraction,
		LowestTerms: p.RequireSimplification,
		Hint:        hint,
		Operation:   op,
	}
	if rD == 1 {
		q.AnswerType = AnswerTypeInteger
		q.LowestTerms = false
	}
	if p.RequireSimplification && rD != 1 {
		q.Hint += " Give the answer in lowest terms."
	}

	q.Explanation = fmt.Sprintf("%s %s %s = %s", a, fractionSymbol(op), b, q.Answer)
	if mixed := formatMixed(rN, rD); mixed != q.Answer {
		q.Explanation += " = " + mixed
	}

	variant := func(off int) (string, bool) {
		n := rN + int64(off)
		if n <= 0 {
			return "", false
		}
		return formatFraction(reduce(n, rD)), true
	}
	return q, variant
}

func (g *Procedural) decimals(level float64) (*Question, func(int) (string, bool)) {
	p := levels.Decimals(level)
	op := g.pickOp(p.Operations)

	scale := int64(1)
	for range p.Places {
		scale *= 10
	}
	top := p.MaxWhole*int(scale) + int(scale) - 1
	format := func(v int64) string {
		return strconv.FormatFloat(float64(v)/float64(scale), 'f', -1, 64)
	}

	var aText, bText string
	var ans int64
	var hint string
	switch op {
	case levels.OpAdd:
		a, b := int64(g.between(1, top)), int64(g.between(1, top))
		aText, bText, ans = format(a), format(b), a+b
		hint = "Line up the decimal points."
	case levels.OpSubtract:
		a, b := int64(g.between(1, top)), int64(g.between(1, top))
		if b > a {
			a, b = b, a
		}
		aText, bText, ans = format(a), format(b), a-b
		hint = "Line up the decimal points."
	case levels.OpMultiply:
		a, k := int64(g.between(1, top)), int64(g.between(2, 9))
		aText, bText, ans = format(a), strconv.FormatInt(k, 10), a*k
		hint = "Multiply as whole numbers, then place the point."
	case levels.OpDivide:
		q, k := int64(g.between(1, top)), int64(g.between(2, 9))
		aText, bText, ans = format(q*k), strconv.FormatInt(k, 10), q
		hint = "Divide as whole numbers, then place the point."
	}

	answer := format(ans)
	q := &Question{
		Text:        fmt.Sprintf("What is %s %s %s?", aText, op.Symbol(), bText),
		Answer:      answer,
		AnswerType:  AnswerTypeDecimal,
		Hint:        hint,
		Explanation: fmt.Sprintf("%s %s %s = %s", aText, op.Symbol(), bText, answer),
		Operation:   op,
	}
	variant := func(off int) (string, bool) {
		v := ans + int64(off)
		return format(v), v >= 0
	}
	return q, variant
}

var distractorOffsets = []int{1, -1, 2, -2, 3, -3, 5, -5, 10, -10, 11, -11}

// choices returns n shuffled options containing answer once. Distractors
// come from variant applied to small offsets.
func (g *Procedural) choices(answer string, n int, variant func(off int) (string, bool)) []string {
	out := []string{answer}
	seen := map[string]bool{answer: true}

	offsets := make([]int, len(distractorOffsets))
	copy(offsets, distractorOffsets)
	g.shuffle(len(offsets), func(i, j int) { offsets[i], offsets[j] = offsets[j], offsets[i] })

	for _, off := range offsets {
		if len(out) == n {
			break
		}
		c, ok := variant(off)
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	g.shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func (g *Procedural) shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, g.rng.IntN(i+1))
	}
}

package problemgen

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MathCheckValidator independently recomputes the answer from the question
// text. Questions it cannot parse pass through silently.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(q *Question) *ValidationError {
	computed, err := computeAnswer(q.Text, q.AnswerType)
	if err != nil {
		return nil
	}
	if !answersEqual(computed, q.Answer, q.AnswerType) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %q but question claims %q", computed, q.Answer),
			Retryable: true,
		}
	}
	return nil
}

// Regex patterns for extracting arithmetic expressions from question text.
var (
	// Fraction arithmetic with optional whole parts: "1 1/2 + 2/3", "3/4 ÷ 1/8".
	fractionArithRe = regexp.MustCompile(`(?:(\d+)\s+)?(-?\d+)\s*/\s*(\d+)\s*([+\-*x×÷])\s*(?:(\d+)\s+)?(-?\d+)\s*/\s*(\d+)`)

	// Integer/decimal arithmetic with +, -, *, x, ×.
	intArithRe = regexp.MustCompile(`(?:^|[^\d/])(-?\d+(?:\.\d+)?)\s*([+\-*x×])\s*(-?\d+(?:\.\d+)?)(?:[^\d/]|$)`)

	// Division requires spaces around the operator to distinguish from fractions (3/4 vs 144 / 12).
	intDivRe = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s+[/÷]\s+(-?\d+(?:\.\d+)?)`)
)

// decimalPrecision bounds float noise in recomputed decimal answers.
const decimalPrecision = 1e9

func computeAnswer(text string, answerType AnswerType) (string, error) {
	if answerType == AnswerTypeFraction || answerType == AnswerTypeInteger {
		if result, err := tryFractionArith(text); err == nil {
			return result, nil
		}
	}
	if answerType == AnswerTypeInteger || answerType == AnswerTypeDecimal {
		if result, err := tryIntArith(text, answerType); err == nil {
			return result, nil
		}
	}
	return "", fmt.Errorf("not computable")
}

func tryFractionArith(text string) (string, error) {
	m := fractionArithRe.FindStringSubmatch(text)
	if m == nil {
		return "", fmt.Errorf("no fraction expression found")
	}

	aN, aD := mixedOperand(m[1], m[2], m[3])
	op := normalizeOp(m[4])
	bN, bD := mixedOperand(m[5], m[6], m[7])
	if aD == 0 || bD == 0 {
		return "", fmt.Errorf("zero denominator")
	}

	var rN, rD int64
	switch op {
	case "+":
		rN, rD = aN*bD+bN*aD, aD*bD
	case "-":
		rN, rD = aN*bD-bN*aD, aD*bD
	case "*":
		rN, rD = aN*bN, aD*bD
	case "/":
		if bN == 0 {
			return "", fmt.Errorf("division by zero")
		}
		rN, rD = aN*bD, aD*bN
	default:
		return "", fmt.Errorf("unsupported operator: %s", op)
	}

	return formatFraction(reduce(rN, rD)), nil
}

// mixedOperand folds an optional whole part into an improper fraction.
func mixedOperand(whole, num, den string) (int64, int64) {
	n, _ := strconv.ParseInt(num, 10, 64)
	d, _ := strconv.ParseInt(den, 10, 64)
	if whole != "" {
		w, _ := strconv.ParseInt(whole, 10, 64)
		n += w * d
	}
	return n, d
}

func tryIntArith(text string, answerType AnswerType) (string, error) {
	if m := intArithRe.FindStringSubmatch(text); m != nil {
		return computeIntOp(m[1], normalizeOp(m[2]), m[3], answerType)
	}
	if m := intDivRe.FindStringSubmatch(text); m != nil {
		return computeIntOp(m[1], "/", m[2], answerType)
	}
	return "", fmt.Errorf("no arithmetic expression found")
}

func computeIntOp(aStr, op, bStr string, answerType AnswerType) (string, error) {
	a, err := strconv.ParseFloat(aStr, 64)
	if err != nil {
		return "", err
	}
	b, err := strconv.ParseFloat(bStr, 64)
	if err != nil {
		return "", err
	}

	var result float64
	switch op {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*":
		result = a * b
	case "/":
		if b == 0 {
			return "", fmt.Errorf("division by zero")
		}
		result = a / b
	default:
		return "", fmt.Errorf("unsupported operator: %s", op)
	}

	if answerType == AnswerTypeInteger {
		if result != math.Trunc(result) {
			return "", fmt.Errorf("non-integer result %v", result)
		}
		return strconv.FormatInt(int64(result), 10), nil
	}
	result = math.Round(result*decimalPrecision) / decimalPrecision
	return strconv.FormatFloat(result, 'f', -1, 64), nil
}

// normalizeOp maps the display multiplication and division symbols to * and /.
func normalizeOp(op string) string {
	switch op {
	case "×", "x":
		return "*"
	case "÷":
		return "/"
	default:
		return op
	}
}

func answersEqual(a, b string, answerType AnswerType) bool {
	na, err := normalizeAnswer(a, answerType)
	if err != nil {
		return strings.TrimSpace(a) == strings.TrimSpace(b)
	}
	nb, err := normalizeAnswer(b, answerType)
	if err != nil {
		return strings.TrimSpace(a) == strings.TrimSpace(b)
	}
	return na == nb
}

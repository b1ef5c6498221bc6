package problemgen

import (
	"fmt"
	"strconv"
	"strings"
)

// CheckAnswer compares the player's input against the correct answer.
//
// Normalization rules:
//   - Whitespace is trimmed and comparison is case-insensitive
//   - Fractions accept equivalent forms ("2/4" matches "1/2"), mixed numbers
//     ("1 1/2" matches "3/2") and whole numbers ("2" matches "4/2"), unless
//     the question demands lowest terms
//   - Decimals ignore trailing zeros ("3.50" matches "3.5")
//   - Integers ignore leading zeros ("007" matches "7")
//   - Multiple choice matches the choice text or its 1-based index
func CheckAnswer(input string, question *Question) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}

	if question.Format == FormatMultipleChoice {
		return checkMultipleChoice(input, question)
	}

	if question.AnswerType == AnswerTypeFraction && question.LowestTerms && !inLowestTerms(input) {
		return false
	}

	got, err := normalizeAnswer(input, question.AnswerType)
	if err != nil {
		return false
	}
	want, err := normalizeAnswer(question.Answer, question.AnswerType)
	if err != nil {
		return false
	}
	return got == want
}

func checkMultipleChoice(input string, question *Question) bool {
	if idx, err := strconv.Atoi(input); err == nil && idx >= 1 && idx <= len(question.Choices) {
		return strings.EqualFold(
			strings.TrimSpace(question.Choices[idx-1]),
			strings.TrimSpace(question.Answer),
		)
	}
	return strings.EqualFold(input, strings.TrimSpace(question.Answer))
}

// normalizeAnswer reduces an answer string to a canonical form.
func normalizeAnswer(answer string, answerType AnswerType) (string, error) {
	answer = strings.TrimSpace(answer)

	switch answerType {
	case AnswerTypeInteger:
		n, err := strconv.ParseInt(answer, 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid integer: %w", err)
		}
		return strconv.FormatInt(n, 10), nil

	case AnswerTypeDecimal:
		f, err := strconv.ParseFloat(answer, 64)
		if err != nil {
			return "", fmt.Errorf("invalid decimal: %w", err)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil

	case AnswerTypeFraction:
		num, den, err := parseRational(answer)
		if err != nil {
			return "", err
		}
		num, den = reduce(num, den)
		return formatFraction(num, den), nil

	default:
		return answer, nil
	}
}

// parseRational accepts "a/b", "w a/b" and "n".
func parseRational(s string) (int64, int64, error) {
	s = strings.TrimSpace(s)
	if whole, frac, ok := strings.Cut(s, " "); ok && strings.Contains(frac, "/") {
		w, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid whole part: %w", err)
		}
		num, den, err := parseFraction(strings.TrimSpace(frac))
		if err != nil {
			return 0, 0, err
		}
		if num < 0 || den <= 0 {
			return 0, 0, fmt.Errorf("invalid mixed number: %q", s)
		}
		if w < 0 {
			return w*den - num, den, nil
		}
		return w*den + num, den, nil
	}
	if !strings.Contains(s, "/") {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid fraction format: %q", s)
		}
		return n, 1, nil
	}
	return parseFraction(s)
}

// parseFraction parses "a/b" into numerator and denominator.
func parseFraction(s string) (int64, int64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid fraction format: %q", s)
	}
	num, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator: %w", err)
	}
	if den == 0 {
		return 0, 0, fmt.Errorf("zero denominator")
	}
	return num, den, nil
}

func inLowestTerms(s string) bool {
	s = strings.TrimSpace(s)
	if _, frac, ok := strings.Cut(s, " "); ok {
		s = strings.TrimSpace(frac)
	}
	if !strings.Contains(s, "/") {
		return true
	}
	num, den, err := parseFraction(s)
	if err != nil {
		return false
	}
	return gcd(abs(num), abs(den)) == 1 && den != 1
}

// reduce puts a fraction in lowest terms with a positive denominator.
func reduce(num, den int64) (int64, int64) {
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	if g == 0 {
		return 0, 1
	}
	return num / g, den / g
}

// formatFraction renders a reduced fraction, collapsing whole numbers.
func formatFraction(num, den int64) string {
	if den == 1 {
		return strconv.FormatInt(num, 10)
	}
	return fmt.Sprintf("%d/%d", num, den)
}

// formatMixed renders an improper fraction as a mixed number: 7/2 -> "3 1/2".
func formatMixed(num, den int64) string {
	if den == 1 || abs(num) < den {
		return formatFraction(num, den)
	}
	whole := num / den
	rest := abs(num % den)
	if rest == 0 {
		return strconv.FormatInt(whole, 10)
	}
	return fmt.Sprintf("%d %d/%d", whole, rest, den)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

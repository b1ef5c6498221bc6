package problemgen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var fractionPattern = regexp.MustCompile(`^-?\d+/\d+$`)

const (
	minChoices = 2
	maxChoices = 6
)

// AnswerFormatValidator checks that the answer string matches the declared
// answer type and that multiple choice constraints hold.
type AnswerFormatValidator struct{}

func (v *AnswerFormatValidator) Name() string { return "answer-format" }

func (v *AnswerFormatValidator) Validate(q *Question) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...), Retryable: true}
	}

	switch q.AnswerType {
	case AnswerTypeInteger:
		if err := validateInteger(q.Answer); err != nil {
			return fail("invalid integer answer %q: %s", q.Answer, err)
		}
	case AnswerTypeDecimal:
		if err := validateDecimal(q.Answer); err != nil {
			return fail("invalid decimal answer %q: %s", q.Answer, err)
		}
	case AnswerTypeFraction:
		if err := validateFraction(q.Answer); err != nil {
			return fail("invalid fraction answer %q: %s", q.Answer, err)
		}
	}

	if q.Format == FormatNumeric {
		if len(q.Choices) > 0 {
			return fail("numeric format must have empty choices")
		}
		return nil
	}

	if len(q.Choices) < minChoices || len(q.Choices) > maxChoices {
		return fail("multiple choice needs %d to %d choices, got %d", minChoices, maxChoices, len(q.Choices))
	}
	seen := make(map[string]bool, len(q.Choices))
	matches := 0
	answer := strings.ToLower(strings.TrimSpace(q.Answer))
	for i, c := range q.Choices {
		key := strings.ToLower(strings.TrimSpace(c))
		if key == "" {
			return fail("choice %d is empty", i+1)
		}
		if seen[key] {
			return fail("duplicate choice %q", c)
		}
		seen[key] = true
		if key == answer {
			matches++
		}
	}
	if matches != 1 {
		return fail("answer %q not found in choices", q.Answer)
	}
	return nil
}

// validateInteger checks that s is a valid integer string with no leading zeros.
func validateInteger(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("not a valid integer")
	}
	if strconv.FormatInt(n, 10) != s {
		return fmt.Errorf("has leading zeros")
	}
	return nil
}

// validateDecimal checks that s is a valid decimal string with no trailing zeros.
func validateDecimal(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a valid decimal")
	}
	normalized := strconv.FormatFloat(f, 'f', -1, 64)
	if normalized != s {
		return fmt.Errorf("not normalized (expected %q)", normalized)
	}
	return nil
}

// validateFraction checks that s matches a/b with a positive denominator, in
// lowest terms.
func validateFraction(s string) error {
	if !fractionPattern.MatchString(s) {
		return fmt.Errorf("does not match fraction pattern a/b")
	}
	num, den, err := parseFraction(s)
	if err != nil {
		return err
	}
	if den <= 0 {
		return fmt.Errorf("denominator must be positive")
	}
	if gcd(abs(num), den) != 1 {
		return fmt.Errorf("fraction is not in lowest terms")
	}
	return nil
}

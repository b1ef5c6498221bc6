package problemgen

import "github.com/abhisek/homebook/internal/levels"

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	switch {
	case q.Text == "":
		return fail("question text is empty")
	case len(q.Text) > 500:
		return fail("question text exceeds 500 characters")
	case q.Explanation == "":
		return fail("explanation is empty")
	case len(q.Explanation) > 1000:
		return fail("explanation exceeds 1000 characters")
	case q.Format != FormatNumeric && q.Format != FormatMultipleChoice:
		return fail(`format must be "numeric" or "multiple_choice"`)
	case q.AnswerType != AnswerTypeInteger && q.AnswerType != AnswerTypeDecimal && q.AnswerType != AnswerTypeFraction:
		return fail(`answer type must be "integer", "decimal" or "fraction"`)
	case q.Level < levels.MinLevel || q.Level > levels.MaxLevel:
		return &ValidationError{Validator: v.Name(), Message: "level out of range", Retryable: false}
	}
	if _, ok := levels.Lookup(q.Domain); !ok {
		return &ValidationError{Validator: v.Name(), Message: "unknown domain " + string(q.Domain), Retryable: false}
	}
	return nil
}

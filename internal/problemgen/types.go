package problemgen

import "github.com/abhisek/homebook/internal/levels"

// Question is a generated problem ready for display.
type Question struct {
	// ID is unique per generated question.
	ID string

	// Text is the prompt shown to the player, e.g. "What is 345 + 278?"
	// or "What is 1 1/2 + 2/3?".
	Text string

	// Format indicates how the player answers this question.
	Format AnswerFormat

	// Answer is the canonical correct answer: "623", "0.75", "7/6".
	Answer string

	// AnswerType describes the numeric type of the answer for validation.
	AnswerType AnswerType

	// Choices is populated only when Format is FormatMultipleChoice and
	// contains Answer exactly once.
	Choices []string

	// Hint is a short nudge, empty when none applies.
	Hint string

	// Explanation is the worked solution shown after answering.
	Explanation string

	// LowestTerms rejects equivalent but unreduced fraction answers.
	LowestTerms bool

	Domain    levels.Domain
	Operation levels.Operation

	// Level is the skill level the question was generated for.
	Level float64
}

// Key identifies the question for anti-repeat bookkeeping. Two questions
// with the same text in the same domain share a key.
func (q *Question) Key() string {
	return string(q.Domain) + ":" + q.Text
}

// AnswerType describes the numeric representation of the correct answer.
type AnswerType string

const (
	AnswerTypeInteger  AnswerType = "integer"  // e.g. "623", "-15"
	AnswerTypeDecimal  AnswerType = "decimal"  // e.g. "3.75", "0.5"
	AnswerTypeFraction AnswerType = "fraction" // e.g. "3/4", "7/2"
)

// AnswerFormat describes how the player provides their answer.
type AnswerFormat string

const (
	// FormatNumeric means the player types a numeric answer.
	FormatNumeric AnswerFormat = "numeric"

	// FormatMultipleChoice means the player picks from a list of choices.
	FormatMultipleChoice AnswerFormat = "multiple_choice"
)

// KeySet reports whether a question key was already used.
// *content.Memory satisfies it.
type KeySet interface {
	Has(key string) bool
}

// GenerateInput holds everything needed to generate a question.
type GenerateInput struct {
	Domain levels.Domain

	// Level is the player's current skill level.
	Level float64

	// Format defaults to FormatNumeric.
	Format AnswerFormat

	// Seen holds keys of questions already asked this session. The
	// generator retries to avoid them and gives up after MaxAttempts.
	Seen KeySet
}

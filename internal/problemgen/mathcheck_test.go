package problemgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMathCheck(t *testing.T) {
	tests := []struct {
		text       string
		answerType AnswerType
		right      string
		wrong      string
	}{
		{"What is 345 + 278?", AnswerTypeInteger, "623", "612"},
		{"567 - 289 = ?", AnswerTypeInteger, "278", "288"},
		{"What is 23 * 45?", AnswerTypeInteger, "1035", "1025"},
		{"What is 7 x 8?", AnswerTypeInteger, "56", "54"},
		{"What is 144 / 12?", AnswerTypeInteger, "12", "11"},
		{"What is 12345 + 67890?", AnswerTypeInteger, "80235", "80234"},
		{"What is 1/4 + 1/2?", AnswerTypeFraction, "3/4", "2/6"},
		{"What is 3/4 - 1/3?", AnswerTypeFraction, "5/12", "2/1"},
		{"What is 2/3 x 3/4?", AnswerTypeFraction, "1/2", "6/7"},
		{"What is 1/2 ÷ 1/4?", AnswerTypeInteger, "2", "8"},
		{"What is 1 1/2 + 2/3?", AnswerTypeFraction, "13/6", "7/6"},
		{"What is 2 1/4 - 1 1/2?", AnswerTypeFraction, "3/4", "5/4"},
		{"What is 0.1 + 0.2?", AnswerTypeDecimal, "0.3", "0.4"},
		{"What is 1.25 x 4?", AnswerTypeDecimal, "5", "4.5"},
		{"What is 2.1 / 3?", AnswerTypeDecimal, "0.7", "0.07"},
	}

	v := &MathCheckValidator{}
	for _, tc := range tests {
		q := validQuestion()
		q.Text, q.AnswerType = tc.text, tc.answerType

		q.Answer = tc.right
		assert.Nil(t, v.Validate(q), "%q = %q should pass", tc.text, tc.right)

		q.Answer = tc.wrong
		assert.NotNil(t, v.Validate(q), "%q = %q should fail", tc.text, tc.wrong)
	}
}

func TestMathCheck_NonComputable(t *testing.T) {
	texts := []string{
		"Which fraction is larger: 3/4 or 2/3?",
		"A farmer has 345 apples and gives some away. How many are left?",
		"What place value does 5 have in 5,432?",
	}

	v := &MathCheckValidator{}
	for _, text := range texts {
		q := validQuestion()
		q.Text = text
		assert.Nil(t, v.Validate(q), "%q should pass silently", text)
	}
}

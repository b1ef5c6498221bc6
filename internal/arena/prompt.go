package arena

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/homebook/internal/problemgen"
	"github.com/abhisek/homebook/internal/session"
)

// Prompt is the presentable form of a round's item.
type Prompt struct {
	Text    string
	Answer  string
	Choices []string
	Hint    string

	// Explanation is shown after answering; pool items may leave it empty.
	Explanation string

	question *problemgen.Question
}

// PromptFor renders item. Pool payloads are maps with prompt, answer and
// optional choices, hint and explanation keys; anything else shows the key.
func PromptFor(item session.Item) Prompt {
	if q := item.Question; q != nil {
		return Prompt{
			Text:        q.Text,
			Answer:      q.Answer,
			Choices:     q.Choices,
			Hint:        q.Hint,
			Explanation: q.Explanation,
			question:    q,
		}
	}

	p := Prompt{Text: item.Key}
	if item.Pool == nil {
		return p
	}
	payload, ok := item.Pool.Payload.(map[string]any)
	if !ok {
		return p
	}
	if v, ok := payload["prompt"]; ok {
		p.Text = fmt.Sprint(v)
	}
	if v, ok := payload["answer"]; ok {
		p.Answer = fmt.Sprint(v)
	}
	if v, ok := payload["hint"]; ok {
		p.Hint = fmt.Sprint(v)
	}
	if v, ok := payload["explanation"]; ok {
		p.Explanation = fmt.Sprint(v)
	}
	if list, ok := payload["choices"].([]any); ok {
		for _, c := range list {
			p.Choices = append(p.Choices, fmt.Sprint(c))
		}
	}
	return p
}

// Check reports whether input answers the prompt. A literal match wins;
// otherwise a number picks a choice by 1-based index.
func (p Prompt) Check(input string) bool {
	if p.question != nil {
		return problemgen.CheckAnswer(input, p.question)
	}
	input = strings.TrimSpace(input)
	answer := strings.TrimSpace(p.Answer)
	if input == "" || answer == "" {
		return false
	}
	if strings.EqualFold(input, answer) {
		return true
	}
	if slices.ContainsFunc(p.Choices, func(c string) bool { return strings.EqualFold(strings.TrimSpace(c), input) }) {
		return false
	}
	if idx, err := strconv.Atoi(input); err == nil && idx >= 1 && idx <= len(p.Choices) {
		return strings.EqualFold(strings.TrimSpace(p.Choices[idx-1]), answer)
	}
	return false
}

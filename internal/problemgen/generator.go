package problemgen

import (
	"context"
	"errors"
)

var (
	// ErrUnsupportedDomain is returned for domains without a question builder.
	ErrUnsupportedDomain = errors.New("problemgen: unsupported domain")

	// ErrGenerationFailed is returned when every attempt failed validation.
	ErrGenerationFailed = errors.New("problemgen: generation failed")
)

// Generator produces questions for a domain at a skill level.
type Generator interface {
	// Generate returns a validated Question. All configured validators
	// run before returning.
	Generate(ctx context.Context, input GenerateInput) (*Question, error)
}

package problemgen

// Config controls the behavior of the procedural generator.
type Config struct {
	// Validators is the ordered list of validators run on every generated
	// question. The first failure stops the pipeline.
	Validators []Validator

	// MaxAttempts bounds regeneration when a question fails validation or
	// repeats a seen key.
	MaxAttempts int

	// DefaultChoices is the option count for multiple-choice questions in
	// domains whose params do not set one.
	DefaultChoices int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerFormatValidator{},
			&MathCheckValidator{},
		},
		MaxAttempts:    8,
		DefaultChoices: 4,
	}
}

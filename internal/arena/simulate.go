package arena

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/homebook/internal/content"
	"github.com/abhisek/homebook/internal/session"
)

// Step is one scripted answer.
type Step struct {
	Correct bool
	Fast    bool
}

// ParseScript reads an answer script: C correct, F fast correct, W wrong,
// S slow-timeout wrong (same as W). Spaces and commas are ignored.
func ParseScript(script string) ([]Step, error) {
	var steps []Step
	for i, r := range strings.ToUpper(script) {
		switch r {
		case 'C':
			steps = append(steps, Step{Correct: true})
		case 'F':
			steps = append(steps, Step{Correct: true, Fast: true})
		case 'W', 'S':
			steps = append(steps, Step{})
		case ' ', ',':
		default:
			return nil, fmt.Errorf("answer script: unexpected %q at %d", r, i)
		}
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("answer script: no answers")
	}
	return steps, nil
}

// Run is the trace of a simulated session.
type Run struct {
	Feedback []session.Feedback
	Summary  session.Summary
}

// Simulate plays game without a countdown, answering each round from
// steps. The session runs one round per step unless the game's lives or
// target end it sooner.
func Simulate(ctx context.Context, game Game, steps []Step, startLevel float64, rng content.RandomSource, rec *Recorder) (Run, error) {
	src, err := game.Source(rng)
	if err != nil {
		return Run{}, err
	}
	cfg := game.SessionConfig(0, 0)
	cfg.Rounds = len(steps)

	s := NewSession(cfg, src, rec)
	if err := s.Start(ctx, startLevel); err != nil {
		return Run{}, fmt.Errorf("start %s: %w", game.ID, err)
	}

	var run Run
	for _, step := range steps {
		fb, err := s.Answer(step.Correct, step.Fast)
		if err != nil {
			return Run{}, err
		}
		run.Feedback = append(run.Feedback, fb)
		if err := s.Continue(ctx); err != nil {
			return Run{}, fmt.Errorf("round %d: %w", fb.Round, err)
		}
		if s.Phase().Terminal() {
			break
		}
	}
	run.Summary = s.Summary()
	return run, nil
}

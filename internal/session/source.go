package session

import (
	"context"
	"fmt"

	"github.com/abhisek/homebook/internal/content"
	"github.com/abhisek/homebook/internal/levels"
	"github.com/abhisek/homebook/internal/problemgen"
)

// Source supplies the item for a round. Next is called exactly once per
// round; seen holds the keys already shown this session and must not be
// modified.
type Source interface {
	Next(ctx context.Context, level float64, seen *content.Memory) (Item, error)
}

// PoolSource selects from a static leveled pool.
type PoolSource struct {
	selector *content.Selector
}

// NewPoolSource validates pool and wraps it in a selector.
func NewPoolSource(pool []content.Item, rng content.RandomSource) (*PoolSource, error) {
	if err := content.Validate(pool); err != nil {
		return nil, fmt.Errorf("pool source: %w", err)
	}
	return &PoolSource{selector: content.NewSelector(pool, rng)}, nil
}

func (p *PoolSource) Next(_ context.Context, level float64, seen *content.Memory) (Item, error) {
	it, stage := p.selector.Peek(level, seen)
	return Item{Key: it.Key, Level: level, Stage: stage, Pool: &it}, nil
}

// GeneratorSource produces fresh questions for a domain.
type GeneratorSource struct {
	gen    problemgen.Generator
	domain levels.Domain
	format problemgen.AnswerFormat
}

// NewGeneratorSource returns a source generating domain questions in format.
func NewGeneratorSource(gen problemgen.Generator, domain levels.Domain, format problemgen.AnswerFormat) *GeneratorSource {
	return &GeneratorSource{gen: gen, domain: domain, format: format}
}

func (g *GeneratorSource) Next(ctx context.Context, level float64, seen *content.Memory) (Item, error) {
	q, err := g.gen.Generate(ctx, problemgen.GenerateInput{
		Domain: g.domain,
		Level:  level,
		Format: g.format,
		Seen:   seen,
	})
	if err != nil {
		return Item{}, err
	}
	return Item{Key: q.Key(), Level: level, Question: q}, nil
}

package solver

import (
	"context"
	"errors"
	"time"

	"svw.info/puzzlefoundry/internal/domain"
	"svw.info/puzzlefoundry/internal/ports"
	"svw.info/puzzlefoundry/internal/validator"
)

var errUnsolvable = errors.New("no completion exists")

// Solve returns the first completion found, or an error if none exists
// within budget.
func (s *BacktrackingSolver) Solve(ctx context.Context, g *domain.Grid) (*domain.Grid, ports.Stats, error) {
	start := time.Now()
	ok, _, err := validator.New().Validate(ctx, g)
	if err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, err
	}
	if !ok {
		return nil, ports.Stats{Duration: time.Since(start)}, errUnsolvable
	}
	sr := newSearch(ctx, g.Clone(), 1, s.budget())
	sr.run(0)
	st := ports.Stats{Nodes: sr.nodes, Duration: time.Since(start)}
	if len(sr.found) == 0 {
		if sr.exhausted {
			return nil, st, domain.ErrBudgetExceeded
		}
		if ctx.Err() != nil {
			return nil, st, ctx.Err()
		}
		return nil, st, errUnsolvable
	}
	return sr.found[0], st, nil
}

package solver

import (
	"context"
	"time"

	"svw.info/puzzlefoundry/internal/domain"
	"svw.info/puzzlefoundry/internal/ports"
	"svw.info/puzzlefoundry/internal/validator"
)

// Unique counts completions up to 2 and reports whether exactly one exists.
// An already-inconsistent grid is rejected by the validity check before any
// backtracking happens, and a fully assigned grid never enters the search.
// Budget exhaustion returns domain.ErrBudgetExceeded with a false verdict so
// an uncertain result can never pass as certified.
func (s *BacktrackingSolver) Unique(ctx context.Context, g *domain.Grid) (bool, ports.Stats, error) {
	start := time.Now()
	ok, _, err := validator.New().Validate(ctx, g)
	if err != nil {
		return false, ports.Stats{Duration: time.Since(start)}, err
	}
	if !ok {
		// zero candidate completions, no search needed
		return false, ports.Stats{Duration: time.Since(start)}, nil
	}
	if g.Clues() == g.Size*g.Size {
		return true, ports.Stats{Duration: time.Since(start)}, nil
	}
	sr := newSearch(ctx, g.Clone(), 2, s.budget())
	sr.run(0)
	st := ports.Stats{Nodes: sr.nodes, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		// a truncated search must not read as certified
		return false, st, err
	}
	if sr.exhausted {
		return false, st, domain.ErrBudgetExceeded
	}
	return len(sr.found) == 1, st, nil
}

package generator

import (
	"context"
	"fmt"
	"time"

	"svw.info/puzzlefoundry/internal/domain"
	"svw.info/puzzlefoundry/internal/ports"
	"svw.info/puzzlefoundry/internal/rng"
)

// UniqueGenerator runs the synthesize-then-carve pipeline with a provided
// Solver doing the uniqueness certification.
type UniqueGenerator struct {
	Solver ports.Solver
}

// NewUnique wires a generator that uses the given solver for uniqueness
// checks.
func NewUnique(s ports.Solver) *UniqueGenerator {
	return &UniqueGenerator{Solver: s}
}

// Generate produces a carved puzzle with a certified unique solution for
// one seed. The whole attempt draws from a single stream constructed here,
// so (seed, family, size, difficulty) fully determines the output.
func (g *UniqueGenerator) Generate(ctx context.Context, seed int64, f domain.Family, size int, d domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	if f == domain.Pyramid {
		return nil, ports.Stats{}, fmt.Errorf("%w: %s is a dealt game family", domain.ErrUnknownFamily, f)
	}
	if !f.ValidSize(size) {
		return nil, ports.Stats{}, fmt.Errorf("%w: %s size %d", domain.ErrInvalidSize, f, size)
	}

	stream := rng.New(seed)
	sol, err := Synthesize(ctx, f, size, stream)
	if err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, err
	}
	givens, nodes, err := minimize(ctx, sol, d, stream, g.Solver)
	if err != nil {
		return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
	}

	p := &domain.Puzzle{
		Seed:       seed,
		Family:     f,
		Size:       size,
		Difficulty: d,
		Givens:     *givens,
		Solution:   *sol,
		Clues:      givens.Clues(),
		CreatedAt:  time.Now().UnixNano(),
	}
	return p, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

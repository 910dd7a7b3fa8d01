package generator

import (
	"context"
	"math"

	"svw.info/puzzlefoundry/internal/domain"
	"svw.info/puzzlefoundry/internal/ports"
	"svw.info/puzzlefoundry/internal/rng"
)

// targetClues converts a difficulty into the revealed-cell target.
func targetClues(d domain.Difficulty, n int) int {
	t := int(math.Ceil(d.RevealFraction() * float64(n*n)))
	if t < n {
		t = n
	}
	return t
}

// minimize carves a solved grid down toward the difficulty's clue target.
// It blanks cells along a seeded permutation until the target is reached,
// then re-certifies uniqueness; every failed check restores the most
// recently blanked cell and re-checks. Restoring is deterministic under the
// seed and terminates because the fully restored grid is trivially unique,
// so the output is always certified unique, at best-effort minimality.
// A budget-exceeded verdict from the solver counts as a failed check: an
// uncertain grid is never returned as certified.
func minimize(ctx context.Context, sol *domain.Grid, d domain.Difficulty, stream *rng.Stream, s ports.Solver) (*domain.Grid, int, error) {
	n := sol.Size
	work := sol.Clone()
	target := targetClues(d, n)

	type blanked struct {
		pos  int
		cell domain.Cell
	}
	var stack []blanked
	for _, pos := range stream.Perm(n * n) {
		if n*n-len(stack) <= target {
			break
		}
		r, c := pos/n, pos%n
		stack = append(stack, blanked{pos: pos, cell: work.Cells[r][c]})
		work.Cells[r][c] = domain.Cell{}
	}

	nodes := 0
	for {
		unique, st, err := s.Unique(ctx, work)
		nodes += st.Nodes
		if err != nil && ctx.Err() != nil {
			return nil, nodes, ctx.Err()
		}
		if unique && err == nil {
			return work, nodes, nil
		}
		if len(stack) == 0 {
			// full solution; Unique on zero unknowns is a direct validity
			// check, so reaching here means the synthesizer lied
			return nil, nodes, domain.ErrConstructionFailed
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		work.Cells[top.pos/n][top.pos%n] = top.cell
	}
}

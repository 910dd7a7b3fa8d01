// Package generator builds solved instances for each grid family and carves
// them into puzzles. Synthesis is two-phase: a structural construction that
// is correct by itself, then (for the orthogonal family) a secondary repair
// of the companion labeling. All randomness comes from the caller's stream
// so distinct seeds give distinct instances and the same seed always gives
// the same one.
package generator

import (
	"context"
	"fmt"

	"svw.info/puzzlefoundry/internal/domain"
	"svw.info/puzzlefoundry/internal/rng"
)

// relabelBudget bounds the backtracking companion-label repair.
const relabelBudget = 1 << 18

// Synthesize produces one fully assigned grid satisfying the family's
// constraint set.
func Synthesize(ctx context.Context, f domain.Family, n int, stream *rng.Stream) (*domain.Grid, error) {
	if !f.ValidSize(n) {
		return nil, fmt.Errorf("%w: %s size %d", domain.ErrInvalidSize, f, n)
	}
	switch f {
	case domain.Latin:
		return synthLatin(f, n, stream), nil
	case domain.Orthogonal:
		return synthOrthogonal(ctx, n, stream)
	case domain.Jigsaw:
		return synthJigsaw(ctx, n, stream)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownFamily, f)
	}
}

// baseValue is the structural construction: a cyclic-shift square, except
// order 4 where the XOR (Klein group) square is used because the cyclic
// square of order 4 admits no orthogonal companion.
func baseValue(n, r, c int) int {
	if n == 4 {
		return r ^ c
	}
	return (r + c) % n
}

// synthLatin builds a Latin square: cyclic base, then seeded symbol, row and
// column permutations. Each transform preserves the Latin property, so the
// result is correct by construction.
func synthLatin(f domain.Family, n int, stream *rng.Stream) *domain.Grid {
	sym := stream.Perm(n)
	rows := stream.Perm(n)
	cols := stream.Perm(n)
	g := domain.NewGrid(f, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			g.Cells[r][c].Value = uint8(sym[baseValue(n, rows[r], cols[c])]) + 1
		}
	}
	return g
}

// synthOrthogonal builds a Graeco-Latin square. The value square is built as
// in synthLatin; the companion labels are then attempted three ways, in
// order: the closed form (value+row+col) mod n, a bounded backtracking
// relabel, and a perturbed closed form. The perturbed form is not guaranteed
// valid, so its output is scanned eagerly and construction fails rather than
// leaking a defective grid downstream.
func synthOrthogonal(ctx context.Context, n int, stream *rng.Stream) (*domain.Grid, error) {
	g := synthLatin(domain.Orthogonal, n, stream)

	applyClosedForm(g, 0)
	if !duplicatePairs(g) {
		return g, nil
	}
	if relabel(ctx, g) {
		return g, nil
	}
	applyClosedForm(g, stream.Intn(n))
	if duplicatePairs(g) {
		return nil, fmt.Errorf("%w: no orthogonal companion for order %d value square", domain.ErrConstructionFailed, n)
	}
	return g, nil
}

// applyClosedForm assigns label = (value + row + col + offset) mod n.
func applyClosedForm(g *domain.Grid, offset int) {
	n := g.Size
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			g.Cells[r][c].Label = uint8((int(g.Cells[r][c].Value)+r+c+offset)%n) + 1
		}
	}
}

// duplicatePairs scans the whole grid for a repeated (value,label) tuple or
// a label repeated within a row or column.
func duplicatePairs(g *domain.Grid) bool {
	n := g.Size
	pairs := make([]bool, (n+1)*(n+1))
	rowLab := make([]uint16, n)
	colLab := make([]uint16, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cell := g.Cells[r][c]
			k := int(cell.Value)*(n+1) + int(cell.Label)
			bit := uint16(1) << cell.Label
			if pairs[k] || rowLab[r]&bit != 0 || colLab[c]&bit != 0 {
				return true
			}
			pairs[k] = true
			rowLab[r] |= bit
			colLab[c] |= bit
		}
	}
	return false
}

// relabel discards the labels and reassigns them by backtracking: row-major
// over cells, every label tried at each cell, a label admissible when free
// in its row and column and its (value,label) pair unused anywhere. Returns
// false when the budget runs out or no assignment exists.
func relabel(ctx context.Context, g *domain.Grid) bool {
	n := g.Size
	rowLab := make([]uint16, n)
	colLab := make([]uint16, n)
	pairs := make([]bool, (n+1)*(n+1))
	nodes := 0

	var dfs func(i int) bool
	dfs = func(i int) bool {
		if ctx.Err() != nil {
			return false
		}
		if i == n*n {
			return true
		}
		r, c := i/n, i%n
		v := g.Cells[r][c].Value
		for l := uint8(1); l <= uint8(n); l++ {
			nodes++
			if nodes > relabelBudget {
				return false
			}
			bit := uint16(1) << l
			k := int(v)*(n+1) + int(l)
			if rowLab[r]&bit != 0 || colLab[c]&bit != 0 || pairs[k] {
				continue
			}
			rowLab[r] |= bit
			colLab[c] |= bit
			pairs[k] = true
			g.Cells[r][c].Label = l
			if dfs(i + 1) {
				return true
			}
			rowLab[r] &^= bit
			colLab[c] &^= bit
			pairs[k] = false
			g.Cells[r][c].Label = 0
		}
		return false
	}
	return dfs(0)
}

package solver

import (
	"context"

	"svw.info/puzzlefoundry/internal/domain"
)

// DefaultBudget bounds the nodes one search invocation may expand. Grids are
// at most 7×7 so this is generous; exhausting it is reported as
// domain.ErrBudgetExceeded and callers treat that as a negative verdict.
const DefaultBudget = 1 << 20

// BacktrackingSolver is a straightforward recursive solver over unknown
// cells in row-major order.
type BacktrackingSolver struct {
	Budget int // max nodes per invocation; 0 means DefaultBudget
}

func NewBacktracking() *BacktrackingSolver { return &BacktrackingSolver{} }

func (s *BacktrackingSolver) budget() int {
	if s.Budget > 0 {
		return s.Budget
	}
	return DefaultBudget
}

// search carries the per-invocation working state: one mutable grid, line
// and region bitmasks, global pair usage, and the capped solution set.
// Nothing escapes the invocation, so concurrent attempts never share state.
type search struct {
	ctx    context.Context
	g      *domain.Grid
	n      int
	rowVal []uint16
	colVal []uint16
	rowLab []uint16
	colLab []uint16
	regVal []uint16
	pair   []bool

	nodes     int
	budget    int
	exhausted bool

	cap   int
	found []*domain.Grid
}

func newSearch(ctx context.Context, g *domain.Grid, solutionCap, budget int) *search {
	n := g.Size
	s := &search{
		ctx:    ctx,
		g:      g,
		n:      n,
		rowVal: make([]uint16, n),
		colVal: make([]uint16, n),
		cap:    solutionCap,
		budget: budget,
	}
	if g.Family == domain.Orthogonal {
		s.rowLab = make([]uint16, n)
		s.colLab = make([]uint16, n)
		s.pair = make([]bool, (n+1)*(n+1))
	}
	if g.Family == domain.Jigsaw {
		s.regVal = make([]uint16, n)
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if !g.Cells[r][c].Blank() {
				s.place(r, c, g.Cells[r][c])
			}
		}
	}
	return s
}

func (s *search) place(r, c int, cell domain.Cell) {
	s.rowVal[r] |= 1 << cell.Value
	s.colVal[c] |= 1 << cell.Value
	if s.rowLab != nil {
		s.rowLab[r] |= 1 << cell.Label
		s.colLab[c] |= 1 << cell.Label
		s.pair[s.pairKey(cell)] = true
	}
	if s.regVal != nil {
		s.regVal[s.g.Regions[r][c]] |= 1 << cell.Value
	}
}

func (s *search) unplace(r, c int, cell domain.Cell) {
	s.rowVal[r] &^= 1 << cell.Value
	s.colVal[c] &^= 1 << cell.Value
	if s.rowLab != nil {
		s.rowLab[r] &^= 1 << cell.Label
		s.colLab[c] &^= 1 << cell.Label
		s.pair[s.pairKey(cell)] = false
	}
	if s.regVal != nil {
		s.regVal[s.g.Regions[r][c]] &^= 1 << cell.Value
	}
}

func (s *search) pairKey(cell domain.Cell) int {
	return int(cell.Value)*(s.n+1) + int(cell.Label)
}

func (s *search) fits(r, c int, cell domain.Cell) bool {
	bit := uint16(1) << cell.Value
	if s.rowVal[r]&bit != 0 || s.colVal[c]&bit != 0 {
		return false
	}
	if s.regVal != nil && s.regVal[s.g.Regions[r][c]]&bit != 0 {
		return false
	}
	if s.rowLab != nil {
		lbit := uint16(1) << cell.Label
		if s.rowLab[r]&lbit != 0 || s.colLab[c]&lbit != 0 {
			return false
		}
		if s.pair[s.pairKey(cell)] {
			return false
		}
	}
	return true
}

// run explores unknown cells from flat index idx onward. It returns true
// when the search should stop: solution cap reached, budget exhausted, or
// context canceled.
func (s *search) run(idx int) bool {
	if s.ctx.Err() != nil {
		return true
	}
	r, c, ok := s.nextBlank(idx)
	if !ok {
		s.found = append(s.found, s.g.Clone())
		return len(s.found) >= s.cap
	}
	candidates := s.n
	if s.rowLab != nil {
		candidates = s.n * s.n
	}
	for k := 0; k < candidates; k++ {
		s.nodes++
		if s.nodes > s.budget {
			s.exhausted = true
			return true
		}
		cell := domain.Cell{Value: uint8(k%s.n) + 1}
		if s.rowLab != nil {
			cell.Label = uint8(k/s.n) + 1
		}
		if !s.fits(r, c, cell) {
			continue
		}
		s.g.Cells[r][c] = cell
		s.place(r, c, cell)
		stop := s.run(r*s.n + c + 1)
		s.unplace(r, c, cell)
		s.g.Cells[r][c] = domain.Cell{}
		if stop {
			return true
		}
	}
	return false
}

func (s *search) nextBlank(idx int) (int, int, bool) {
	for i := idx; i < s.n*s.n; i++ {
		r, c := i/s.n, i%s.n
		if s.g.Cells[r][c].Blank() {
			return r, c, true
		}
	}
	return 0, 0, false
}

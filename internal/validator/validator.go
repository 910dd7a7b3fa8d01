// Package validator implements the fast constraint checks for each grid
// family: row/column uniqueness per channel, global pair uniqueness for
// orthogonal squares, and region size/uniqueness/connectivity for jigsaw
// partitions. Blank cells never conflict.
package validator

import (
	"context"

	"github.com/katalvlaran/lvlath/gridgraph"

	"svw.info/puzzlefoundry/internal/domain"
)

type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

// Validate checks every constraint of g's family against the assigned cells
// and returns the coordinates of conflicting cells, if any.
func (v *FastValidator) Validate(ctx context.Context, g *domain.Grid) (bool, []domain.CellCoord, error) {
	if !g.Family.ValidSize(g.Size) {
		return false, nil, domain.ErrInvalidSize
	}
	conf := make([]domain.CellCoord, 0, 8)
	conf = appendLineConflicts(conf, g, valueOf)
	if g.Family == domain.Orthogonal {
		conf = appendLineConflicts(conf, g, labelOf)
		conf = appendPairConflicts(conf, g)
	}
	if g.Family == domain.Jigsaw {
		regionConf, err := regionConflicts(g)
		if err != nil {
			return false, nil, err
		}
		conf = append(conf, regionConf...)
	}
	return len(conf) == 0, conf, nil
}

func valueOf(c domain.Cell) uint8 { return c.Value }
func labelOf(c domain.Cell) uint8 { return c.Label }

// appendLineConflicts flags duplicates of one channel within rows and
// columns, using a bitmask per line.
func appendLineConflicts(conf []domain.CellCoord, g *domain.Grid, ch func(domain.Cell) uint8) []domain.CellCoord {
	n := g.Size
	for r := 0; r < n; r++ {
		m := 0
		for c := 0; c < n; c++ {
			x := ch(g.Cells[r][c])
			if x == 0 {
				continue
			}
			bit := 1 << x
			if m&bit != 0 {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			m |= bit
		}
	}
	for c := 0; c < n; c++ {
		m := 0
		for r := 0; r < n; r++ {
			x := ch(g.Cells[r][c])
			if x == 0 {
				continue
			}
			bit := 1 << x
			if m&bit != 0 {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			m |= bit
		}
	}
	return conf
}

// appendPairConflicts flags (value,label) tuples seen on more than one cell.
// This is the global check that makes two interleaved Latin squares
// orthogonal; a per-line scan cannot catch it.
func appendPairConflicts(conf []domain.CellCoord, g *domain.Grid) []domain.CellCoord {
	n := g.Size
	seen := make([]bool, (n+1)*(n+1))
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cell := g.Cells[r][c]
			if cell.Value == 0 || cell.Label == 0 {
				continue
			}
			k := int(cell.Value)*(n+1) + int(cell.Label)
			if seen[k] {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			seen[k] = true
		}
	}
	return conf
}

// regionConflicts validates the jigsaw partition (n regions of n cells, each
// orthogonally connected) and value uniqueness inside every region.
// Connectivity reuses gridgraph's component scan over a 0/1 mask per region.
func regionConflicts(g *domain.Grid) ([]domain.CellCoord, error) {
	n := g.Size
	if g.Regions == nil {
		return nil, domain.ErrInvalidSize
	}
	var conf []domain.CellCoord
	sizes := make([]int, n)
	masks := make([]int, n) // value bitmask per region
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			reg := int(g.Regions[r][c])
			if reg >= n {
				return nil, domain.ErrInvalidSize
			}
			sizes[reg]++
			v := g.Cells[r][c].Value
			if v == 0 {
				continue
			}
			bit := 1 << v
			if masks[reg]&bit != 0 {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			masks[reg] |= bit
		}
	}
	for reg := 0; reg < n; reg++ {
		if sizes[reg] != n {
			return nil, domain.ErrInvalidSize
		}
		ok, err := regionConnected(g, uint8(reg))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrInvalidSize
		}
	}
	return conf, nil
}

func regionConnected(g *domain.Grid, reg uint8) (bool, error) {
	n := g.Size
	mask := make([][]int, n)
	for r := 0; r < n; r++ {
		mask[r] = make([]int, n)
		for c := 0; c < n; c++ {
			if g.Regions[r][c] == reg {
				mask[r][c] = 1
			}
		}
	}
	gg, err := gridgraph.NewGridGraph(mask, gridgraph.DefaultGridOptions())
	if err != nil {
		return false, err
	}
	return len(gg.ConnectedComponents()) == 1, nil
}

package generator

import (
	"context"
	"fmt"

	"svw.info/puzzlefoundry/internal/domain"
	"svw.info/puzzlefoundry/internal/rng"
)

// partitionAttempts bounds how many times one seed may retry the region
// layout before synthesis gives up. Some partitions admit no Latin filling,
// so growth and fill are retried together.
const partitionAttempts = 100

const unassigned = 0xFF

// synthJigsaw lays out n connected regions of n cells by spanning-tree
// frontier growth, then fills values by backtracking under row, column and
// region uniqueness. Either step can dead-end on an unlucky draw; the pair
// is retried a bounded number of times before reporting construction
// failure for this seed.
func synthJigsaw(ctx context.Context, n int, stream *rng.Stream) (*domain.Grid, error) {
	for attempt := 0; attempt < partitionAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		regions, ok := growRegions(n, stream)
		if !ok {
			continue
		}
		g := domain.NewGrid(domain.Jigsaw, n)
		g.Regions = regions
		if fillValues(ctx, g, stream) {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: no fillable %d-region layout", domain.ErrConstructionFailed, n)
}

// growRegions grows one region at a time: a random unassigned start cell,
// then repeated random picks from the region's unassigned orthogonal
// frontier until the region holds n cells. An empty frontier means the
// remaining free cells got pinched off; the whole layout is abandoned.
func growRegions(n int, stream *rng.Stream) ([][]uint8, bool) {
	regions := make([][]uint8, n)
	for r := range regions {
		regions[r] = make([]uint8, n)
		for c := range regions[r] {
			regions[r][c] = unassigned
		}
	}
	free := n * n
	for reg := 0; reg < n; reg++ {
		start, ok := pickFree(regions, n, free, stream)
		if !ok {
			return nil, false
		}
		regions[start.Row][start.Col] = uint8(reg)
		free--
		members := []domain.CellCoord{start}
		for len(members) < n {
			frontier := frontierOf(regions, n, members)
			if len(frontier) == 0 {
				return nil, false
			}
			next := frontier[stream.Intn(len(frontier))]
			regions[next.Row][next.Col] = uint8(reg)
			free--
			members = append(members, next)
		}
	}
	return regions, true
}

func pickFree(regions [][]uint8, n, free int, stream *rng.Stream) (domain.CellCoord, bool) {
	if free == 0 {
		return domain.CellCoord{}, false
	}
	k := stream.Intn(free)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if regions[r][c] != unassigned {
				continue
			}
			if k == 0 {
				return domain.CellCoord{Row: r, Col: c}, true
			}
			k--
		}
	}
	return domain.CellCoord{}, false
}

var orthoOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func frontierOf(regions [][]uint8, n int, members []domain.CellCoord) []domain.CellCoord {
	var out []domain.CellCoord
	seen := make(map[domain.CellCoord]bool)
	for _, m := range members {
		for _, d := range orthoOffsets {
			r, c := m.Row+d[0], m.Col+d[1]
			if r < 0 || r >= n || c < 0 || c >= n || regions[r][c] != unassigned {
				continue
			}
			cc := domain.CellCoord{Row: r, Col: c}
			if !seen[cc] {
				seen[cc] = true
				out = append(out, cc)
			}
		}
	}
	return out
}

// fillValues completes the empty grid with a Latin filling respecting the
// region partition, trying values in a per-cell shuffled order so the seed
// drives which of the admissible fillings comes out.
func fillValues(ctx context.Context, g *domain.Grid, stream *rng.Stream) bool {
	n := g.Size
	rowMask := make([]uint16, n)
	colMask := make([]uint16, n)
	regMask := make([]uint16, n)
	vals := make([]uint8, n)
	for i := range vals {
		vals[i] = uint8(i) + 1
	}

	var dfs func(i int) bool
	dfs = func(i int) bool {
		if ctx.Err() != nil {
			return false
		}
		if i == n*n {
			return true
		}
		r, c := i/n, i%n
		reg := g.Regions[r][c]
		order := append([]uint8(nil), vals...)
		stream.Shuffle(n, func(a, b int) { order[a], order[b] = order[b], order[a] })
		for _, v := range order {
			bit := uint16(1) << v
			if rowMask[r]&bit != 0 || colMask[c]&bit != 0 || regMask[reg]&bit != 0 {
				continue
			}
			rowMask[r] |= bit
			colMask[c] |= bit
			regMask[reg] |= bit
			g.Cells[r][c].Value = v
			if dfs(i + 1) {
				return true
			}
			rowMask[r] &^= bit
			colMask[c] &^= bit
			regMask[reg] &^= bit
			g.Cells[r][c].Value = 0
		}
		return false
	}
	return dfs(0)
}

package domain

// Cell holds one grid position. Value 0 means blank; Label is 0 for
// families without a second channel.
type Cell struct {
	Value uint8 `json:"v"`
	Label uint8 `json:"l,omitempty"`
}

// Blank reports whether the cell carries no assignment.
func (c Cell) Blank() bool { return c.Value == 0 }

// Grid is an n×n board for one puzzle family. Regions is set only for
// families with irregular region constraints; Regions[r][c] is the region
// index of cell (r,c) and the partition is fixed for the grid's lifetime.
type Grid struct {
	Family  Family    `json:"family"`
	Size    int       `json:"size"`
	Cells   [][]Cell  `json:"cells"`
	Regions [][]uint8 `json:"regions,omitempty"`
}

// NewGrid allocates a blank n×n grid for the given family.
func NewGrid(f Family, n int) *Grid {
	cells := make([][]Cell, n)
	for r := range cells {
		cells[r] = make([]Cell, n)
	}
	return &Grid{Family: f, Size: n, Cells: cells}
}

// Clone deep-copies the grid so searches can mutate a working copy.
func (g *Grid) Clone() *Grid {
	cp := &Grid{Family: g.Family, Size: g.Size}
	cp.Cells = make([][]Cell, g.Size)
	for r := range g.Cells {
		cp.Cells[r] = append([]Cell(nil), g.Cells[r]...)
	}
	if g.Regions != nil {
		cp.Regions = make([][]uint8, g.Size)
		for r := range g.Regions {
			cp.Regions[r] = append([]uint8(nil), g.Regions[r]...)
		}
	}
	return cp
}

// Clues counts the revealed (non-blank) cells.
func (g *Grid) Clues() int {
	n := 0
	for r := range g.Cells {
		for c := range g.Cells[r] {
			if !g.Cells[r][c].Blank() {
				n++
			}
		}
	}
	return n
}

// CellCoord identifies a cell on the grid.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Puzzle is a persisted instance with full provenance: the carved grid, its
// unique solution, and the seed that reproduces both.
type Puzzle struct {
	ID         string     `json:"id,omitempty"`
	Seed       int64      `json:"seed"`
	Family     Family     `json:"family"`
	Size       int        `json:"size"`
	Difficulty Difficulty `json:"difficulty"`
	Givens     Grid       `json:"givens"`
	Solution   Grid       `json:"solution"`
	Clues      int        `json:"clues"`
	CreatedAt  int64      `json:"createdAt,omitempty"`
}

// Deal is a persisted card-game instance. Cards holds all 52 card codes in
// deal order: the first 28 fill the pyramid row by row, the rest form the
// ordered reserve.
type Deal struct {
	ID        string   `json:"id,omitempty"`
	Seed      int64    `json:"seed"`
	Cards     []string `json:"cards"`
	Solvable  bool     `json:"solvable"`
	States    int      `json:"states,omitempty"`
	CreatedAt int64    `json:"createdAt,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID         string     `json:"id"`
	Family     Family     `json:"family"`
	Size       int        `json:"size"`
	Difficulty Difficulty `json:"difficulty"`
	Seed       int64      `json:"seed"`
	CreatedAt  int64      `json:"createdAt"`
}

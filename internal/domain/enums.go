package domain

import "fmt"

// Family selects a puzzle/game type: its grid shape, value domain(s) and
// constraint set.
type Family int

const (
	// Latin is a plain n×n Latin square (row/column value uniqueness).
	Latin Family = iota
	// Orthogonal is a Graeco-Latin square: value and label channels, each
	// Latin, with every (value,label) pair appearing exactly once.
	Orthogonal
	// Jigsaw is a Latin square over n irregular connected regions of n
	// cells each; values unique per row, column and region.
	Jigsaw
	// Pyramid is the card-elimination game family (dealt, not carved).
	Pyramid
)

func (f Family) String() string {
	switch f {
	case Latin:
		return "latin"
	case Orthogonal:
		return "orthogonal"
	case Jigsaw:
		return "jigsaw"
	case Pyramid:
		return "pyramid"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// ParseFamily maps a CLI/config name to a Family.
func ParseFamily(s string) (Family, error) {
	switch s {
	case "latin":
		return Latin, nil
	case "orthogonal":
		return Orthogonal, nil
	case "jigsaw":
		return Jigsaw, nil
	case "pyramid":
		return Pyramid, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, s)
	}
}

// Grid size bounds shared by all grid families. Searches are exponential in
// blank cells, so anything past 7 is out of contract.
const (
	MinSize = 2
	MaxSize = 7
)

// ValidSize reports whether n is a defined size for the family. No
// Graeco-Latin square exists for orders 2 and 6 (Euler), so the orthogonal
// family rejects both.
func (f Family) ValidSize(n int) bool {
	switch f {
	case Latin, Jigsaw:
		return n >= MinSize && n <= MaxSize
	case Orthogonal:
		return n >= 3 && n <= MaxSize && n != 6
	case Pyramid:
		return true // dealt from a fixed 52-card deck; size is ignored
	default:
		return false
	}
}

// Difficulty labels the target clue density for carved puzzles.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	default:
		return "medium"
	}
}

// ParseDifficulty maps a CLI/config name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	case "expert":
		return Expert, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", s)
	}
}

// RevealFraction is the share of cells left revealed at each difficulty.
func (d Difficulty) RevealFraction() float64 {
	switch d {
	case Easy:
		return 0.50
	case Hard:
		return 0.25
	case Expert:
		return 0.20
	default:
		return 0.35 // Medium
	}
}

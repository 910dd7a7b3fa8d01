package ports

import (
	"context"
	"time"

	"svw.info/puzzlefoundry/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Solver completes partial grids and certifies uniqueness. Unique reports
// whether exactly one completion exists; implementations cap the search at
// two solutions and never enumerate further.
type Solver interface {
	Solve(ctx context.Context, g *domain.Grid) (*domain.Grid, Stats, error)
	Unique(ctx context.Context, g *domain.Grid) (bool, Stats, error)
}

// Generator runs the full synthesize-then-carve pipeline for one seed.
type Generator interface {
	Generate(ctx context.Context, seed int64, f domain.Family, size int, d domain.Difficulty) (*domain.Puzzle, Stats, error)
}

// Validator performs fast constraint checks for a grid's family.
type Validator interface {
	Validate(ctx context.Context, g *domain.Grid) (ok bool, conflicts []domain.CellCoord, err error)
}

// Dealer deals a game-family instance and decides full solvability.
type Dealer interface {
	Deal(ctx context.Context, seed int64) (*domain.Deal, Stats, error)
}

// Storage persists accepted instances. The engine never touches files
// directly; the curation driver hands accepted instances across this
// boundary.
type Storage interface {
	SavePuzzle(ctx context.Context, p *domain.Puzzle) error
	SaveDeal(ctx context.Context, d *domain.Deal) error
	LoadPuzzle(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}

package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"svw.info/puzzlefoundry/internal/domain"
	"svw.info/puzzlefoundry/internal/solver"
)

func TestGenerateDeterministic(t *testing.T) {
	ctx := context.Background()
	g := NewUnique(solver.NewBacktracking())
	a, _, err := g.Generate(ctx, 42, domain.Latin, 5, domain.Medium)
	require.NoError(t, err)
	b, _, err := g.Generate(ctx, 42, domain.Latin, 5, domain.Medium)
	require.NoError(t, err)
	require.Equal(t, a.Givens, b.Givens)
	require.Equal(t, a.Solution, b.Solution)
	require.Equal(t, a.Clues, b.Clues)
}

func TestGeneratePuzzleConsistency(t *testing.T) {
	ctx := context.Background()
	g := NewUnique(solver.NewBacktracking())
	for _, f := range []domain.Family{domain.Latin, domain.Orthogonal, domain.Jigsaw} {
		p, _, err := g.Generate(ctx, 7, f, 4, domain.Medium)
		require.NoError(t, err, "%s", f)
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				if !p.Givens.Cells[r][c].Blank() {
					require.Equal(t, p.Solution.Cells[r][c], p.Givens.Cells[r][c],
						"%s clue (%d,%d) disagrees with solution", f, r, c)
				}
			}
		}
		require.Equal(t, p.Givens.Clues(), p.Clues)
	}
}

func TestGenerateCertifiedUnique(t *testing.T) {
	ctx := context.Background()
	s := solver.NewBacktracking()
	g := NewUnique(s)
	p, _, err := g.Generate(ctx, 99, domain.Latin, 5, domain.Hard)
	require.NoError(t, err)
	unique, _, err := s.Unique(ctx, &p.Givens)
	require.NoError(t, err)
	require.True(t, unique, "minimizer output must be certified unique")
}

func TestMinimizerClueFloorAndOrdering(t *testing.T) {
	ctx := context.Background()
	g := NewUnique(solver.NewBacktracking())

	easy, _, err := g.Generate(ctx, 5, domain.Latin, 5, domain.Easy)
	require.NoError(t, err)
	expert, _, err := g.Generate(ctx, 5, domain.Latin, 5, domain.Expert)
	require.NoError(t, err)

	// the restore-until-certified policy only ever adds clues back, so the
	// difficulty target is a floor
	require.GreaterOrEqual(t, easy.Clues, targetClues(domain.Easy, 5))
	require.GreaterOrEqual(t, expert.Clues, targetClues(domain.Expert, 5))

	// same seed blanks along the same permutation, so a harder target can
	// never end up with more clues than an easier one
	require.LessOrEqual(t, expert.Clues, easy.Clues)
}

func TestGenerateMediumOrthogonalScenario(t *testing.T) {
	// seed 12345, 4×4 orthogonal, medium: every (value,label) pair appears
	// exactly once in the solution and roughly 35% of the 16 cells stay
	// revealed, with uniqueness certified
	ctx := context.Background()
	s := solver.NewBacktracking()
	g := NewUnique(s)
	p, _, err := g.Generate(ctx, 12345, domain.Orthogonal, 4, domain.Medium)
	require.NoError(t, err)

	pairs := make(map[domain.Cell]bool)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			pairs[p.Solution.Cells[r][c]] = true
		}
	}
	require.Len(t, pairs, 16)

	require.GreaterOrEqual(t, p.Clues, 6) // ceil(0.35 * 16)
	unique, _, err := s.Unique(ctx, &p.Givens)
	require.NoError(t, err)
	require.True(t, unique)
}

func TestGenerateRejectsMisconfiguration(t *testing.T) {
	ctx := context.Background()
	g := NewUnique(solver.NewBacktracking())
	_, _, err := g.Generate(ctx, 1, domain.Orthogonal, 6, domain.Medium)
	require.ErrorIs(t, err, domain.ErrInvalidSize)
	_, _, err = g.Generate(ctx, 1, domain.Pyramid, 5, domain.Medium)
	require.ErrorIs(t, err, domain.ErrUnknownFamily)
}

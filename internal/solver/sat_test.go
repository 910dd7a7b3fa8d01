package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"svw.info/puzzlefoundry/internal/domain"
	"svw.info/puzzlefoundry/internal/generator"
	"svw.info/puzzlefoundry/internal/rng"
)

func TestSATAgreesWithBacktracking(t *testing.T) {
	ctx := context.Background()
	bt := NewBacktracking()
	sat := NewSAT()

	for seed := int64(1); seed <= 5; seed++ {
		stream := rng.New(seed)
		sol, err := generator.Synthesize(ctx, domain.Latin, 4, stream)
		require.NoError(t, err)

		// blank a growing prefix of a seeded permutation and compare
		// verdicts at every step
		work := sol.Clone()
		for _, pos := range stream.Perm(16)[:10] {
			work.Cells[pos/4][pos%4] = domain.Cell{}
			wantUnique, _, err := bt.Unique(ctx, work)
			require.NoError(t, err)
			gotUnique, _, err := sat.Unique(ctx, work)
			require.NoError(t, err)
			require.Equal(t, wantUnique, gotUnique, "seed %d backends disagree", seed)
		}
	}
}

func TestSATSolveJigsaw(t *testing.T) {
	ctx := context.Background()
	stream := rng.New(3)
	sol, err := generator.Synthesize(ctx, domain.Jigsaw, 4, stream)
	require.NoError(t, err)

	work := sol.Clone()
	work.Cells[0][0] = domain.Cell{}
	work.Cells[2][3] = domain.Cell{}

	out, _, err := NewSAT().Solve(ctx, work)
	require.NoError(t, err)
	require.Equal(t, sol.Cells, out.Cells)
}

func TestSATUniqueFullyBlank(t *testing.T) {
	g := domain.NewGrid(domain.Latin, 4)
	unique, _, err := NewSAT().Unique(context.Background(), g)
	require.NoError(t, err)
	require.False(t, unique)
}

func TestSATRejectsOrthogonal(t *testing.T) {
	g := domain.NewGrid(domain.Orthogonal, 4)
	_, _, err := NewSAT().Unique(context.Background(), g)
	require.ErrorIs(t, err, domain.ErrUnsupportedBackend)
	_, _, err = NewSAT().Solve(context.Background(), g)
	require.ErrorIs(t, err, domain.ErrUnsupportedBackend)
}

package curate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"svw.info/puzzlefoundry/internal/domain"
	"svw.info/puzzlefoundry/internal/generator"
	"svw.info/puzzlefoundry/internal/ports"
	"svw.info/puzzlefoundry/internal/solver"
)

// memStore collects accepted instances in memory, in acceptance order.
type memStore struct {
	puzzles []*domain.Puzzle
	deals   []*domain.Deal
}

func (m *memStore) SavePuzzle(ctx context.Context, p *domain.Puzzle) error {
	m.puzzles = append(m.puzzles, p)
	return nil
}

func (m *memStore) SaveDeal(ctx context.Context, d *domain.Deal) error {
	m.deals = append(m.deals, d)
	return nil
}

func (m *memStore) LoadPuzzle(ctx context.Context, id string) (*domain.Puzzle, error) {
	return nil, nil
}

func (m *memStore) List(ctx context.Context) ([]domain.PuzzleMeta, error) { return nil, nil }

// fakeDealer marks even seeds solvable so the skip path gets exercised
// without running the real search.
type fakeDealer struct{}

func (fakeDealer) Deal(ctx context.Context, seed int64) (*domain.Deal, ports.Stats, error) {
	return &domain.Deal{Seed: seed, Solvable: seed%2 == 0}, ports.Stats{}, nil
}

func newTestDriver(st ports.Storage) *Driver {
	g := generator.NewUnique(solver.NewBacktracking())
	return New(g, fakeDealer{}, st, nil)
}

func TestRunAccumulatesToTarget(t *testing.T) {
	st := &memStore{}
	d := newTestDriver(st)
	res, err := d.Run(context.Background(), Options{
		Family:     domain.Latin,
		Size:       4,
		Difficulty: domain.Medium,
		StartSeed:  1,
		Count:      3,
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.Accepted)
	require.Len(t, st.puzzles, 3)
	for _, p := range st.puzzles {
		require.NotEmpty(t, p.ID)
		require.Equal(t, domain.Latin, p.Family)
	}
}

func TestRunReproducibleSeedWalk(t *testing.T) {
	run := func() []int64 {
		st := &memStore{}
		_, err := newTestDriver(st).Run(context.Background(), Options{
			Family:     domain.Latin,
			Size:       4,
			Difficulty: domain.Hard,
			StartSeed:  100,
			Count:      4,
		})
		require.NoError(t, err)
		seeds := make([]int64, 0, len(st.puzzles))
		for _, p := range st.puzzles {
			seeds = append(seeds, p.Seed)
		}
		return seeds
	}
	require.Equal(t, run(), run(), "same start seed must accept the same set")
}

func TestRunSkipsUnsolvableDeals(t *testing.T) {
	st := &memStore{}
	res, err := newTestDriver(st).Run(context.Background(), Options{
		Family:    domain.Pyramid,
		StartSeed: 1,
		Count:     3,
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.Accepted)
	require.Len(t, st.deals, 3)
	// odd seeds were rejected, so attempts outnumber acceptances
	require.Greater(t, res.Attempts, res.Accepted)
	for _, deal := range st.deals {
		require.True(t, deal.Solvable)
		require.Zero(t, deal.Seed%2)
	}
}

func TestRunMisconfigurationFailsLoudly(t *testing.T) {
	st := &memStore{}
	_, err := newTestDriver(st).Run(context.Background(), Options{
		Family:     domain.Orthogonal,
		Size:       6,
		Difficulty: domain.Medium,
		StartSeed:  1,
		Count:      1,
	})
	require.ErrorIs(t, err, domain.ErrInvalidSize)
	require.Empty(t, st.puzzles)
}

func TestRunRespectsAttemptBudget(t *testing.T) {
	// a dealer that never accepts: the run must stop at MaxAttempts
	st := &memStore{}
	d := New(nil, rejectingDealer{}, st, nil)
	res, err := d.Run(context.Background(), Options{
		Family:      domain.Pyramid,
		StartSeed:   1,
		Count:       5,
		MaxAttempts: 10,
	})
	require.NoError(t, err)
	require.Zero(t, res.Accepted)
	require.Equal(t, 10, res.Attempts)
}

type rejectingDealer struct{}

func (rejectingDealer) Deal(ctx context.Context, seed int64) (*domain.Deal, ports.Stats, error) {
	return &domain.Deal{Seed: seed, Solvable: false}, ports.Stats{}, nil
}

package pyramid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChildren(t *testing.T) {
	// apex is covered by the two cards of row 1
	a, b, ok := children(0)
	require.True(t, ok)
	require.Equal(t, 1, a)
	require.Equal(t, 2, b)

	// last card of row 5 (position 20)
	a, b, ok = children(20)
	require.True(t, ok)
	require.Equal(t, 26, a)
	require.Equal(t, 27, b)

	// bottom row has no covering cards
	for p := 21; p < pyramidCards; p++ {
		_, _, ok := children(p)
		require.False(t, ok, "position %d", p)
	}
}

func TestRankOf(t *testing.T) {
	require.Equal(t, uint8(1), rankOf("AH"))
	require.Equal(t, uint8(10), rankOf("TD"))
	require.Equal(t, uint8(13), rankOf("KS"))
}

func TestDealShufflesFullDeck(t *testing.T) {
	deal, _, err := New().Deal(context.Background(), 1000001)
	require.NoError(t, err)
	require.Len(t, deal.Cards, 52)
	seen := make(map[string]bool)
	for _, c := range deal.Cards {
		require.False(t, seen[c], "card %s dealt twice", c)
		seen[c] = true
	}
}

func TestDealDeterministic(t *testing.T) {
	a, _, err := New().Deal(context.Background(), 777)
	require.NoError(t, err)
	b, _, err := New().Deal(context.Background(), 777)
	require.NoError(t, err)
	require.Equal(t, a.Cards, b.Cards)
	require.Equal(t, a.Solvable, b.Solvable)
	require.Equal(t, a.States, b.States)
}

func allRanks(v uint8) [52]uint8 {
	var r [52]uint8
	for i := range r {
		r[i] = v
	}
	return r
}

func TestWinnableAllKings(t *testing.T) {
	s := &searcher{
		ctx:   context.Background(),
		ranks: allRanks(kingRank),
		memo:  make(map[uint64]bool),
		cap:   DefaultDepthCap,
	}
	require.True(t, s.winnable(1<<pyramidCards-1, 0, 0))
}

func TestUnwinnableMemoBoundedByStates(t *testing.T) {
	// aces everywhere: no kings, no pair sums to 13, so the only moves are
	// reserve advances. The pyramid mask never changes, so the search can
	// visit at most one state per reserve pointer value.
	s := &searcher{
		ctx:   context.Background(),
		ranks: allRanks(1),
		memo:  make(map[uint64]bool),
		cap:   DefaultDepthCap,
	}
	require.False(t, s.winnable(1<<pyramidCards-1, 0, 0))
	require.LessOrEqual(t, len(s.memo), reserveCards+1,
		"memo grew beyond the distinct reachable states")
}

func TestDepthCapIsNegativeVerdict(t *testing.T) {
	d := &Dealer{DepthCap: 1}
	deal, _, err := d.Deal(context.Background(), 777)
	require.NoError(t, err)
	require.False(t, deal.Solvable, "a capped search must not read as solvable")
}

func TestMemoHitsAcrossMoveOrders(t *testing.T) {
	// two sixes and two sevens exposed on the bottom row pair up in either
	// order; both orders funnel into the same remaining-mask state
	ranks := allRanks(1)
	// positions 21..27 form the bottom row
	ranks[21], ranks[22] = 6, 7
	ranks[23], ranks[24] = 6, 7
	s := &searcher{
		ctx:   context.Background(),
		ranks: ranks,
		memo:  make(map[uint64]bool),
		cap:   DefaultDepthCap,
	}
	require.False(t, s.winnable(1<<pyramidCards-1, 0, 0))
	// every memo key must be a distinct encoding; re-running is pure
	before := len(s.memo)
	require.False(t, s.winnable(1<<pyramidCards-1, 0, 0))
	require.Equal(t, before, len(s.memo))
}

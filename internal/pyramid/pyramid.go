// Package pyramid deals and solves the card-elimination game family: 28
// cards in a seven-row pyramid, 24 in an ordered reserve. Exposed kings
// leave alone, two exposed cards leave together when their ranks sum to 13,
// and the reserve pointer only ever advances. A deal is accepted into a
// dataset only when the search proves the pyramid can be fully cleared.
package pyramid

import (
	"context"
	"time"

	"svw.info/puzzlefoundry/internal/domain"
	"svw.info/puzzlefoundry/internal/ports"
	"svw.info/puzzlefoundry/internal/rng"
)

const (
	pyramidCards = 28
	reserveCards = 24
	kingRank     = 13
	pairSum      = 13

	// DefaultDepthCap bounds the search ply as a safety net against
	// pathological deals; exceeding it is a "not solvable" verdict, not an
	// error.
	DefaultDepthCap = 256
)

const (
	ranksStr = "A23456789TJQK"
	suitsStr = "HDCS"
)

// newDeck returns the 52 card codes in canonical order (suit-major, ace
// low), e.g. "AH", "2H", ... "KS".
func newDeck() []string {
	deck := make([]string, 0, 52)
	for _, s := range suitsStr {
		for _, r := range ranksStr {
			deck = append(deck, string(r)+string(s))
		}
	}
	return deck
}

// rankOf maps a card code to its rank 1..13.
func rankOf(code string) uint8 {
	for i := 0; i < len(ranksStr); i++ {
		if ranksStr[i] == code[0] {
			return uint8(i) + 1
		}
	}
	return 0
}

// children returns the two covering positions of pyramid position p, or
// ok=false for the bottom row. Row r occupies positions r(r+1)/2 through
// r(r+1)/2+r.
func children(p int) (int, int, bool) {
	r := 0
	for (r+1)*(r+2)/2 <= p {
		r++
	}
	if r == 6 {
		return 0, 0, false
	}
	i := p - r*(r+1)/2
	base := (r + 1) * (r + 2) / 2
	return base + i, base + i + 1, true
}

// Dealer deals instances and decides their full solvability.
type Dealer struct {
	DepthCap int // 0 means DefaultDepthCap
}

func New() *Dealer { return &Dealer{} }

func (d *Dealer) depthCap() int {
	if d.DepthCap > 0 {
		return d.DepthCap
	}
	return DefaultDepthCap
}

// Deal shuffles a deck from the seed, lays out the pyramid and reserve, and
// runs the solvability search. Stats.Nodes reports the number of distinct
// states visited.
func (d *Dealer) Deal(ctx context.Context, seed int64) (*domain.Deal, ports.Stats, error) {
	start := time.Now()
	stream := rng.New(seed)
	deck := newDeck()
	stream.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	var ranks [52]uint8
	for i, code := range deck {
		ranks[i] = rankOf(code)
	}
	s := &searcher{
		ctx:   ctx,
		ranks: ranks,
		memo:  make(map[uint64]bool),
		cap:   d.depthCap(),
	}
	solvable := s.winnable(1<<pyramidCards-1, 0, 0)
	deal := &domain.Deal{
		Seed:      seed,
		Cards:     deck,
		Solvable:  solvable,
		States:    len(s.memo),
		CreatedAt: time.Now().UnixNano(),
	}
	return deal, ports.Stats{Nodes: len(s.memo), Duration: time.Since(start)}, nil
}

// searcher owns the per-deal state: the fixed rank layout and the memo
// table. Memo keys encode only (remaining mask, reserve pointer), so
// structurally identical states reached by different move orders resolve in
// one lookup. A verdict reached under the depth cap is memoized as negative
// by policy.
type searcher struct {
	ctx   context.Context
	ranks [52]uint8
	memo  map[uint64]bool
	cap   int
}

func (s *searcher) exposed(mask uint32) []int {
	var out []int
	for p := 0; p < pyramidCards; p++ {
		if mask&(1<<p) == 0 {
			continue
		}
		a, b, ok := children(p)
		if !ok || (mask&(1<<a) == 0 && mask&(1<<b) == 0) {
			out = append(out, p)
		}
	}
	return out
}

func (s *searcher) winnable(mask uint32, ptr, depth int) bool {
	if mask == 0 {
		return true
	}
	if depth > s.cap || s.ctx.Err() != nil {
		return false
	}
	key := uint64(mask) | uint64(ptr)<<32
	if v, ok := s.memo[key]; ok {
		return v
	}

	result := false
	open := s.exposed(mask)

	// exposed kings leave alone
	for _, p := range open {
		if s.ranks[p] == kingRank {
			if s.winnable(mask&^(1<<p), ptr, depth+1) {
				result = true
			}
			break // removing a king is never wrong; no need to branch further
		}
	}
	// exposed pyramid pairs
	if !result {
		for i := 0; i < len(open) && !result; i++ {
			for j := i + 1; j < len(open) && !result; j++ {
				if s.ranks[open[i]]+s.ranks[open[j]] == pairSum {
					next := mask &^ (1 << open[i]) &^ (1 << open[j])
					result = s.winnable(next, ptr, depth+1)
				}
			}
		}
	}
	// moves consuming the current reserve card
	if !result && ptr < reserveCards {
		reserve := s.ranks[pyramidCards+ptr]
		if reserve == kingRank {
			result = s.winnable(mask, ptr+1, depth+1)
		}
		for i := 0; i < len(open) && !result; i++ {
			if s.ranks[open[i]]+reserve == pairSum {
				result = s.winnable(mask&^(1<<open[i]), ptr+1, depth+1)
			}
		}
		// or skip it
		if !result {
			result = s.winnable(mask, ptr+1, depth+1)
		}
	}

	s.memo[key] = result
	return result
}

// Package search implements the negamax alpha-beta search with
// transposition table, book probing and MTD-style null-window root
// driver specified in spec.md §4.4.
//
// Grounded on the teacher's internal/engine/search.go Searcher: a
// struct that owns a position, a TT handle and a move orderer, with
// Reset()/Search() entry points and a recursive negamax(depth, ply,
// alpha, beta) core. Fourengine's Searcher keeps that shape but has no
// depth parameter (the solver always searches to a terminal result,
// never a fixed horizon) and no quiescence search (every Connect-4
// position is either immediately terminal-checked or expanded in
// full — there is no tactical horizon to extend past).
package search

import (
	"github.com/hailam/fourengine/internal/book"
	"github.com/hailam/fourengine/internal/ordering"
	"github.com/hailam/fourengine/internal/position"
	"github.com/hailam/fourengine/internal/tt"
)

// Searcher performs the exact Connect-4 solve for a single Position.
// Not safe for concurrent use — the core is single-threaded by design
// (spec.md §5); an Engine wanting parallel solves must use one
// Searcher (and one TT) per goroutine.
type Searcher struct {
	table *tt.Table
	book  *book.Book
	nodes uint64
}

// New creates a Searcher backed by table. table may be shared across
// solves of related positions (spec.md §4.6: "the TT retains useful
// entries between solves").
func New(table *tt.Table) *Searcher {
	return &Searcher{table: table}
}

// SetBook installs (or clears, with nil) the opening book consulted at
// shallow plies.
func (s *Searcher) SetBook(b *book.Book) {
	s.book = b
}

// WorkCount returns the number of internal search() calls made by the
// most recent Solve.
func (s *Searcher) WorkCount() uint64 {
	return s.nodes
}

// Solve returns the exact game-theoretic score of p from the side to
// move's perspective, using the MTD-style null-window bisection driver
// of spec.md §4.4.
func (s *Searcher) Solve(p position.Position) int {
	s.nodes = 0

	if p.IsDraw() {
		return 0
	}
	ply := p.Ply()

	lo := -lossScoreMagnitude(ply)
	hi := winScore(ply)

	for lo < hi {
		mid := lo + (hi-lo)/2
		if mid <= 0 && lo/2 < mid {
			mid = lo / 2
		} else if mid >= 0 && hi/2 > mid {
			mid = hi / 2
		}
		r := s.search(p, mid, mid+1)
		if r <= mid {
			hi = r
		} else {
			lo = r
		}
	}
	return lo
}

// winScore is the score returned when the side to move has a drop that
// completes four-in-a-row right now, at the position's own ply.
func winScore(ply int) int {
	return (position.Cells + 1 - ply) / 2
}

// lossScoreMagnitude gives the loosest possible bound on how badly the
// side to move could lose from a position at the given ply — used
// only to seed the root MTD window (spec.md §4.4 items 1-4).
func lossScoreMagnitude(ply int) int {
	return (position.Cells - ply) / 2
}

// search is the negamax core: returns the exact score of p if it lies
// within (alpha, beta), otherwise a bound on it. Implements spec.md
// §4.4 rules (a)-(i) in order.
func (s *Searcher) search(p position.Position, alpha, beta int) int {
	s.nodes++
	ply := p.Ply()

	// (a) draw cut-off
	if p.IsDraw() {
		return 0
	}

	// (b) immediate win check
	for _, col := range position.StaticOrder {
		if p.CanDrop(col) && p.IsWinningDrop(col) {
			return winScore(ply)
		}
	}

	// (c) beta clamp by the best reachable score (wins already excluded)
	maxPossible := (position.Cells - 1 - ply) / 2
	if maxPossible <= alpha {
		return maxPossible
	}
	if maxPossible < beta {
		beta = maxPossible
	}

	key := p.CanonicalKey()

	// (d) TT probe
	if score, bound, ok := s.table.Probe(key); ok {
		switch bound {
		case tt.Exact:
			return score
		case tt.Lower:
			if score > alpha {
				alpha = score
			}
		case tt.Upper:
			if score < beta {
				beta = score
			}
		}
		if alpha >= beta {
			return alpha
		}
	}

	// (e) book probe, restricted to plies the book actually covers
	if s.book.CoversPly(ply) {
		if score, ok := s.book.Probe(key); ok {
			return score
		}
	}

	// (f)(g) move generation + ordering, including the forced-move
	// shortcut and losing-move exclusion.
	moves := ordering.Candidates(p)
	if len(moves) == 0 {
		return -(position.Cells - ply) / 2
	}

	// (h) recurse
	best := alpha
	for _, m := range moves {
		child := p.Drop(m.Col)
		score := -s.search(child, -beta, -best)
		if score >= beta {
			s.table.Store(key, score, tt.Lower)
			return score
		}
		if score > best {
			best = score
		}
	}

	// (i) store result: no move reached beta, so best is only known to
	// be an upper bound on the true value (spec.md §4.4 item i).
	s.table.Store(key, best, tt.Upper)
	return best
}

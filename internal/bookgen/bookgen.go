// Package bookgen implements opening-book generation (spec.md §4.5):
// breadth-first enumeration of every reachable, not-yet-won position
// at a target ply, deduplicated by canonical key, each scored by an
// Engine that has the transposition table but no book attached.
package bookgen

import (
	"github.com/hailam/fourengine/internal/book"
	"github.com/hailam/fourengine/internal/engine"
	"github.com/hailam/fourengine/internal/position"
)

// VisitedSet tracks canonical keys already produced during the BFS so
// a position reachable by more than one move order is scored only
// once. The default in-memory set (NewMemVisited) suffices for the
// shallow plies (4, 8) spec.md §4.5 calls typical; deeper enumerations
// can swap in the disk-backed internal/bookstore.Store instead.
type VisitedSet interface {
	// MarkSeen records key as seen and reports whether it was already
	// present.
	MarkSeen(key uint64) (alreadySeen bool)
}

type memVisited map[uint64]struct{}

// NewMemVisited returns an in-memory VisitedSet.
func NewMemVisited() VisitedSet {
	return make(memVisited)
}

func (m memVisited) MarkSeen(key uint64) bool {
	if _, ok := m[key]; ok {
		return true
	}
	m[key] = struct{}{}
	return false
}

// Generate enumerates every reachable position at exactly ply plies
// from the empty board, solves each with eng (which must have no book
// attached, per spec.md §4.5), and returns the resulting Book. Passing
// a nil visited uses an in-memory set.
func Generate(ply int, eng *engine.Engine, visited VisitedSet) *book.Book {
	if visited == nil {
		visited = NewMemVisited()
	}

	var empty position.Position
	frontier := []position.Position{empty}
	visited.MarkSeen(empty.CanonicalKey())

	for depth := 0; depth < ply; depth++ {
		var next []position.Position
		for _, p := range frontier {
			if p.HasWon() || p.IsDraw() {
				// The previous player already won (or the board is
				// full): no further moves are generated from here.
				continue
			}
			for col := 0; col < position.Width; col++ {
				if !p.CanDrop(col) {
					continue
				}
				child := p.Drop(col)
				if visited.MarkSeen(child.CanonicalKey()) {
					continue
				}
				next = append(next, child)
			}
		}
		frontier = next
	}

	b := book.New()
	for _, p := range frontier {
		if p.HasWon() {
			continue
		}
		sol := eng.SolvePosition(p)
		b.Put(p.CanonicalKey(), int(sol.Score))
	}
	b.SetPlyRange(ply, ply)
	return b
}

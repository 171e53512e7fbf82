// Package ordering ranks candidate column drops for the search: a
// fixed center-out static order refined by a cheap threat-count
// priority, plus the forced-move shortcut (spec.md §4.2). Grounded on
// the teacher's internal/engine/ordering.go: a ScoreMoves-then-
// PickMove/selection-sort shape, minus the chess-specific MVV-LVA,
// killer and history tables this game has no use for.
package ordering

import "github.com/hailam/fourengine/internal/position"

// Move is a candidate column drop together with its ordering priority.
type Move struct {
	Col      int
	Priority int
}

// penaltyGivesOpponentWin is subtracted from a move's priority when
// playing it would hand the opponent an immediate winning reply.
const penaltyGivesOpponentWin = 1 << 20

// Candidates returns the legal, non-losing drops for p ordered by
// decreasing priority (ties broken by the static center-out order). A
// "losing" drop is one that lands directly beneath an opponent threat
// square (spec.md §4.4(f)); such columns are excluded entirely, matching the
// search's own move generation step. If the side to move has an
// immediate winning drop, it alone is returned (spec.md §4.2's
// forced-move shortcut).
func Candidates(p position.Position) []Move {
	opponentThreats := p.OpponentThreats()

	for _, col := range position.StaticOrder {
		if p.CanDrop(col) && p.IsWinningDrop(col) {
			return []Move{{Col: col}}
		}
	}

	moves := make([]Move, 0, position.Width)
	for rank, col := range position.StaticOrder {
		if !p.CanDrop(col) {
			continue
		}
		landing := landingBit(p, col)
		if (landing<<1)&opponentThreats != 0 {
			continue // playing here loses immediately to the opponent's reply
		}
		moves = append(moves, Move{Col: col, Priority: priority(p, col, rank, opponentThreats)})
	}

	sortByPriority(moves)
	return moves
}

// landingBit returns the bit where the next stone in col would land.
func landingBit(p position.Position, col int) uint64 {
	child := p.Drop(col)
	return child.Mask &^ p.Mask
}

// priority scores a non-losing candidate move: the number of threat
// cells the mover holds after the move (the count before the move is
// the same for every candidate, so this ranks by threats created),
// biased by the static center-out rank so ties keep the canonical
// order, and penalized if it would let the opponent win in the cell
// directly above (a case Candidates already excludes wholesale
// above; the penalty term exists for callers of priority that do not
// first filter, and keeps the function meaningful standalone).
func priority(p position.Position, col, staticRank int, opponentThreats uint64) int {
	child := p.Drop(col)
	// After Drop, the side to move alternates, so the mover's own
	// stones are child.Opponent(); reframe as a Position from the
	// mover's perspective to reuse Threats()'s winningSpots math.
	moverView := position.Position{Current: child.Opponent(), Mask: child.Mask}
	ourThreats := countSetBits(moverView.Threats())
	score := ourThreats * 8
	score -= staticRank // smaller static rank (more central) breaks ties upward
	if (landingBit(p, col)<<1)&opponentThreats != 0 {
		score -= penaltyGivesOpponentWin
	}
	return score
}

func countSetBits(b uint64) int {
	n := 0
	for b != 0 {
		b &= b - 1
		n++
	}
	return n
}

// sortByPriority orders moves by decreasing priority using a selection
// sort, exactly as the teacher's PickMove/SortMoves do for its (also
// small, ≤ a few dozen) move lists.
func sortByPriority(moves []Move) {
	for i := 0; i < len(moves)-1; i++ {
		best := i
		for j := i + 1; j < len(moves); j++ {
			if moves[j].Priority > moves[best].Priority {
				best = j
			}
		}
		if best != i {
			moves[i], moves[best] = moves[best], moves[i]
		}
	}
}

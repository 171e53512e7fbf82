// Package position implements the Connect-4 bitboard representation:
// legal-move generation, win detection, threat detection and the
// canonical (mirror-folded) position key used by the transposition
// table and opening book.
package position

import "math/bits"

// Board dimensions. Connect-4 is fixed at 7 columns by 6 rows; unlike
// the teacher's chess board these are compile-time constants, not a
// runtime-configurable size (see spec Non-goals).
const (
	Width  = 7
	Height = 6

	// Cells is the number of playable cells on the board.
	Cells = Width * Height
)

// Bitboard is a 64-bit board where bit x*(Height+1)+y holds cell (x, y),
// y=0 at the bottom. Row Height (index 6) of every column is an unused
// sentinel row: it is never set in a Position's Mask, but transiently
// appears in intermediate arithmetic (dropBit's carry out of a full
// column, the canonical key encoding); CanDrop itself tests the top
// playable cell (topMask). Mirrors the teacher's Bitboard newtype-over-uint64 method set
// (internal/board/bitboard.go) scaled down to the operations Connect-4
// actually needs.
type Bitboard uint64

// columnMask is the mask of the Height playable cells in column x.
func columnMask(x int) Bitboard {
	return ((Bitboard(1) << Height) - 1) << uint(x*(Height+1))
}

// bottomMask is the single bit at the bottom (row 0) of column x.
func bottomMask(x int) Bitboard {
	return Bitboard(1) << uint(x*(Height+1))
}

// topMask is the single bit at the top playable row (row Height-1) of
// column x: the last cell that can legally receive a stone.
func topMask(x int) Bitboard {
	return Bitboard(1) << uint(x*(Height+1)+Height-1)
}

// bottomRow is the union of bottomMask(x) over every column; it is the
// additive constant in the canonical key formula (spec.md §3).
var bottomRow = func() Bitboard {
	var b Bitboard
	for x := 0; x < Width; x++ {
		b |= bottomMask(x)
	}
	return b
}()

// boardMask is every playable cell on the board (excludes sentinel rows).
var boardMask = func() Bitboard {
	var b Bitboard
	for x := 0; x < Width; x++ {
		b |= columnMask(x)
	}
	return b
}()

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// four implements the classical Connect-4 alignment check: it returns a
// non-zero bitboard iff b contains at least one set of four aligned
// bits (vertical, horizontal, or either diagonal). Spec.md §4.1.
func four(b Bitboard) Bitboard {
	// vertical
	r := (b & (b >> 1)) & ((b & (b >> 1)) >> 2)
	// horizontal
	p := (b & (b >> (Height + 1))) & ((b & (b >> (Height + 1))) >> (2 * (Height + 1)))
	r |= p
	// diagonal ↘ (top-left to bottom-right)
	p = (b & (b >> Height)) & ((b & (b >> Height)) >> (2 * Height))
	r |= p
	// diagonal ↗ (bottom-left to top-right)
	p = (b & (b >> (Height + 2))) & ((b & (b >> (Height + 2))) >> (2 * (Height + 2)))
	r |= p
	return r
}

// winningSpots returns, for the stones in b, the bitboard of every
// playable-area cell (sentinel rows excluded) — empty or
// not — that would complete a four-in-a-row for b. Masking the result
// against the empty cells gives the set of actual playable threats.
// This is the standard "compute_winning_position" trick used by the
// reference strong solvers this spec is distilled from.
func winningSpots(b Bitboard) Bitboard {
	// vertical
	r := (b << 1) & (b << 2) & (b << 3)

	// horizontal
	p := (b << (Height + 1)) & (b << (2 * (Height + 1)))
	r |= p & (b << (3 * (Height + 1)))
	r |= p & (b >> (Height + 1))
	p = (b >> (Height + 1)) & (b >> (2 * (Height + 1)))
	r |= p & (b << (Height + 1))
	r |= p & (b >> (3 * (Height + 1)))

	// diagonal ↘
	p = (b << Height) & (b << (2 * Height))
	r |= p & (b << (3 * Height))
	r |= p & (b >> Height)
	p = (b >> Height) & (b >> (2 * Height))
	r |= p & (b << Height)
	r |= p & (b >> (3 * Height))

	// diagonal ↗
	p = (b << (Height + 2)) & (b << (2 * (Height + 2)))
	r |= p & (b << (3 * (Height + 2)))
	r |= p & (b >> (Height + 2))
	p = (b >> (Height + 2)) & (b >> (2 * (Height + 2)))
	r |= p & (b << (Height + 2))
	r |= p & (b >> (3 * (Height + 2)))

	return r & boardMask
}

// mirror reflects a bitboard left-right, swapping column x with column
// Width-1-x while keeping row order within each column. A position and
// its mirror are game-theoretically identical, which is what lets
// CanonicalKey fold them onto a single TT/Book entry.
func mirror(b Bitboard) Bitboard {
	var out Bitboard
	const colWidth = Height + 1
	colFull := (Bitboard(1) << colWidth) - 1
	for x := 0; x < Width; x++ {
		col := (b >> uint(x*colWidth)) & colFull
		out |= col << uint((Width-1-x)*colWidth)
	}
	return out
}

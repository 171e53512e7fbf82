// Package engine is the solver facade of spec.md §4.6: it owns the
// transposition table and an optional opening book, drives the
// search, and returns a Solution carrying the score and work
// statistics.
//
// Grounded on the teacher's internal/engine/engine.go Engine struct
// (NewEngine(ttSizeMB), SetBook/HasBook, a Search entry point that
// tries the book before falling back to the searcher) and its
// log.Printf style of operational logging.
package engine

import (
	"log"
	"time"

	"github.com/hailam/fourengine/internal/book"
	"github.com/hailam/fourengine/internal/position"
	"github.com/hailam/fourengine/internal/search"
	"github.com/hailam/fourengine/internal/tt"
	"github.com/hailam/fourengine/internal/variation"
)

// Solution is the public result of a solve (spec.md §3).
type Solution struct {
	Score           int32
	WorkCount       uint64
	DurationSeconds float64
}

// NPS is the derived nodes-per-second display metric.
func (s Solution) NPS() float64 {
	if s.DurationSeconds <= 0 {
		return 0
	}
	return float64(s.WorkCount) / s.DurationSeconds
}

// Engine is the solver facade: a transposition table, an optional
// book, and the searcher that ties them together.
type Engine struct {
	table    *tt.Table
	book     *book.Book
	searcher *search.Searcher
}

// New allocates an Engine with a transposition table of 2^sizeBits
// entries (0 selects tt.DefaultSizeBits). No book is attached; call
// SetBook to install one.
func New(sizeBits int) *Engine {
	table := tt.New(sizeBits)
	e := &Engine{
		table:    table,
		searcher: search.New(table),
	}
	log.Printf("[engine] transposition table ready: %d entries", table.Len())
	return e
}

// SetBook installs a loaded opening book, consulted by the search at
// the plies it covers. Passing nil removes any installed book.
func (e *Engine) SetBook(b *book.Book) {
	e.book = b
	e.searcher.SetBook(b)
	if b != nil {
		log.Printf("[engine] book attached: %d entries", b.Size())
	}
}

// HasBook reports whether an opening book is currently installed.
func (e *Engine) HasBook() bool {
	return e.book != nil
}

// Solve parses v as a variation and returns its exact solution. The
// transposition table persists across calls, so solving related
// positions on the same Engine reuses prior work (spec.md §4.6).
func (e *Engine) Solve(v string) (Solution, error) {
	p, err := variation.Parse(v)
	if err != nil {
		return Solution{}, err
	}
	return e.SolvePosition(p), nil
}

// SolvePosition solves an already-parsed position.
func (e *Engine) SolvePosition(p position.Position) Solution {
	start := time.Now()
	score := e.searcher.Solve(p)
	elapsed := time.Since(start)
	return Solution{
		Score:           int32(score),
		WorkCount:       e.searcher.WorkCount(),
		DurationSeconds: elapsed.Seconds(),
	}
}

// WorkCount exposes the most recent solve's internal search-call
// count, for tooling and tests (spec.md §4.6).
func (e *Engine) WorkCount() uint64 {
	return e.searcher.WorkCount()
}

// ClearTT discards all cached transposition-table entries. Useful for
// benchmarks that need to measure a solve's true cost, uncontaminated
// by entries left behind by a previous solve.
func (e *Engine) ClearTT() {
	e.table.Clear()
}

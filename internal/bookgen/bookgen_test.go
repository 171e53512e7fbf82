package bookgen

import (
	"bytes"
	"testing"

	"github.com/hailam/fourengine/internal/book"
	"github.com/hailam/fourengine/internal/engine"
)

// R3: generate a book, reload it into a fresh engine, and confirm every
// seed position solves to the score the generator emitted.
func TestGenerateThenReloadRoundTrip(t *testing.T) {
	gen := engine.New(16)
	b := Generate(4, gen, nil)
	if b.Size() == 0 {
		t.Fatal("expected a non-empty generated book")
	}

	var buf bytes.Buffer
	if err := b.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	reloaded, err := book.LoadReader(&buf)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if reloaded.Size() != b.Size() {
		t.Fatalf("reloaded book has %d entries, want %d", reloaded.Size(), b.Size())
	}

	for _, key := range b.Keys() {
		want, ok := b.Probe(key)
		if !ok {
			t.Fatalf("key %d missing from freshly generated book", key)
		}
		got, ok := reloaded.Probe(key)
		if !ok {
			t.Fatalf("key %d missing from reloaded book", key)
		}
		if got != want {
			t.Errorf("key %d: reloaded score %d, want %d", key, got, want)
		}
	}
}

// Scenario 6 of spec.md §8: a book generated at ply 4, attached to an
// engine, makes solving the empty position cheaper than without it,
// while still returning the same score.
func TestAttachedBookReducesWork(t *testing.T) {
	baseline := engine.New(16)
	solBaseline, err := baseline.Solve("")
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	gen := engine.New(16)
	b := Generate(4, gen, nil)

	withBook := engine.New(16)
	withBook.SetBook(b)
	solBook, err := withBook.Solve("")
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if solBook.Score != solBaseline.Score {
		t.Errorf("book-assisted score %d, want %d", solBook.Score, solBaseline.Score)
	}
	if solBook.WorkCount >= solBaseline.WorkCount {
		t.Errorf("book-assisted work count %d did not improve on baseline %d", solBook.WorkCount, solBaseline.WorkCount)
	}
}

func TestGenerateDeduplicatesByCanonicalKey(t *testing.T) {
	gen := engine.New(16)
	visited := NewMemVisited()
	b := Generate(2, gen, visited)

	// At ply 2 no two move orders reach the same position, but a
	// position and its mirror image share a canonical key; the book
	// must hold strictly fewer than the 7*7 raw (unfolded) leaves.
	if b.Size() >= 7*7 {
		t.Errorf("expected canonical-key dedup to shrink the ply-2 frontier below %d, got %d", 7*7, b.Size())
	}
	if b.Size() == 0 {
		t.Fatal("expected a non-empty ply-2 book")
	}
}

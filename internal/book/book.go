// Package book implements the persistent opening book of spec.md §4.5:
// a flat mapping from canonical position key to exact score, loaded
// from (and written to) the line-oriented ASCII format of spec.md §6.
//
// Grounded on the teacher's internal/book/book.go package shape — a
// Book struct wrapping a map, New()/Load*/Load*Reader/Probe/Size() —
// kept almost structurally identical. The wire format itself is
// replaced: the teacher loads binary Polyglot entries keyed to a move
// choice; spec.md instead mandates base62 fixed-width ASCII lines
// keyed to an exact score, since a Connect-4 book has exactly one
// game-theoretic continuation to remember per position, not a weighted
// choice of moves.
package book

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ErrBookFormat is returned, wrapped with line-number context, when a
// book line cannot be parsed (spec.md §7).
var ErrBookFormat = errors.New("fourengine: malformed book line")

// keyBits is the width of the canonical key's reversible encoding
// (Width * (Height+1) = 7*7 for the standard board).
const keyBits = 49

const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// keyDigits is the fixed column width of the base62-encoded key: the
// smallest number of base-62 digits that can represent keyBits bits.
var keyDigits = func() int {
	n := 0
	max := uint64(1)<<keyBits - 1
	for v := max; v > 0; v /= 62 {
		n++
	}
	if n == 0 {
		n = 1
	}
	return n
}()

// EncodeKey renders a canonical key as fixed-width, most-significant-
// digit-first base62.
func EncodeKey(key uint64) string {
	digits := make([]byte, keyDigits)
	v := key
	for i := keyDigits - 1; i >= 0; i-- {
		digits[i] = base62Alphabet[v%62]
		v /= 62
	}
	return string(digits)
}

// DecodeKey parses a fixed-width base62 key back into its uint64 form.
func DecodeKey(s string) (uint64, error) {
	if len(s) != keyDigits {
		return 0, fmt.Errorf("%w: key %q has width %d, want %d", ErrBookFormat, s, len(s), keyDigits)
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(base62Alphabet, s[i])
		if idx < 0 {
			return 0, fmt.Errorf("%w: invalid base62 digit %q in key %q", ErrBookFormat, s[i], s)
		}
		v = v*62 + uint64(idx)
	}
	return v, nil
}

// Book is an in-memory, read-only-after-load mapping from canonical
// key to exact score, tagged with the ply range of the entries it
// holds (spec.md §9's open question: a probe outside that range is
// treated as a strict miss, never a heuristic fallback).
type Book struct {
	entries  map[uint64]int
	minPly   int
	maxPly   int
	hasRange bool
}

// New returns an empty book.
func New() *Book {
	return &Book{entries: make(map[uint64]int)}
}

// Load reads a book file from disk.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader reads the line-oriented ASCII book format from r:
// "<base62 key> <signed score>" per non-empty, non-comment line.
func LoadReader(r io.Reader) (*Book, error) {
	b := New()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: expected \"key score\", got %q", ErrBookFormat, lineNo, line)
		}
		key, err := DecodeKey(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBookFormat, lineNo, err)
		}
		score, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid score %q", ErrBookFormat, lineNo, fields[1])
		}
		b.entries[key] = score
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

// Source names a book file on disk and the ply it was generated for.
// The on-disk format carries no ply metadata of its own (spec.md §4.5:
// a book is "tagged implicitly by the plies of its entries"), so
// LoadMulti needs it supplied per file.
type Source struct {
	Path string
	Ply  int
}

// LoadMulti loads and merges several book files — e.g. a ply-4 and a
// ply-8 book generated separately — into a single Book covering the
// union of their ply ranges (spec_full.md §10).
func LoadMulti(sources []Source) (*Book, error) {
	b := New()
	for _, src := range sources {
		other, err := Load(src.Path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", src.Path, err)
		}
		other.SetPlyRange(src.Ply, src.Ply)
		b.Merge(other)
	}
	return b, nil
}

// SetPlyRange records the ply span of the entries this book holds, so
// Probe can refuse to answer for plies the book was never generated
// for (see the Book type's doc comment on the strict-lookup policy).
func (b *Book) SetPlyRange(minPly, maxPly int) {
	b.minPly, b.maxPly = minPly, maxPly
	b.hasRange = true
}

// CoversPly reports whether ply falls within the book's recorded
// range and a lookup is worth attempting.
func (b *Book) CoversPly(ply int) bool {
	if b == nil || !b.hasRange {
		return false
	}
	return ply >= b.minPly && ply <= b.maxPly
}

// Probe looks up key. Strict lookup: a miss never falls back to a
// neighboring ply's entries (spec.md §9).
func (b *Book) Probe(key uint64) (score int, ok bool) {
	if b == nil {
		return 0, false
	}
	score, ok = b.entries[key]
	return
}

// Size returns the number of entries in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Put inserts or overwrites a single entry; used by the generator.
func (b *Book) Put(key uint64, score int) {
	b.entries[key] = score
}

// Keys returns the book's entry keys in unspecified order.
func (b *Book) Keys() []uint64 {
	keys := make([]uint64, 0, len(b.entries))
	for k := range b.entries {
		keys = append(keys, k)
	}
	return keys
}

// WriteTo serializes the book to w in the format LoadReader expects,
// one line per entry, keys emitted in ascending numeric order for a
// stable, diffable file.
func (b *Book) WriteTo(w io.Writer) error {
	keys := make([]uint64, 0, len(b.entries))
	for k := range b.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	bw := bufio.NewWriter(w)
	for _, k := range keys {
		if _, err := fmt.Fprintf(bw, "%s %d\n", EncodeKey(k), b.entries[k]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Merge folds other's entries into b, widening the recorded ply range
// to cover both books. Used to load the ply-4 and ply-8 books together
// (spec_full.md §10).
func (b *Book) Merge(other *Book) {
	if other == nil {
		return
	}
	for k, v := range other.entries {
		b.entries[k] = v
	}
	if !b.hasRange {
		b.minPly, b.maxPly = other.minPly, other.maxPly
	} else if other.hasRange {
		b.minPly = min(b.minPly, other.minPly)
		b.maxPly = max(b.maxPly, other.maxPly)
	}
	b.hasRange = b.hasRange || other.hasRange
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

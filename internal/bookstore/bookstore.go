// Package bookstore is a disk-backed dedup set for opening-book
// generation (spec.md §4.5): a BFS enumeration to a deep target ply
// can visit more canonical positions than comfortably fit in memory,
// so Store persists the visited set to BadgerDB instead of a Go map.
//
// Grounded on the teacher's internal/storage/storage.go Storage
// wrapper: the same badger.DefaultOptions(dir) + opts.Logger = nil +
// db.Update/db.View transaction shape, repurposed from JSON-blob
// preference/stats keys to raw 8-byte canonical-key presence checks.
package bookstore

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"
)

// Store is a BadgerDB-backed set of canonical position keys. Its zero
// value is not usable; construct one with Open.
type Store struct {
	db *badger.DB
}

// Open creates or reopens a dedup set rooted at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func encodeKey(key uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], key)
	return buf[:]
}

// MarkSeen records key as seen and reports whether it was already
// present, satisfying bookgen.VisitedSet.
func (s *Store) MarkSeen(key uint64) bool {
	encoded := encodeKey(key)
	var alreadySeen bool

	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(encoded)
		if err == nil {
			alreadySeen = true
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		return txn.Set(encoded, nil)
	})
	if err != nil {
		// A disk dedup set is an optimization over the in-memory one;
		// failing to record a key as seen only risks redundant work
		// (re-scoring an already-seen position), never an incorrect
		// book, so it is safe to treat as "not seen" and continue.
		return false
	}
	return alreadySeen
}

// Len reports how many distinct keys have been recorded.
func (s *Store) Len() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

package crypto

import "sync"

// NullifierSet tracks which notes have been spent. It is deliberately a
// plain unordered set plus a parallel ordered sequence, not a sparse
// Merkle tree or other accumulator: the mixer only ever needs membership
// checks and offset-paginated enumeration, never a Merkle proof over the
// spent set itself.
type NullifierSet struct {
	mu      sync.RWMutex
	present map[[32]byte]bool
	ordered [][32]byte
}

// NewNullifierSet returns an empty nullifier set.
func NewNullifierSet() *NullifierSet {
	return &NullifierSet{present: make(map[[32]byte]bool)}
}

// Contains reports whether n has already been spent.
func (s *NullifierSet) Contains(n [32]byte) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.present[n]
}

// Insert records n as spent if it was not already, returning true if this
// call is the one that inserted it (false if it was already present).
// Insertion is idempotent: calling it again for the same nullifier is a
// no-op, not an error.
func (s *NullifierSet) Insert(n [32]byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.present[n] {
		return false
	}
	s.present[n] = true
	s.ordered = append(s.ordered, n)
	return true
}

// Len returns the number of distinct nullifiers recorded.
func (s *NullifierSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ordered)
}

// From returns the nullifiers recorded at or after insertion offset from,
// in insertion order. An out-of-range offset returns an empty slice, not
// an error, matching the paginated state-query convention of §4.5/§4.7.
func (s *NullifierSet) From(from uint64) [][32]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if from >= uint64(len(s.ordered)) {
		return nil
	}
	out := make([][32]byte, len(s.ordered)-int(from))
	copy(out, s.ordered[from:])
	return out
}

// All returns every recorded nullifier in insertion order.
func (s *NullifierSet) All() [][32]byte {
	return s.From(0)
}

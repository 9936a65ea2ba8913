package crypto

import (
	"errors"
	"sync"
)

// Leaf is a 32-byte commitment stored by the tree.
type Leaf = [32]byte

// Tree is an append-only Merkle tree accumulator over 32-byte leaves.
//
// Unlike a fixed-depth, zero-padded accumulator, this tree is rebuilt over
// its full, dynamic leaf count on every append: at each level, adjacent
// nodes are paired and hashed together, and if a level has an odd number
// of nodes the last one is carried up by hashing it alone rather than
// being duplicated or paired with a padding value. Even a single leaf is
// folded this way at least once, so a one-leaf tree's root is the digest
// of that leaf, not the leaf itself.
//
// Every root ever produced is retained in rootHistory for the lifetime of
// the tree: proofs built against a past root must stay verifiable even
// after later deposits grow the tree out from under them.
type Tree struct {
	mu          sync.RWMutex
	leaves      [][32]byte
	rootHistory [][32]byte
}

// ErrTreeEmpty is returned when an operation requires at least one leaf.
var ErrTreeEmpty = errors.New("crypto: tree is empty")

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Append adds leaves to the tree in order, recomputes the root over the
// full (now larger) leaf set, and pushes the new root onto the history.
func (t *Tree) Append(leaves ...[32]byte) ([32]byte, error) {
	if len(leaves) == 0 {
		return [32]byte{}, errors.New("crypto: append requires at least one leaf")
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.leaves = append(t.leaves, leaves...)
	layers := buildLayers(t.leaves)
	root := layers[len(layers)-1][0]
	t.rootHistory = append(t.rootHistory, root)
	return root, nil
}

// Root returns the current (most recent) root.
func (t *Tree) Root() ([32]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.rootHistory) == 0 {
		return [32]byte{}, ErrTreeEmpty
	}
	return t.rootHistory[len(t.rootHistory)-1], nil
}

// Size returns the number of leaves currently in the tree.
func (t *Tree) Size() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return uint64(len(t.leaves))
}

// Leaves returns a copy of the current leaf sequence, in insertion order.
func (t *Tree) Leaves() [][32]byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([][32]byte, len(t.leaves))
	copy(out, t.leaves)
	return out
}

// HasHistoricalRoot reports whether r equals some root ever produced by
// Append, searching from most recent to oldest.
func (t *Tree) HasHistoricalRoot(r [32]byte) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := len(t.rootHistory) - 1; i >= 0; i-- {
		if t.rootHistory[i] == r {
			return true
		}
	}
	return false
}

// Proof builds a multi-proof authenticating the leaves at the given
// strictly-ascending indices against the tree's current root.
func (t *Tree) Proof(indices []uint64) (*MultiProof, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.leaves) == 0 {
		return nil, ErrTreeEmpty
	}
	if err := validateAscending(indices, uint64(len(t.leaves))); err != nil {
		return nil, err
	}
	layers := buildLayers(t.leaves)
	siblings, err := proveFromLayers(layers, indices)
	if err != nil {
		return nil, err
	}
	return &MultiProof{Siblings: siblings}, nil
}

// buildLayers constructs every level of the tree, leaves first, root last.
// Every level past the leaves is produced by combineLevel, which always
// runs at least once -- even a single leaf is folded up into a one-entry
// layer that is its digest, so the root of a one-leaf tree is never the
// bare leaf.
func buildLayers(leaves [][32]byte) [][][32]byte {
	if len(leaves) == 0 {
		return nil
	}
	layers := [][][32]byte{leaves}
	cur := leaves
	for {
		next := combineLevel(cur)
		layers = append(layers, next)
		cur = next
		if len(cur) <= 1 {
			break
		}
	}
	return layers
}

// combineLevel produces the next level up from cur: adjacent nodes pair
// and hash together; an unpaired trailing node (odd-length cur) is carried
// up by hashing it alone rather than being duplicated or padded.
func combineLevel(cur [][32]byte) [][32]byte {
	m := len(cur)
	next := make([][32]byte, 0, (m+1)/2)
	i := 0
	for i+1 < m {
		next = append(next, Digest(cur[i][:], cur[i+1][:]))
		i += 2
	}
	if i < m {
		next = append(next, Digest(cur[i][:]))
	}
	return next
}

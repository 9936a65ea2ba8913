package crypto

import (
	"encoding/binary"
	"errors"
	"sort"
)

var (
	// ErrIndicesNotSorted is returned when proof indices are not strictly
	// ascending, or contain a duplicate.
	ErrIndicesNotSorted = errors.New("crypto: indices must be strictly ascending")
	// ErrIndexOutOfRange is returned when an index exceeds the leaf count.
	ErrIndexOutOfRange = errors.New("crypto: index out of range")
	// ErrProofMismatch is returned when indices and hashes have different lengths.
	ErrProofMismatch = errors.New("crypto: indices and hashes length mismatch")
	// ErrProofTooShort is returned when a proof runs out of siblings mid-verification.
	ErrProofTooShort = errors.New("crypto: proof has too few siblings")
	// ErrProofTooLong is returned when a proof has unconsumed siblings left over.
	ErrProofTooLong = errors.New("crypto: proof has unused siblings")
	// ErrMalformedProof is returned when a proof's byte encoding is invalid.
	ErrMalformedProof = errors.New("crypto: malformed proof bytes")
)

// MultiProof authenticates a set of leaves at known indices against a
// tree's root, given the tree's total leaf count. It is opaque wire data:
// the sibling hashes a verifier is missing, in the order they are needed
// while replaying the tree's level-by-level hashing from the leaves up.
type MultiProof struct {
	Siblings [][32]byte
}

// Bytes serializes the proof as a 4-byte little-endian sibling count
// followed by that many 32-byte hashes.
func (p *MultiProof) Bytes() []byte {
	buf := make([]byte, 4, 4+32*len(p.Siblings))
	binary.LittleEndian.PutUint32(buf, uint32(len(p.Siblings)))
	for _, s := range p.Siblings {
		buf = append(buf, s[:]...)
	}
	return buf
}

// ProofFromBytes parses a proof produced by MultiProof.Bytes.
func ProofFromBytes(b []byte) (*MultiProof, error) {
	if len(b) < 4 {
		return nil, ErrMalformedProof
	}
	n := binary.LittleEndian.Uint32(b[:4])
	want := 4 + int(n)*32
	if len(b) != want {
		return nil, ErrMalformedProof
	}
	p := &MultiProof{Siblings: make([][32]byte, n)}
	for i := 0; i < int(n); i++ {
		copy(p.Siblings[i][:], b[4+i*32:4+(i+1)*32])
	}
	return p, nil
}

// validateAscending checks that indices are strictly ascending, free of
// duplicates, and all within [0, total).
func validateAscending(indices []uint64, total uint64) error {
	for i, idx := range indices {
		if idx >= total {
			return ErrIndexOutOfRange
		}
		if i > 0 && indices[i] <= indices[i-1] {
			return ErrIndicesNotSorted
		}
	}
	return nil
}

// parentOf returns the index a node at position i moves to one level up,
// and whether it is the unpaired node of an odd-length level of size m --
// in which case its parent is its own digest, needing no sibling.
func parentOf(i uint64, m int) (parent uint64, promoted bool) {
	if m%2 == 1 && i == uint64(m-1) {
		return i / 2, true
	}
	return i / 2, false
}

// proveFromLayers walks a fully-built tree (leaves first, root last) and
// collects the minimal set of sibling hashes needed to re-derive the root
// from just the leaves at the given indices.
func proveFromLayers(layers [][][32]byte, indices []uint64) ([][32]byte, error) {
	known := make(map[uint64]bool, len(indices))
	for _, idx := range indices {
		known[idx] = true
	}
	curSorted := append([]uint64(nil), indices...)

	var siblings [][32]byte
	for level := 0; level < len(layers)-1; level++ {
		m := len(layers[level])
		next := make(map[uint64]bool)
		handled := make(map[uint64]bool, len(curSorted))

		for _, i := range curSorted {
			if handled[i] {
				continue
			}
			parent, promoted := parentOf(i, m)
			if promoted {
				next[parent] = true
				handled[i] = true
				continue
			}
			var partner uint64
			if i%2 == 0 {
				partner = i + 1
			} else {
				partner = i - 1
			}
			if known[partner] {
				handled[i] = true
				handled[partner] = true
			} else {
				siblings = append(siblings, layers[level][partner])
				handled[i] = true
			}
			next[parent] = true
		}

		nextSorted := make([]uint64, 0, len(next))
		for k := range next {
			nextSorted = append(nextSorted, k)
		}
		sort.Slice(nextSorted, func(a, b int) bool { return nextSorted[a] < nextSorted[b] })
		curSorted = nextSorted
		known = next
	}
	return siblings, nil
}

// VerifyMultiProof recomputes the root authenticated by proof for the
// leaves at indices (whose hashes are hashes, in the same order), given
// the tree's total leaf count, consuming proof's siblings in the same
// order proveFromLayers produced them. It is a pure function requiring no
// access to the full leaf set, so the guest circuit can run it against
// only the witness it was handed.
func VerifyMultiProof(proof *MultiProof, indices []uint64, hashes [][32]byte, totalLeaves uint64) ([32]byte, error) {
	if len(indices) != len(hashes) {
		return [32]byte{}, ErrProofMismatch
	}
	if totalLeaves == 0 {
		return [32]byte{}, ErrTreeEmpty
	}
	if err := validateAscending(indices, totalLeaves); err != nil {
		return [32]byte{}, err
	}

	cur := make(map[uint64][32]byte, len(indices))
	for i, idx := range indices {
		cur[idx] = hashes[i]
	}
	curSorted := append([]uint64(nil), indices...)

	sibCursor := 0
	levelLen := totalLeaves
	for {
		m := int(levelLen)
		next := make(map[uint64][32]byte)
		handled := make(map[uint64]bool, len(curSorted))

		for _, i := range curSorted {
			if handled[i] {
				continue
			}
			parent, promoted := parentOf(i, m)
			if promoted {
				v := cur[i]
				next[parent] = Digest(v[:])
				handled[i] = true
				continue
			}

			var left, right [32]byte
			var partner uint64
			if i%2 == 0 {
				partner = i + 1
				left = cur[i]
				if v, ok := cur[partner]; ok {
					right = v
					handled[partner] = true
				} else {
					if sibCursor >= len(proof.Siblings) {
						return [32]byte{}, ErrProofTooShort
					}
					right = proof.Siblings[sibCursor]
					sibCursor++
				}
			} else {
				partner = i - 1
				right = cur[i]
				if v, ok := cur[partner]; ok {
					left = v
					handled[partner] = true
				} else {
					if sibCursor >= len(proof.Siblings) {
						return [32]byte{}, ErrProofTooShort
					}
					left = proof.Siblings[sibCursor]
					sibCursor++
				}
			}
			handled[i] = true
			next[parent] = Digest(left[:], right[:])
		}

		nextSorted := make([]uint64, 0, len(next))
		for k := range next {
			nextSorted = append(nextSorted, k)
		}
		sort.Slice(nextSorted, func(a, b int) bool { return nextSorted[a] < nextSorted[b] })
		cur = next
		curSorted = nextSorted
		levelLen = (levelLen + 1) / 2
		if levelLen <= 1 {
			break
		}
	}

	if sibCursor != len(proof.Siblings) {
		return [32]byte{}, ErrProofTooLong
	}
	return cur[0], nil
}

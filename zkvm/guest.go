package zkvm

import (
	"github.com/dan-sobolev-varathon/zk-stark-mixer/crypto"
)

// ImageID is the fixed 32-byte identifier of a guest program, pinned into
// the mixer state machine at build time.
type ImageID [32]byte

// RunGuest is the pure, deterministic program executed inside the zkVM: it
// verifies a Merkle proof against the claimed notes and returns the
// encoded public-output journal. Two honest runs over the same inputs
// always produce the same journal.
func RunGuest(proofBytes []byte, indices []uint64, notes []crypto.Note, totalLeaves uint64) ([]byte, error) {
	proof, err := crypto.ProofFromBytes(proofBytes)
	if err != nil {
		return nil, err
	}

	hashes := make([][32]byte, len(notes))
	used := make([][32]byte, len(notes))
	for i, n := range notes {
		hashes[i] = n.Commitment()
		used[i] = n.Nullifier
	}

	root, err := crypto.VerifyMultiProof(proof, indices, hashes, totalLeaves)
	if err != nil {
		return nil, err
	}

	return EncodeJournal(Journal{Root: root, Used: used}), nil
}

// Package host implements the client-side proving host (C4): given a set
// of owned notes and the on-chain leaf sequence, it selects which notes to
// spend, builds the witness, drives the zkVM, and packages the result for
// submission as a withdraw action.
package host

import (
	"errors"
	"sort"

	"github.com/dan-sobolev-varathon/zk-stark-mixer/crypto"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/log"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/zkvm"
)

var (
	// ErrNoMatchingNotes is returned when none of the caller's owned notes
	// resolve to any leaf currently on chain.
	ErrNoMatchingNotes = errors.New("host: no owned notes resolve to an on-chain leaf")
)

var logger = log.Module("host")

type ownedAt struct {
	index uint64
	note  crypto.Note
}

// Prove builds a withdraw payload for the given owned notes against the
// on-chain leaf sequence leaves, using executor to run the guest under
// imageID. Notes that do not resolve to any leaf are silently dropped, per
// §4.4; if none resolve at all, ErrNoMatchingNotes is returned.
func Prove(executor zkvm.Executor, imageID zkvm.ImageID, owned []crypto.Note, leaves []crypto.Leaf) ([]byte, error) {
	positions := make(map[[32]byte]uint64, len(leaves))
	for i, l := range leaves {
		// First occurrence wins; identical leaves are permitted on chain
		// but a note only needs one matching index to be spendable.
		if _, ok := positions[l]; !ok {
			positions[l] = uint64(i)
		}
	}

	var matched []ownedAt
	for _, n := range owned {
		if pos, ok := positions[n.Commitment()]; ok {
			matched = append(matched, ownedAt{index: pos, note: n})
		}
	}
	if len(matched) == 0 {
		return nil, ErrNoMatchingNotes
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].index < matched[j].index })

	indices := make([]uint64, len(matched))
	notes := make([]crypto.Note, len(matched))
	for i, m := range matched {
		indices[i] = m.index
		notes[i] = m.note
	}

	tree := crypto.NewTree()
	if _, err := tree.Append(leaves...); err != nil {
		return nil, err
	}
	proof, err := tree.Proof(indices)
	if err != nil {
		return nil, err
	}

	receipt, err := executor.Prove(imageID, proof.Bytes(), indices, notes, uint64(len(leaves)))
	if err != nil {
		logger.Error("prover run failed", "err", err)
		return nil, err
	}

	logger.Info("built withdraw proof", "notes", len(notes), "totalLeaves", len(leaves))
	return zkvm.EncodeImageIDReceipt(imageID, receipt), nil
}

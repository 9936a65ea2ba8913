package zkvm

import (
	"errors"

	"github.com/dan-sobolev-varathon/zk-stark-mixer/crypto"
)

// ErrImageIDMismatch is returned when a receipt is verified against an
// image id other than the one it was produced for.
var ErrImageIDMismatch = errors.New("zkvm: image id mismatch")

// Executor is the narrow interface the core requires of the zkVM
// executor/verifier, treated as an out-of-scope black box per the core's
// contract with its external collaborators: it runs a guest program over
// typed inputs and returns a receipt, and independently verifies that
// receipt against a fixed program image id.
type Executor interface {
	// Prove runs the guest program with the given witness and returns an
	// opaque receipt.
	Prove(imageID ImageID, proofBytes []byte, indices []uint64, notes []crypto.Note, totalLeaves uint64) (receipt []byte, err error)
	// Verify checks a receipt against imageID and returns the guest's
	// committed journal bytes.
	Verify(imageID ImageID, receipt []byte) (journal []byte, err error)
}

// MockExecutor is a deterministic in-process stand-in for a real zkVM
// backend: it runs the guest directly and treats its journal as the
// receipt, always "verifying" successfully so long as the image id
// matches what it proved for. It lets the prover host and the mixer
// state machine be exercised end to end without a real proving backend.
type MockExecutor struct {
	imageID ImageID
}

// NewMockExecutor returns a MockExecutor that proves and verifies only
// against the given image id.
func NewMockExecutor(imageID ImageID) *MockExecutor {
	return &MockExecutor{imageID: imageID}
}

// Prove runs the guest circuit directly; its output journal doubles as the
// mock's receipt.
func (m *MockExecutor) Prove(imageID ImageID, proofBytes []byte, indices []uint64, notes []crypto.Note, totalLeaves uint64) ([]byte, error) {
	if imageID != m.imageID {
		return nil, ErrImageIDMismatch
	}
	return RunGuest(proofBytes, indices, notes, totalLeaves)
}

// Verify returns the receipt unchanged as the journal, after checking the
// image id matches.
func (m *MockExecutor) Verify(imageID ImageID, receipt []byte) ([]byte, error) {
	if imageID != m.imageID {
		return nil, ErrImageIDMismatch
	}
	return receipt, nil
}

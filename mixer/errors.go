// Package mixer implements the on-chain mixer state machine (C5): an
// append-only commitment tree, a nullifier set, per-account history, and
// the deposit/withdraw transitions that enforce value conservation.
package mixer

import "errors"

var (
	// ErrValueMismatch is returned by Deposit when the transferred value
	// does not equal Denomination times the number of hashes supplied.
	// It is the single user-recoverable failure: the caller is refunded
	// and no state changes.
	ErrValueMismatch = errors.New("mixer: transferred value does not match denomination * len(hashes)")

	// ErrInvalidImageID is returned by Withdraw when the image id carried
	// by the receipt payload does not equal the compiled-in guest image
	// id. Fatal: aborts before the zkVM verifier is ever called.
	ErrInvalidImageID = errors.New("mixer: receipt image id does not match compiled guest image id")

	// ErrInvalidProof is returned by Withdraw when the zkVM verifier
	// rejects the receipt. Fatal.
	ErrInvalidProof = errors.New("mixer: zkVM verifier rejected receipt")

	// ErrUnknownRoot is returned by Withdraw when the journal's root does
	// not match any historical root of the tree. Fatal.
	ErrUnknownRoot = errors.New("mixer: journal root is not a historical root")

	// ErrMalformedJournal is returned by Withdraw when the verifier's
	// reply cannot be decoded as a public-output journal. Fatal.
	ErrMalformedJournal = errors.New("mixer: malformed journal")

	// ErrMalformedReceipt is returned by Withdraw when the withdraw
	// payload cannot even be decoded into an image id + receipt pair.
	ErrMalformedReceipt = errors.New("mixer: malformed image-id-receipt payload")

	// ErrEmptyDeposit describes a deposit with no hashes. Deposit does not
	// return it: a deposit with no hashes and zero value is accepted,
	// appends nothing to the tree and records a zero-amount history entry.
	ErrEmptyDeposit = errors.New("mixer: deposit requires at least one hash")
)

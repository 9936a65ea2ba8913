package wallet

import "errors"

var (
	// ErrAmountNotMultiple is returned when a requested amount is not an
	// exact multiple of mixer.Denomination.
	ErrAmountNotMultiple = errors.New("wallet: amount is not a multiple of the denomination")

	// ErrNotEnoughMixing is returned by withdraw/export when fewer notes
	// are owned than the requested amount implies.
	ErrNotEnoughMixing = errors.New("wallet: not enough owned notes for the requested amount")

	// ErrNoLeaves is returned when a withdraw is attempted before any
	// leaf sequence has been observed from the chain.
	ErrNoLeaves = errors.New("wallet: no on-chain leaves available")
)

package mixer

import (
	"math/big"

	"github.com/dan-sobolev-varathon/zk-stark-mixer/core/types"
)

// Denomination is the fixed value of a single note, in base units: D = 10 * 10^12.
var Denomination = big.NewInt(10_000_000_000_000)

// Deposit is the Deposit action payload: the commitments being mixed in.
type Deposit struct {
	Hashes [][32]byte
}

// Withdraw is the Withdraw action payload: an opaque image-id-receipt blob,
// as produced by host.Prove and wrapped by zkvm.EncodeImageIDReceipt.
type Withdraw struct {
	ImageIDReceipt []byte
}

// Deposited is emitted on a successful Deposit.
type Deposited struct{}

// WrongDeposit is emitted when a Deposit's transferred value does not match
// its denomination. Refund carries the value returned to the caller.
type WrongDeposit struct {
	Refund *big.Int
}

// Withdrawed is emitted on a successful Withdraw. Amount is the number of
// denominations paid out (payout value = Amount * Denomination).
type Withdrawed struct {
	Amount uint64
}

// HistoryEntry is one entry of a per-account history sequence. Positive
// Amount is a deposit count, negative is a withdrawal count.
type HistoryEntry struct {
	Amount int64
	Time   uint64
}

// UserFrom pairs an account with a pagination offset, used by the
// HistoryFrom query to request several accounts' histories in one call.
type UserFrom struct {
	User types.Account
	From uint64
}

// UserHistory pairs an account with its returned history slice, used by
// the HistoryFrom and HistoryAll query results.
type UserHistory struct {
	User    types.Account
	History []HistoryEntry
}

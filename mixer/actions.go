package mixer

import (
	"math/big"

	"github.com/dan-sobolev-varathon/zk-stark-mixer/core/types"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/zkvm"
)

// Deposit handles the Deposit action. value is the amount transferred
// alongside the call, hashes the commitments to mix in, now the block
// timestamp. If value does not equal Denomination*len(hashes), the deposit
// is rejected: the caller gets WrongDeposit{Refund: value} back and no
// state changes. On success the hashes are appended to the tree, a
// history entry is recorded, and Deposited{} is returned.
func (s *State) Deposit(caller types.Account, value *big.Int, hashes [][32]byte, now uint64) interface{} {
	want := new(big.Int).Mul(Denomination, big.NewInt(int64(len(hashes))))
	if value.Cmp(want) != 0 {
		return WrongDeposit{Refund: new(big.Int).Set(value)}
	}

	if len(hashes) > 0 {
		if _, err := s.tree.Append(hashes...); err != nil {
			return WrongDeposit{Refund: new(big.Int).Set(value)}
		}
	}

	s.mu.Lock()
	s.appendHistory(caller, HistoryEntry{Amount: int64(len(hashes)), Time: now})
	s.mu.Unlock()

	s.metrics.Counter("mixer.deposits").Add(1)
	s.metrics.Gauge("mixer.tree_size").Set(int64(s.tree.Size()))

	s.logger.Info("deposit", "account", caller.Hex(), "notes", len(hashes))
	return Deposited{}
}

// BeginWithdraw is the pre-suspension half of Withdraw: it extracts the
// claimed image id from the payload and checks it against the compiled-in
// guest image id before anything is forwarded to the zkVM verifier.
func (s *State) BeginWithdraw(payload []byte) (zkvm.ImageID, []byte, error) {
	imageID, receipt, err := zkvm.DecodeImageIDReceipt(payload)
	if err != nil {
		return zkvm.ImageID{}, nil, ErrMalformedReceipt
	}
	if imageID != s.imageID {
		return zkvm.ImageID{}, nil, ErrInvalidImageID
	}
	return imageID, receipt, nil
}

// FinishWithdraw is the post-suspension half of Withdraw: given the
// verifier's journal bytes, it re-validates root membership and nullifier
// freshness against the *current* state (which may have changed since
// BeginWithdraw ran) and applies the payout.
//
// Nullifier collisions are not an error: a used entry already present in
// the set is silently skipped and does not contribute to the payout.
func (s *State) FinishWithdraw(caller types.Account, journalBytes []byte, now uint64) (interface{}, error) {
	journal, err := zkvm.DecodeJournal(journalBytes)
	if err != nil {
		return nil, ErrMalformedJournal
	}
	if !s.tree.HasHistoricalRoot(journal.Root) {
		return nil, ErrUnknownRoot
	}

	var amount uint64
	for _, u := range journal.Used {
		if s.nullifiers.Insert(u) {
			amount++
		}
	}

	s.mu.Lock()
	s.appendHistory(caller, HistoryEntry{Amount: -int64(amount), Time: now})
	s.mu.Unlock()

	s.metrics.Counter("mixer.withdrawals").Add(1)
	s.metrics.Counter("mixer.notes_redeemed").Add(int64(amount))
	s.metrics.Gauge("mixer.nullifier_set_size").Set(int64(s.nullifiers.Len()))

	s.logger.Info("withdraw", "account", caller.Hex(), "amount", amount)
	return Withdrawed{Amount: amount}, nil
}

// Withdraw handles the Withdraw action in full. The call into
// executor.Verify is the handler's single suspension point: it runs with
// no state lock held, so other actions may be processed by the time it
// returns. FinishWithdraw re-validates everything it depends on against
// the state as it stands at resume time, per §5 and §9.
func (s *State) Withdraw(caller types.Account, payload []byte, now uint64) (interface{}, error) {
	imageID, receipt, err := s.BeginWithdraw(payload)
	if err != nil {
		return nil, err
	}

	journalBytes, err := s.executor.Verify(imageID, receipt) // suspension point
	if err != nil {
		return nil, ErrInvalidProof
	}

	return s.FinishWithdraw(caller, journalBytes, now)
}

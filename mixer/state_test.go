package mixer

import (
	"math/big"
	"testing"

	"github.com/dan-sobolev-varathon/zk-stark-mixer/core/types"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/crypto"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/host"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/zkvm"
)

var testImageID = zkvm.ImageID{0x42}

func newTestState() *State {
	return New(testImageID, zkvm.NewMockExecutor(testImageID))
}

func noteOf(b byte) crypto.Note {
	var n crypto.Note
	for i := range n.Nullifier {
		n.Nullifier[i] = b
	}
	for i := range n.Salt {
		n.Salt[i] = b
	}
	return n
}

func accountOf(b byte) types.Account {
	var a types.Account
	a[0] = b
	return a
}

func depositValue(n int) *big.Int {
	return new(big.Int).Mul(Denomination, big.NewInt(int64(n)))
}

// buildWithdrawPayload reconstructs the tree from leaves, proves ownership
// of owned via the host, and returns the payload ready for State.Withdraw.
func buildWithdrawPayload(t *testing.T, s *State, owned []crypto.Note) []byte {
	t.Helper()
	leaves := s.tree.Leaves()
	payload, err := host.Prove(s.executor, s.imageID, owned, leaves)
	if err != nil {
		t.Fatalf("host.Prove: %v", err)
	}
	return payload
}

func TestDeposit_ValueMismatchRefundsAndLeavesStateUnchanged(t *testing.T) {
	s := newTestState()
	acct := accountOf(0x01)

	ev := s.Deposit(acct, depositValue(1), [][32]byte{{0x01}, {0x02}}, 1)
	wd, ok := ev.(WrongDeposit)
	if !ok {
		t.Fatalf("got %#v, want WrongDeposit", ev)
	}
	if wd.Refund.Cmp(depositValue(1)) != 0 {
		t.Fatalf("refund mismatch: got %v", wd.Refund)
	}
	if s.tree.Size() != 0 {
		t.Fatalf("tree should be untouched, size=%d", s.tree.Size())
	}
}

func TestDeposit_Success(t *testing.T) {
	s := newTestState()
	acct := accountOf(0x01)
	n := noteOf(0x01)

	ev := s.Deposit(acct, depositValue(1), [][32]byte{n.Commitment()}, 100)
	if _, ok := ev.(Deposited); !ok {
		t.Fatalf("got %#v, want Deposited", ev)
	}
	if s.tree.Size() != 1 {
		t.Fatalf("tree size = %d, want 1", s.tree.Size())
	}
	hist := s.historyFromLocked(acct, 0)
	if len(hist) != 1 || hist[0].Amount != 1 || hist[0].Time != 100 {
		t.Fatalf("history = %+v", hist)
	}
}

func (s *State) historyFromLocked(account types.Account, from uint64) []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyFrom(account, from)
}

func TestWithdraw_InvalidImageIDIsFatal(t *testing.T) {
	s := newTestState()
	acct := accountOf(0x01)
	n := noteOf(0x01)
	s.Deposit(acct, depositValue(1), [][32]byte{n.Commitment()}, 1)

	wrongID := zkvm.ImageID{0x99}
	payload, err := host.Prove(zkvm.NewMockExecutor(wrongID), wrongID, []crypto.Note{n}, s.tree.Leaves())
	if err != nil {
		t.Fatalf("host.Prove: %v", err)
	}

	if _, err := s.Withdraw(acct, payload, 2); err != ErrInvalidImageID {
		t.Fatalf("got %v, want ErrInvalidImageID", err)
	}
}

func TestWithdraw_UnknownRootIsFatal(t *testing.T) {
	s := newTestState()
	acct := accountOf(0x01)
	n := noteOf(0x01)
	s.Deposit(acct, depositValue(1), [][32]byte{n.Commitment()}, 1)

	payload := buildWithdrawPayload(t, s, []crypto.Note{n})

	stray := newTestState()
	if _, err := stray.Withdraw(acct, payload, 2); err != ErrUnknownRoot {
		t.Fatalf("got %v, want ErrUnknownRoot", err)
	}
}

func TestWithdraw_DoubleSpendDegradesPayoutSilently(t *testing.T) {
	s := newTestState()
	acct := accountOf(0x01)
	n := noteOf(0x01)
	s.Deposit(acct, depositValue(1), [][32]byte{n.Commitment()}, 1)
	payload := buildWithdrawPayload(t, s, []crypto.Note{n})

	ev, err := s.Withdraw(acct, payload, 2)
	if err != nil {
		t.Fatalf("first withdraw: %v", err)
	}
	if ev.(Withdrawed).Amount != 1 {
		t.Fatalf("first withdraw amount = %d, want 1", ev.(Withdrawed).Amount)
	}

	ev2, err := s.Withdraw(acct, payload, 3)
	if err != nil {
		t.Fatalf("replay withdraw: %v", err)
	}
	if ev2.(Withdrawed).Amount != 0 {
		t.Fatalf("replay amount = %d, want 0", ev2.(Withdrawed).Amount)
	}
	if s.nullifiers.Len() != 1 {
		t.Fatalf("nullifier set size = %d, want 1", s.nullifiers.Len())
	}
}

func TestWithdraw_StaleRootStillSucceeds(t *testing.T) {
	s := newTestState()
	a := accountOf(0x01)
	b := accountOf(0x02)
	na := noteOf(0x01)

	s.Deposit(a, depositValue(1), [][32]byte{na.Commitment()}, 1)
	payload := buildWithdrawPayload(t, s, []crypto.Note{na})

	// Tree grows after the proof was built but before it's submitted.
	s.Deposit(b, depositValue(2), [][32]byte{{0x10}, {0x11}}, 2)

	ev, err := s.Withdraw(a, payload, 3)
	if err != nil {
		t.Fatalf("Withdraw with stale root: %v", err)
	}
	if ev.(Withdrawed).Amount != 1 {
		t.Fatalf("amount = %d, want 1", ev.(Withdrawed).Amount)
	}
}

func TestQuery_LeavesAndHistoryAll(t *testing.T) {
	s := newTestState()
	a := accountOf(0x01)
	n := noteOf(0x01)
	s.Deposit(a, depositValue(1), [][32]byte{n.Commitment()}, 1)

	res := s.Query(QueryLeaves{}).(ResultLeaves)
	if len(res.Leaves) != 1 || res.Leaves[0] != n.Commitment() {
		t.Fatalf("leaves = %+v", res.Leaves)
	}

	all := s.Query(QueryHistoryAll{}).(ResultHistoryAll)
	if len(all.Histories) != 1 || all.Histories[0].User != a {
		t.Fatalf("history all = %+v", all.Histories)
	}
}

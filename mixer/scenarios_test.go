package mixer

import (
	"testing"

	"github.com/dan-sobolev-varathon/zk-stark-mixer/crypto"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/host"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/zkvm"
)

// TestScenario_S1_SingleDepositSingleWithdraw mirrors S1: a note whose
// 64-byte secret is all 0x01, transferring exactly one denomination.
func TestScenario_S1_SingleDepositSingleWithdraw(t *testing.T) {
	s := newTestState()
	a := accountOf(0x01)
	n := noteOf(0x01)

	ev := s.Deposit(a, depositValue(1), [][32]byte{n.Commitment()}, 10)
	if _, ok := ev.(Deposited); !ok {
		t.Fatalf("deposit: got %#v", ev)
	}

	wantCommitment := crypto.Digest(n.Bytes())
	wantRoot := crypto.Digest(wantCommitment[:])
	if s.tree.Leaves()[0] != wantCommitment {
		t.Fatalf("leaf mismatch")
	}
	root, _ := s.tree.Root()
	if root != wantRoot {
		t.Fatalf("root mismatch: got %x, want %x", root, wantRoot)
	}

	payload := buildWithdrawPayload(t, s, []crypto.Note{n})
	ev2, err := s.Withdraw(a, payload, 20)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if ev2.(Withdrawed).Amount != 1 {
		t.Fatalf("payout amount = %d, want 1", ev2.(Withdrawed).Amount)
	}

	hist := s.historyFromLocked(a, 0)
	if len(hist) != 2 || hist[0].Amount != 1 || hist[1].Amount != -1 {
		t.Fatalf("history = %+v, want [+1, -1]", hist)
	}
}

// TestScenario_S2_WrongValueDeposit mirrors S2: two hashes but only one
// denomination transferred.
func TestScenario_S2_WrongValueDeposit(t *testing.T) {
	s := newTestState()
	a := accountOf(0x01)

	ev := s.Deposit(a, depositValue(1), [][32]byte{{0x01}, {0x02}}, 1)
	if _, ok := ev.(WrongDeposit); !ok {
		t.Fatalf("got %#v, want WrongDeposit", ev)
	}
	if s.tree.Size() != 0 {
		t.Fatalf("tree size = %d, want 0", s.tree.Size())
	}
	if len(s.historyFromLocked(a, 0)) != 0 {
		t.Fatalf("history should be untouched")
	}
}

// TestScenario_S3_DoubleSpendAttempt mirrors S3: replaying S1's receipt
// yields a zero payout without inserting a new nullifier.
func TestScenario_S3_DoubleSpendAttempt(t *testing.T) {
	s := newTestState()
	a := accountOf(0x01)
	n := noteOf(0x01)
	s.Deposit(a, depositValue(1), [][32]byte{n.Commitment()}, 10)
	payload := buildWithdrawPayload(t, s, []crypto.Note{n})

	if _, err := s.Withdraw(a, payload, 20); err != nil {
		t.Fatalf("first withdraw: %v", err)
	}

	ev, err := s.Withdraw(a, payload, 30)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if ev.(Withdrawed).Amount != 0 {
		t.Fatalf("replay amount = %d, want 0", ev.(Withdrawed).Amount)
	}
	if s.nullifiers.Len() != 1 {
		t.Fatalf("nullifier set size = %d, want 1", s.nullifiers.Len())
	}

	hist := s.historyFromLocked(a, 0)
	if len(hist) != 3 || hist[2].Amount != 0 {
		t.Fatalf("history = %+v, want trailing 0", hist)
	}
}

// TestScenario_S4_StaleRoot mirrors S4: a proof built at tree-size 3 still
// verifies after the tree grows to size 5 before submission.
func TestScenario_S4_StaleRoot(t *testing.T) {
	s := newTestState()
	a := accountOf(0x01)
	b := accountOf(0x02)
	na := noteOf(0x01)

	s.Deposit(a, depositValue(3), [][32]byte{na.Commitment(), {0x02}, {0x03}}, 1)
	payload := buildWithdrawPayload(t, s, []crypto.Note{na})

	s.Deposit(b, depositValue(2), [][32]byte{{0x04}, {0x05}}, 2)
	if s.tree.Size() != 5 {
		t.Fatalf("tree size = %d, want 5", s.tree.Size())
	}

	ev, err := s.Withdraw(a, payload, 3)
	if err != nil {
		t.Fatalf("withdraw against stale root: %v", err)
	}
	if ev.(Withdrawed).Amount != 1 {
		t.Fatalf("amount = %d, want 1", ev.(Withdrawed).Amount)
	}
}

// TestScenario_S5_WrongImageID mirrors S5: a receipt carrying a foreign
// image id aborts before the zkVM verifier is ever invoked.
func TestScenario_S5_WrongImageID(t *testing.T) {
	s := newTestState()
	a := accountOf(0x01)
	n := noteOf(0x01)
	s.Deposit(a, depositValue(1), [][32]byte{n.Commitment()}, 1)

	foreignID := testImageID
	foreignID[0] ^= 0xff
	payload, err := host.Prove(zkvm.NewMockExecutor(foreignID), foreignID, []crypto.Note{n}, s.tree.Leaves())
	if err != nil {
		t.Fatalf("building foreign payload: %v", err)
	}

	if _, err := s.Withdraw(a, payload, 2); err != ErrInvalidImageID {
		t.Fatalf("got %v, want ErrInvalidImageID", err)
	}
}

// TestScenario_S6_MixThenWithdrawAcrossUsers mirrors S6: A and B each
// deposit one note, only B withdraws.
func TestScenario_S6_MixThenWithdrawAcrossUsers(t *testing.T) {
	s := newTestState()
	a := accountOf(0x01)
	b := accountOf(0x02)
	na := noteOf(0x01)
	nb := noteOf(0x02)

	s.Deposit(a, depositValue(1), [][32]byte{na.Commitment()}, 1)
	s.Deposit(b, depositValue(1), [][32]byte{nb.Commitment()}, 2)

	payload := buildWithdrawPayload(t, s, []crypto.Note{nb})
	ev, err := s.Withdraw(b, payload, 3)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if ev.(Withdrawed).Amount != 1 {
		t.Fatalf("amount = %d, want 1", ev.(Withdrawed).Amount)
	}
	if s.nullifiers.Len() != 1 {
		t.Fatalf("nullifier set size = %d, want 1", s.nullifiers.Len())
	}
	if !s.nullifiers.Contains(nb.Nullifier) {
		t.Fatalf("B's nullifier should be present")
	}
	if s.nullifiers.Contains(na.Nullifier) {
		t.Fatalf("A's note must remain untouched")
	}
}

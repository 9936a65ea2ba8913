package wallet

import (
	"math/big"
	"testing"

	"github.com/dan-sobolev-varathon/zk-stark-mixer/core/types"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/mixer"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/zkvm"
)

var testImageID = zkvm.ImageID{0x07}

func newTestWallet() (*Wallet, *mixer.State) {
	state := mixer.New(testImageID, zkvm.NewMockExecutor(testImageID))
	w := New(NewVault(), state, zkvm.NewMockExecutor(testImageID), testImageID)
	return w, state
}

func TestWallet_DepositAndWithdrawRoundTrip(t *testing.T) {
	w, _ := newTestWallet()
	acct := types.Account{0x01}

	slots, err := w.Deposit(acct, mixer.Denomination, 0, "hunter2", 1)
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if len(slots) != 1 || slots[0] != 0 {
		t.Fatalf("slots = %v, want [0]", slots)
	}
	if w.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", w.Len())
	}

	ev, err := w.Withdraw(acct, mixer.Denomination, 2)
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if ev.(mixer.Withdrawed).Amount != 1 {
		t.Fatalf("amount = %d, want 1", ev.(mixer.Withdrawed).Amount)
	}
	if w.Len() != 0 {
		t.Fatalf("Len() after withdraw = %d, want 0", w.Len())
	}
}

func TestWallet_DepositWrongValueReturnsErrAmountNotMultiple(t *testing.T) {
	w, _ := newTestWallet()
	acct := types.Account{0x01}

	wrong := new(big.Int).Add(mixer.Denomination, big.NewInt(1))
	_, err := w.Deposit(acct, wrong, 0, "pw", 1)
	if err != ErrAmountNotMultiple {
		t.Fatalf("got %v, want ErrAmountNotMultiple", err)
	}
	if w.Len() != 0 {
		t.Fatalf("wallet should have no notes after a rejected deposit")
	}
}

func TestWallet_WithdrawNotEnoughMixing(t *testing.T) {
	w, _ := newTestWallet()
	acct := types.Account{0x01}
	_, err := w.Withdraw(acct, mixer.Denomination, 1)
	if err != ErrNotEnoughMixing {
		t.Fatalf("got %v, want ErrNotEnoughMixing", err)
	}
}

func TestWallet_AmountNotMultipleRejected(t *testing.T) {
	w, _ := newTestWallet()
	acct := types.Account{0x01}
	bad := big.NewInt(1)
	if _, err := w.Deposit(acct, bad, 0, "pw", 1); err != ErrAmountNotMultiple {
		t.Fatalf("got %v, want ErrAmountNotMultiple", err)
	}
}

func TestWallet_CheckFreesMatchingSlots(t *testing.T) {
	w, state := newTestWallet()
	acct := types.Account{0x01}
	slots, err := w.Deposit(acct, mixer.Denomination, 10, "pw", 1)
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	leaves := state.Query(mixer.QueryLeaves{}).(mixer.ResultLeaves).Leaves
	remaining, freed := w.Check(leaves)
	if remaining != 0 {
		t.Fatalf("remaining = %d, want 0", remaining)
	}
	if len(freed) != 1 || freed[0] != slots[0] {
		t.Fatalf("freed = %v, want %v", freed, slots)
	}
}

func TestWallet_ExportImportRoundTrip(t *testing.T) {
	w, _ := newTestWallet()
	acct := types.Account{0x01}
	if _, err := w.Deposit(acct, mixer.Denomination, 0, "pw", 1); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	cipher, err := w.Export(mixer.Denomination, "backup-pw")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	w2, _ := newTestWallet()
	added, err := w2.Import(cipher, "backup-pw", 0)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(added) != 1 || w2.Len() != 1 {
		t.Fatalf("import did not add the note: added=%v len=%d", added, w2.Len())
	}
}

func TestWallet_ActivateRebuildsFromVault(t *testing.T) {
	w, _ := newTestWallet()
	acct := types.Account{0x01}
	slots, err := w.Deposit(acct, mixer.Denomination, 5, "pw", 1)
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	fresh := New(w.vault, nil, zkvm.NewMockExecutor(testImageID), testImageID)
	if err := fresh.Activate(slots, "pw"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if fresh.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", fresh.Len())
	}
}

// Package driver implements the thin boundary surface a GUI shell calls
// (C7): activate-accounts, deposit, withdraw, check-mixing,
// import/export-mixing, and account lifecycle. It is orchestration only --
// every operation delegates to the wallet, the vault, or the mixer state
// machine, and normalizes errors to string form for a UI layer that has no
// native error type of its own.
package driver

import (
	"crypto/ed25519"
	"crypto/rand"
	"math/big"
	"sync"
	"time"

	"github.com/dan-sobolev-varathon/zk-stark-mixer/core/types"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/crypto"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/log"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/wallet"
)

type accountRecord struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// Driver is the GUI-facing façade over a wallet and its vault.
type Driver struct {
	mu      sync.Mutex
	wallet  *wallet.Wallet
	vault   *wallet.Vault
	account map[types.Account]accountRecord
	order   []types.Account

	logger *log.Logger
}

// New returns a driver orchestrating w and v.
func New(w *wallet.Wallet, v *wallet.Vault) *Driver {
	return &Driver{
		wallet:  w,
		vault:   v,
		account: make(map[types.Account]accountRecord),
		logger:  log.Module("driver"),
	}
}

// ActivateAccounts decrypts the given vault slots under password and
// rebuilds the wallet's in-memory note index from them.
func (d *Driver) ActivateAccounts(slots []uint64, password string) string {
	if err := d.wallet.Activate(slots, password); err != nil {
		return err.Error()
	}
	return ""
}

// Deposit draws amount/Denomination notes, submits them, and on success
// returns the vault slot indices newly occupied.
func (d *Driver) Deposit(account types.Account, amount *big.Int, nextSlot uint64, password string) ([]uint64, string) {
	slots, err := d.wallet.Deposit(account, amount, nextSlot, password, now())
	if err != nil {
		return nil, err.Error()
	}
	return slots, ""
}

// Withdraw spends amount/Denomination owned notes back to account.
func (d *Driver) Withdraw(account types.Account, amount *big.Int) string {
	if _, err := d.wallet.Withdraw(account, amount, now()); err != nil {
		return err.Error()
	}
	return ""
}

// CheckMixing matches leaves against the owned-note index, returning the
// remaining note count and the vault slots freed by any match.
func (d *Driver) CheckMixing(leaves []crypto.Leaf) (int, []uint64) {
	return d.wallet.Check(leaves)
}

// ImportMixing decrypts cipher under password and merges any new notes it
// contains into the wallet, starting at nextSlot.
func (d *Driver) ImportMixing(cipher, password string, nextSlot uint64) ([]uint64, string) {
	added, err := d.wallet.Import(cipher, password, nextSlot)
	if err != nil {
		return nil, err.Error()
	}
	return added, ""
}

// ExportMixing serializes and encrypts the first amount/Denomination owned
// notes under password.
func (d *Driver) ExportMixing(amount *big.Int, password string) (string, string) {
	cipher, err := d.wallet.Export(amount, password)
	if err != nil {
		return "", err.Error()
	}
	return cipher, ""
}

// CreateNewAccount generates a fresh ed25519 keypair and registers it
// under its derived account id.
func (d *Driver) CreateNewAccount() (types.Account, string) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return types.Account{}, err.Error()
	}
	acct := types.BytesToAccount(pub)

	d.mu.Lock()
	if _, exists := d.account[acct]; !exists {
		d.order = append(d.order, acct)
	}
	d.account[acct] = accountRecord{priv: priv, pub: pub}
	d.mu.Unlock()

	return acct, ""
}

// ExportAccountJSON seals account's keypair into the version-3 envelope
// format under password.
func (d *Driver) ExportAccountJSON(account types.Account, password string) (string, string) {
	d.mu.Lock()
	rec, ok := d.account[account]
	d.mu.Unlock()
	if !ok {
		return "", "driver: unknown account"
	}

	var priv64 [64]byte
	var pub32 [32]byte
	copy(priv64[:], rec.priv)
	copy(pub32[:], rec.pub)

	envelope, err := wallet.ExportAccount(priv64, pub32, password)
	if err != nil {
		return "", err.Error()
	}
	return envelope, ""
}

// ImportAccountJSON decrypts envelope under password and registers the
// recovered keypair.
func (d *Driver) ImportAccountJSON(envelope, password string) (types.Account, string) {
	priv64, pub32, err := wallet.ImportAccount(envelope, password)
	if err != nil {
		return types.Account{}, err.Error()
	}
	acct := types.BytesToAccount(pub32[:])

	d.mu.Lock()
	if _, exists := d.account[acct]; !exists {
		d.order = append(d.order, acct)
	}
	d.account[acct] = accountRecord{priv: ed25519.PrivateKey(priv64[:]), pub: ed25519.PublicKey(pub32[:])}
	d.mu.Unlock()

	return acct, ""
}

// ListAccounts returns every registered account id, in creation order.
func (d *Driver) ListAccounts() []types.Account {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]types.Account, len(d.order))
	copy(out, d.order)
	return out
}

func now() uint64 { return uint64(time.Now().Unix()) }

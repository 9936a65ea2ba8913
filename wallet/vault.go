// Package wallet implements the client-side owned-note index (C6): it
// maps each note's public half to its full secret, persists every note
// encrypted in a per-slot vault entry, and exposes add / remove-on-spend /
// scan-against-chain-leaves / encrypted export-import operations.
package wallet

import (
	"crypto/rand"
	"errors"
	"sort"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	saltLength  = 32
	nonceLength = 24

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

var (
	// ErrSlotNotFound is returned when a vault operation targets an index
	// with no stored entry.
	ErrSlotNotFound = errors.New("wallet: no vault entry at that slot")
	// ErrWrongPassword is returned when decryption fails, almost always
	// because the wrong password was supplied.
	ErrWrongPassword = errors.New("wallet: decryption failed (wrong password?)")
)

// encryptedSlot is one vault entry: a note's plaintext bytes sealed under
// a password-derived key, with its own salt and nonce.
type encryptedSlot struct {
	salt       [saltLength]byte
	nonce      [nonceLength]byte
	ciphertext []byte
}

// Vault is the secrets store backing the wallet: each owned note lives in
// exactly one numbered slot, encrypted at rest. It plays the role the
// core assumes of an external secrets vault (§6), implemented in-process
// here rather than delegated to an OS keyring.
type Vault struct {
	mu    sync.RWMutex
	slots map[uint64]encryptedSlot
}

// NewVault returns an empty vault.
func NewVault() *Vault {
	return &Vault{slots: make(map[uint64]encryptedSlot)}
}

// deriveKey stretches password with scrypt (N=2^15, r=8, p=1) into a
// 32-byte secretbox key, using the same parameters as the exported-account
// envelope (§6).
func deriveKey(password string, salt []byte) ([32]byte, error) {
	var key [32]byte
	raw, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, 32)
	if err != nil {
		return key, err
	}
	copy(key[:], raw)
	return key, nil
}

// Put encrypts plaintext under password and stores it at slot index,
// overwriting any existing entry there.
func (v *Vault) Put(index uint64, plaintext []byte, password string) error {
	var es encryptedSlot
	if _, err := rand.Read(es.salt[:]); err != nil {
		return err
	}
	if _, err := rand.Read(es.nonce[:]); err != nil {
		return err
	}
	key, err := deriveKey(password, es.salt[:])
	if err != nil {
		return err
	}
	es.ciphertext = secretbox.Seal(nil, plaintext, &es.nonce, &key)

	v.mu.Lock()
	v.slots[index] = es
	v.mu.Unlock()
	return nil
}

// Get decrypts and returns the plaintext stored at slot index.
func (v *Vault) Get(index uint64, password string) ([]byte, error) {
	v.mu.RLock()
	es, ok := v.slots[index]
	v.mu.RUnlock()
	if !ok {
		return nil, ErrSlotNotFound
	}

	key, err := deriveKey(password, es.salt[:])
	if err != nil {
		return nil, err
	}
	plaintext, ok := secretbox.Open(nil, es.ciphertext, &es.nonce, &key)
	if !ok {
		return nil, ErrWrongPassword
	}
	return plaintext, nil
}

// Delete removes the entry at slot index, if any.
func (v *Vault) Delete(index uint64) {
	v.mu.Lock()
	delete(v.slots, index)
	v.mu.Unlock()
}

// Indices returns every occupied slot index, ascending.
func (v *Vault) Indices() []uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]uint64, 0, len(v.slots))
	for idx := range v.slots {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

package wallet

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"math/big"
	"sync"

	"github.com/dan-sobolev-varathon/zk-stark-mixer/core/types"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/crypto"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/host"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/log"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/mixer"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/zkvm"
	"golang.org/x/crypto/nacl/secretbox"
)

type ownedNote struct {
	note crypto.Note
	slot uint64
}

// Wallet is the client-side owned-note index (C6). It maps a note's
// commitment (its public half) to the full secret and a vault slot,
// persists every note encrypted in the vault, and drives the prover host
// and the mixer state machine to deposit and withdraw.
//
// mu serializes every access to notes/order. It is released before the
// prover run in Withdraw and before the key derivation in Export; Deposit
// and Import keep it held while they write each note's vault slot.
type Wallet struct {
	mu sync.Mutex

	vault *Vault
	state *mixer.State

	executor zkvm.Executor
	imageID  zkvm.ImageID

	notes map[[32]byte]ownedNote
	order [][32]byte // insertion order of notes map keys, for deterministic spend order

	logger *log.Logger
}

// New returns a wallet with an empty owned-note index, backed by vault and
// driving state through executor/imageID for proving.
func New(vault *Vault, state *mixer.State, executor zkvm.Executor, imageID zkvm.ImageID) *Wallet {
	return &Wallet{
		vault:    vault,
		state:    state,
		executor: executor,
		imageID:  imageID,
		notes:    make(map[[32]byte]ownedNote),
		logger:   log.Module("wallet"),
	}
}

// insert and remove touch notes/order directly. Caller must hold w.mu.
func (w *Wallet) insert(n crypto.Note, slot uint64) {
	c := n.Commitment()
	if _, exists := w.notes[c]; !exists {
		w.order = append(w.order, c)
	}
	w.notes[c] = ownedNote{note: n, slot: slot}
}

func (w *Wallet) remove(commitment [32]byte) {
	on, ok := w.notes[commitment]
	if !ok {
		return
	}
	delete(w.notes, commitment)
	w.vault.Delete(on.slot)
	for i, c := range w.order {
		if c == commitment {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Activate decrypts each listed slot under password and rebuilds the
// in-memory owned-note map from them.
func (w *Wallet) Activate(slots []uint64, password string) error {
	notes := make([]crypto.Note, 0, len(slots))
	for _, slot := range slots {
		raw, err := w.vault.Get(slot, password)
		if err != nil {
			return err
		}
		n, err := crypto.NoteFromBytes(raw)
		if err != nil {
			return err
		}
		notes = append(notes, n)
	}

	w.mu.Lock()
	for i, n := range notes {
		w.insert(n, slots[i])
	}
	w.mu.Unlock()
	return nil
}

// Deposit draws amount/Denomination fresh notes, submits a deposit action
// for their commitments, and on success writes each note into a fresh
// slot starting at nextSlot. Returns the slot indices created.
func (w *Wallet) Deposit(account types.Account, amount *big.Int, nextSlot uint64, password string, now uint64) ([]uint64, error) {
	count, err := denominationCount(amount)
	if err != nil {
		return nil, err
	}

	drawn := make([]crypto.Note, count)
	hashes := make([][32]byte, count)
	for i := 0; i < count; i++ {
		var secret [crypto.NoteSize]byte
		if _, err := rand.Read(secret[:]); err != nil {
			return nil, err
		}
		n, err := crypto.NoteFromBytes(secret[:])
		if err != nil {
			return nil, err
		}
		drawn[i] = n
		hashes[i] = n.Commitment()
	}

	event := w.state.Deposit(account, amount, hashes, now)
	if _, ok := event.(mixer.WrongDeposit); ok {
		return nil, mixer.ErrValueMismatch
	}

	slots := make([]uint64, count)
	w.mu.Lock()
	for i, n := range drawn {
		slot := nextSlot + uint64(i)
		if err := w.vault.Put(slot, n.Bytes(), password); err != nil {
			w.mu.Unlock()
			return nil, err
		}
		w.insert(n, slot)
		slots[i] = slot
	}
	w.mu.Unlock()

	w.logger.Info("deposit", "account", account.Hex(), "notes", count)
	return slots, nil
}

// Check matches each presented leaf against the owned-note index: a match
// marks the note consumed, deleting its vault slot. It returns the
// remaining owned-note count and the slot indices freed.
func (w *Wallet) Check(leaves []crypto.Leaf) (remaining int, freed []uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, leaf := range leaves {
		if on, ok := w.notes[leaf]; ok {
			freed = append(freed, on.slot)
			w.remove(leaf)
		}
	}
	return len(w.notes), freed
}

// Withdraw spends the first amount/Denomination owned notes (in insertion
// order), building a withdraw proof against the chain's current leaves and
// submitting it.
func (w *Wallet) Withdraw(account types.Account, amount *big.Int, now uint64) (interface{}, error) {
	count, err := denominationCount(amount)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	if count > len(w.order) {
		w.mu.Unlock()
		return nil, ErrNotEnoughMixing
	}
	spend := make([]crypto.Note, count)
	commitments := make([][32]byte, count)
	for i := 0; i < count; i++ {
		c := w.order[i]
		spend[i] = w.notes[c].note
		commitments[i] = c
	}
	w.mu.Unlock()

	leaves := w.state.Query(mixer.QueryLeaves{}).(mixer.ResultLeaves).Leaves
	if len(leaves) == 0 {
		return nil, ErrNoLeaves
	}

	// mu is released for the duration of the prover run: proving is the
	// long operation in this method and must not block other wallet
	// operations that only touch the note index.
	payload, err := host.Prove(w.executor, w.imageID, spend, leaves)
	if err != nil {
		return nil, err
	}

	event, err := w.state.Withdraw(account, payload, now)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	for _, c := range commitments {
		w.remove(c)
	}
	w.mu.Unlock()

	w.logger.Info("withdraw", "account", account.Hex(), "notes", count)
	return event, nil
}

// Export serializes the first amount/Denomination owned notes as a
// length-prefixed sequence and encrypts the result under password. The
// exported notes remain in the wallet; this backs up, not removes, them.
func (w *Wallet) Export(amount *big.Int, password string) (string, error) {
	count, err := denominationCount(amount)
	if err != nil {
		return "", err
	}

	w.mu.Lock()
	if count > len(w.order) {
		w.mu.Unlock()
		return "", ErrNotEnoughMixing
	}
	buf := make([]byte, 4, 4+count*crypto.NoteSize)
	binary.LittleEndian.PutUint32(buf, uint32(count))
	for i := 0; i < count; i++ {
		n := w.notes[w.order[i]].note
		buf = append(buf, n.Bytes()...)
	}
	w.mu.Unlock()

	var salt [saltLength]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return "", err
	}
	key, err := deriveKey(password, salt[:])
	if err != nil {
		return "", err
	}
	var nonce [nonceLength]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", err
	}
	ciphertext := secretbox.Seal(nil, buf, &nonce, &key)

	out := append(append([]byte{}, salt[:]...), nonce[:]...)
	out = append(out, ciphertext...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Import decrypts cipher under password, and for every note not already
// owned inserts it at a fresh slot starting at nextSlot.
func (w *Wallet) Import(cipher string, password string, nextSlot uint64) ([]uint64, error) {
	raw, err := base64.StdEncoding.DecodeString(cipher)
	if err != nil {
		return nil, err
	}
	if len(raw) < saltLength+nonceLength {
		return nil, ErrInvalidEnvelope
	}
	salt := raw[:saltLength]
	var nonce [nonceLength]byte
	copy(nonce[:], raw[saltLength:saltLength+nonceLength])
	ciphertext := raw[saltLength+nonceLength:]

	key, err := deriveKey(password, salt)
	if err != nil {
		return nil, err
	}
	plaintext, ok := secretbox.Open(nil, ciphertext, &nonce, &key)
	if !ok {
		return nil, ErrWrongPassword
	}
	if len(plaintext) < 4 {
		return nil, ErrInvalidEnvelope
	}
	count := int(binary.LittleEndian.Uint32(plaintext[:4]))
	if len(plaintext) != 4+count*crypto.NoteSize {
		return nil, ErrInvalidEnvelope
	}

	var added []uint64
	next := nextSlot
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := 0; i < count; i++ {
		start := 4 + i*crypto.NoteSize
		n, err := crypto.NoteFromBytes(plaintext[start : start+crypto.NoteSize])
		if err != nil {
			return nil, err
		}
		if _, exists := w.notes[n.Commitment()]; exists {
			continue
		}
		if err := w.vault.Put(next, n.Bytes(), password); err != nil {
			return nil, err
		}
		w.insert(n, next)
		added = append(added, next)
		next++
	}
	return added, nil
}

// Len returns the number of notes currently owned.
func (w *Wallet) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.order)
}

func denominationCount(amount *big.Int) (int, error) {
	if amount.Sign() <= 0 {
		return 0, ErrAmountNotMultiple
	}
	q, r := new(big.Int).QuoRem(amount, mixer.Denomination, new(big.Int))
	if r.Sign() != 0 {
		return 0, ErrAmountNotMultiple
	}
	return int(q.Int64()), nil
}

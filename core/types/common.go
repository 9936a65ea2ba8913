// Package types defines the chain-agnostic identifiers shared by the
// mixer's contract, prover host, and wallet.
package types

import (
	"encoding/hex"
	"fmt"
)

const (
	// HashLength is the width of a commitment, nullifier, or Merkle root.
	HashLength = 32
	// AccountLength is the width of a caller identity, matching the
	// width of the actor-model chain runtime's own account ids rather
	// than any one chain's native address format.
	AccountLength = 32
)

// Hash is a 32-byte digest: a commitment, a nullifier, or a Merkle root.
type Hash [HashLength]byte

// Account identifies the caller of a mixer action. It is chain-agnostic by
// design (the mixer core never assumes an EVM-style 20-byte address).
type Account [AccountLength]byte

// BytesToHash converts bytes to Hash, left-padding if shorter than 32 bytes.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash converts a hex string to Hash.
func HexToHash(s string) Hash {
	return BytesToHash(fromHex(s))
}

// Bytes returns the byte representation of the hash.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the hex string representation of the hash.
func (h Hash) Hex() string { return fmt.Sprintf("0x%x", h[:]) }

// SetBytes sets the hash from a byte slice, left-padding if necessary.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// IsZero returns whether the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String implements fmt.Stringer.
func (h Hash) String() string { return h.Hex() }

// BytesToAccount converts bytes to Account, left-padding if shorter than 32 bytes.
func BytesToAccount(b []byte) Account {
	var a Account
	a.SetBytes(b)
	return a
}

// HexToAccount converts a hex string to Account.
func HexToAccount(s string) Account {
	return BytesToAccount(fromHex(s))
}

// Bytes returns the byte representation of the account id.
func (a Account) Bytes() []byte { return a[:] }

// Hex returns the hex string representation of the account id.
func (a Account) Hex() string { return fmt.Sprintf("0x%x", a[:]) }

// SetBytes sets the account id from a byte slice.
func (a *Account) SetBytes(b []byte) {
	if len(b) > AccountLength {
		b = b[len(b)-AccountLength:]
	}
	copy(a[AccountLength-len(b):], b)
}

// IsZero returns whether the account id is all zeros.
func (a Account) IsZero() bool {
	return a == Account{}
}

// String implements fmt.Stringer.
func (a Account) String() string { return a.Hex() }

// fromHex decodes a hex string, stripping an optional "0x" prefix.
func fromHex(s string) []byte {
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hex.DecodeString(s)
	return b
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

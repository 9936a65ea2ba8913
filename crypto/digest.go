// Package crypto implements the mixer's commitment tree, nullifier set,
// and note primitives.
//
// Every digest in this package is plain SHA-256 with no domain separation.
// The guest circuit, the on-chain tree, and the client wallet's commitment
// computation all hash through this one function, and must keep agreeing
// bit-for-bit: a domain-separated variant here would silently break every
// withdraw, since the guest recomputes the same hashes independently.
package crypto

import "crypto/sha256"

// DigestSize is the width of every hash produced by this package.
const DigestSize = 32

// Digest hashes the concatenation of its arguments with SHA-256.
func Digest(parts ...[]byte) [DigestSize]byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [DigestSize]byte
	copy(out[:], h.Sum(nil))
	return out
}

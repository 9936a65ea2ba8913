package crypto

import "errors"

// NoteSize is the width of a note's serialized secret.
const NoteSize = 64

// ErrNoteSize is returned when decoding a note from the wrong number of bytes.
var ErrNoteSize = errors.New("crypto: note must be exactly 64 bytes")

// Note is a client-side secret, conceptually a pair (nullifier, salt), each
// 32 bytes. The split is kept explicit rather than collapsed into a single
// 64-byte array, so that a guest can expose the nullifier half without
// reconstructing the full preimage.
type Note struct {
	Nullifier [32]byte
	Salt      [32]byte
}

// NoteFromBytes decodes a 64-byte note: the first 32 bytes are the
// nullifier half, the last 32 are the salt half.
func NoteFromBytes(b []byte) (Note, error) {
	var n Note
	if len(b) != NoteSize {
		return n, ErrNoteSize
	}
	copy(n.Nullifier[:], b[:32])
	copy(n.Salt[:], b[32:])
	return n, nil
}

// Bytes serializes the note back to its 64-byte wire form.
func (n Note) Bytes() []byte {
	out := make([]byte, 0, NoteSize)
	out = append(out, n.Nullifier[:]...)
	out = append(out, n.Salt[:]...)
	return out
}

// Commitment is the leaf value the note is deposited under: SHA-256 of the
// full 64-byte secret.
func (n Note) Commitment() [32]byte {
	return Digest(n.Bytes())
}

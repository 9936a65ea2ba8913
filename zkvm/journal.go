// Package zkvm implements the guest circuit (C3) and the public-output
// journal codec (C1) that bridges it to the mixer state machine, plus an
// Executor interface treating the zkVM proving/verification backend as the
// black box the core treats it as.
package zkvm

import (
	"encoding/binary"
	"errors"
)

// ErrMalformedJournal is returned when a journal's length is not of the
// form 132 + 128*n, or is shorter than 132 bytes.
var ErrMalformedJournal = errors.New("zkvm: malformed journal")

// Journal is the decoded public output committed by the guest: the Merkle
// root a proof was built against, and the nullifier half of every note it
// spent.
type Journal struct {
	Root [32]byte
	Used [][32]byte
}

// wordsPerValue is the padded width of a single 32-byte value: each byte
// occupies the low byte of its own 4-byte little-endian word.
const wordsPerValue = 32 * 4

// EncodeJournal produces the zkVM journal wire format: the root padded to
// 128 bytes, a 4-byte little-endian count, then each used entry padded to
// 128 bytes the same way as the root. Total length is 132 + 128*len(used).
func EncodeJournal(j Journal) []byte {
	out := make([]byte, 0, wordsPerValue+4+wordsPerValue*len(j.Used))
	out = append(out, encodePadded(j.Root)...)

	count := make([]byte, 4)
	binary.LittleEndian.PutUint32(count, uint32(len(j.Used)))
	out = append(out, count...)

	for _, u := range j.Used {
		out = append(out, encodePadded(u)...)
	}
	return out
}

// DecodeJournal parses the wire format produced by EncodeJournal. It fails
// if the length is below 132 bytes or is not of the form 132 + 128*n.
func DecodeJournal(b []byte) (Journal, error) {
	if len(b) < wordsPerValue+4 {
		return Journal{}, ErrMalformedJournal
	}
	rest := len(b) - (wordsPerValue + 4)
	if rest%wordsPerValue != 0 {
		return Journal{}, ErrMalformedJournal
	}

	var j Journal
	j.Root = decodePadded(b[:wordsPerValue])

	n := binary.LittleEndian.Uint32(b[wordsPerValue : wordsPerValue+4])
	if int(n) != rest/wordsPerValue {
		return Journal{}, ErrMalformedJournal
	}

	offset := wordsPerValue + 4
	j.Used = make([][32]byte, n)
	for i := 0; i < int(n); i++ {
		j.Used[i] = decodePadded(b[offset : offset+wordsPerValue])
		offset += wordsPerValue
	}
	return j, nil
}

// encodePadded spreads each byte of v into the low byte of its own 4-byte
// little-endian word.
func encodePadded(v [32]byte) []byte {
	out := make([]byte, wordsPerValue)
	for i, b := range v {
		out[4*i] = b
	}
	return out
}

// decodePadded recovers a 32-byte value from its padded 128-byte encoding
// by taking the low byte of each 4-byte word; the upper three bytes of
// each word are not validated, matching the zkVM journal serializer this
// format mirrors.
func decodePadded(b []byte) [32]byte {
	var out [32]byte
	for i := range out {
		out[i] = b[4*i]
	}
	return out
}

package crypto

import "testing"

func TestNote_BytesRoundTrip(t *testing.T) {
	var n Note
	for i := range n.Nullifier {
		n.Nullifier[i] = 0x01
	}
	for i := range n.Salt {
		n.Salt[i] = 0x02
	}
	decoded, err := NoteFromBytes(n.Bytes())
	if err != nil {
		t.Fatalf("NoteFromBytes: %v", err)
	}
	if decoded != n {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, n)
	}
}

func TestNoteFromBytes_WrongSize(t *testing.T) {
	if _, err := NoteFromBytes(make([]byte, 63)); err != ErrNoteSize {
		t.Fatalf("got %v, want ErrNoteSize", err)
	}
}

func TestNote_CommitmentIsSHA256OfWholeSecret(t *testing.T) {
	var n Note
	for i := range n.Nullifier {
		n.Nullifier[i] = 0x01
	}
	for i := range n.Salt {
		n.Salt[i] = 0x01
	}
	want := Digest(n.Bytes())
	if n.Commitment() != want {
		t.Fatalf("commitment mismatch: got %x, want %x", n.Commitment(), want)
	}
}

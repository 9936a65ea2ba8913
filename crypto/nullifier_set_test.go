package crypto

import "testing"

func TestNullifierSet_EmptyHasZeroLen(t *testing.T) {
	s := NewNullifierSet()
	if s.Len() != 0 {
		t.Fatalf("new set length: got %d, want 0", s.Len())
	}
	if s.Contains([32]byte{1}) {
		t.Fatal("empty set should not contain anything")
	}
}

func TestNullifierSet_InsertIsIdempotent(t *testing.T) {
	s := NewNullifierSet()
	var n [32]byte
	n[0] = 0xaa

	if !s.Insert(n) {
		t.Fatal("first insert should report true")
	}
	if s.Insert(n) {
		t.Fatal("second insert of same nullifier should report false")
	}
	if s.Len() != 1 {
		t.Fatalf("length after duplicate insert: got %d, want 1", s.Len())
	}
	if !s.Contains(n) {
		t.Fatal("set should contain inserted nullifier")
	}
}

func TestNullifierSet_OrderedInsertion(t *testing.T) {
	s := NewNullifierSet()
	var a, b, c [32]byte
	a[0], b[0], c[0] = 1, 2, 3
	s.Insert(a)
	s.Insert(b)
	s.Insert(c)

	all := s.All()
	if len(all) != 3 || all[0] != a || all[1] != b || all[2] != c {
		t.Fatalf("All() order: got %v", all)
	}
}

func TestNullifierSet_From(t *testing.T) {
	s := NewNullifierSet()
	var a, b, c [32]byte
	a[0], b[0], c[0] = 1, 2, 3
	s.Insert(a)
	s.Insert(b)
	s.Insert(c)

	got := s.From(1)
	if len(got) != 2 || got[0] != b || got[1] != c {
		t.Fatalf("From(1): got %v", got)
	}
	if got := s.From(10); got != nil {
		t.Fatalf("From(out of range) should be nil, got %v", got)
	}
}

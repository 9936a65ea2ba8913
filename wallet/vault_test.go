package wallet

import "testing"

func TestVault_PutGetRoundTrip(t *testing.T) {
	v := NewVault()
	if err := v.Put(0, []byte("secret note bytes"), "correct horse"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := v.Get(0, "correct horse")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "secret note bytes" {
		t.Fatalf("got %q", got)
	}
}

func TestVault_WrongPasswordFails(t *testing.T) {
	v := NewVault()
	v.Put(0, []byte("secret"), "right")
	if _, err := v.Get(0, "wrong"); err != ErrWrongPassword {
		t.Fatalf("got %v, want ErrWrongPassword", err)
	}
}

func TestVault_GetMissingSlot(t *testing.T) {
	v := NewVault()
	if _, err := v.Get(42, "pw"); err != ErrSlotNotFound {
		t.Fatalf("got %v, want ErrSlotNotFound", err)
	}
}

func TestVault_DeleteRemovesEntry(t *testing.T) {
	v := NewVault()
	v.Put(1, []byte("x"), "pw")
	v.Delete(1)
	if _, err := v.Get(1, "pw"); err != ErrSlotNotFound {
		t.Fatalf("got %v, want ErrSlotNotFound", err)
	}
}

func TestVault_IndicesSorted(t *testing.T) {
	v := NewVault()
	v.Put(5, []byte("a"), "pw")
	v.Put(1, []byte("b"), "pw")
	v.Put(3, []byte("c"), "pw")
	got := v.Indices()
	want := []uint64{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

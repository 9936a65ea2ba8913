package mixer

import (
	"math/big"
	"testing"

	"github.com/dan-sobolev-varathon/zk-stark-mixer/core/types"
)

func TestEncodeDecodeAction_Deposit(t *testing.T) {
	d := Deposit{Hashes: [][32]byte{{0x01}, {0x02}}}
	b, err := EncodeAction(d)
	if err != nil {
		t.Fatalf("EncodeAction: %v", err)
	}
	got, err := DecodeAction(b)
	if err != nil {
		t.Fatalf("DecodeAction: %v", err)
	}
	gd, ok := got.(Deposit)
	if !ok || len(gd.Hashes) != 2 || gd.Hashes[0] != d.Hashes[0] || gd.Hashes[1] != d.Hashes[1] {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestEncodeDecodeAction_Withdraw(t *testing.T) {
	w := Withdraw{ImageIDReceipt: []byte("blob")}
	b, err := EncodeAction(w)
	if err != nil {
		t.Fatalf("EncodeAction: %v", err)
	}
	got, err := DecodeAction(b)
	if err != nil {
		t.Fatalf("DecodeAction: %v", err)
	}
	gw, ok := got.(Withdraw)
	if !ok || string(gw.ImageIDReceipt) != "blob" {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestEncodeDecodeEvent_WrongDeposit(t *testing.T) {
	e := WrongDeposit{Refund: big.NewInt(12345)}
	b, err := EncodeEvent(e)
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}
	got, err := DecodeEvent(b)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	ge, ok := got.(WrongDeposit)
	if !ok || ge.Refund.Cmp(e.Refund) != 0 {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestEncodeDecodeQuery_HistoryFrom(t *testing.T) {
	q := QueryHistoryFrom{Users: []UserFrom{
		{User: types.Account{0x01}, From: 3},
		{User: types.Account{0x02}, From: 0},
	}}
	b, err := EncodeQuery(q)
	if err != nil {
		t.Fatalf("EncodeQuery: %v", err)
	}
	got, err := DecodeQuery(b)
	if err != nil {
		t.Fatalf("DecodeQuery: %v", err)
	}
	gq, ok := got.(QueryHistoryFrom)
	if !ok || len(gq.Users) != 2 || gq.Users[0].From != 3 || gq.Users[1].User != q.Users[1].User {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestEncodeDecodeQueryResult_HistoryAll(t *testing.T) {
	r := ResultHistoryAll{Histories: []UserHistory{
		{User: types.Account{0x01}, History: []HistoryEntry{{Amount: 1, Time: 100}, {Amount: -1, Time: 200}}},
	}}
	b, err := EncodeQueryResult(r)
	if err != nil {
		t.Fatalf("EncodeQueryResult: %v", err)
	}
	got, err := DecodeQueryResult(b)
	if err != nil {
		t.Fatalf("DecodeQueryResult: %v", err)
	}
	gr, ok := got.(ResultHistoryAll)
	if !ok || len(gr.Histories) != 1 || len(gr.Histories[0].History) != 2 {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
	if gr.Histories[0].History[1].Amount != -1 {
		t.Fatalf("signed amount lost: got %+v", gr.Histories[0].History)
	}
}

func TestEncodeDecodeQuery_EmptyVariantsRoundTrip(t *testing.T) {
	for _, q := range []interface{}{QueryLeaves{}, QueryWithdrawnAll{}, QueryHistoryAll{}} {
		b, err := EncodeQuery(q)
		if err != nil {
			t.Fatalf("EncodeQuery(%T): %v", q, err)
		}
		got, err := DecodeQuery(b)
		if err != nil {
			t.Fatalf("DecodeQuery(%T): %v", q, err)
		}
		if got != q {
			t.Fatalf("round trip mismatch for %T: got %+v", q, got)
		}
	}
}

func TestDecodeAction_RejectsUnknownTag(t *testing.T) {
	if _, err := DecodeAction([]byte{0xff}); err != ErrUnknownTag {
		t.Fatalf("got %v, want ErrUnknownTag", err)
	}
}

func TestDecodeAction_RejectsEmptyPayload(t *testing.T) {
	if _, err := DecodeAction(nil); err != ErrEmptyPayload {
		t.Fatalf("got %v, want ErrEmptyPayload", err)
	}
}

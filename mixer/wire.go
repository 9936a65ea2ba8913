package mixer

import (
	"errors"

	"github.com/dan-sobolev-varathon/zk-stark-mixer/rlp"
)

// Wire discriminants for the action/event/query tagged unions (§6). Each
// encoded form is a single discriminant byte followed by the RLP encoding
// of the variant's payload struct, mirroring the chain runtime's own
// typed-envelope convention for tagged actions.
const (
	tagDeposit  byte = 0x00
	tagWithdraw byte = 0x01

	tagDeposited    byte = 0x00
	tagWrongDeposit byte = 0x01
	tagWithdrawed   byte = 0x02

	tagQueryLeaves         byte = 0x00
	tagQueryWithdrawn      byte = 0x01
	tagQueryWithdrawnAll   byte = 0x02
	tagQueryHistoryOneFrom byte = 0x03
	tagQueryHistoryFrom    byte = 0x04
	tagQueryHistoryAll     byte = 0x05

	tagResultLeaves         byte = 0x00
	tagResultWithdrawn      byte = 0x01
	tagResultWithdrawnAll   byte = 0x02
	tagResultHistoryOneFrom byte = 0x03
	tagResultHistoryFrom    byte = 0x04
	tagResultHistoryAll     byte = 0x05
)

// ErrUnknownTag is returned when a wire payload's discriminant byte does
// not match any known variant for the union being decoded.
var ErrUnknownTag = errors.New("mixer: unknown wire discriminant")

// ErrEmptyPayload is returned when a wire payload is too short to even
// carry a discriminant byte.
var ErrEmptyPayload = errors.New("mixer: empty wire payload")

func encodeTagged(tag byte, payload interface{}) ([]byte, error) {
	body, err := rlp.EncodeToBytes(payload)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(body)+1)
	out = append(out, tag)
	out = append(out, body...)
	return out, nil
}

// EncodeAction serializes an on-chain action (Deposit or Withdraw).
func EncodeAction(action interface{}) ([]byte, error) {
	switch v := action.(type) {
	case Deposit:
		return encodeTagged(tagDeposit, v)
	case Withdraw:
		return encodeTagged(tagWithdraw, v)
	default:
		return nil, ErrUnknownTag
	}
}

// DecodeAction deserializes an on-chain action.
func DecodeAction(b []byte) (interface{}, error) {
	if len(b) == 0 {
		return nil, ErrEmptyPayload
	}
	switch b[0] {
	case tagDeposit:
		var v Deposit
		if err := rlp.DecodeBytes(b[1:], &v); err != nil {
			return nil, err
		}
		return v, nil
	case tagWithdraw:
		var v Withdraw
		if err := rlp.DecodeBytes(b[1:], &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, ErrUnknownTag
	}
}

// EncodeEvent serializes an on-chain event (Deposited, WrongDeposit, or
// Withdrawed).
func EncodeEvent(event interface{}) ([]byte, error) {
	switch v := event.(type) {
	case Deposited:
		return encodeTagged(tagDeposited, v)
	case WrongDeposit:
		return encodeTagged(tagWrongDeposit, v)
	case Withdrawed:
		return encodeTagged(tagWithdrawed, v)
	default:
		return nil, ErrUnknownTag
	}
}

// DecodeEvent deserializes an on-chain event.
func DecodeEvent(b []byte) (interface{}, error) {
	if len(b) == 0 {
		return nil, ErrEmptyPayload
	}
	switch b[0] {
	case tagDeposited:
		var v Deposited
		if err := rlp.DecodeBytes(b[1:], &v); err != nil {
			return nil, err
		}
		return v, nil
	case tagWrongDeposit:
		var v WrongDeposit
		if err := rlp.DecodeBytes(b[1:], &v); err != nil {
			return nil, err
		}
		return v, nil
	case tagWithdrawed:
		var v Withdrawed
		if err := rlp.DecodeBytes(b[1:], &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, ErrUnknownTag
	}
}

// EncodeQuery serializes a state query.
func EncodeQuery(q interface{}) ([]byte, error) {
	switch v := q.(type) {
	case QueryLeaves:
		return encodeTagged(tagQueryLeaves, v)
	case QueryWithdrawn:
		return encodeTagged(tagQueryWithdrawn, v)
	case QueryWithdrawnAll:
		return encodeTagged(tagQueryWithdrawnAll, v)
	case QueryHistoryOneFrom:
		return encodeTagged(tagQueryHistoryOneFrom, v)
	case QueryHistoryFrom:
		return encodeTagged(tagQueryHistoryFrom, v)
	case QueryHistoryAll:
		return encodeTagged(tagQueryHistoryAll, v)
	default:
		return nil, ErrUnknownTag
	}
}

// DecodeQuery deserializes a state query.
func DecodeQuery(b []byte) (interface{}, error) {
	if len(b) == 0 {
		return nil, ErrEmptyPayload
	}
	switch b[0] {
	case tagQueryLeaves:
		var v QueryLeaves
		return v, rlp.DecodeBytes(b[1:], &v)
	case tagQueryWithdrawn:
		var v QueryWithdrawn
		return v, rlp.DecodeBytes(b[1:], &v)
	case tagQueryWithdrawnAll:
		var v QueryWithdrawnAll
		return v, rlp.DecodeBytes(b[1:], &v)
	case tagQueryHistoryOneFrom:
		var v QueryHistoryOneFrom
		return v, rlp.DecodeBytes(b[1:], &v)
	case tagQueryHistoryFrom:
		var v QueryHistoryFrom
		return v, rlp.DecodeBytes(b[1:], &v)
	case tagQueryHistoryAll:
		var v QueryHistoryAll
		return v, rlp.DecodeBytes(b[1:], &v)
	default:
		return nil, ErrUnknownTag
	}
}

// EncodeQueryResult serializes a query result.
func EncodeQueryResult(r interface{}) ([]byte, error) {
	switch v := r.(type) {
	case ResultLeaves:
		return encodeTagged(tagResultLeaves, v)
	case ResultWithdrawn:
		return encodeTagged(tagResultWithdrawn, v)
	case ResultWithdrawnAll:
		return encodeTagged(tagResultWithdrawnAll, v)
	case ResultHistoryOneFrom:
		return encodeTagged(tagResultHistoryOneFrom, v)
	case ResultHistoryFrom:
		return encodeTagged(tagResultHistoryFrom, v)
	case ResultHistoryAll:
		return encodeTagged(tagResultHistoryAll, v)
	default:
		return nil, ErrUnknownTag
	}
}

// DecodeQueryResult deserializes a query result.
func DecodeQueryResult(b []byte) (interface{}, error) {
	if len(b) == 0 {
		return nil, ErrEmptyPayload
	}
	switch b[0] {
	case tagResultLeaves:
		var v ResultLeaves
		return v, rlp.DecodeBytes(b[1:], &v)
	case tagResultWithdrawn:
		var v ResultWithdrawn
		return v, rlp.DecodeBytes(b[1:], &v)
	case tagResultWithdrawnAll:
		var v ResultWithdrawnAll
		return v, rlp.DecodeBytes(b[1:], &v)
	case tagResultHistoryOneFrom:
		var v ResultHistoryOneFrom
		return v, rlp.DecodeBytes(b[1:], &v)
	case tagResultHistoryFrom:
		var v ResultHistoryFrom
		return v, rlp.DecodeBytes(b[1:], &v)
	case tagResultHistoryAll:
		var v ResultHistoryAll
		return v, rlp.DecodeBytes(b[1:], &v)
	default:
		return nil, ErrUnknownTag
	}
}

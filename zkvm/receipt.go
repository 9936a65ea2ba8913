package zkvm

import "errors"

// ErrReceiptTooShort is returned when a payload is too short to contain an
// image id prefix.
var ErrReceiptTooShort = errors.New("zkvm: payload shorter than an image id")

// EncodeImageIDReceipt serializes (imageID, receipt) as the compact,
// self-describing tuple the withdraw action carries: the image id as a
// fixed 32-byte prefix, followed by the receipt bytes verbatim. A reader
// can extract imageID by decoding only the first 32 bytes, without
// touching the (potentially large) receipt payload.
func EncodeImageIDReceipt(imageID ImageID, receipt []byte) []byte {
	out := make([]byte, 0, 32+len(receipt))
	out = append(out, imageID[:]...)
	out = append(out, receipt...)
	return out
}

// DecodeImageIDReceipt splits a payload produced by EncodeImageIDReceipt
// back into its image id and receipt.
func DecodeImageIDReceipt(payload []byte) (ImageID, []byte, error) {
	if len(payload) < 32 {
		return ImageID{}, nil, ErrReceiptTooShort
	}
	var id ImageID
	copy(id[:], payload[:32])
	return id, payload[32:], nil
}

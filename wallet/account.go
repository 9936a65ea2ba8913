package wallet

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"errors"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

// pkcs8Header and pkcs8Divider are the literal byte sequences the
// exported-account envelope wraps a converted ed25519 private key in
// (§6). They are not a real PKCS#8 DER structure, just the fixed prefix
// and divider bytes the original vault format uses.
var (
	pkcs8Header  = []byte{0x30, 0x53, 0x02, 0x01, 0x01, 0x30, 0x05, 0x06, 0x03, 0x2B, 0x65, 0x70, 0x04, 0x22, 0x04, 0x20}
	pkcs8Divider = []byte{0xA1, 0x23, 0x03, 0x21, 0x00}
)

const (
	privateKeyLength = 64
	publicKeyLength  = 32
)

var (
	// ErrInvalidEnvelope is returned when an exported-account envelope is
	// too short or its header/divider bytes don't match.
	ErrInvalidEnvelope = errors.New("wallet: invalid exported-account envelope")
)

// ExportAccount seals (privateKey, publicKey) into the version-3 envelope
// format of §6: base64 of salt(32) || scrypt params (N,P,R as 4-byte LE
// each) || nonce(24) || ciphertext, where the ciphertext is
// XSalsa20-Poly1305 over PKCS8_HEADER || privateKey || PKCS8_DIVIDER ||
// publicKey.
func ExportAccount(privateKey [privateKeyLength]byte, publicKey [publicKeyLength]byte, password string) (string, error) {
	message := make([]byte, 0, len(pkcs8Header)+privateKeyLength+len(pkcs8Divider)+publicKeyLength)
	message = append(message, pkcs8Header...)
	message = append(message, privateKey[:]...)
	message = append(message, pkcs8Divider...)
	message = append(message, publicKey[:]...)

	var salt [saltLength]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return "", err
	}
	key, err := deriveKey(password, salt[:])
	if err != nil {
		return "", err
	}

	var nonce [nonceLength]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", err
	}
	ciphertext := secretbox.Seal(nil, message, &nonce, &key)

	out := make([]byte, 0, saltLength+12+nonceLength+len(ciphertext))
	out = append(out, salt[:]...)
	out = binary.LittleEndian.AppendUint32(out, scryptN)
	out = binary.LittleEndian.AppendUint32(out, scryptP)
	out = binary.LittleEndian.AppendUint32(out, scryptR)
	out = append(out, nonce[:]...)
	out = append(out, ciphertext...)

	return base64.StdEncoding.EncodeToString(out), nil
}

// ImportAccount reverses ExportAccount, recovering the private and public
// key halves from the envelope.
func ImportAccount(envelope string, password string) (privateKey [privateKeyLength]byte, publicKey [publicKeyLength]byte, err error) {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return privateKey, publicKey, err
	}
	const scryptParamsLength = 12
	minLen := saltLength + scryptParamsLength + nonceLength
	if len(raw) < minLen {
		return privateKey, publicKey, ErrInvalidEnvelope
	}

	salt := raw[:saltLength]
	n := binary.LittleEndian.Uint32(raw[saltLength : saltLength+4])
	p := binary.LittleEndian.Uint32(raw[saltLength+4 : saltLength+8])
	r := binary.LittleEndian.Uint32(raw[saltLength+8 : saltLength+12])

	rest := raw[saltLength+scryptParamsLength:]
	if len(rest) < nonceLength {
		return privateKey, publicKey, ErrInvalidEnvelope
	}
	var nonce [nonceLength]byte
	copy(nonce[:], rest[:nonceLength])
	ciphertext := rest[nonceLength:]

	derived, err := scrypt.Key([]byte(password), salt, int(n), int(r), int(p), 32)
	if err != nil {
		return privateKey, publicKey, err
	}
	var key [32]byte
	copy(key[:], derived)

	message, ok := secretbox.Open(nil, ciphertext, &nonce, &key)
	if !ok {
		return privateKey, publicKey, ErrWrongPassword
	}

	want := len(pkcs8Header) + privateKeyLength + len(pkcs8Divider) + publicKeyLength
	if len(message) != want {
		return privateKey, publicKey, ErrInvalidEnvelope
	}
	offset := 0
	if string(message[offset:offset+len(pkcs8Header)]) != string(pkcs8Header) {
		return privateKey, publicKey, ErrInvalidEnvelope
	}
	offset += len(pkcs8Header)
	copy(privateKey[:], message[offset:offset+privateKeyLength])
	offset += privateKeyLength
	if string(message[offset:offset+len(pkcs8Divider)]) != string(pkcs8Divider) {
		return privateKey, publicKey, ErrInvalidEnvelope
	}
	offset += len(pkcs8Divider)
	copy(publicKey[:], message[offset:offset+publicKeyLength])

	return privateKey, publicKey, nil
}

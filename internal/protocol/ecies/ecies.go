package ecies

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"mailbox/internal/crypto"
	"mailbox/internal/domain"
)

const (
	ivLength = aes.BlockSize

	uncompressedKeyLength = 65
	rawKeyLength          = 64
	compressedKeyLength   = 33
	uncompressedPrefix    = 0x04
)

var (
	// ErrInvalidPublicKey is returned when the recipient key is not a secp256k1 point.
	ErrInvalidPublicKey = errors.New("invalid secp256k1 public key")

	// ErrInvalidPrivateKey is returned when the private key is not usable.
	ErrInvalidPrivateKey = errors.New("invalid secp256k1 private key")

	// ErrMACMismatch is returned when the envelope fails authentication.
	ErrMACMismatch = errors.New("envelope MAC mismatch")

	// ErrInvalidEnvelope is returned when an envelope field cannot be decoded.
	ErrInvalidEnvelope = errors.New("malformed envelope")
)

// Options overrides the random inputs of EncryptWithPublicKey. Zero values
// are replaced with fresh randomness; tests use them for fixed vectors.
type Options struct {
	IV                  []byte
	EphemeralPrivateKey []byte
}

// EncryptWithPublicKey seals message for the holder of publicKey.
//
// publicKey may be the 64-byte raw X || Y point (the 0x04 prefix is added),
// the 65-byte uncompressed encoding or the 33-byte compressed one.
func EncryptWithPublicKey(publicKey []byte, message string, opts *Options) (domain.Envelope, error) {
	recipient, err := parsePublicKey(publicKey)
	if err != nil {
		return domain.Envelope{}, err
	}
	if opts == nil {
		opts = &Options{}
	}

	ephemeral, err := ephemeralKey(opts.EphemeralPrivateKey)
	if err != nil {
		return domain.Envelope{}, err
	}
	defer ephemeral.Zero()

	iv := opts.IV
	if len(iv) == 0 {
		iv = make([]byte, ivLength)
		if _, err := io.ReadFull(rand.Reader, iv); err != nil {
			return domain.Envelope{}, fmt.Errorf("generate iv: %w", err)
		}
	} else if len(iv) != ivLength {
		return domain.Envelope{}, fmt.Errorf("iv must be %d bytes, got %d", ivLength, len(iv))
	}

	encKey, macKey := deriveKeys(secp256k1.GenerateSharedSecret(ephemeral, recipient))
	defer crypto.Wipe(encKey)
	defer crypto.Wipe(macKey)

	ciphertext, err := aesCBCEncrypt(encKey, iv, []byte(message))
	if err != nil {
		return domain.Envelope{}, err
	}
	ephemPub := ephemeral.PubKey().SerializeUncompressed()

	return domain.Envelope{
		IV:             hex.EncodeToString(iv),
		EphemPublicKey: hex.EncodeToString(ephemPub),
		Ciphertext:     hex.EncodeToString(ciphertext),
		MAC:            hex.EncodeToString(envelopeMAC(macKey, iv, ephemPub, ciphertext)),
	}, nil
}

// DecryptWithPrivateKey opens env with the recipient's private key.
func DecryptWithPrivateKey(privateKey *ecdsa.PrivateKey, env domain.Envelope) (string, error) {
	if privateKey == nil || privateKey.D == nil || privateKey.D.Sign() <= 0 {
		return "", ErrInvalidPrivateKey
	}
	raw := privateKey.D.FillBytes(make([]byte, 32))
	priv := secp256k1.PrivKeyFromBytes(raw)
	crypto.Wipe(raw)
	defer priv.Zero()

	iv, err := decodeField("iv", env.IV)
	if err != nil {
		return "", err
	}
	if len(iv) != ivLength {
		return "", fmt.Errorf("%w: iv must be %d bytes", ErrInvalidEnvelope, ivLength)
	}
	ephemPub, err := decodeField("ephemPublicKey", env.EphemPublicKey)
	if err != nil {
		return "", err
	}
	ciphertext, err := decodeField("ciphertext", env.Ciphertext)
	if err != nil {
		return "", err
	}
	mac, err := decodeField("mac", env.MAC)
	if err != nil {
		return "", err
	}

	sender, err := parsePublicKey(ephemPub)
	if err != nil {
		return "", err
	}
	encKey, macKey := deriveKeys(secp256k1.GenerateSharedSecret(priv, sender))
	defer crypto.Wipe(encKey)
	defer crypto.Wipe(macKey)

	if !hmac.Equal(mac, envelopeMAC(macKey, iv, ephemPub, ciphertext)) {
		return "", ErrMACMismatch
	}
	plaintext, err := aesCBCDecrypt(encKey, iv, ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func parsePublicKey(b []byte) (*secp256k1.PublicKey, error) {
	switch len(b) {
	case rawKeyLength:
		b = append([]byte{uncompressedPrefix}, b...)
	case uncompressedKeyLength, compressedKeyLength:
	default:
		return nil, fmt.Errorf("%w: unexpected length %d", ErrInvalidPublicKey, len(b))
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return pub, nil
}

func ephemeralKey(raw []byte) (*secp256k1.PrivateKey, error) {
	if len(raw) == 0 {
		return secp256k1.GeneratePrivateKey()
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("%w: ephemeral key must be 32 bytes", ErrInvalidPrivateKey)
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(raw); overflow || scalar.IsZero() {
		return nil, fmt.Errorf("%w: ephemeral key out of range", ErrInvalidPrivateKey)
	}
	return secp256k1.NewPrivateKey(&scalar), nil
}

// deriveKeys splits SHA-512(shared) into the encryption and MAC keys.
func deriveKeys(shared []byte) (encKey, macKey []byte) {
	defer crypto.Wipe(shared)
	sum := sha512.Sum512(shared)
	encKey = append([]byte(nil), sum[:32]...)
	macKey = append([]byte(nil), sum[32:]...)
	crypto.Wipe(sum[:])
	return encKey, macKey
}

func envelopeMAC(macKey, iv, ephemPub, ciphertext []byte) []byte {
	h := hmac.New(sha256.New, macKey)
	h.Write(iv)
	h.Write(ephemPub)
	h.Write(ciphertext)
	return h.Sum(nil)
}

func aesCBCEncrypt(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	padded := pkcs7Pad(plaintext, block.BlockSize())
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out, nil
}

func aesCBCDecrypt(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not a whole number of blocks", ErrInvalidEnvelope)
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return pkcs7Unpad(out, block.BlockSize())
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(append([]byte(nil), b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, fmt.Errorf("%w: bad padding", ErrInvalidEnvelope)
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrInvalidEnvelope)
		}
	}
	return b[:len(b)-n], nil
}

func decodeField(name, value string) ([]byte, error) {
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidEnvelope, name, err)
	}
	return b, nil
}

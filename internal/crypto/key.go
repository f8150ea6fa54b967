package crypto

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"mailbox/internal/domain"
)

// ErrInvalidSecret is returned when a secret is not a 32-byte hex private key.
var ErrInvalidSecret = errors.New("secret is not a 32-byte hex private key")

// WalletFromSecret derives the wallet identity for a hex private key.
func WalletFromSecret(secret string) (*domain.Wallet, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(secret), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	defer Wipe(raw)

	key, err := ethcrypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	return &domain.Wallet{
		PrivateKey: key,
		Address:    ethcrypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// GenerateKey returns a fresh random wallet.
func GenerateKey() (*domain.Wallet, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &domain.Wallet{
		PrivateKey: key,
		Address:    ethcrypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// PrivateKeyHex returns the 0x-prefixed hex encoding of key.
func PrivateKeyHex(key *ecdsa.PrivateKey) string {
	raw := ethcrypto.FromECDSA(key)
	defer Wipe(raw)
	return "0x" + hex.EncodeToString(raw)
}

// PublicKeyBytes returns the 65-byte uncompressed encoding of pub.
func PublicKeyBytes(pub *ecdsa.PublicKey) []byte {
	return ethcrypto.FromECDSAPub(pub)
}

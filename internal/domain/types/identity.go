package types

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
)

// RecoveredIdentity is the signer of a transaction, derived from its signature.
// It is recomputed on demand and never persisted.
type RecoveredIdentity struct {
	// PublicKey is the 65-byte uncompressed secp256k1 point (0x04 || X || Y).
	PublicKey []byte         `json:"publicKey"`
	Address   common.Address `json:"address"`
}

// Wallet is the identity derived from the connected secret.
type Wallet struct {
	PrivateKey *ecdsa.PrivateKey `json:"-"`
	Address    common.Address    `json:"address"`
}

// PublicKey returns the wallet's public key, or nil for an empty wallet.
func (w *Wallet) PublicKey() *ecdsa.PublicKey {
	if w == nil || w.PrivateKey == nil {
		return nil
	}
	return &w.PrivateKey.PublicKey
}

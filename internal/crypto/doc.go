// Package crypto exposes the key-material helpers used by mailbox.
//
// Contents
//
//   - secp256k1 wallet derivation from a hex secret (WalletFromSecret)
//   - fresh key generation and hex export (GenerateKey, PrivateKeyHex)
//   - uncompressed public key encoding (PublicKeyBytes)
//   - short public-key fingerprints for display/logging (Fingerprint)
//   - best-effort memory wiping for sensitive byte slices (Wipe)
//
// # Notes
//
// Secrets are accepted in the form the signing library expects: 32 bytes of
// hex, with or without a 0x prefix. Callers should treat returned secrets as
// sensitive and rely on Wipe when practical to reduce lifetime in memory.
package crypto

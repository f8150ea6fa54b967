// Package ecies seals messages for a secp256k1 public key.
//
// The envelope layout is the one used by the eccrypto family of libraries,
// so envelopes can be opened by any client that speaks it:
//
//  1. Generate an ephemeral secp256k1 key pair.
//  2. ECDH with the recipient key; the shared secret is the X coordinate.
//  3. SHA-512 the shared secret: bytes 0..32 are the AES-256-CBC key,
//     bytes 32..64 the HMAC-SHA256 key.
//  4. Encrypt the PKCS#7 padded message under a random 16-byte IV.
//  5. MAC = HMAC-SHA256(iv || ephemeral public key (65 bytes) || ciphertext).
//
// Every field of the resulting envelope is hex encoded. Decryption checks the
// MAC in constant time before touching the ciphertext, so a tampered envelope
// fails with ErrMACMismatch instead of yielding different plaintext.
package ecies

// Package recovery recovers the signer of an Ethereum transaction from its
// raw signature.
//
// # Overview
//
// A Register log on the mailbox contract only names an address. The public
// key needed to encrypt for that address is recovered from the signature of
// the transaction that emitted the log.
//
// # Flow
//
//  1. Join r, s and v into the 65-byte [R || S || recovery id] signature.
//  2. Rebuild the unsigned payload from the business fields with RLP:
//     legacy (EIP-155 protected or not), EIP-2930 (0x01 envelope) or
//     EIP-1559 (0x02 envelope).
//  3. Keccak-256 the payload to get the signing hash.
//  4. Run secp256k1 public-key recovery and derive the address from the
//     last 20 bytes of Keccak-256(X || Y).
//
// The rebuilt payload must match the signed bytes exactly; any difference
// yields a valid-looking but wrong identity, so callers that know the
// expected address should compare it.
//
// # Errors
//
// ErrMissingSignature is returned when r, s or v is absent. ErrInvalidSignature
// covers values that cannot be a secp256k1 signature, ErrUnsupportedTxType any
// transaction type other than 0, 1 and 2.
package recovery

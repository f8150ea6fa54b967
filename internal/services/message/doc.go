// Package message seals messages for registered recipients and opens
// envelopes addressed to the connected wallet.
//
// A recipient's public key is never exchanged directly: it is recovered from
// the signature of the transaction that registered the recipient on the
// mailbox contract.
package message

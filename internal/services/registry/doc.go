// Package registry finds and creates Register events on the mailbox contract.
//
// A Register event is how an address becomes discoverable: the transaction
// that emitted it carries a signature from which the registrant's public key
// can be recovered.
package registry

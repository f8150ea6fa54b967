// Package session owns the single active wallet connection.
//
// A Manager is either disconnected or connected to one node with one wallet
// and one mailbox contract binding. Connect and disconnect transitions fire
// one-shot listeners, most recently registered first.
//
// A Manager is not safe for concurrent use; callers serialise access to it.
package session

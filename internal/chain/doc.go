// Package chain provides the go-ethereum implementation of the domain chain
// interfaces used by mailbox.
//
// The node is reached over standard JSON-RPC; nothing here defines a
// protocol of its own. This package offers:
//   - Connector: dials a provider and binds the mailbox contract to it.
//   - Provider: an ethclient connection whose readiness probe is eth_chainId.
//   - Mailbox: the contract binding (Register log queries, transaction
//     lookups, sending register()).
//   - FromGethTransaction: conversion of go-ethereum transactions into the
//     domain record that signature recovery works on.
//
// Errors from the node are wrapped with the RPC method that failed and
// returned as-is; there is no retry here.
package chain

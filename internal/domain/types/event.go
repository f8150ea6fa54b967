package types

import "github.com/ethereum/go-ethereum/common"

// RegistrationEvent is a Register log of the mailbox contract together with
// the transaction that emitted it. It is read-only.
type RegistrationEvent struct {
	Sender      common.Address `json:"sender"`
	BlockNumber uint64         `json:"blockNumber"`
	TxHash      common.Hash    `json:"transactionHash"`
	LogIndex    uint           `json:"logIndex"`
	Transaction Transaction    `json:"transaction"`
}

// RegisterLog is the raw Register log before its transaction is fetched.
type RegisterLog struct {
	Sender      common.Address
	BlockNumber uint64
	TxHash      common.Hash
	LogIndex    uint
}

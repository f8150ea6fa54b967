package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// Transaction is a signed transaction as observed on chain.
//
// The business fields are what the sender signed; R, S and V are the raw
// signature values exactly as the node reports them (V is the EIP-155 value
// for protected legacy transactions and the y-parity for typed ones).
type Transaction struct {
	Hash common.Hash `json:"hash"`
	Type TxType      `json:"type"`

	ChainID              *big.Int            `json:"chainId,omitempty"`
	Nonce                uint64              `json:"nonce"`
	GasLimit             uint64              `json:"gasLimit"`
	GasPrice             *big.Int            `json:"gasPrice,omitempty"`
	MaxFeePerGas         *big.Int            `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *big.Int            `json:"maxPriorityFeePerGas,omitempty"`
	To                   *common.Address     `json:"to,omitempty"`
	Value                *big.Int            `json:"value"`
	Data                 []byte              `json:"data"`
	AccessList           ethtypes.AccessList `json:"accessList,omitempty"`

	R *big.Int `json:"r"`
	S *big.Int `json:"s"`
	V *big.Int `json:"v"`
}

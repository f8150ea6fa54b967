package chain

import (
	"math/big"

	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"mailbox/internal/domain"
)

// FromGethTransaction copies the fields recovery needs out of a go-ethereum
// transaction. Fee fields are set according to the transaction type.
func FromGethTransaction(tx *ethtypes.Transaction) domain.Transaction {
	v, r, s := tx.RawSignatureValues()
	out := domain.Transaction{
		Hash:       tx.Hash(),
		Type:       domain.TxType(tx.Type()),
		ChainID:    tx.ChainId(),
		Nonce:      tx.Nonce(),
		GasLimit:   tx.Gas(),
		To:         tx.To(),
		Value:      tx.Value(),
		Data:       tx.Data(),
		AccessList: tx.AccessList(),
		R:          copyBig(r),
		S:          copyBig(s),
		V:          copyBig(v),
	}
	switch tx.Type() {
	case ethtypes.LegacyTxType, ethtypes.AccessListTxType:
		out.GasPrice = tx.GasPrice()
	case ethtypes.DynamicFeeTxType:
		out.MaxFeePerGas = tx.GasFeeCap()
		out.MaxPriorityFeePerGas = tx.GasTipCap()
	}
	return out
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

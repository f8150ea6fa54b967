package types

// TxType is the EIP-2718 transaction type byte. Legacy transactions are 0.
type TxType uint8

const (
	LegacyTxType     TxType = 0x00
	AccessListTxType TxType = 0x01
	DynamicFeeTxType TxType = 0x02
)

// String returns a short name for the transaction type.
func (t TxType) String() string {
	switch t {
	case LegacyTxType:
		return "legacy"
	case AccessListTxType:
		return "access-list"
	case DynamicFeeTxType:
		return "dynamic-fee"
	default:
		return "unknown"
	}
}

// SessionScope names the scope a persisted secret belongs to, e.g. one shell.
type SessionScope string

// String returns the string form of the scope.
func (s SessionScope) String() string { return string(s) }

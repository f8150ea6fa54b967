package recovery

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"mailbox/internal/domain"
)

const (
	signatureLength = 65

	// Legacy v values: 27/28 unprotected, chainID*2+35/36 under EIP-155.
	legacyVBase  = 27
	eip155VBase  = 35
	scalarLength = 32
)

var (
	// ErrMissingSignature is returned when r, s or v is absent.
	ErrMissingSignature = errors.New("transaction is missing r, s or v")

	// ErrInvalidSignature is returned when the signature values cannot be recovered.
	ErrInvalidSignature = errors.New("invalid transaction signature")

	// ErrUnsupportedTxType is returned for transaction types other than 0, 1 and 2.
	ErrUnsupportedTxType = errors.New("unsupported transaction type")
)

// Recover returns the public key and address that signed tx.
func Recover(tx domain.Transaction) (domain.RecoveredIdentity, error) {
	sig, err := JoinSignature(tx)
	if err != nil {
		return domain.RecoveredIdentity{}, err
	}
	hash, err := SigningHash(tx)
	if err != nil {
		return domain.RecoveredIdentity{}, err
	}

	pub, err := ethcrypto.Ecrecover(hash.Bytes(), sig)
	if err != nil {
		return domain.RecoveredIdentity{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return domain.RecoveredIdentity{
		PublicKey: pub,
		Address:   common.BytesToAddress(ethcrypto.Keccak256(pub[1:])[12:]),
	}, nil
}

// JoinSignature returns the 65-byte [R || S || V] signature of tx with V
// normalised to the recovery id (0 or 1).
func JoinSignature(tx domain.Transaction) ([]byte, error) {
	if tx.R == nil || tx.S == nil || tx.V == nil {
		return nil, ErrMissingSignature
	}
	if tx.R.Sign() <= 0 || tx.S.Sign() <= 0 ||
		tx.R.BitLen() > 8*scalarLength || tx.S.BitLen() > 8*scalarLength {
		return nil, fmt.Errorf("%w: r or s out of range", ErrInvalidSignature)
	}
	recID, err := recoveryID(tx)
	if err != nil {
		return nil, err
	}

	sig := make([]byte, signatureLength)
	tx.R.FillBytes(sig[:scalarLength])
	tx.S.FillBytes(sig[scalarLength : 2*scalarLength])
	sig[2*scalarLength] = recID
	return sig, nil
}

// SigningHash returns the Keccak-256 digest the sender signed.
func SigningHash(tx domain.Transaction) (common.Hash, error) {
	payload, err := SigningPayload(tx)
	if err != nil {
		return common.Hash{}, err
	}
	return ethcrypto.Keccak256Hash(payload), nil
}

// SigningPayload rebuilds the unsigned serialisation of tx from its business
// fields. Signature fields only decide EIP-155 protection for legacy
// transactions.
func SigningPayload(tx domain.Transaction) ([]byte, error) {
	switch tx.Type {
	case domain.LegacyTxType:
		fields := []any{
			tx.Nonce,
			orZero(tx.GasPrice),
			tx.GasLimit,
			tx.To,
			orZero(tx.Value),
			tx.Data,
		}
		chainID, protected, err := legacyChainID(tx)
		if err != nil {
			return nil, err
		}
		if protected {
			fields = append(fields, chainID, uint(0), uint(0))
		}
		return rlp.EncodeToBytes(fields)

	case domain.AccessListTxType:
		return typedPayload(tx.Type, []any{
			orZero(tx.ChainID),
			tx.Nonce,
			orZero(tx.GasPrice),
			tx.GasLimit,
			tx.To,
			orZero(tx.Value),
			tx.Data,
			tx.AccessList,
		})

	case domain.DynamicFeeTxType:
		return typedPayload(tx.Type, []any{
			orZero(tx.ChainID),
			tx.Nonce,
			orZero(tx.MaxPriorityFeePerGas),
			orZero(tx.MaxFeePerGas),
			tx.GasLimit,
			tx.To,
			orZero(tx.Value),
			tx.Data,
			tx.AccessList,
		})

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedTxType, tx.Type)
	}
}

func typedPayload(txType domain.TxType, fields []any) ([]byte, error) {
	body, err := rlp.EncodeToBytes(fields)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(txType)}, body...), nil
}

// recoveryID maps the raw v value of tx to 0 or 1.
func recoveryID(tx domain.Transaction) (byte, error) {
	var rec *big.Int
	switch tx.Type {
	case domain.LegacyTxType:
		chainID, protected, err := legacyChainID(tx)
		if err != nil {
			return 0, err
		}
		if protected {
			rec = new(big.Int).Sub(tx.V, big.NewInt(eip155VBase))
			rec.Sub(rec, new(big.Int).Lsh(chainID, 1))
		} else {
			rec = new(big.Int).Sub(tx.V, big.NewInt(legacyVBase))
		}
	case domain.AccessListTxType, domain.DynamicFeeTxType:
		rec = tx.V
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedTxType, tx.Type)
	}

	if !rec.IsUint64() || rec.Uint64() > 1 {
		return 0, fmt.Errorf("%w: v=%s", ErrInvalidSignature, tx.V)
	}
	return byte(rec.Uint64()), nil
}

// legacyChainID reports whether a legacy tx is EIP-155 protected and for
// which chain. v of 27/28 means unprotected; otherwise the chain id comes
// from tx.ChainID or, when absent, is derived from v.
func legacyChainID(tx domain.Transaction) (*big.Int, bool, error) {
	if tx.V == nil {
		if tx.ChainID != nil && tx.ChainID.Sign() > 0 {
			return tx.ChainID, true, nil
		}
		return nil, false, nil
	}
	if tx.V.IsUint64() && (tx.V.Uint64() == legacyVBase || tx.V.Uint64() == legacyVBase+1) {
		return nil, false, nil
	}
	if tx.V.Cmp(big.NewInt(eip155VBase)) < 0 {
		return nil, false, fmt.Errorf("%w: legacy v=%s", ErrInvalidSignature, tx.V)
	}
	if tx.ChainID != nil && tx.ChainID.Sign() > 0 {
		return tx.ChainID, true, nil
	}
	derived := new(big.Int).Sub(tx.V, big.NewInt(eip155VBase))
	return derived.Rsh(derived, 1), true, nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

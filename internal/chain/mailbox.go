package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"mailbox/internal/domain"
)

var (
	// ErrNoWallet is returned when a write is attempted on a read-only binding.
	ErrNoWallet = errors.New("mailbox binding has no wallet")

	// ErrPendingTransaction is returned when a looked-up transaction is not mined yet.
	ErrPendingTransaction = errors.New("transaction is still pending")
)

// Mailbox is the mailbox contract bound to a backend and, optionally, a wallet.
type Mailbox struct {
	address common.Address
	backend Backend
	wallet  *domain.Wallet
	chainID *big.Int
	bound   *bind.BoundContract
}

// NewMailbox binds the contract at address. wallet may be nil for read-only use.
func NewMailbox(address common.Address, backend Backend, wallet *domain.Wallet, chainID *big.Int) *Mailbox {
	return &Mailbox{
		address: address,
		backend: backend,
		wallet:  wallet,
		chainID: chainID,
		bound:   bind.NewBoundContract(address, parsedMailboxABI, backend, backend, backend),
	}
}

// Address returns the contract address.
func (m *Mailbox) Address() common.Address { return m.address }

// FilterRegister queries Register logs for registrants over the whole chain
// history. Logs come back in node order (ascending block, then log index);
// logs removed by a reorg are dropped.
func (m *Mailbox) FilterRegister(
	ctx context.Context,
	registrants ...common.Address,
) ([]domain.RegisterLog, error) {
	topics := [][]common.Hash{{parsedMailboxABI.Events[registerEvent].ID}}
	if len(registrants) > 0 {
		who := make([]common.Hash, 0, len(registrants))
		for _, addr := range registrants {
			who = append(who, common.BytesToHash(addr.Bytes()))
		}
		topics = append(topics, who)
	}

	logs, err := m.backend.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: big.NewInt(0),
		Addresses: []common.Address{m.address},
		Topics:    topics,
	})
	if err != nil {
		return nil, fmt.Errorf("eth_getLogs Register: %w", err)
	}

	out := make([]domain.RegisterLog, 0, len(logs))
	for _, l := range logs {
		if l.Removed || len(l.Topics) < 2 {
			continue
		}
		out = append(out, domain.RegisterLog{
			Sender:      common.BytesToAddress(l.Topics[1].Bytes()),
			BlockNumber: l.BlockNumber,
			TxHash:      l.TxHash,
			LogIndex:    l.Index,
		})
	}
	return out, nil
}

// Transaction fetches a mined transaction by hash.
func (m *Mailbox) Transaction(ctx context.Context, hash common.Hash) (domain.Transaction, error) {
	tx, pending, err := m.backend.TransactionByHash(ctx, hash)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("eth_getTransactionByHash %s: %w", hash, err)
	}
	if pending {
		return domain.Transaction{}, fmt.Errorf("%w: %s", ErrPendingTransaction, hash)
	}
	return FromGethTransaction(tx), nil
}

// Register sends register() signed by the bound wallet.
func (m *Mailbox) Register(ctx context.Context) (common.Hash, error) {
	if m.wallet == nil || m.wallet.PrivateKey == nil {
		return common.Hash{}, ErrNoWallet
	}
	opts, err := bind.NewKeyedTransactorWithChainID(m.wallet.PrivateKey, m.chainID)
	if err != nil {
		return common.Hash{}, err
	}
	opts.Context = ctx

	tx, err := m.bound.Transact(opts, registerMethod)
	if err != nil {
		return common.Hash{}, fmt.Errorf("send %s(): %w", registerMethod, err)
	}
	return tx.Hash(), nil
}

// Compile-time assertion that Mailbox implements domain.MailboxContract.
var _ domain.MailboxContract = (*Mailbox)(nil)

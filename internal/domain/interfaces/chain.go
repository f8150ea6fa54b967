package interfaces

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	domaintypes "mailbox/internal/domain/types"
)

// Provider is a live JSON-RPC connection to a node.
type Provider interface {
	// ChainID doubles as the readiness probe: a provider is ready once the
	// node has answered it.
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// MailboxContract is the capability set a mailbox binding must offer.
type MailboxContract interface {
	// Address returns the on-chain address of the contract.
	Address() common.Address

	// FilterRegister returns Register logs whose indexed address is one of
	// registrants, in the order the node returned them.
	FilterRegister(
		ctx context.Context,
		registrants ...common.Address,
	) ([]domaintypes.RegisterLog, error)

	// Transaction fetches a mined transaction by hash.
	Transaction(ctx context.Context, hash common.Hash) (domaintypes.Transaction, error)

	// Register sends register() from the bound wallet and returns the tx hash.
	Register(ctx context.Context) (common.Hash, error)
}

// ChainConnector opens providers and binds contracts to them.
type ChainConnector interface {
	Dial(ctx context.Context, rpcURL string) (Provider, error)
	BindMailbox(
		address common.Address,
		provider Provider,
		wallet *domaintypes.Wallet,
		chainID *big.Int,
	) (MailboxContract, error)
}

package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"mailbox/internal/domain"
)

// ErrUnsupportedProvider is returned when a provider was not created by Connector.
var ErrUnsupportedProvider = errors.New("provider cannot back a contract binding")

// Backend is everything the mailbox binding needs from a node connection.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	ChainID(ctx context.Context) (*big.Int, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*ethtypes.Transaction, bool, error)
}

// Provider is a JSON-RPC connection to a node.
type Provider struct {
	Backend
	url    string
	closer func()
}

// NewProvider wraps an existing backend, e.g. a simulated one in tests.
func NewProvider(url string, backend Backend) *Provider {
	return &Provider{Backend: backend, url: url, closer: func() {}}
}

// URL returns the endpoint the provider was dialled with.
func (p *Provider) URL() string { return p.url }

// ChainID asks the node for its chain id.
func (p *Provider) ChainID(ctx context.Context) (*big.Int, error) {
	id, err := p.Backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("eth_chainId %s: %w", p.url, err)
	}
	return id, nil
}

// Close releases the underlying connection.
func (p *Provider) Close() { p.closer() }

// Connector dials ethclient providers and binds mailbox contracts.
type Connector struct{}

// NewConnector returns a Connector.
func NewConnector() *Connector { return &Connector{} }

// Dial connects to rpcURL. It does not wait for the node; the session
// manager probes readiness with ChainID.
func (c *Connector) Dial(ctx context.Context, rpcURL string) (domain.Provider, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}
	return &Provider{Backend: client, url: rpcURL, closer: client.Close}, nil
}

// BindMailbox binds the contract at address to provider, signing with wallet.
func (c *Connector) BindMailbox(
	address common.Address,
	provider domain.Provider,
	wallet *domain.Wallet,
	chainID *big.Int,
) (domain.MailboxContract, error) {
	p, ok := provider.(*Provider)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedProvider, provider)
	}
	return NewMailbox(address, p.Backend, wallet, chainID), nil
}

// Compile-time assertions that Connector and Provider implement the domain interfaces.
var (
	_ domain.ChainConnector = (*Connector)(nil)
	_ domain.Provider       = (*Provider)(nil)
)

// Package chaintest provides an in-memory chain for tests of code that
// depends on domain.ChainConnector and domain.MailboxContract.
package chaintest

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"mailbox/internal/chain"
	"mailbox/internal/domain"
)

// RegisterSelector is the 4-byte selector of register().
var RegisterSelector = ethcrypto.Keccak256([]byte("register()"))[:4]

// Chain is a minimal ledger of Register logs and their transactions.
type Chain struct {
	ID *big.Int

	mu     sync.Mutex
	logs   []domain.RegisterLog
	txs    map[common.Hash]domain.Transaction
	nonces map[common.Address]uint64
	block  uint64
}

// NewChain returns an empty chain with the given id.
func NewChain(id int64) *Chain {
	return &Chain{
		ID:     big.NewInt(id),
		txs:    make(map[common.Hash]domain.Transaction),
		nonces: make(map[common.Address]uint64),
	}
}

// SignRegister signs a register() call to contract from key.
func SignRegister(key *ecdsa.PrivateKey, contract common.Address, chainID *big.Int, nonce uint64) (domain.Transaction, error) {
	tx, err := ethtypes.SignNewTx(key, ethtypes.LatestSignerForChainID(chainID), &ethtypes.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: big.NewInt(1_000_000_000),
		GasFeeCap: big.NewInt(2_000_000_000),
		Gas:       50_000,
		To:        &contract,
		Data:      RegisterSelector,
	})
	if err != nil {
		return domain.Transaction{}, err
	}
	return chain.FromGethTransaction(tx), nil
}

// Register mines a register() transaction from key in a new block and
// returns it.
func (c *Chain) Register(key *ecdsa.PrivateKey, contract common.Address) (domain.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sender := ethcrypto.PubkeyToAddress(key.PublicKey)
	tx, err := SignRegister(key, contract, c.ID, c.nonces[sender])
	if err != nil {
		return domain.Transaction{}, err
	}
	c.nonces[sender]++
	c.block++
	c.mine(domain.RegisterLog{Sender: sender, BlockNumber: c.block, TxHash: tx.Hash}, tx)
	return tx, nil
}

// AddLog appends a Register log for tx as is, e.g. one whose sender does not
// match the signer.
func (c *Chain) AddLog(l domain.RegisterLog, tx domain.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mine(l, tx)
}

func (c *Chain) mine(l domain.RegisterLog, tx domain.Transaction) {
	c.logs = append(c.logs, l)
	c.txs[l.TxHash] = tx
}

// Bind returns a contract view of the chain signing with wallet, which may be nil.
func (c *Chain) Bind(address common.Address, wallet *domain.Wallet) *Contract {
	return &Contract{chain: c, address: address, wallet: wallet}
}

// Contract implements domain.MailboxContract over a Chain.
type Contract struct {
	chain   *Chain
	address common.Address
	wallet  *domain.Wallet

	// FilterErr, when set, is returned by FilterRegister.
	FilterErr error
}

func (k *Contract) Address() common.Address { return k.address }

// Wallet returns the wallet the view was bound with.
func (k *Contract) Wallet() *domain.Wallet { return k.wallet }

func (k *Contract) FilterRegister(ctx context.Context, registrants ...common.Address) ([]domain.RegisterLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k.FilterErr != nil {
		return nil, k.FilterErr
	}
	want := make(map[common.Address]bool, len(registrants))
	for _, a := range registrants {
		want[a] = true
	}

	k.chain.mu.Lock()
	defer k.chain.mu.Unlock()
	var out []domain.RegisterLog
	for _, l := range k.chain.logs {
		if len(want) == 0 || want[l.Sender] {
			out = append(out, l)
		}
	}
	return out, nil
}

func (k *Contract) Transaction(_ context.Context, hash common.Hash) (domain.Transaction, error) {
	k.chain.mu.Lock()
	defer k.chain.mu.Unlock()
	tx, ok := k.chain.txs[hash]
	if !ok {
		return domain.Transaction{}, fmt.Errorf("transaction %s: not found", hash)
	}
	return tx, nil
}

func (k *Contract) Register(context.Context) (common.Hash, error) {
	if k.wallet == nil || k.wallet.PrivateKey == nil {
		return common.Hash{}, chain.ErrNoWallet
	}
	tx, err := k.chain.Register(k.wallet.PrivateKey, k.address)
	if err != nil {
		return common.Hash{}, err
	}
	return tx.Hash, nil
}

// ErrDial is returned by Connector.Dial while Down is set.
var ErrDial = errors.New("connection refused")

// Connector implements domain.ChainConnector over a Chain.
type Connector struct {
	Chain *Chain

	// Down makes Dial fail with ErrDial.
	Down bool
	// NotReady makes the provider's ChainID probe fail.
	NotReady bool
	// ReportedChainID overrides the id providers report.
	ReportedChainID *big.Int

	mu        sync.Mutex
	Providers []*Provider
	Dialled   []string
}

// NewConnector returns a connector for chain.
func NewConnector(c *Chain) *Connector { return &Connector{Chain: c} }

func (c *Connector) Dial(ctx context.Context, rpcURL string) (domain.Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Dialled = append(c.Dialled, rpcURL)
	if c.Down {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, ErrDial)
	}

	id := c.Chain.ID
	if c.ReportedChainID != nil {
		id = c.ReportedChainID
	}
	p := &Provider{id: id, notReady: c.NotReady}
	c.Providers = append(c.Providers, p)
	return p, nil
}

func (c *Connector) BindMailbox(
	address common.Address,
	provider domain.Provider,
	wallet *domain.Wallet,
	_ *big.Int,
) (domain.MailboxContract, error) {
	if _, ok := provider.(*Provider); !ok {
		return nil, fmt.Errorf("%w: %T", chain.ErrUnsupportedProvider, provider)
	}
	return c.Chain.Bind(address, wallet), nil
}

// Provider implements domain.Provider.
type Provider struct {
	id       *big.Int
	notReady bool

	mu     sync.Mutex
	closed bool
}

func (p *Provider) ChainID(ctx context.Context) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.notReady {
		return nil, errors.New("eth_chainId: node not ready")
	}
	return new(big.Int).Set(p.id), nil
}

func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// Closed reports whether Close was called.
func (p *Provider) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Compile-time assertions that the fakes implement the domain interfaces.
var (
	_ domain.ChainConnector  = (*Connector)(nil)
	_ domain.Provider        = (*Provider)(nil)
	_ domain.MailboxContract = (*Contract)(nil)
)

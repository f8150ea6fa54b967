package session

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"mailbox/internal/crypto"
	"mailbox/internal/domain"
)

var (
	// ErrNotConnected is returned by accessors while no session is active.
	ErrNotConnected = errors.New("not connected")

	// ErrChainMismatch is returned when the node serves another chain than configured.
	ErrChainMismatch = errors.New("node reports a different chain id")

	// ErrNoSecret is returned when Connect is given an empty secret.
	ErrNoSecret = errors.New("no secret to connect with")
)

// Config holds the Manager's collaborators and connection settings.
type Config struct {
	RPCURL         string
	MailboxAddress common.Address
	// ChainID, when non-nil and non-zero, must match the node's chain id.
	ChainID *big.Int

	Connector domain.ChainConnector
	Store     domain.SecretStore
	Logger    *logrus.Logger
}

// Manager tracks the active session and its listeners.
type Manager struct {
	cfg     Config
	logger  *logrus.Logger
	current *domain.Session

	onConnect    queue[ConnectListener]
	onDisconnect queue[DisconnectListener]
}

// New returns a disconnected Manager.
func New(cfg Config) (*Manager, error) {
	if cfg.Connector == nil {
		return nil, errors.New("session: connector is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("session: secret store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return &Manager{cfg: cfg, logger: logger}, nil
}

// Connect opens a provider, derives the wallet for secret, binds the mailbox
// contract and persists secret. Connect listeners then fire with
// isReconnect = false. On error the previous state is left untouched.
func (m *Manager) Connect(ctx context.Context, secret string) (*domain.Wallet, error) {
	return m.connect(ctx, secret, false)
}

// TryConnect resumes the session from the stored secret, if there is one.
// It reports whether a secret was found; listeners fire with isReconnect = true.
func (m *Manager) TryConnect(ctx context.Context) (bool, error) {
	secret, ok, err := m.cfg.Store.LoadSecret()
	if err != nil {
		return false, fmt.Errorf("load stored secret: %w", err)
	}
	if !ok {
		return false, nil
	}
	if _, err := m.connect(ctx, secret, true); err != nil {
		return true, err
	}
	return true, nil
}

func (m *Manager) connect(ctx context.Context, secret string, isReconnect bool) (*domain.Wallet, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	log := m.logger.WithField("rpc_url", m.cfg.RPCURL)

	log.Debugf("Connecting to Ethereum node %s", m.cfg.RPCURL)
	provider, err := m.cfg.Connector.Dial(ctx, m.cfg.RPCURL)
	if err != nil {
		return nil, err
	}

	// Not ready until the node has answered.
	chainID, err := provider.ChainID(ctx)
	if err != nil {
		provider.Close()
		return nil, err
	}
	if want := m.cfg.ChainID; want != nil && want.Sign() != 0 && want.Cmp(chainID) != 0 {
		provider.Close()
		return nil, fmt.Errorf("%w: want %s, node reports %s", ErrChainMismatch, want, chainID)
	}
	log.WithField("chain_id", chainID).Infof("Connected to Ethereum node %s", m.cfg.RPCURL)

	wallet, err := crypto.WalletFromSecret(secret)
	if err != nil {
		provider.Close()
		return nil, err
	}
	contract, err := m.cfg.Connector.BindMailbox(m.cfg.MailboxAddress, provider, wallet, chainID)
	if err != nil {
		provider.Close()
		return nil, fmt.Errorf("bind mailbox %s: %w", m.cfg.MailboxAddress, err)
	}
	if err := m.cfg.Store.SaveSecret(secret); err != nil {
		provider.Close()
		return nil, fmt.Errorf("persist secret: %w", err)
	}

	if prev := m.current; prev != nil && prev.Provider != nil {
		prev.Provider.Close()
	}
	m.current = &domain.Session{
		Wallet:   wallet,
		ChainID:  chainID,
		Provider: provider,
		Contract: contract,
	}
	m.logger.WithField("address", wallet.Address.Hex()).
		Infof("Connected to Ethereum wallet %s", wallet.Address.Hex())

	m.onConnect.drain(func(fn ConnectListener) { fn(wallet, isReconnect) })
	return wallet, nil
}

// Disconnect clears the stored secret, drops the session and fires
// disconnect listeners. The session is torn down even when clearing the
// store fails; that error is returned afterwards.
func (m *Manager) Disconnect() error {
	clearErr := m.cfg.Store.ClearSecret()

	if prev := m.current; prev != nil {
		if prev.Provider != nil {
			prev.Provider.Close()
		}
		m.logger.WithField("address", prev.Wallet.Address.Hex()).Info("Disconnected from Ethereum wallet")
	}
	m.current = nil

	m.onDisconnect.drain(func(fn DisconnectListener) { fn() })

	if clearErr != nil {
		return fmt.Errorf("clear stored secret: %w", clearErr)
	}
	return nil
}

// OnConnect registers a one-shot connect listener. When already connected,
// fn is called immediately with isReconnect = false and nothing is queued.
func (m *Manager) OnConnect(fn ConnectListener) CancelFunc {
	if m.current != nil {
		fn(m.current.Wallet, false)
		return func() {}
	}
	return m.onConnect.add(fn)
}

// OnDisconnect registers a one-shot disconnect listener.
func (m *Manager) OnDisconnect(fn DisconnectListener) CancelFunc {
	return m.onDisconnect.add(fn)
}

// Connected reports whether a session is active.
func (m *Manager) Connected() bool { return m.current != nil }

// Current returns the active session.
func (m *Manager) Current() (*domain.Session, error) {
	if m.current == nil {
		return nil, ErrNotConnected
	}
	return m.current, nil
}

// Wallet returns the connected wallet, or nil.
func (m *Manager) Wallet() *domain.Wallet {
	if m.current == nil {
		return nil
	}
	return m.current.Wallet
}

// Contract returns the bound mailbox contract.
func (m *Manager) Contract() (domain.MailboxContract, error) {
	if m.current == nil {
		return nil, ErrNotConnected
	}
	return m.current.Contract, nil
}

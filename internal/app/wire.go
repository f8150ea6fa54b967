package app

import (
	"os"

	"github.com/sirupsen/logrus"

	"mailbox/internal/chain"
	"mailbox/internal/domain"
	messagesvc "mailbox/internal/services/message"
	registrysvc "mailbox/internal/services/registry"
	sessionsvc "mailbox/internal/services/session"
	"mailbox/internal/store"
)

// Overrides replaces default collaborators; zero fields keep the defaults.
type Overrides struct {
	Connector domain.ChainConnector
	Store     domain.SecretStore
	Logger    *logrus.Logger
}

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config    Config
	Logger    *logrus.Logger
	Store     domain.SecretStore
	Connector domain.ChainConnector
	Session   *sessionsvc.Manager
	Registry  domain.RegistryService
	Messages  domain.MessageService
}

// NewWire constructs the dependency graph from cfg. The default secret store
// is sealed with passphrase under cfg.Home.
func NewWire(cfg Config, passphrase string, o Overrides) (*Wire, error) {
	logger := o.Logger
	if logger == nil {
		logger = cfg.NewLogger()
	}

	// File-based secret store, scoped to this terminal session
	secrets := o.Store
	if secrets == nil {
		if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
			return nil, err
		}
		fs, err := store.NewFileSecretStore(cfg.Home, cfg.Scope(), passphrase)
		if err != nil {
			return nil, err
		}
		secrets = fs
	}

	// JSON-RPC connector
	connector := o.Connector
	if connector == nil {
		connector = chain.NewConnector()
	}

	mgr, err := sessionsvc.New(sessionsvc.Config{
		RPCURL:         cfg.RPCURL,
		MailboxAddress: cfg.Mailbox(),
		ChainID:        cfg.ExpectedChainID(),
		Connector:      connector,
		Store:          secrets,
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}

	// High-level services
	registry := registrysvc.New(logger)
	messages := messagesvc.New(registry, logger)

	return &Wire{
		Config:    cfg,
		Logger:    logger,
		Store:     secrets,
		Connector: connector,
		Session:   mgr,
		Registry:  registry,
		Messages:  messages,
	}, nil
}

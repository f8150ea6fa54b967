package app

import (
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"mailbox/internal/domain"
)

// Config holds runtime options read from the environment.
type Config struct {
	RPCURL         string `envconfig:"ETH_RPC_URL" required:"true"`
	MailboxAddress string `envconfig:"ETH_MAILBOX_ADDRESS" required:"true"`
	ChainID        int64  `envconfig:"ETH_CHAIN_ID" default:"0"`
	PrivateKey     string `envconfig:"ETH_PRIVATE_KEY"`

	Home     string `envconfig:"MAILBOX_HOME"`    // default ~/.mailbox
	Session  string `envconfig:"MAILBOX_SESSION"` // default: the parent process id
	LogLevel string `envconfig:"MAILBOX_LOG_LEVEL" default:"info"`
}

// LoadConfig loads envFiles (default ".env") into the environment without
// overriding variables already set, then processes the environment.
// Missing env files are ignored.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		cfg.Home = filepath.Join(dir, ".mailbox")
	}
	if cfg.Session == "" {
		// The shell that runs us; a new terminal gets a fresh session.
		cfg.Session = strconv.Itoa(os.Getppid())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values LoadConfig cannot express as struct tags.
func (c Config) Validate() error {
	u, err := url.Parse(c.RPCURL)
	if err != nil {
		return fmt.Errorf("ETH_RPC_URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("ETH_RPC_URL: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("ETH_RPC_URL: missing host in %q", c.RPCURL)
	}
	if !common.IsHexAddress(c.MailboxAddress) {
		return fmt.Errorf("ETH_MAILBOX_ADDRESS: %q is not a hex address", c.MailboxAddress)
	}
	if c.ChainID < 0 {
		return fmt.Errorf("ETH_CHAIN_ID: must not be negative, got %d", c.ChainID)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("MAILBOX_LOG_LEVEL: %w", err)
	}
	return nil
}

// Mailbox returns the configured contract address.
func (c Config) Mailbox() common.Address { return common.HexToAddress(c.MailboxAddress) }

// ExpectedChainID returns the configured chain id, or nil when none is set.
func (c Config) ExpectedChainID() *big.Int {
	if c.ChainID == 0 {
		return nil
	}
	return big.NewInt(c.ChainID)
}

// Scope returns the session scope the secret is stored under.
func (c Config) Scope() domain.SessionScope { return domain.SessionScope(c.Session) }

// NewLogger returns a logger writing to stderr at the configured level.
func (c Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

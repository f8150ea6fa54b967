package message

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"mailbox/internal/domain"
	"mailbox/internal/protocol/ecies"
	"mailbox/internal/protocol/recovery"
)

var (
	// ErrNotRegistered indicates the recipient has no Register event.
	ErrNotRegistered = errors.New("recipient is not registered")

	// ErrIdentityMismatch indicates the Register transaction was signed by
	// someone other than the registrant.
	ErrIdentityMismatch = errors.New("registration signer does not match registrant")

	// ErrNoWallet indicates decryption was attempted without a wallet.
	ErrNoWallet = errors.New("no wallet to decrypt with")
)

// Service encrypts to and decrypts for mailbox users.
//
// High-level flow:
//   - EncryptFor: look up the recipient's Register event, recover the public
//     key from its transaction, then ECIES-encrypt to that key.
//   - Decrypt: ECIES-decrypt an envelope with the connected wallet's key.
type Service struct {
	registry domain.RegistryService
	logger   *logrus.Logger
}

// New constructs a message Service. A nil logger falls back to logrus.New().
func New(registry domain.RegistryService, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{registry: registry, logger: logger}
}

// EncryptFor seals message for recipient.
func (s *Service) EncryptFor(
	ctx context.Context,
	contract domain.MailboxContract,
	recipient common.Address,
	message string,
) (domain.Envelope, error) {
	ev, err := s.registry.GetRegisteredEvent(ctx, contract, recipient)
	if err != nil {
		return domain.Envelope{}, err
	}
	if ev == nil {
		return domain.Envelope{}, fmt.Errorf("%w: %s", ErrNotRegistered, recipient)
	}

	id, err := recovery.Recover(ev.Transaction)
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("recover key of %s: %w", recipient, err)
	}
	// The log's indexed sender is msg.sender of register(); anything else
	// means the event was emitted through a relaying contract.
	if id.Address != ev.Sender {
		return domain.Envelope{}, fmt.Errorf("%w: event %s, signer %s", ErrIdentityMismatch, ev.Sender, id.Address)
	}

	env, err := ecies.EncryptWithPublicKey(id.PublicKey, message, nil)
	if err != nil {
		return domain.Envelope{}, err
	}
	s.logger.WithFields(logrus.Fields{
		"recipient": recipient.Hex(),
		"tx_hash":   ev.TxHash.Hex(),
	}).Debug("Encrypted message for recipient")
	return env, nil
}

// Decrypt opens an envelope with wallet's private key.
func (s *Service) Decrypt(wallet *domain.Wallet, envelope domain.Envelope) (string, error) {
	if wallet == nil || wallet.PrivateKey == nil {
		return "", ErrNoWallet
	}
	return ecies.DecryptWithPrivateKey(wallet.PrivateKey, envelope)
}

// Compile-time assertion that Service implements domain.MessageService.
var _ domain.MessageService = (*Service)(nil)

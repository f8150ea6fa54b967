package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"mailbox/internal/domain"
)

// ErrNoContract is returned when no contract binding was supplied.
var ErrNoContract = errors.New("no mailbox contract binding")

// Service looks up and sends registrations.
type Service struct {
	logger *logrus.Logger
}

// New constructs a registry Service. A nil logger falls back to logrus.New().
func New(logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{logger: logger}
}

// GetRegisteredEvent returns the first Register event emitted for address, in
// the order the node returns logs, together with its transaction. It returns
// (nil, nil) when address never registered.
//
// Steps:
//  1. Filter Register logs whose indexed address is address.
//  2. Take the first one; later re-registrations are ignored.
//  3. Fetch the transaction that emitted it.
func (s *Service) GetRegisteredEvent(
	ctx context.Context,
	contract domain.MailboxContract,
	address common.Address,
) (*domain.RegistrationEvent, error) {
	if contract == nil {
		return nil, ErrNoContract
	}

	logs, err := contract.FilterRegister(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("query Register events for %s: %w", address, err)
	}
	if len(logs) == 0 {
		s.logger.WithField("address", address.Hex()).Debug("No Register event found")
		return nil, nil
	}

	first := logs[0]
	tx, err := contract.Transaction(ctx, first.TxHash)
	if err != nil {
		return nil, fmt.Errorf("fetch Register transaction %s: %w", first.TxHash, err)
	}

	s.logger.WithFields(logrus.Fields{
		"address":  address.Hex(),
		"block":    first.BlockNumber,
		"tx_hash":  first.TxHash.Hex(),
		"matching": len(logs),
	}).Debug("Found Register event")

	return &domain.RegistrationEvent{
		Sender:      first.Sender,
		BlockNumber: first.BlockNumber,
		TxHash:      first.TxHash,
		LogIndex:    first.LogIndex,
		Transaction: tx,
	}, nil
}

// Register sends register() from the wallet bound to contract.
func (s *Service) Register(ctx context.Context, contract domain.MailboxContract) (common.Hash, error) {
	if contract == nil {
		return common.Hash{}, ErrNoContract
	}
	hash, err := contract.Register(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	s.logger.WithFields(logrus.Fields{
		"contract": contract.Address().Hex(),
		"tx_hash":  hash.Hex(),
	}).Info("Sent register transaction")
	return hash, nil
}

// Compile-time assertion that Service implements domain.RegistryService.
var _ domain.RegistryService = (*Service)(nil)

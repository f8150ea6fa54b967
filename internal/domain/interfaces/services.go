package interfaces

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	domaintypes "mailbox/internal/domain/types"
)

// RegistryService finds and creates Register events on the mailbox contract.
type RegistryService interface {
	GetRegisteredEvent(
		ctx context.Context,
		contract MailboxContract,
		address common.Address,
	) (*domaintypes.RegistrationEvent, error)
	Register(ctx context.Context, contract MailboxContract) (common.Hash, error)
}

// MessageService seals messages for registered recipients and opens
// envelopes addressed to the connected wallet.
type MessageService interface {
	EncryptFor(
		ctx context.Context,
		contract MailboxContract,
		recipient common.Address,
		message string,
	) (domaintypes.Envelope, error)
	Decrypt(wallet *domaintypes.Wallet, envelope domaintypes.Envelope) (string, error)
}

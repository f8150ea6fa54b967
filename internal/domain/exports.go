package domain

import (
	interfaces "mailbox/internal/domain/interfaces"
	types "mailbox/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	TxType            = types.TxType
	SessionScope      = types.SessionScope
	Transaction       = types.Transaction
	RecoveredIdentity = types.RecoveredIdentity
	Wallet            = types.Wallet
	RegistrationEvent = types.RegistrationEvent
	RegisterLog       = types.RegisterLog
	Envelope          = types.Envelope
)

// Transaction type constants re-exported from the types subpackage.
const (
	LegacyTxType     = types.LegacyTxType
	AccessListTxType = types.AccessListTxType
	DynamicFeeTxType = types.DynamicFeeTxType
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Provider        = interfaces.Provider
	MailboxContract = interfaces.MailboxContract
	ChainConnector  = interfaces.ChainConnector
	SecretStore     = interfaces.SecretStore
	RegistryService = interfaces.RegistryService
	MessageService  = interfaces.MessageService
)

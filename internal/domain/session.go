package domain

import "math/big"

// Session is the single active wallet, provider and contract binding.
// It is owned by the session manager; everyone else only reads it.
type Session struct {
	Wallet   *Wallet
	ChainID  *big.Int
	Provider Provider
	Contract MailboxContract
}

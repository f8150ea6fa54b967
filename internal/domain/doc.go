// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (chain records, envelopes, wallets) and contracts
// (interfaces) only.
package domain

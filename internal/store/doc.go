// Package store persists the session secret.
//
// FileSecretStore keeps one passphrase-sealed secret per session scope under
// the configured home directory, written atomically via temp file and rename.
// MemorySecretStore holds the secret in process memory and is what tests and
// one-shot commands use. Both are safe for concurrent use.
package store

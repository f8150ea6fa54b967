package interfaces

// SecretStore persists the connected wallet's secret for one session scope.
// A missing secret is reported as ok == false, not as an error.
type SecretStore interface {
	SaveSecret(secret string) error
	LoadSecret() (secret string, ok bool, err error)
	ClearSecret() error
}

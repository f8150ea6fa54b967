package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mailbox/internal/domain"
	"mailbox/internal/store"
)

// Cheap scrypt cost so the tests stay fast.
var testKDF = store.KDFParams{N: 1 << 10, R: 8, P: 1}

const secret = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func newFileStore(t *testing.T, home string, scope domain.SessionScope, pass string) *store.FileSecretStore {
	t.Helper()
	s, err := store.NewFileSecretStore(home, scope, pass)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s.WithKDFParams(testKDF)
}

func TestSecret_SaveLoadClear_OK(t *testing.T) {
	home := t.TempDir()
	var ss domain.SecretStore = newFileStore(t, home, "tab-1", "pass")

	if _, ok, err := ss.LoadSecret(); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}
	if err := ss.SaveSecret(secret); err != nil {
		t.Fatalf("save secret: %v", err)
	}

	got, ok, err := ss.LoadSecret()
	if err != nil || !ok {
		t.Fatalf("load secret: ok=%v err=%v", ok, err)
	}
	if got != secret {
		t.Fatalf("mismatch after load")
	}

	if err := ss.ClearSecret(); err != nil {
		t.Fatalf("clear secret: %v", err)
	}
	if _, ok, _ := ss.LoadSecret(); ok {
		t.Fatal("secret survived ClearSecret")
	}
	if err := ss.ClearSecret(); err != nil {
		t.Fatalf("clearing an empty store: %v", err)
	}
}

func TestSecret_NotStoredInPlaintext(t *testing.T) {
	home := t.TempDir()
	s := newFileStore(t, home, "tab-1", "pass")
	if err := s.SaveSecret(secret); err != nil {
		t.Fatalf("save secret: %v", err)
	}

	want := filepath.Join(home, "sessions", "tab-1", "secret.json")
	if s.Path() != want {
		t.Fatalf("path: want %s, got %s", want, s.Path())
	}
	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read sealed file: %v", err)
	}
	if strings.Contains(string(b), strings.TrimPrefix(secret, "0x")) {
		t.Fatal("secret written in plaintext")
	}
	info, err := os.Stat(want)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode: want 0600, got %v", info.Mode().Perm())
	}
}

func TestSecret_WrongPassphrase_Fails(t *testing.T) {
	home := t.TempDir()
	if err := newFileStore(t, home, "tab-1", "correct").SaveSecret(secret); err != nil {
		t.Fatalf("save secret: %v", err)
	}
	_, _, err := newFileStore(t, home, "tab-1", "wrong").LoadSecret()
	if !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("want ErrWrongPassphrase, got %v", err)
	}
}

func TestSecret_ScopesAreIsolated(t *testing.T) {
	home := t.TempDir()
	if err := newFileStore(t, home, "tab-1", "pass").SaveSecret(secret); err != nil {
		t.Fatalf("save secret: %v", err)
	}
	if _, ok, err := newFileStore(t, home, "tab-2", "pass").LoadSecret(); err != nil || ok {
		t.Fatalf("other scope sees the secret: ok=%v err=%v", ok, err)
	}
}

func TestSecret_InvalidScope(t *testing.T) {
	for _, scope := range []domain.SessionScope{"", ".", "..", "a/b", `a\b`} {
		if _, err := store.NewFileSecretStore(t.TempDir(), scope, "pass"); !errors.Is(err, store.ErrInvalidScope) {
			t.Fatalf("scope %q: want ErrInvalidScope, got %v", scope, err)
		}
	}
}

func TestMemorySecretStore(t *testing.T) {
	var ss domain.SecretStore = store.NewMemorySecretStore()
	if _, ok, _ := ss.LoadSecret(); ok {
		t.Fatal("new store is not empty")
	}
	_ = ss.SaveSecret(secret)
	if got, ok, _ := ss.LoadSecret(); !ok || got != secret {
		t.Fatalf("load: %q %v", got, ok)
	}
	_ = ss.ClearSecret()
	if _, ok, _ := ss.LoadSecret(); ok {
		t.Fatal("secret survived ClearSecret")
	}
}

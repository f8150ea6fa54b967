package session_test

import (
	"context"
	"errors"
	"io"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"mailbox/internal/chain/chaintest"
	"mailbox/internal/crypto"
	"mailbox/internal/domain"
	"mailbox/internal/services/session"
	"mailbox/internal/store"
)

const (
	rpcURL = "http://127.0.0.1:8545"

	// Well-known development accounts.
	secret0 = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	secret1 = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
)

var (
	mailboxAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	address0    = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	address1    = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

type fixture struct {
	mgr       *session.Manager
	connector *chaintest.Connector
	store     domain.SecretStore
}

func newFixture(t *testing.T, ss domain.SecretStore, chainID *big.Int) fixture {
	t.Helper()
	if ss == nil {
		ss = store.NewMemorySecretStore()
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	connector := chaintest.NewConnector(chaintest.NewChain(1337))
	mgr, err := session.New(session.Config{
		RPCURL:         rpcURL,
		MailboxAddress: mailboxAddr,
		ChainID:        chainID,
		Connector:      connector,
		Store:          ss,
		Logger:         logger,
	})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return fixture{mgr: mgr, connector: connector, store: ss}
}

func TestConnect_FiresQueuedListenerOnce(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	calls := 0
	var gotWallet *domain.Wallet
	var gotReconnect bool
	f.mgr.OnConnect(func(w *domain.Wallet, isReconnect bool) {
		calls++
		gotWallet, gotReconnect = w, isReconnect
	})

	w, err := f.mgr.Connect(ctx, secret0)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if calls != 1 || gotWallet != w || gotReconnect {
		t.Fatalf("listener: calls=%d wallet=%v reconnect=%v", calls, gotWallet, gotReconnect)
	}
	if w.Address != address0 {
		t.Fatalf("address: want %s, got %s", address0, w.Address)
	}

	// Same transition again: the listener was one-shot.
	if _, err := f.mgr.Connect(ctx, secret0); err != nil {
		t.Fatalf("second Connect: %v", err)
	}
	if calls != 1 {
		t.Fatalf("one-shot listener fired %d times", calls)
	}
}

func TestOnConnect_WhileConnectedFiresImmediately(t *testing.T) {
	f := newFixture(t, nil, nil)
	if _, err := f.mgr.Connect(context.Background(), secret0); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	fired := false
	cancel := f.mgr.OnConnect(func(w *domain.Wallet, isReconnect bool) {
		fired = true
		if w.Address != address0 || isReconnect {
			t.Errorf("immediate fire: address=%s reconnect=%v", w.Address, isReconnect)
		}
	})
	if !fired {
		t.Fatal("listener did not fire synchronously")
	}
	cancel()
}

func TestOnDisconnect_CancelledListenerSkipped(t *testing.T) {
	f := newFixture(t, nil, nil)
	if _, err := f.mgr.Connect(context.Background(), secret0); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	first, second := 0, 0
	f.mgr.OnDisconnect(func() { first++ })
	cancel := f.mgr.OnDisconnect(func() { second++ })
	cancel()

	if err := f.mgr.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if first != 1 || second != 0 {
		t.Fatalf("want first=1 second=0, got first=%d second=%d", first, second)
	}

	if err := f.mgr.Disconnect(); err != nil {
		t.Fatalf("second Disconnect: %v", err)
	}
	if first != 1 || second != 0 {
		t.Fatalf("listeners fired again: first=%d second=%d", first, second)
	}
}

func TestListeners_FireMostRecentFirst(t *testing.T) {
	f := newFixture(t, nil, nil)
	var order []string
	f.mgr.OnConnect(func(*domain.Wallet, bool) { order = append(order, "a") })
	f.mgr.OnConnect(func(*domain.Wallet, bool) { order = append(order, "b") })
	f.mgr.OnConnect(func(*domain.Wallet, bool) { order = append(order, "c") })

	if _, err := f.mgr.Connect(context.Background(), secret0); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if len(order) != 3 || order[0] != "c" || order[1] != "b" || order[2] != "a" {
		t.Fatalf("want [c b a], got %v", order)
	}
}

func TestListener_DisconnectDuringDrain(t *testing.T) {
	f := newFixture(t, nil, nil)

	var seen []common.Address
	f.mgr.OnConnect(func(w *domain.Wallet, _ bool) { seen = append(seen, w.Address) })
	f.mgr.OnConnect(func(w *domain.Wallet, _ bool) {
		seen = append(seen, w.Address)
		if err := f.mgr.Disconnect(); err != nil {
			t.Errorf("Disconnect in listener: %v", err)
		}
	})

	if _, err := f.mgr.Connect(context.Background(), secret0); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if len(seen) != 2 || seen[0] != address0 || seen[1] != address0 {
		t.Fatalf("both listeners must see the connected wallet, got %v", seen)
	}
	if f.mgr.Connected() {
		t.Fatal("listener's Disconnect did not take effect")
	}
}

func TestDisconnect_ClearsSessionAndSecret(t *testing.T) {
	f := newFixture(t, nil, nil)
	if _, err := f.mgr.Connect(context.Background(), secret0); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if got, ok, _ := f.store.LoadSecret(); !ok || got != secret0 {
		t.Fatalf("secret not persisted: %q %v", got, ok)
	}

	if err := f.mgr.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if _, ok, _ := f.store.LoadSecret(); ok {
		t.Fatal("secret survived Disconnect")
	}
	if f.mgr.Connected() || f.mgr.Wallet() != nil {
		t.Fatal("session survived Disconnect")
	}
	if _, err := f.mgr.Contract(); !errors.Is(err, session.ErrNotConnected) {
		t.Fatalf("Contract: want ErrNotConnected, got %v", err)
	}
	if _, err := f.mgr.Current(); !errors.Is(err, session.ErrNotConnected) {
		t.Fatalf("Current: want ErrNotConnected, got %v", err)
	}
	if !f.connector.Providers[0].Closed() {
		t.Fatal("provider left open")
	}
}

func TestConnect_ReplacesSession(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	if _, err := f.mgr.Connect(ctx, secret0); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	w, err := f.mgr.Connect(ctx, secret1)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if w.Address != address1 || f.mgr.Wallet().Address != address1 {
		t.Fatalf("want %s, got %s", address1, f.mgr.Wallet().Address)
	}
	if !f.connector.Providers[0].Closed() || f.connector.Providers[1].Closed() {
		t.Fatal("only the replaced provider must be closed")
	}
	contract, err := f.mgr.Contract()
	if err != nil {
		t.Fatalf("Contract: %v", err)
	}
	if contract.Address() != mailboxAddr {
		t.Fatalf("contract address: %s", contract.Address())
	}
	if bound, ok := contract.(*chaintest.Contract); !ok || bound.Wallet().Address != address1 {
		t.Fatal("contract not bound to the new wallet")
	}
}

func TestConnect_FailureLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*chaintest.Connector)
		secret  string
		wantErr error
	}{
		{"node down", func(c *chaintest.Connector) { c.Down = true }, secret0, chaintest.ErrDial},
		{"node not ready", func(c *chaintest.Connector) { c.NotReady = true }, secret0, nil},
		{"bad secret", func(*chaintest.Connector) {}, "0xnothex", crypto.ErrInvalidSecret},
		{"empty secret", func(*chaintest.Connector) {}, "", session.ErrNoSecret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil, nil)
			tt.setup(f.connector)
			fired := false
			f.mgr.OnConnect(func(*domain.Wallet, bool) { fired = true })

			_, err := f.mgr.Connect(context.Background(), tt.secret)
			if err == nil {
				t.Fatal("Connect succeeded")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
			if fired || f.mgr.Connected() {
				t.Fatal("failed connect changed state")
			}
			if _, ok, _ := f.store.LoadSecret(); ok {
				t.Fatal("failed connect persisted the secret")
			}
			for _, p := range f.connector.Providers {
				if !p.Closed() {
					t.Fatal("provider of a failed connect left open")
				}
			}
		})
	}
}

func TestConnect_ChainMismatch(t *testing.T) {
	f := newFixture(t, nil, big.NewInt(1))
	_, err := f.mgr.Connect(context.Background(), secret0)
	if !errors.Is(err, session.ErrChainMismatch) {
		t.Fatalf("want ErrChainMismatch, got %v", err)
	}
	if f.mgr.Connected() {
		t.Fatal("connected to the wrong chain")
	}

	g := newFixture(t, nil, big.NewInt(1337))
	if _, err := g.mgr.Connect(context.Background(), secret0); err != nil {
		t.Fatalf("matching chain id: %v", err)
	}
	if cur, _ := g.mgr.Current(); cur.ChainID.Int64() != 1337 {
		t.Fatalf("session chain id: %v", cur.ChainID)
	}
}

func TestTryConnect_ResumesAfterReload(t *testing.T) {
	home := t.TempDir()
	newStore := func() domain.SecretStore {
		s, err := store.NewFileSecretStore(home, "tab-1", "pass")
		if err != nil {
			t.Fatalf("store: %v", err)
		}
		return s.WithKDFParams(store.KDFParams{N: 1 << 10, R: 8, P: 1})
	}

	before := newFixture(t, newStore(), nil)
	original, err := before.mgr.Connect(context.Background(), secret0)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	// Reload: fresh manager, same persisted store.
	after := newFixture(t, newStore(), nil)
	var reconnect bool
	after.mgr.OnConnect(func(_ *domain.Wallet, isReconnect bool) { reconnect = isReconnect })

	ok, err := after.mgr.TryConnect(context.Background())
	if err != nil || !ok {
		t.Fatalf("TryConnect: ok=%v err=%v", ok, err)
	}
	if after.mgr.Wallet().Address != original.Address {
		t.Fatalf("resumed wallet %s, want %s", after.mgr.Wallet().Address, original.Address)
	}
	if !reconnect {
		t.Fatal("resume must report isReconnect = true")
	}
}

func TestTryConnect_NothingStored(t *testing.T) {
	f := newFixture(t, nil, nil)
	ok, err := f.mgr.TryConnect(context.Background())
	if err != nil || ok {
		t.Fatalf("TryConnect: ok=%v err=%v", ok, err)
	}
	if len(f.connector.Dialled) != 0 || f.mgr.Connected() {
		t.Fatal("TryConnect dialled without a stored secret")
	}
}

func TestNew_RequiresCollaborators(t *testing.T) {
	if _, err := session.New(session.Config{Store: store.NewMemorySecretStore()}); err == nil {
		t.Fatal("want error without connector")
	}
	if _, err := session.New(session.Config{Connector: chaintest.NewConnector(chaintest.NewChain(1))}); err == nil {
		t.Fatal("want error without store")
	}
}

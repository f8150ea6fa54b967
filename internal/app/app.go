package app

import (
	"context"
	"errors"
	"fmt"

	"mailbox/internal/domain"
)

// ErrNoStoredSession is returned by Resume when no secret is stored for the scope.
var ErrNoStoredSession = errors.New("no stored session; run connect first")

// Resume reconnects the session manager from the stored secret.
func (w *Wire) Resume(ctx context.Context) error {
	ok, err := w.Session.TryConnect(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w (scope %q)", ErrNoStoredSession, w.Config.Session)
	}
	return nil
}

// ReadContract returns the session's contract when connected, otherwise a
// read-only binding on a fresh provider. release must be called when done.
func (w *Wire) ReadContract(ctx context.Context) (contract domain.MailboxContract, release func(), err error) {
	if c, err := w.Session.Contract(); err == nil {
		return c, func() {}, nil
	}

	provider, err := w.Connector.Dial(ctx, w.Config.RPCURL)
	if err != nil {
		return nil, nil, err
	}
	chainID, err := provider.ChainID(ctx)
	if err != nil {
		provider.Close()
		return nil, nil, err
	}
	contract, err = w.Connector.BindMailbox(w.Config.Mailbox(), provider, nil, chainID)
	if err != nil {
		provider.Close()
		return nil, nil, err
	}
	return contract, provider.Close, nil
}

package session

import "mailbox/internal/domain"

// ConnectListener is called once after a connect, with the connected wallet.
// isReconnect is true when the session was resumed from the stored secret.
type ConnectListener func(wallet *domain.Wallet, isReconnect bool)

// DisconnectListener is called once after a disconnect.
type DisconnectListener func()

// CancelFunc suppresses a listener that has not fired yet. It is safe to call
// more than once, and after the listener fired.
type CancelFunc func()

type subscription[F any] struct {
	fn        F
	cancelled bool
}

// queue is an ordered list of one-shot subscriptions.
type queue[F any] struct {
	subs []*subscription[F]
}

func (q *queue[F]) add(fn F) CancelFunc {
	sub := &subscription[F]{fn: fn}
	q.subs = append(q.subs, sub)
	return sub.cancel
}

func (s *subscription[F]) cancel() { s.cancelled = true }

// drain visits the subscriptions present when it starts, newest first. Each
// one is removed whether it fires or was cancelled. Subscriptions added by a
// listener during the drain wait for the next one.
func (q *queue[F]) drain(fire func(F)) {
	for i := len(q.subs) - 1; i >= 0; i-- {
		// A nested drain may already have consumed this slot.
		if i >= len(q.subs) {
			continue
		}
		sub := q.subs[i]
		q.subs = append(q.subs[:i], q.subs[i+1:]...)
		if !sub.cancelled {
			fire(sub.fn)
		}
	}
}

// pending reports how many subscriptions are queued, cancelled or not.
func (q *queue[F]) pending() int { return len(q.subs) }

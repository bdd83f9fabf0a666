package gochannel

import (
	"sync"

	"github.com/lemon-mint/gochannel/internal/sema"
)

// unbuffered is a channel with no internal storage: every put must meet a
// parked get (or vice versa) through a direct handoff.
type unbuffered[T any] struct {
	mu        sync.Mutex
	closed    bool
	senders   waitq
	receivers waitq
}

func newUnbuffered[T any]() *unbuffered[T] {
	return &unbuffered[T]{}
}

func (c *unbuffered[T]) put(x T) bool {
	for {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return false
		}
		peer := c.receivers.pop()
		if peer == nil {
			nw := sema.Obtain()
			c.senders.push(&sema.Slot{W: nw, Value: x})
			c.mu.Unlock()
			nw.Wait()
			ok := nw.State() == sema.Done
			sema.Release(nw)
			return ok
		}
		c.mu.Unlock()
		if claim(peer, x) {
			peer.W.Signal()
			return true
		}
		// Stale (claimed/invalidated elsewhere between pop and CAS); retry.
	}
}

func (c *unbuffered[T]) get() (T, bool) {
	var zero T
	for {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return zero, false
		}
		peer := c.senders.pop()
		if peer == nil {
			nw := sema.Obtain()
			c.receivers.push(&sema.Slot{W: nw})
			c.mu.Unlock()
			nw.Wait()
			if nw.State() == sema.Invalidated {
				sema.Release(nw)
				return zero, false
			}
			v, _ := nw.Payload.(T)
			sema.Release(nw)
			return v, true
		}
		c.mu.Unlock()
		value := peer.Value
		if claim(peer, value) {
			v, _ := value.(T)
			peer.W.Signal()
			return v, true
		}
	}
}

func (c *unbuffered[T]) closeChan() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	senders, receivers := c.senders, c.receivers
	c.senders, c.receivers = nil, nil
	c.mu.Unlock()

	drainClose(senders)
	drainClose(receivers)
}

func (c *unbuffered[T]) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// isEmpty/isFull are hints: an unbuffered channel holds nothing of its own,
// but it is "empty" from a receiver's point of view unless a sender is
// already parked, and "full" from a sender's point of view unless a
// receiver is already parked.
func (c *unbuffered[T]) isEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.senders) == 0
}

func (c *unbuffered[T]) isFull() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.receivers) == 0
}

func (c *unbuffered[T]) trySyncPut(x T) (completed, delivered bool) {
	for {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return true, false
		}
		peer := c.receivers.pop()
		if peer == nil {
			c.mu.Unlock()
			return false, false
		}
		c.mu.Unlock()
		if claim(peer, x) {
			peer.W.Signal()
			return true, true
		}
	}
}

func (c *unbuffered[T]) trySyncGet() (value T, completed, delivered bool) {
	var zero T
	for {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return zero, true, false
		}
		peer := c.senders.pop()
		if peer == nil {
			c.mu.Unlock()
			return zero, false, false
		}
		c.mu.Unlock()
		pv := peer.Value
		if claim(peer, pv) {
			v, _ := pv.(T)
			peer.W.Signal()
			return v, true, true
		}
	}
}

func (c *unbuffered[T]) registerPut(w *sema.Waiter, tag int, x T) (completed, delivered bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		if w.TrySet(sema.WaitSelect, sema.Select) {
			w.Tag = tag
			return true, false
		}
		return false, false
	}
	c.mu.Unlock()

	if claimForSelect(&c.mu, &c.receivers, w, tag, x) {
		return true, true
	}
	if w.State() != sema.WaitSelect {
		return false, false // resolved via a different option in our select
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		if w.TrySet(sema.WaitSelect, sema.Select) {
			w.Tag = tag
			return true, false
		}
		return false, false
	}
	c.senders.push(&sema.Slot{W: w, Tag: tag, Value: x})
	c.mu.Unlock()
	return false, false
}

func (c *unbuffered[T]) registerGet(w *sema.Waiter, tag int) (completed, delivered bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		if w.TrySet(sema.WaitSelect, sema.Select) {
			w.Tag = tag
			w.Payload = nil
			return true, false
		}
		return false, false
	}
	c.mu.Unlock()

	if claimForSelectPull(&c.mu, &c.senders, w, tag) {
		return true, true
	}
	if w.State() != sema.WaitSelect {
		return false, false
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		if w.TrySet(sema.WaitSelect, sema.Select) {
			w.Tag = tag
			w.Payload = nil
			return true, false
		}
		return false, false
	}
	c.receivers.push(&sema.Slot{W: w, Tag: tag})
	c.mu.Unlock()
	return false, false
}

func (c *unbuffered[T]) cleanupSend(w *sema.Waiter) {
	c.mu.Lock()
	c.senders.remove(w)
	c.mu.Unlock()
}

func (c *unbuffered[T]) cleanupRecv(w *sema.Waiter) {
	c.mu.Lock()
	c.receivers.remove(w)
	c.mu.Unlock()
}

package gochannel

import "github.com/lemon-mint/gochannel/internal/sema"

// Sender is the send-only handle onto a channel. The zero Sender is not
// usable; obtain one from Make or MakeSingleton.
type Sender[T any] struct {
	c core[T]
}

// Receiver is the receive-only handle onto a channel.
type Receiver[T any] struct {
	c core[T]
}

// Make creates a channel and returns its two endpoints. capacity <= 0
// yields an unbuffered (rendezvous) channel; capacity >= 1 yields a
// buffered channel holding up to capacity values before a send blocks.
func Make[T any](capacity int) (Sender[T], Receiver[T]) {
	var c core[T]
	if capacity <= 0 {
		c = newUnbuffered[T]()
	} else {
		c = newBuffered[T](capacity)
	}
	return Sender[T]{c: c}, Receiver[T]{c: c}
}

// MakeSingleton creates a channel that carries at most one value over its
// lifetime and closes itself the instant that value is sent.
func MakeSingleton[T any]() (Sender[T], Receiver[T]) {
	c := newSingleton[T]()
	return Sender[T]{c: c}, Receiver[T]{c: c}
}

// Send delivers x, blocking while the channel is full (or, for unbuffered
// channels, while no receiver is available); on a singleton channel Send
// never blocks. It returns false iff the channel was or became closed before
// delivery.
func (s Sender[T]) Send(x T) bool { return s.c.put(x) }

// Close idempotently closes the channel.
func (s Sender[T]) Close() { s.c.closeChan() }

// IsFull reports whether a Send would currently block.
func (s Sender[T]) IsFull() bool { return s.c.isFull() }

// IsClosed reports whether Close has been called (directly, or implicitly
// by a singleton's first Send).
func (s Sender[T]) IsClosed() bool { return s.c.isClosed() }

// Case builds a select option that sends x on this channel if and when it
// is the option Select commits to.
func (s Sender[T]) Case(x T) Case {
	return Case{sel: sendCase[T]{c: s.c, x: x}}
}

// Receive blocks while the channel is empty and open. ok is false iff the
// channel is closed and has nothing left to deliver.
func (r Receiver[T]) Receive() (T, bool) { return r.c.get() }

// Close idempotently closes the channel from the receive side: closing is
// not restricted to the sender.
func (r Receiver[T]) Close() { r.c.closeChan() }

// IsEmpty reports whether a Receive would currently block.
func (r Receiver[T]) IsEmpty() bool { return r.c.isEmpty() }

// IsClosed reports whether the channel is closed.
func (r Receiver[T]) IsClosed() bool { return r.c.isClosed() }

// Case builds a select option that receives from this channel if and when
// it is the option Select commits to.
func (r Receiver[T]) Case() Case {
	return Case{sel: recvCase[T]{c: r.c}}
}

// sendCase and recvCase adapt a core[T] to the untyped selectable interface
// select.go drives; the type parameter is erased into the any-typed Payload
// carried by sema.Waiter/sema.Slot and recovered by ExtractValue.
type sendCase[T any] struct {
	c core[T]
	x T
}

func (s sendCase[T]) trySync() (value any, completed, delivered bool) {
	completed, delivered = s.c.trySyncPut(s.x)
	return nil, completed, delivered
}

func (s sendCase[T]) register(w *sema.Waiter, tag int) (completed, delivered bool) {
	return s.c.registerPut(w, tag, s.x)
}

func (s sendCase[T]) cleanup(w *sema.Waiter) { s.c.cleanupSend(w) }

type recvCase[T any] struct {
	c core[T]
}

func (r recvCase[T]) trySync() (value any, completed, delivered bool) {
	v, completed, delivered := r.c.trySyncGet()
	return v, completed, delivered
}

func (r recvCase[T]) register(w *sema.Waiter, tag int) (completed, delivered bool) {
	return r.c.registerGet(w, tag)
}

func (r recvCase[T]) cleanup(w *sema.Waiter) { r.c.cleanupRecv(w) }

package gochannel

import "github.com/lemon-mint/gochannel/internal/sema"

// core is the contract every channel variant (unbuffered, buffered-N,
// singleton) implements: the synchronous put/get/close/status operations
// plus the registration hooks the select engine drives.
type core[T any] interface {
	// put blocks while full (or, for unbuffered, while no peer is available)
	// and the channel is open; a singleton's put never blocks. It returns
	// false iff the channel was or became closed before the value could be
	// delivered.
	put(x T) bool
	// get blocks while empty and open. It returns ok=false iff the channel
	// is closed and empty.
	get() (T, bool)
	// closeChan idempotently closes the channel, waking every parked
	// operation so it can observe the new state.
	closeChan()
	isClosed() bool
	isEmpty() bool
	isFull() bool

	// trySyncPut/trySyncGet are the select engine's Phase A: a single
	// non-blocking attempt. completed=false means the attempt neither
	// delivered a value nor observed the channel closed, i.e. parking would
	// be required to make progress.
	trySyncPut(x T) (completed, delivered bool)
	trySyncGet() (value T, completed, delivered bool)

	// registerPut/registerGet are Phase C: either they resolve immediately
	// (completed=true, delivered telling the outcome) or w has been parked
	// on the channel's pending queue and the caller must Wait() on it and
	// then read w.State()/w.Payload/w.Tag. tag is the calling select case's
	// own index, stamped onto w the moment this or a later asynchronous
	// claim actually commits it, so a select spanning several channels can
	// recover which one resolved.
	registerPut(w *sema.Waiter, tag int, x T) (completed, delivered bool)
	registerGet(w *sema.Waiter, tag int) (completed, delivered bool)

	// cleanupSend/cleanupRecv remove w from the relevant pending queue, used
	// when a different option in the same select committed first and w is
	// still sitting in this channel's queue.
	cleanupSend(w *sema.Waiter)
	cleanupRecv(w *sema.Waiter)
}

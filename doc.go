/*
Package gochannel is a typed, synchronous message-passing library providing
Go-channel-style rendezvous and a select multiplexer for goroutines in a
single process. It exists for callers who want channel semantics as a
library value -- constructible, passable, and selectable alongside timers and
other selectables -- rather than the builtin chan type wired directly into
the language's select statement.

Three capacity regimes are supported:

	Make[T](0)  -- unbuffered: every send rendezvous directly with a receive.
	Make[T](n)  -- buffered: up to n elements may be in flight unconsumed.
	MakeSingleton[T]() -- exactly one value is ever delivered, then the
	                      channel closes itself.

Select multiplexes a heterogeneous set of send/receive endpoints (and other
Selectable values such as Timer) and commits to exactly one ready operation,
choosing uniformly at random among those ready to avoid starving any one
option.

For more on the design of the waiter/pool machinery underneath these
channels, see the internal/sema package; for the bounded backing store used
by buffered channels, see the ring package.
*/
package gochannel

package gochannel

import (
	"math/rand"

	"github.com/lemon-mint/gochannel/internal/sema"
)

// selectable is what Select drives each Case through: a non-blocking attempt
// (Phase A), a registration that may park a shared waiter (Phase C), and a
// cleanup called once the select as a whole has resolved.
type selectable interface {
	trySync() (value any, completed, delivered bool)
	register(w *sema.Waiter, tag int) (completed, delivered bool)
	cleanup(w *sema.Waiter)
}

// Case is one option offered to Select, built by Sender[T].Case or
// Receiver[T].Case.
type Case struct {
	sel selectable
}

// Selection describes the option Select committed to. The zero Selection is
// never returned with ok=true; check ok before reading any field.
type Selection struct {
	index     int
	value     any
	delivered bool
}

// Index is the position in the cases slice passed to Select that won.
func (s Selection) Index() int { return s.index }

// Delivered reports whether a value actually changed hands: true for a send
// that reached a receiver or a receive that got a real value, false for a
// receive against an already-closed, drained channel.
func (s Selection) Delivered() bool { return s.delivered }

// ExtractValue type-asserts a winning receive Selection's value. It returns
// ok=false for a send case (which carries no received value) or a Selection
// that did not deliver.
func ExtractValue[T any](s Selection) (T, bool) {
	var zero T
	if !s.delivered {
		return zero, false
	}
	v, ok := s.value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Select evaluates cases in random order, so that when several options are
// simultaneously ready no one case is starved in favor of another, and
// blocks until exactly one completes. ok is false, with the zero Selection,
// when cases is empty or when a channel the select is parked on closes
// before any case commits.
func Select(cases []Case) (Selection, bool) {
	return selectImpl(cases, false)
}

// SelectDefault behaves like Select but returns immediately (ok=false, with
// the zero Selection) if no case is ready without blocking.
func SelectDefault(cases []Case) (Selection, bool) {
	return selectImpl(cases, true)
}

func selectImpl(cases []Case, hasDefault bool) (Selection, bool) {
	n := len(cases)
	if n == 0 {
		return Selection{}, false
	}

	order := shuffledIndices(n)

	// Phase A: a synchronous sweep. Any case that is ready right now settles
	// the select without ever touching the parking machinery.
	for _, i := range order {
		value, completed, delivered := cases[i].sel.trySync()
		if completed {
			return Selection{index: i, value: value, delivered: delivered}, true
		}
	}

	// Phase B: default case, if the caller supplied one.
	if hasDefault {
		return Selection{}, false
	}

	// Phase C: park a single shared waiter across every case, in the same
	// shuffled order, so whichever channel notices it first may claim it.
	w := sema.Obtain()
	w.TrySet(sema.Ready, sema.WaitSelect)

	committedIndex := -1
	committedDelivered := false
	for _, i := range order {
		if w.State() != sema.WaitSelect {
			break // a peer already claimed w via a different case
		}
		completed, delivered := cases[i].sel.register(w, i)
		if completed {
			committedIndex = i
			committedDelivered = delivered
			break
		}
	}

	if w.State() == sema.WaitSelect {
		w.Wait()
	}

	// A peer that met us through the DoubleSelect protocol has already
	// deposited Payload and Tag on w; run the second phase of the handoff.
	if w.State() == sema.DoubleSelect {
		doubleSelectMu.Lock()
		w.TrySet(sema.DoubleSelect, sema.Select)
		doubleSelectMu.Unlock()
	}

	var result Selection
	var ok bool
	switch w.State() {
	case sema.Select:
		if committedIndex >= 0 {
			result = Selection{index: committedIndex, value: w.Payload, delivered: committedDelivered}
		} else {
			// Resolved asynchronously by a peer after we parked: a claim
			// only ever reaches Select (not Invalidated) by actually
			// delivering, so delivered is unconditionally true here.
			result = Selection{index: w.Tag, value: w.Payload, delivered: true}
		}
		ok = true
	default:
		// Invalidated (a channel this select was parked on closed while we
		// waited) or any other state: nothing was delivered.
		result = Selection{}
		ok = false
	}

	for _, c := range cases {
		c.sel.cleanup(w)
	}
	sema.Release(w)
	return result, ok
}

func shuffledIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}

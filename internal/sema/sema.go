/*
Copyright 2014 Workiva, LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

 http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package sema provides the waiter semaphore used to park and wake goroutines
// blocked on a channel operation or a select. A Waiter's State is the single
// source of truth for who owns it; pending-queue membership is advisory only.
package sema

import "sync/atomic"

// State is a Waiter's life-cycle tag. Every transition is a compare-and-swap;
// only the goroutine that wins the CAS may touch the Waiter's Payload or call
// Signal on its behalf.
type State uint32

const (
	// Ready is a waiter parked on a single channel, expecting exactly one wakeup.
	Ready State = iota
	// WaitSelect is a waiter parked on behalf of a select across several endpoints.
	// Any of those endpoints may try to claim it.
	WaitSelect
	// Select marks a waiter claimed by a selectable; the claimant deposits a
	// Payload and signals.
	Select
	// DoubleSelect marks a waiter whose peer is also selecting on the same
	// endpoint; the second phase of the handoff still has to run.
	DoubleSelect
	// Invalidated marks a waiter consumed by a non-producing path: the channel
	// closed, or a select committed to a different option.
	Invalidated
	// Done is terminal. The owning goroutine has observed the outcome and will
	// return the Waiter to the pool.
	Done
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case WaitSelect:
		return "wait-select"
	case Select:
		return "select"
	case DoubleSelect:
		return "double-select"
	case Invalidated:
		return "invalidated"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Waiter is a one-shot wait/notify primitive with an observable state tag and
// a single payload slot, reusable across operations by resetting state and
// payload between uses. The zero value is not usable; construct with New.
//
// Tag identifies, for a Waiter shared across several channels by a select
// call, which one actually claimed it: the claimant copies it from the Slot
// it popped, not from the Waiter itself, so concurrently parking on several
// channels never lets a later park overwrite an earlier one's identity.
type Waiter struct {
	state   uint32
	ready   chan struct{}
	Payload any
	Tag     int
}

// New returns a Waiter in the Ready state with an empty payload.
func New() *Waiter {
	return &Waiter{
		state: uint32(Ready),
		ready: make(chan struct{}, 1),
	}
}

// reset puts w back into Ready state with a clear payload and a fresh signal
// slot, so it can be recycled by the pool.
func (w *Waiter) reset() {
	atomic.StoreUint32(&w.state, uint32(Ready))
	w.Payload = nil
	w.Tag = 0
	select {
	case <-w.ready:
	default:
	}
}

// Slot is a per-channel handle onto a shared Waiter: pushing a Slot (rather
// than the Waiter itself) onto a pending-queue lets the same Waiter be
// parked on several channels at once, as a select does, while still letting
// whichever channel's peer actually claims it report back which one. Value
// holds a parked sender's own outgoing payload: unlike the Waiter's single
// shared Payload slot, each channel a select parks on gets its own Slot, so
// several pending sends never clobber one another's value.
type Slot struct {
	W     *Waiter
	Tag   int
	Value any
}

// State returns the current state. The result is a hint unless the caller is
// the one that most recently won a CAS on this waiter.
func (w *Waiter) State() State {
	return State(atomic.LoadUint32(&w.state))
}

// TrySet attempts the transition from -> to. It succeeds only if the current
// state is from, and grants the winner the right to mutate Payload and to
// call Signal.
func (w *Waiter) TrySet(from, to State) bool {
	return atomic.CompareAndSwapUint32(&w.state, uint32(from), uint32(to))
}

// Signal wakes one thread parked in Wait. It is safe to call before Wait: the
// wakeup is remembered in the buffered channel.
func (w *Waiter) Signal() {
	select {
	case w.ready <- struct{}{}:
	default:
		// Already has a pending signal; Wait only ever consumes one.
	}
}

// Wait blocks until Signal is called.
func (w *Waiter) Wait() {
	<-w.ready
}

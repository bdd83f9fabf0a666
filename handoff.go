package gochannel

import (
	"sync"

	"github.com/lemon-mint/gochannel/internal/sema"
)

// doubleSelectMu serializes the rare two-phase reconciliation needed when two
// goroutines are both inside a select and happen to meet on the same
// endpoint at the same moment, with neither side allowed to deliver the
// payload until the other has itself committed. Every other path through
// this package only ever touches one waiter's state at a time via a single
// CAS, so this is the one place correctness depends on more than one
// waiter's state changing as a unit.
var doubleSelectMu sync.Mutex

// claim tries the direct, non-select claim transition on slot.W: Ready->Done
// for a plain blocked peer, WaitSelect->Select for one that is itself
// mid-select but hasn't found its own opposite-side peer yet. On success it
// deposits value and stamps the waiter with the slot's own Tag, so a select
// spanning several channels can later tell which one actually resolved it.
func claim(slot *sema.Slot, value any) bool {
	if slot.W.TrySet(sema.Ready, sema.Done) {
		slot.W.Payload = value
		slot.W.Tag = slot.Tag
		return true
	}
	if slot.W.TrySet(sema.WaitSelect, sema.Select) {
		slot.W.Payload = value
		slot.W.Tag = slot.Tag
		return true
	}
	return false
}

// resolveDoubleSelect performs the two-phase handoff between two waiters
// that are both parked on behalf of a select. mine is the caller's own
// waiter (already known to be WaitSelect at the point this is invoked) and
// mineTag its case index; peer wraps the opposite-side waiter popped from
// the channel's queue together with its own case index. On success, peer's
// waiter holds the delivered value and its own Tag, and has been signalled;
// mine is left in Select with mineTag recorded.
func resolveDoubleSelect(mine *sema.Waiter, mineTag int, peer *sema.Slot, payload any) bool {
	doubleSelectMu.Lock()
	defer doubleSelectMu.Unlock()

	if mine.State() != sema.WaitSelect {
		return false
	}
	if !peer.W.TrySet(sema.WaitSelect, sema.DoubleSelect) {
		return false
	}
	if !mine.TrySet(sema.WaitSelect, sema.Select) {
		// Roll the peer back; it is still parked and untouched by anyone
		// else, since we have been holding doubleSelectMu the whole time.
		peer.W.TrySet(sema.DoubleSelect, sema.WaitSelect)
		return false
	}
	mine.Tag = mineTag
	peer.W.Payload = payload
	peer.W.Tag = peer.Tag
	peer.W.Signal()
	return true
}

// resolveDoubleSelectPull is resolveDoubleSelect's mirror for a register-get:
// mine receives peer's already-bound payload instead of depositing one.
func resolveDoubleSelectPull(mine *sema.Waiter, mineTag int, peer *sema.Slot) bool {
	doubleSelectMu.Lock()
	defer doubleSelectMu.Unlock()

	if mine.State() != sema.WaitSelect {
		return false
	}
	if !peer.W.TrySet(sema.WaitSelect, sema.DoubleSelect) {
		return false
	}
	if !mine.TrySet(sema.WaitSelect, sema.Select) {
		peer.W.TrySet(sema.DoubleSelect, sema.WaitSelect)
		return false
	}
	mine.Tag = mineTag
	mine.Payload = peer.Value
	peer.W.Tag = peer.Tag
	peer.W.Signal()
	return true
}

// claimForSelect pops waiters off q until it either completes mine's select
// registration against one of them or the queue runs dry. payload is
// deposited on a plain or select-side peer; for a peer that is itself
// mid-select, the DoubleSelect protocol is used instead. mineTag is mine's
// own case index, recorded on mine the moment this call commits it. It
// reports whether mine was resolved against a peer found on q.
func claimForSelect(mu *sync.Mutex, q *waitq, mine *sema.Waiter, mineTag int, payload any) bool {
	for {
		if mine.State() != sema.WaitSelect {
			return false
		}

		mu.Lock()
		peer := q.pop()
		mu.Unlock()
		if peer == nil {
			return false
		}

		switch peer.W.State() {
		case sema.Ready, sema.WaitSelect:
			if peer.W.State() == sema.WaitSelect {
				if resolveDoubleSelect(mine, mineTag, peer, payload) {
					return true
				}
				continue
			}
			if !mine.TrySet(sema.WaitSelect, sema.Select) {
				// A different option in our own select already won; hand
				// the peer back so the next comer can still find it.
				mu.Lock()
				q.push(peer)
				mu.Unlock()
				return false
			}
			mine.Tag = mineTag
			if claim(peer, payload) {
				peer.W.Signal()
				return true
			}
			// Peer went stale between the State() check and our claim
			// (e.g. its channel closed concurrently); back our own claim
			// out and keep looking.
			mine.TrySet(sema.Select, sema.WaitSelect)
		default:
			// Stale: already Done/Select/DoubleSelect/Invalidated by
			// someone else. Discard and try the next one.
		}
	}
}

// claimForSelectPull mirrors claimForSelect for a register-get: rather than
// depositing an outgoing payload onto the peer, it pulls whatever payload
// the peer (a parked or select-side sender) already carries onto mine.
func claimForSelectPull(mu *sync.Mutex, q *waitq, mine *sema.Waiter, mineTag int) bool {
	for {
		if mine.State() != sema.WaitSelect {
			return false
		}

		mu.Lock()
		peer := q.pop()
		mu.Unlock()
		if peer == nil {
			return false
		}

		switch peer.W.State() {
		case sema.WaitSelect:
			if resolveDoubleSelectPull(mine, mineTag, peer) {
				return true
			}
		case sema.Ready:
			if !mine.TrySet(sema.WaitSelect, sema.Select) {
				mu.Lock()
				q.push(peer)
				mu.Unlock()
				return false
			}
			mine.Tag = mineTag
			value := peer.Value
			if claim(peer, value) {
				peer.W.Signal()
				mine.Payload = value
				return true
			}
			mine.TrySet(sema.Select, sema.WaitSelect)
		default:
		}
	}
}

// drainClose invalidates and wakes every waiter parked in q, used by close()
// on a channel that just transitioned to closed.
func drainClose(q waitq) {
	for _, s := range q {
		if s.W.TrySet(sema.Ready, sema.Invalidated) {
			s.W.Signal()
			continue
		}
		if s.W.TrySet(sema.WaitSelect, sema.Invalidated) {
			s.W.Signal()
		}
		// Already claimed by a concurrent matching operation; leave it be.
	}
}

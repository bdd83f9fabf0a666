package gochannel

import "github.com/lemon-mint/gochannel/internal/sema"

// waitq is a FIFO of parked waiter slots, one per side (senders or
// receivers) of a channel. It is the generic-T analogue of go-datastructures
// queue.go's waiters type; unlike that type it never holds an element
// payload itself -- a parked sender's value rides on its Slot's Value, a
// delivered value on the Waiter's Payload, and buffered elements of a
// buffered-N channel sit in the channel's ring.Buffer.
type waitq []*sema.Slot

func (q *waitq) push(s *sema.Slot) {
	*q = append(*q, s)
}

// pop removes and returns the front slot, or nil if the queue is empty.
func (q *waitq) pop() *sema.Slot {
	if len(*q) == 0 {
		return nil
	}
	s := (*q)[0]
	copy((*q)[0:], (*q)[1:])
	(*q)[len(*q)-1] = nil
	*q = (*q)[:len(*q)-1]
	return s
}

// remove deletes the slot wrapping w, if present. Used to clean up a select
// registration that lost the race to a different option.
func (q *waitq) remove(w *sema.Waiter) {
	qs := *q
	for i, cur := range qs {
		if cur.W == w {
			copy(qs[i:], qs[i+1:])
			qs[len(qs)-1] = nil
			*q = qs[:len(qs)-1]
			return
		}
	}
}

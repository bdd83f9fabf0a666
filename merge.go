package gochannel

import "github.com/lemon-mint/gochannel/set"

// Merge fans several receive endpoints into one: a background goroutine
// selects across all of them and forwards whatever arrives onto the
// returned receiver's channel. Callers that accidentally pass the same
// endpoint twice to one Merge call get it folded down to one entry rather
// than doubly forwarded. An input is
// dropped from the set the moment it closes; once every input has closed,
// the output closes too.
func Merge[T any](receivers ...Receiver[T]) Receiver[T] {
	seen := set.New[Receiver[T]]()
	live := make([]Receiver[T], 0, len(receivers))
	for _, r := range receivers {
		if seen.Exists(r) {
			continue
		}
		seen.Add(r)
		live = append(live, r)
	}

	tx, rx := Make[T](0)
	go mergeLoop(tx, live)
	return rx
}

func mergeLoop[T any](tx Sender[T], live []Receiver[T]) {
	for len(live) > 0 {
		cases := make([]Case, len(live))
		for i, r := range live {
			cases[i] = r.Case()
		}
		sel, ok := Select(cases)
		if !ok {
			continue
		}
		v, delivered := ExtractValue[T](sel)
		if !delivered {
			// The winning input closed: drop it from the set.
			live = append(live[:sel.Index()], live[sel.Index()+1:]...)
			continue
		}
		if !tx.Send(v) {
			return // output closed by someone else; stop forwarding
		}
	}
	tx.Close()
}

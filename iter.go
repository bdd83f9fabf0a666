package gochannel

// Range calls fn with every value received until the channel closes and
// drains, or fn returns false. It is Receiver's lazy, finite-sequence view
// over the otherwise destructive Receive operation.
func (r Receiver[T]) Range(fn func(T) bool) {
	for {
		v, ok := r.Receive()
		if !ok {
			return
		}
		if !fn(v) {
			return
		}
	}
}

// Iter returns a function suitable for Go's range-over-func, so a channel
// can be drained with `for v := range rx.Iter() { ... }`.
func (r Receiver[T]) Iter() func(yield func(T) bool) {
	return func(yield func(T) bool) {
		r.Range(yield)
	}
}

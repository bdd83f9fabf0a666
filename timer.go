package gochannel

import "time"

// Timer returns a receiver that becomes ready, delivering a single value,
// once d has elapsed. It is a thin convenience over MakeSingleton, built the
// same way futures/selectable.go fires a one-shot wait channel from a
// background goroutine.
func Timer(d time.Duration) Receiver[struct{}] {
	tx, rx := MakeSingleton[struct{}]()
	go func() {
		time.Sleep(d)
		tx.Send(struct{}{})
	}()
	return rx
}

// Timeout is sugar for Timer's receive endpoint, named for its typical use
// as a select option guarding against an operation that never becomes
// ready.
func Timeout(d time.Duration) Receiver[struct{}] {
	return Timer(d)
}

// Sink returns a send endpoint that accepts and silently discards every
// value sent to it, for fire-and-forget producers in tests and benchmarks
// that need a live Sender but have no interest in what arrives.
func Sink[T any]() Sender[T] {
	tx, rx := Make[T](64)
	go func() {
		for {
			if _, ok := rx.Receive(); !ok {
				return
			}
		}
	}()
	return tx
}

package futures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChanBlocksUntilOpen(t *testing.T) {
	var l Latch
	ch := l.Chan()

	select {
	case <-ch:
		t.Fatal("Chan fired before Open")
	case <-time.After(20 * time.Millisecond):
	}

	l.Open()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("Chan did not fire after Open")
	}
}

func TestChanAfterOpenReturnsAlreadyClosed(t *testing.T) {
	var l Latch
	l.Open()
	select {
	case <-l.Chan():
	default:
		t.Fatal("Chan obtained after Open should already be closed")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	var l Latch
	l.Open()
	assert.NotPanics(t, func() { l.Open() })
}

func TestManyWaitersAllWake(t *testing.T) {
	var l Latch
	n := 20
	done := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		go func() {
			<-l.Chan()
			done <- struct{}{}
		}()
	}
	time.Sleep(10 * time.Millisecond)
	l.Open()
	for i := 0; i < n; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("not all waiters woke")
		}
	}
}

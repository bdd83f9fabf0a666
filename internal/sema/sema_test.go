package sema

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsReadyWithEmptyPayload(t *testing.T) {
	w := New()
	assert.Equal(t, Ready, w.State())
	assert.Nil(t, w.Payload)
}

func TestTrySetOnlySucceedsOnce(t *testing.T) {
	w := New()
	require.True(t, w.TrySet(Ready, WaitSelect))
	assert.False(t, w.TrySet(Ready, WaitSelect), "a second Ready->WaitSelect CAS must fail")
	assert.Equal(t, WaitSelect, w.State())
}

func TestTrySetRejectsWrongFromState(t *testing.T) {
	w := New()
	assert.False(t, w.TrySet(Select, Done), "w is Ready, not Select")
	assert.Equal(t, Ready, w.State())
}

func TestSignalBeforeWaitIsRemembered(t *testing.T) {
	w := New()
	w.Signal()

	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not observe a Signal sent before it was called")
	}
}

func TestSignalWakesParkedWaiter(t *testing.T) {
	w := New()
	var wg sync.WaitGroup
	woke := make(chan int, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.Wait()
		woke <- 1
	}()

	// Give the goroutine a chance to park before signalling.
	time.Sleep(20 * time.Millisecond)
	w.Signal()
	wg.Wait()

	select {
	case <-woke:
	default:
		t.Fatal("waiter never woke")
	}
}

func TestResetClearsStatePayloadAndSignal(t *testing.T) {
	w := New()
	require.True(t, w.TrySet(Ready, WaitSelect))
	w.Payload = "leftover"
	w.Tag = 7
	w.Signal()

	w.reset()

	assert.Equal(t, Ready, w.State())
	assert.Nil(t, w.Payload)
	assert.Equal(t, 0, w.Tag)

	// The remembered signal must not have survived reset: Wait should block.
	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("Wait returned after reset with no new Signal")
	case <-time.After(50 * time.Millisecond):
	}
	w.Signal()
	<-done
}

func TestString(t *testing.T) {
	cases := []struct {
		s    State
		want string
	}{
		{Ready, "ready"},
		{WaitSelect, "wait-select"},
		{Select, "select"},
		{DoubleSelect, "double-select"},
		{Invalidated, "invalidated"},
		{Done, "done"},
		{State(99), "unknown"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.s.String())
	}
}

func TestPoolObtainReleaseRoundTrip(t *testing.T) {
	w := Obtain()
	require.True(t, w.TrySet(Ready, Done))
	w.Payload = "x"
	Release(w)

	w2 := Obtain()
	assert.Equal(t, Ready, w2.State())
	assert.Nil(t, w2.Payload)
}

func TestPoolCapIsBounded(t *testing.T) {
	// Drain whatever the shared pool currently holds so this test starts
	// from a known-empty state, then push well past poolCap.
	for {
		w := Obtain()
		_ = w
		if shared.n == 0 {
			break
		}
	}

	held := make([]*Waiter, 0, poolCap+8)
	for i := 0; i < poolCap+8; i++ {
		held = append(held, New())
	}
	for _, w := range held {
		Release(w)
	}
	assert.LessOrEqual(t, shared.n, poolCap)
}

func TestPoolIsConcurrencySafe(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				w := Obtain()
				Release(w)
			}
		}()
	}
	wg.Wait()
}

package gochannel

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnbufferedSendBlocksUntilReceive(t *testing.T) {
	tx, rx := Make[int](0)

	sent := make(chan bool, 1)
	go func() {
		sent <- tx.Send(42)
	}()

	select {
	case <-sent:
		t.Fatal("unbuffered Send completed with no receiver")
	case <-time.After(30 * time.Millisecond):
	}

	v, ok := rx.Receive()
	require.True(t, ok)
	assert.Equal(t, 42, v)

	select {
	case ok := <-sent:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Send never unblocked after the matching Receive")
	}
}

// TestUnbufferedRendezvous exercises an unbuffered producer/consumer pair:
// a sender that sends a sequence of values and then closes, and a receiver
// that drains until close, observing the full sequence in order.
func TestUnbufferedRendezvous(t *testing.T) {
	tx, rx := Make[int](0)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			require.True(t, tx.Send(i))
		}
		tx.Close()
	}()

	var got []int
	for {
		v, ok := rx.Receive()
		if !ok {
			break
		}
		got = append(got, v)
	}
	wg.Wait()

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestUnbufferedReceiveOnClosedEmptyReturnsFalse(t *testing.T) {
	tx, rx := Make[int](0)
	tx.Close()

	_, ok := rx.Receive()
	assert.False(t, ok)
}

func TestUnbufferedCloseWakesParkedSender(t *testing.T) {
	tx, _ := Make[int](0)
	result := make(chan bool, 1)
	go func() {
		result <- tx.Send(1)
	}()
	time.Sleep(20 * time.Millisecond)
	tx.Close()

	select {
	case ok := <-result:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("close did not wake the parked sender")
	}
}

func TestUnbufferedCloseWakesParkedReceiver(t *testing.T) {
	_, rx := Make[int](0)
	result := make(chan bool, 1)
	go func() {
		_, ok := rx.Receive()
		result <- ok
	}()
	time.Sleep(20 * time.Millisecond)
	rx.Close()

	select {
	case ok := <-result:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("close did not wake the parked receiver")
	}
}

func TestUnbufferedManySendersManyReceiversPreservesMultiset(t *testing.T) {
	const n = 50
	tx, rx := Make[int](0)

	var sendWg sync.WaitGroup
	for i := 0; i < n; i++ {
		sendWg.Add(1)
		go func(i int) {
			defer sendWg.Done()
			tx.Send(i)
		}(i)
	}

	got := make([]int, 0, n)
	var mu sync.Mutex
	var recvWg sync.WaitGroup
	for i := 0; i < n; i++ {
		recvWg.Add(1)
		go func() {
			defer recvWg.Done()
			v, ok := rx.Receive()
			require.True(t, ok)
			mu.Lock()
			got = append(got, v)
			mu.Unlock()
		}()
	}

	sendWg.Wait()
	recvWg.Wait()
	assert.Len(t, got, n)
}

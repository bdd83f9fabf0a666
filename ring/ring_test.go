package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsEmpty(t *testing.T) {
	b := New[int](4)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 4, b.Cap())
}

func TestEnqueueDequeueFIFOOrder(t *testing.T) {
	b := New[int](4)
	for i := 1; i <= 4; i++ {
		b.Enqueue(i)
	}
	require.Equal(t, 4, b.Len())

	for i := 1; i <= 4; i++ {
		require.Equal(t, 4-(i-1), b.Len())
		v := b.Dequeue()
		assert.Equal(t, i, v)
	}
	assert.Equal(t, 0, b.Len())
}

func TestWraparound(t *testing.T) {
	b := New[string](3)
	b.Enqueue("a")
	b.Enqueue("b")
	assert.Equal(t, "a", b.Dequeue())
	b.Enqueue("c")
	b.Enqueue("d")
	// Underlying storage has wrapped past the end of the backing slice.
	assert.Equal(t, "b", b.Dequeue())
	assert.Equal(t, "c", b.Dequeue())
	assert.Equal(t, "d", b.Dequeue())
	assert.Equal(t, 0, b.Len())
}

func TestDequeueClearsSlotToAvoidPinning(t *testing.T) {
	b := New[*int](2)
	x := 5
	b.Enqueue(&x)
	b.Dequeue()
	assert.Nil(t, b.data[0])
}

func TestRepeatedFillDrainCycles(t *testing.T) {
	b := New[int](2)
	for cycle := 0; cycle < 10; cycle++ {
		b.Enqueue(cycle)
		b.Enqueue(cycle + 100)
		assert.Equal(t, 2, b.Len())
		assert.Equal(t, cycle, b.Dequeue())
		assert.Equal(t, cycle+100, b.Dequeue())
		assert.Equal(t, 0, b.Len())
	}
}

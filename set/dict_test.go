package set

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddAndExists(t *testing.T) {
	s := New[int]()
	assert.False(t, s.Exists(1))
	s.Add(1, 2, 3)
	assert.True(t, s.Exists(1))
	assert.True(t, s.Exists(2))
	assert.True(t, s.Exists(3))
	assert.False(t, s.Exists(4))
}

func TestAddIsIdempotent(t *testing.T) {
	s := New[string]()
	s.Add("x")
	s.Add("x")
	assert.Equal(t, 1, s.Len())
}

func TestNewSeedsItems(t *testing.T) {
	s := New(1, 2, 2, 3)
	assert.Equal(t, 3, s.Len())
}

func TestConcurrentAddIsSafe(t *testing.T) {
	s := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Add(i)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}

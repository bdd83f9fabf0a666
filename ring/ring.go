/*
Copyright 2014 Workiva, LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

 http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package ring is the fixed-capacity FIFO backing store used by buffered
// channels. It carries no synchronization of its own -- as with the original
// go-datastructures queue's items type, the caller (the channel) protects
// access with its own mutex. Unlike that type, Buffer never grows past the
// capacity given at construction: it is the bounded backing store a buffered
// channel needs, not a general-purpose unbounded queue.
package ring

// Buffer is a bounded FIFO of T. The zero value is not usable; construct
// with New.
type Buffer[T any] struct {
	data        []T
	head, count int
}

// New returns a Buffer with the given fixed capacity.
func New[T any](capacity int) *Buffer[T] {
	return &Buffer[T]{data: make([]T, capacity)}
}

// Len returns the number of elements currently stored.
func (b *Buffer[T]) Len() int { return b.count }

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int { return len(b.data) }

// Enqueue stores x at the tail. Precondition: Len() < Cap().
func (b *Buffer[T]) Enqueue(x T) {
	tail := (b.head + b.count) % len(b.data)
	b.data[tail] = x
	b.count++
}

// Dequeue removes and returns the oldest element. Precondition: Len() > 0.
func (b *Buffer[T]) Dequeue() T {
	var zero T
	x := b.data[b.head]
	b.data[b.head] = zero // avoid pinning the element in memory
	b.head = (b.head + 1) % len(b.data)
	b.count--
	return x
}

/*
Copyright 2016 Workiva, LLC
Copyright 2016 Sokolov Yura aka funny_falcon

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

// Package futures provides Latch, a lazily-created, fire-once wait barrier.
// It is the wakeup half of the original Selectable future (WaitChan/Fill),
// stripped of the value/error payload that future carried: a singleton
// channel already keeps its own delivered value guarded by its own mutex,
// so all it needs from this package is "wake everyone the instant the
// single write happens."
package futures

import (
	"sync"
	"sync/atomic"
)

// Latch is a fire-once barrier. Any number of goroutines may call Chan
// before or after Open; all of them unblock together the moment Open runs,
// and Open beyond the first call is a no-op.
type Latch struct {
	m      sync.Mutex
	wait   chan struct{}
	opened uint32
}

func (l *Latch) wchan() chan struct{} {
	l.m.Lock()
	if l.wait == nil {
		l.wait = make(chan struct{})
	}
	ch := l.wait
	l.m.Unlock()
	return ch
}

// Chan returns a channel that closes the instant Open is called.
func (l *Latch) Chan() <-chan struct{} {
	if atomic.LoadUint32(&l.opened) == 1 {
		return closedChan
	}
	return l.wchan()
}

// Open fires the latch. Only the first call has any effect.
func (l *Latch) Open() {
	l.m.Lock()
	if l.opened == 0 {
		atomic.StoreUint32(&l.opened, 1)
		w := l.wait
		l.wait = closedChan
		if w != nil {
			close(w)
		}
	}
	l.m.Unlock()
}

var closedChan = make(chan struct{})

func init() { close(closedChan) }

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync

import (
	"code.hybscloud.com/spin"
)

// Step dispatches the next pending batch of notifications on the
// calling goroutine, which must be the surface context.
//
// Returns nil after one batch, [ErrWouldBlock] when nothing is pending
// and [ErrDetached] once the engine is detached; a batch dequeued after
// Detach is discarded.
//
// Step is the dispatch primitive for [DispatchManual] engines, meant to be
// called from a UI loop. It never blocks.
func (e *Engine[T]) Step() error {
	if e.detached.Load() {
		return ErrDetached
	}
	b, err := e.handoff.Dequeue()
	if err != nil {
		return err
	}
	signal(e.space)
	if e.detached.Load() {
		return ErrDetached
	}
	e.dispatch(&b)
	return nil
}

// Flush steps until nothing is pending and returns the number of
// batches dispatched.
func (e *Engine[T]) Flush() int {
	n := 0
	for e.Step() == nil {
		n++
	}
	return n
}

// pump is the surface context of a [DispatchPump] engine.
func (e *Engine[T]) pump() {
	spins := 0
	sw := spin.Wait{}
	for {
		err := e.Step()
		if err == nil {
			spins = 0
			continue
		}
		if err == ErrDetached {
			return
		}
		if spins < idleSpins {
			spins++
			sw.Once()
			continue
		}
		spins = 0
		sw = spin.Wait{}
		select {
		case <-e.ready:
		case <-e.done:
			return
		}
	}
}

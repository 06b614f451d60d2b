// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync

import (
	"context"

	"code.hybscloud.com/kont"
)

// Exec runs a notification program directly against s on the calling
// goroutine, without an engine. It is the building block for replaying
// transcripts and for surfaces that compose their own programs from
// [InsertedThen], [RemovedThen], [ChangedThen] and [ChangedWithin].
func Exec[R any](s Surface, program kont.Eff[R]) R {
	n := s.PresentationCount()
	h := surfaceHandler[R]{ctx: &surfaceContext{s: s, count: n, frameCount: n}}
	return kont.Handle(program, h)
}

// Sync waits until every command submitted before the call has been
// applied and its notifications dispatched to the surface.
//
// With [DispatchManual], Sync steps the engine itself while waiting and
// must be called from the surface context. With [DispatchPump] it must
// not be called from inside a [Surface] method.
func (e *Engine[T]) Sync(ctx context.Context) error {
	fence := make(chan struct{})
	if !e.submit(command[T]{op: opFence, fence: fence}) {
		return ErrDetached
	}
	var ready chan struct{}
	if e.cfg.Dispatch == DispatchManual {
		ready = e.ready
	}
	for {
		if ready != nil {
			e.Flush()
		}
		select {
		case <-fence:
			return nil
		default:
		}
		select {
		case <-fence:
			return nil
		case <-ready:
		case <-e.done:
			return ErrDetached
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

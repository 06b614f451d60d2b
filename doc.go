// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package listsync keeps a presented list in step with the lists an
// application submits, driving a presentation [Surface] with range-scoped
// structural notifications instead of full redraws.
//
// The presented sequence wraps the data rows with optional sentinels:
//
//	[header] (data rows | [empty]) [footer] [loading]
//
// # Architecture
//
//   - Commands: mutation methods on [Engine] enqueue commands on a lock-free
//     multi-producer single-consumer queue via [code.hybscloud.com/lfq].
//     A single consumer goroutine applies them in submission order.
//   - Notifications: each command yields a program of notification effects
//     ([Inserted], [Removed], [Changed], [Rebuilt], [Scrolled],
//     [QueryViewport]) on [code.hybscloud.com/kont], handled against the
//     surface. Bulk range changes are clipped to the viewport at dispatch.
//   - Hand-off: programs cross to the surface context through a bounded
//     SPSC queue, in order. The surface context is an engine-owned pump
//     goroutine ([DispatchPump]) or the caller's loop driving [Engine.Step]
//     ([DispatchManual]); [Engine.Step] returns
//     [code.hybscloud.com/iox.ErrWouldBlock] when nothing is pending.
//   - Positions: [Layout] maps logical data indices to presentation indices
//     and classifies rows into a tagged [Row].
//   - Pagination: a trailing loading row with the states of [PageState].
//     Binding a row near the end requests the next page exactly once.
//
// # Example
//
//	e := listsync.New[string](surface, listsync.Config{
//		Header:     listsync.Sentinel{Visible: true},
//		Pagination: listsync.Pagination{Load: loadNextPage},
//	})
//	defer e.Detach()
//	e.RefreshAll([]string{"a", "b", "c"})
//	e.RemoveValue("b")
//	_ = e.Sync(ctx)
package listsync

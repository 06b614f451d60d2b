// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync

import (
	"code.hybscloud.com/kont"
)

// Inserted is the effect operation reporting Count rows inserted at Index.
type Inserted struct {
	kont.Phantom[struct{}]
	Index, Count int
}

// DispatchSurface forwards Inserted to the surface.
func (o Inserted) DispatchSurface(ctx *surfaceContext) kont.Resumed {
	ctx.s.NotifyInserted(o.Index, o.Count)
	ctx.count += o.Count
	return struct{}{}
}

// Removed is the effect operation reporting Count rows removed at Index.
type Removed struct {
	kont.Phantom[struct{}]
	Index, Count int
}

// DispatchSurface forwards Removed to the surface.
func (o Removed) DispatchSurface(ctx *surfaceContext) kont.Resumed {
	ctx.s.NotifyRemoved(o.Index, o.Count)
	ctx.count -= o.Count
	return struct{}{}
}

// Changed is the effect operation reporting Count rows at Index whose
// content changed. Payload is passed through untouched.
type Changed struct {
	kont.Phantom[struct{}]
	Index, Count int
	Payload      any
}

// DispatchSurface forwards Changed to the surface.
func (o Changed) DispatchSurface(ctx *surfaceContext) kont.Resumed {
	ctx.s.NotifyRangeChanged(o.Index, o.Count, o.Payload)
	return struct{}{}
}

// Rebuilt is the effect operation discarding every row on the surface.
type Rebuilt struct {
	kont.Phantom[struct{}]
}

// DispatchSurface forwards Rebuilt to the surface. Surfaces implementing
// [CountObserver] then learn the row count of the installed frame.
func (Rebuilt) DispatchSurface(ctx *surfaceContext) kont.Resumed {
	ctx.s.NotifyRebuildAll()
	ctx.count = ctx.frameCount
	if o, ok := ctx.s.(CountObserver); ok {
		o.ObserveCount(ctx.frameCount)
	}
	return struct{}{}
}

// Scrolled is the effect operation scrolling the surface to Index.
type Scrolled struct {
	kont.Phantom[struct{}]
	Index, Offset int
}

// DispatchSurface forwards Scrolled to the surface.
func (o Scrolled) DispatchSurface(ctx *surfaceContext) kont.Resumed {
	ctx.s.ScrollTo(o.Index, o.Offset)
	return struct{}{}
}

// Viewport is a visible presentation range as reported by the surface.
type Viewport struct {
	First, Last int
	OK          bool
}

// QueryViewport is the effect operation reading the surface viewport.
// It is performed at dispatch time, so clipping sees the viewport as it
// is when the notification is delivered, not when it was computed.
type QueryViewport struct {
	kont.Phantom[Viewport]
}

// DispatchSurface asks the surface for its viewport.
func (QueryViewport) DispatchSurface(ctx *surfaceContext) kont.Resumed {
	first, last, ok := ctx.s.QueryViewport()
	if !ok || last < first {
		return Viewport{}
	}
	return Viewport{First: first, Last: last, OK: true}
}

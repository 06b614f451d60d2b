// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync

import (
	"code.hybscloud.com/kont"
)

// done is the terminal program of every script.
var done = kont.Pure(struct{}{})

// InsertedThen reports an insertion and continues with next.
// Fuses Perform(Inserted{...}) + Then.
func InsertedThen[B any](index, count int, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Inserted{Index: index, Count: count}), next)
}

// RemovedThen reports a removal and continues with next.
// Fuses Perform(Removed{...}) + Then.
func RemovedThen[B any](index, count int, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Removed{Index: index, Count: count}), next)
}

// ChangedThen reports a range change and continues with next.
// Fuses Perform(Changed{...}) + Then.
func ChangedThen[B any](index, count int, payload any, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Changed{Index: index, Count: count, Payload: payload}), next)
}

// ViewportBind reads the surface viewport and passes it to f.
// Fuses Perform(QueryViewport{}) + Bind.
func ViewportBind[B any](f func(Viewport) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(QueryViewport{}), f)
}

// ChangedWithin reports the part of [start, start+count) that lies within
// the viewport widened by slack rows on each side, or the whole range
// when the surface has no viewport.
func ChangedWithin(start, count, slack int, payload any) kont.Eff[struct{}] {
	return ViewportBind(func(v Viewport) kont.Eff[struct{}] {
		lo, hi := clip(start, count, slack, v)
		if lo >= hi {
			return done
		}
		return kont.Perform(Changed{Index: lo, Count: hi - lo, Payload: payload})
	})
}

// clip intersects [start, start+count) with the widened viewport.
func clip(start, count, slack int, v Viewport) (lo, hi int) {
	lo, hi = start, start+count
	if v.OK {
		lo = max(lo, v.First-slack)
		hi = min(hi, v.Last+slack+1)
	}
	return lo, hi
}

// script accumulates the notification program of one command.
// Steps run in append order.
type script struct {
	steps []kont.Eff[struct{}]
	slack int
}

func (s *script) inserted(index, count int) {
	if count > 0 {
		s.steps = append(s.steps, kont.Perform(Inserted{Index: index, Count: count}))
	}
}

func (s *script) removed(index, count int) {
	if count > 0 {
		s.steps = append(s.steps, kont.Perform(Removed{Index: index, Count: count}))
	}
}

func (s *script) changed(index, count int, payload any) {
	if count > 0 {
		s.steps = append(s.steps, kont.Perform(Changed{Index: index, Count: count, Payload: payload}))
	}
}

// window appends a viewport-clipped range change.
func (s *script) window(index, count int, payload any) {
	if count > 0 {
		s.steps = append(s.steps, ChangedWithin(index, count, s.slack, payload))
	}
}

func (s *script) rebuilt() {
	s.steps = append(s.steps, kont.Perform(Rebuilt{}))
}

func (s *script) scrolled(index, offset int) {
	s.steps = append(s.steps, kont.Perform(Scrolled{Index: index, Offset: offset}))
}

func (s *script) empty() bool { return len(s.steps) == 0 }

// program folds the steps into one sequential program.
func (s *script) program() kont.Eff[struct{}] {
	p := done
	for i := len(s.steps) - 1; i >= 0; i-- {
		p = kont.Then(s.steps[i], p)
	}
	return p
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync_test

import (
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/listsync"
	"code.hybscloud.com/listsync/listsynctest"
)

// nullSurface accepts every notification and keeps only the count.
type nullSurface struct{ count int }

func (s *nullSurface) PresentationCount() int { return s.count }
func (s *nullSurface) NotifyInserted(_, count int) { s.count += count }
func (s *nullSurface) NotifyRemoved(_, count int) { s.count -= count }
func (s *nullSurface) NotifyRangeChanged(int, int, any) {}
func (s *nullSurface) NotifyRebuildAll() {}
func (s *nullSurface) ObserveCount(count int) { s.count = count }
func (s *nullSurface) QueryViewport() (first, last int, ok bool) { return 0, 10, true }
func (s *nullSurface) ScrollTo(int, int) {}

func benchList(n int) []int {
	list := make([]int, n)
	for i := range list {
		list[i] = i
	}
	return list
}

// BenchmarkRefreshAll measures a same-length refresh round trip.
func BenchmarkRefreshAll(b *testing.B) {
	skipRace(b)
	e := listsync.New[int](&nullSurface{}, listsync.Config{Dispatch: listsync.DispatchManual, Logger: quiet})
	defer e.Detach()
	l1, l2 := benchList(100), benchList(100)
	b.ReportAllocs()
	for b.Loop() {
		e.RefreshAll(l1)
		e.RefreshAll(l2)
		syncEngine(b, e)
	}
}

// BenchmarkAppendRemove measures an insertion and a removal at the tail.
func BenchmarkAppendRemove(b *testing.B) {
	skipRace(b)
	e := listsync.New[int](&nullSurface{}, listsync.Config{Dispatch: listsync.DispatchManual, Logger: quiet})
	defer e.Detach()
	e.RefreshAll(benchList(100))
	tail := []int{-1}
	b.ReportAllocs()
	for b.Loop() {
		e.Append(tail)
		e.RemoveValue(-1)
		syncEngine(b, e)
	}
}

// BenchmarkPump measures commands drained by the pump goroutine.
func BenchmarkPump(b *testing.B) {
	skipRace(b)
	e := listsync.New[int](&nullSurface{}, listsync.Config{Logger: quiet})
	defer e.Detach()
	e.RefreshAll(benchList(10))
	b.ReportAllocs()
	for b.Loop() {
		e.RefreshItemAt(5, nil)
	}
	syncEngine(b, e)
}

// BenchmarkExec measures a notification program without an engine.
func BenchmarkExec(b *testing.B) {
	rec := listsynctest.NewRecorder()
	b.ReportAllocs()
	for b.Loop() {
		program := listsync.InsertedThen(0, 1,
			listsync.RemovedThen(0, 1, kont.Pure(struct{}{})))
		listsync.Exec(rec, program)
		rec.Take()
	}
}

// BenchmarkClassify measures row classification.
func BenchmarkClassify(b *testing.B) {
	l := listsync.Layout{Shown: 1000, Header: true, Footer: true, Loading: true}
	b.ReportAllocs()
	for b.Loop() {
		for p := range l.Count() {
			l.Classify(p)
		}
	}
}

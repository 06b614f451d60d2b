// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync_test

import (
	"testing"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/listsync"
	"code.hybscloud.com/listsync/listsynctest"
)

// waitStep steps e until one batch is dispatched.
func waitStep[T comparable](tb testing.TB, e *listsync.Engine[T]) {
	tb.Helper()
	deadline := time.Now().Add(5 * time.Second)
	var bo iox.Backoff
	for {
		err := e.Step()
		if err == nil {
			return
		}
		if !listsync.IsWouldBlock(err) {
			tb.Fatalf("Step: %v", err)
		}
		if time.Now().After(deadline) {
			tb.Fatal("no batch dispatched")
		}
		bo.Wait()
	}
}

func TestStepManual(t *testing.T) {
	skipRace(t)
	rec := listsynctest.NewRecorder()
	e := listsync.New[string](rec, listsync.Config{Dispatch: listsync.DispatchManual, Logger: quiet})
	defer e.Detach()

	// Nothing reaches the surface until the caller steps.
	e.RefreshAll([]string{"a", "b"})
	time.Sleep(10 * time.Millisecond)
	if ev := rec.Events(); len(ev) != 0 {
		t.Fatalf("events before Step: %v", ev)
	}

	waitStep(t, e) // initial rebuild
	waitStep(t, e) // refresh
	if got := rec.PresentationCount(); got != 2 {
		t.Fatalf("count: got %d, want 2", got)
	}
	err := e.Step()
	if err != listsync.ErrWouldBlock {
		t.Fatalf("Step on an idle engine: got %v, want ErrWouldBlock", err)
	}
	if !listsync.IsWouldBlock(err) || !listsync.IsSemantic(err) {
		t.Fatal("ErrWouldBlock is not a semantic would-block error")
	}
	if e.Flush() != 0 {
		t.Fatal("Flush dispatched on an idle engine")
	}
}

func TestStepOverflow(t *testing.T) {
	skipRace(t)
	e, rec := newEngine[int](t, listsync.Config{HandoffCapacity: 2})
	for i := range 50 {
		e.Append([]int{i})
	}
	// The consumer never waits for the surface: every command is applied
	// while no batch is being dispatched.
	deadline := time.Now().Add(5 * time.Second)
	for e.Len() != 50 {
		if time.Now().After(deadline) {
			t.Fatalf("len: got %d, want 50", e.Len())
		}
		time.Sleep(time.Millisecond)
	}
	if e.ShownLen() != 0 {
		t.Fatalf("shown before dispatch: %d", e.ShownLen())
	}

	syncEngine(t, e)
	if e.ShownLen() != 50 || rec.PresentationCount() != 50 {
		t.Fatalf("shown %d surface %d", e.ShownLen(), rec.PresentationCount())
	}
	ev := rec.Take()
	if len(ev) != 50 || ev[0].Op != "rebuild" {
		t.Fatalf("events: %v", ev)
	}
	for i, x := range ev[1:] {
		if x.Op != "insert" || x.Index != i+1 || x.Count != 1 {
			t.Fatalf("event %d: %v", i+1, x)
		}
	}
	for i, v := range e.Items() {
		if v != i {
			t.Fatalf("items[%d] = %d", i, v)
		}
	}
}

func TestExecProgram(t *testing.T) {
	rec := listsynctest.NewRecorder()
	rec.SetViewport(2, 3)
	program := listsync.InsertedThen(0, 20,
		listsync.RemovedThen(19, 1,
			listsync.ChangedThen(0, 1, "p",
				kont.Then(listsync.ChangedWithin(0, 19, 1, nil), kont.Pure(7)))))
	if got := listsync.Exec(rec, program); got != 7 {
		t.Fatalf("result: got %d, want 7", got)
	}
	var got []string
	for _, ev := range rec.Events() {
		got = append(got, ev.String())
	}
	want := []string{"insert 0+20", "remove 19+1", "change 0+1 p", "change 1+4"}
	if len(got) != len(want) {
		t.Fatalf("events: got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events: got %q, want %q", got, want)
		}
	}
}

func TestViewportBind(t *testing.T) {
	rec := listsynctest.NewRecorder()
	read := func() listsync.Viewport {
		return listsync.Exec(rec, listsync.ViewportBind(func(v listsync.Viewport) kont.Eff[listsync.Viewport] {
			return kont.Pure(v)
		}))
	}
	if v := read(); v.OK {
		t.Fatalf("viewport without layout: %+v", v)
	}
	rec.SetViewport(3, 1)
	if v := read(); v.OK {
		t.Fatalf("inverted viewport: %+v", v)
	}
	rec.SetViewport(1, 3)
	if v := read(); !v.OK || v.First != 1 || v.Last != 3 {
		t.Fatalf("viewport: %+v", v)
	}
}

func TestExecUnhandledPanics(t *testing.T) {
	type bogus struct{ kont.Phantom[int] }

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unhandled effect")
		}
		msg, ok := r.(string)
		if !ok || msg != "listsync: unhandled effect in surfaceHandler" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	listsync.Exec(listsynctest.NewRecorder(), kont.Perform(bogus{}))
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package listsynctest provides an in-memory [listsync.Surface] for tests.
package listsynctest

import (
	"fmt"
	"sync"

	"code.hybscloud.com/listsync"
)

// Event is one notification received by a [Recorder].
type Event struct {
	Op      string // insert, remove, change, rebuild, scroll
	Index   int
	Count   int // rows; the new count for rebuild; the offset for scroll
	Payload any
}

func (e Event) String() string {
	switch e.Op {
	case "rebuild":
		return fmt.Sprintf("rebuild %d", e.Count)
	case "scroll":
		return fmt.Sprintf("scroll %d@%d", e.Index, e.Count)
	case "change":
		if e.Payload != nil {
			return fmt.Sprintf("change %d+%d %v", e.Index, e.Count, e.Payload)
		}
	}
	return fmt.Sprintf("%s %d+%d", e.Op, e.Index, e.Count)
}

// Recorder is a surface that records notifications and checks each one
// against its running row count, the way a list widget would.
// It is safe for concurrent use.
type Recorder struct {
	mu          sync.Mutex
	count       int
	first, last int
	hasViewport bool
	events      []Event
	violations  []string
}

var (
	_ listsync.Surface       = (*Recorder)(nil)
	_ listsync.CountObserver = (*Recorder)(nil)
)

// NewRecorder returns an empty recorder without a viewport.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SetViewport makes QueryViewport report [first, last].
func (r *Recorder) SetViewport(first, last int) {
	r.mu.Lock()
	r.first, r.last, r.hasViewport = first, last, true
	r.mu.Unlock()
}

// ClearViewport makes QueryViewport report no layout.
func (r *Recorder) ClearViewport() {
	r.mu.Lock()
	r.hasViewport = false
	r.mu.Unlock()
}

func (r *Recorder) violate(format string, args ...any) {
	r.violations = append(r.violations, fmt.Sprintf(format, args...))
}

// PresentationCount implements [listsync.Surface].
func (r *Recorder) PresentationCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// NotifyInserted implements [listsync.Surface].
func (r *Recorder) NotifyInserted(index, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Op: "insert", Index: index, Count: count})
	if index < 0 || index > r.count || count <= 0 {
		r.violate("insert %d+%d with %d rows", index, count, r.count)
		return
	}
	r.count += count
}

// NotifyRemoved implements [listsync.Surface].
func (r *Recorder) NotifyRemoved(index, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Op: "remove", Index: index, Count: count})
	if index < 0 || count <= 0 || index+count > r.count {
		r.violate("remove %d+%d with %d rows", index, count, r.count)
		return
	}
	r.count -= count
}

// NotifyRangeChanged implements [listsync.Surface].
func (r *Recorder) NotifyRangeChanged(index, count int, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Op: "change", Index: index, Count: count, Payload: payload})
	if index < 0 || count <= 0 || index+count > r.count {
		r.violate("change %d+%d with %d rows", index, count, r.count)
	}
}

// NotifyRebuildAll implements [listsync.Surface].
func (r *Recorder) NotifyRebuildAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Op: "rebuild", Index: 0, Count: -1})
}

// ObserveCount implements [listsync.CountObserver].
func (r *Recorder) ObserveCount(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count = count
	if n := len(r.events); n > 0 && r.events[n-1].Op == "rebuild" {
		r.events[n-1].Count = count
	}
}

// QueryViewport implements [listsync.Surface].
func (r *Recorder) QueryViewport() (first, last int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.first, r.last, r.hasViewport
}

// ScrollTo implements [listsync.Surface].
func (r *Recorder) ScrollTo(index, offset int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Op: "scroll", Index: index, Count: offset})
	if index < 0 || index >= r.count {
		r.violate("scroll %d with %d rows", index, r.count)
	}
}

// Events returns a copy of every event recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Take returns the events recorded since the last Take and forgets them.
func (r *Recorder) Take() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev := r.events
	r.events = nil
	return ev
}

// Violations returns the notifications that were out of bounds.
func (r *Recorder) Violations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.violations...)
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync

import (
	"log/slog"
	"math"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/lfq"
	"code.hybscloud.com/spin"
)

// idleSpins is the number of spin rounds the consumer and the pump make
// on an empty queue before parking.
const idleSpins = 16

// surfaceContext is the dispatch state of the surface context.
// count tracks the presentation count implied by the notifications
// dispatched so far; frameCount is the count of the installed frame.
type surfaceContext struct {
	s          Surface
	count      int
	frameCount int
}

// surfaceDispatcher is the structural interface for notification
// operations. DispatchSurface calls into the surface and never blocks
// on the engine.
type surfaceDispatcher interface {
	DispatchSurface(ctx *surfaceContext) kont.Resumed
}

// surfaceHandler implements kont.Handler for notification effects.
// Value type: passed to the evaluator on the stack.
type surfaceHandler[R any] struct {
	ctx *surfaceContext
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h surfaceHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	sop, ok := op.(surfaceDispatcher)
	if !ok {
		panic("listsync: unhandled effect in surfaceHandler")
	}
	return sop.DispatchSurface(h.ctx), true
}

// batch is the unit of the surface hand-off: the frame produced by one
// command and the program that takes the surface to it.
type batch[T comparable] struct {
	frame   *frame[T]
	program kont.Eff[struct{}]
	fence   chan struct{}
}

// Scroll requests a scroll to the top as part of a refresh.
type Scroll struct {
	// IncludeHeader scrolls to the header instead of the first data row.
	IncludeHeader bool
	Offset        int
}

// Engine keeps a shown list in step with the lists submitted to it and
// drives a [Surface] with the minimal notifications for every change.
//
// Mutation methods may be called from any goroutine. They enqueue a
// command and return without waiting; commands are applied one at a time
// in submission order by a consumer goroutine owned by the engine.
// Methods documented as surface-context reads must only be called from
// the surface context (see [DispatchMode]).
//
// Lists passed to mutation methods must not be modified after the call.
type Engine[T comparable] struct {
	serial  Serial
	cfg     Config
	log     *slog.Logger
	surface Surface

	queue lfq.Queue[command[T]]
	wake  chan struct{}

	handoff *lfq.SPSC[batch[T]]
	ready   chan struct{}
	space   chan struct{}

	done       chan struct{}
	detached   atomix.Bool
	detachOnce sync.Once

	// consumer
	m        model[T]
	overflow []batch[T]

	// submit side coalescing
	intentMu sync.Mutex
	header   slot
	footer   slot

	length   atomix.Int64
	shownLen atomix.Int64

	// surface context
	sc        surfaceContext
	installed *frame[T]
	requested uint64
}

// New creates an engine driving s and starts its consumer goroutine,
// plus the pump goroutine when cfg.Dispatch is [DispatchPump].
//
// A rebuild notification is dispatched first so that a surface
// configured with sentinels starts from the engine's layout.
func New[T comparable](s Surface, cfg Config) *Engine[T] {
	cfg = cfg.withDefaults()
	e := &Engine[T]{
		serial:  nextSerial(),
		cfg:     cfg,
		surface: s,
		queue:   lfq.BuildMPSC[command[T]](lfq.New(cfg.QueueCapacity).SingleConsumer()),
		wake:    make(chan struct{}, 1),
		handoff: lfq.NewSPSC[batch[T]](cfg.HandoffCapacity),
		ready:   make(chan struct{}, 1),
		space:   make(chan struct{}, 1),
		done:    make(chan struct{}),
		m:       newModel[T](cfg),
		header:  slot{visible: cfg.Header.Visible, content: cfg.Header.Content},
		footer:  slot{visible: cfg.Footer.Visible, content: cfg.Footer.Content},
		sc:      surfaceContext{s: s},
	}
	e.log = cfg.Logger.With("engine", e.serial)
	e.installed = e.m.frame()

	var first script
	first.rebuilt()
	e.publish(batch[T]{frame: e.installed, program: first.program()})

	go e.consume()
	if cfg.Dispatch == DispatchPump {
		go e.pump()
	}
	e.log.Info("listsync: attached", "dispatch", cfg.Dispatch)
	return e
}

// Serial returns the serial number assigned to this engine.
func (e *Engine[T]) Serial() Serial {
	return e.serial
}

// signal performs a non-blocking send on a one-slot wake channel.
func signal(c chan struct{}) {
	select {
	case c <- struct{}{}:
	default:
	}
}

// submit enqueues c, backing off while the queue is full. It reports
// false once the engine is detached.
func (e *Engine[T]) submit(c command[T]) bool {
	if e.detached.Load() {
		return false
	}
	var bo iox.Backoff
	for e.queue.Enqueue(&c) != nil {
		if e.detached.Load() {
			return false
		}
		bo.Wait()
	}
	signal(e.wake)
	return true
}

// consume is the consumer goroutine. It owns the model.
func (e *Engine[T]) consume() {
	spins := 0
	sw := spin.Wait{}
	for {
		if e.detached.Load() {
			return
		}
		c, err := e.queue.Dequeue()
		if err == nil {
			spins = 0
			e.apply(&c)
			continue
		}
		e.flush()
		if spins < idleSpins {
			spins++
			sw.Once()
			continue
		}
		spins = 0
		sw = spin.Wait{}
		var space chan struct{}
		if len(e.overflow) > 0 {
			space = e.space
		}
		select {
		case <-e.wake:
		case <-space:
		case <-e.done:
			return
		}
	}
}

// apply runs one command on the model and publishes the result.
func (e *Engine[T]) apply(c *command[T]) {
	s := script{slack: e.cfg.ViewportSlack}
	load := e.m.apply(c, &s)
	e.length.Store(int64(len(e.m.items)))
	e.log.Debug("listsync: apply", "op", c.op, "steps", len(s.steps), "len", len(e.m.items), "page", e.m.pager.state)
	if load && !e.detached.Load() {
		go e.m.pager.load()
	}
	e.publish(batch[T]{frame: e.m.frame(), program: s.program(), fence: c.fence})
}

// publish hands b to the surface context. Batches that do not fit wait
// in the overflow, which is always drained first.
func (e *Engine[T]) publish(b batch[T]) {
	if e.detached.Load() {
		return
	}
	e.flush()
	if len(e.overflow) == 0 && e.handoff.Enqueue(&b) == nil {
		signal(e.ready)
		return
	}
	if len(e.overflow) == 0 {
		e.log.Warn("listsync: surface hand-off full", "capacity", e.handoff.Cap())
	}
	e.overflow = append(e.overflow, b)
}

// flush moves overflowed batches into the hand-off queue.
func (e *Engine[T]) flush() {
	if len(e.overflow) == 0 {
		return
	}
	n := 0
	for n < len(e.overflow) && e.handoff.Enqueue(&e.overflow[n]) == nil {
		e.overflow[n] = batch[T]{}
		n++
	}
	if n == 0 {
		return
	}
	e.overflow = e.overflow[n:]
	if len(e.overflow) == 0 {
		e.overflow = nil
	}
	signal(e.ready)
}

// dispatch installs the frame of b and runs its program on the surface.
func (e *Engine[T]) dispatch(b *batch[T]) {
	e.installed = b.frame
	e.shownLen.Store(int64(b.frame.layout.Shown))
	e.sc.frameCount = b.frame.layout.Count()
	kont.Handle(b.program, surfaceHandler[struct{}]{ctx: &e.sc})

	want := e.sc.frameCount
	assertf(e.sc.count == want, "notified count %d, layout count %d", e.sc.count, want)
	if got := e.surface.PresentationCount(); got != want {
		assertf(false, "surface count %d, layout count %d", got, want)
		e.log.Debug("listsync: surface count mismatch", "surface", got, "layout", want)
	}
	if b.fence != nil {
		close(b.fence)
	}
}

// Detach tears the engine down. The command being applied finishes its
// model mutation; every pending or later notification is discarded and
// every later mutation is ignored. Detach is idempotent and does not wait.
func (e *Engine[T]) Detach() {
	e.detachOnce.Do(func() {
		e.detached.Store(true)
		close(e.done)
		e.log.Info("listsync: detached")
	})
}

// Detached reports whether [Engine.Detach] has been called.
func (e *Engine[T]) Detached() bool {
	return e.detached.Load()
}

// RefreshAll replaces the list. Passing the slice returned by
// [Engine.Items] skips the copy. A nil list clears the rows without
// counting as received data for the empty row.
func (e *Engine[T]) RefreshAll(list []T) {
	e.submit(command[T]{op: opRefresh, list: list})
}

// RefreshAllScroll is [Engine.RefreshAll] with a scroll to the top
// issued before the structural notifications.
func (e *Engine[T]) RefreshAllScroll(list []T, scroll Scroll) {
	e.submit(command[T]{op: opRefresh, list: list, top: true, withHeader: scroll.IncludeHeader, offset: scroll.Offset})
}

// AddAt inserts list at index, clamped to the current length.
// On an empty list it behaves as [Engine.RefreshAll].
func (e *Engine[T]) AddAt(list []T, index int) {
	e.submit(command[T]{op: opAdd, list: list, index: index})
}

// Append inserts list at the end, as a page load does.
func (e *Engine[T]) Append(list []T) {
	e.AddAt(list, math.MaxInt)
}

// RemoveAt removes the first row equal to the row at index.
func (e *Engine[T]) RemoveAt(index int) {
	e.submit(command[T]{op: opRemoveAt, index: index})
}

// RemoveValue removes the first row equal to v. Absent values are ignored.
func (e *Engine[T]) RemoveValue(v T) {
	e.submit(command[T]{op: opRemoveValue, value: v})
}

// ReplaceRange replaces the rows from index with list, appending what
// runs past the end. Rows whose position survives are reported changed
// with payload.
func (e *Engine[T]) ReplaceRange(index int, list []T, payload any) {
	e.submit(command[T]{op: opReplace, index: index, list: list, payload: payload})
}

// ReplaceItem replaces the row at index with v.
func (e *Engine[T]) ReplaceItem(index int, v T, payload any) {
	e.ReplaceRange(index, []T{v}, payload)
}

// RefreshItem reports the first row equal to v as changed.
func (e *Engine[T]) RefreshItem(v T, payload any) {
	e.submit(command[T]{op: opRefreshItem, value: v, payload: payload})
}

// RefreshItemAt reports the row at index as changed.
func (e *Engine[T]) RefreshItemAt(index int, payload any) {
	e.submit(command[T]{op: opRefreshItemAt, index: index, payload: payload})
}

// RefreshRange reports up to count rows, starting at the first row equal
// to v, as changed.
func (e *Engine[T]) RefreshRange(v T, count int, payload any) {
	e.submit(command[T]{op: opRefreshRange, value: v, count: count, payload: payload})
}

// RefreshRangeAt reports up to count rows from index as changed.
func (e *Engine[T]) RefreshRangeAt(index, count int, payload any) {
	e.submit(command[T]{op: opRefreshRangeAt, index: index, count: count, payload: payload})
}

// RefreshAllItems reports every data row as changed.
func (e *Engine[T]) RefreshAllItems(payload any) {
	e.RefreshRangeAt(0, math.MaxInt, payload)
}

// RefreshValues reports the rows equal to values as changed. When
// successive is set the values are taken to be adjacent and a single
// range starting at the first one is reported.
func (e *Engine[T]) RefreshValues(values []T, payload any, successive bool) {
	if len(values) == 0 {
		return
	}
	if successive {
		e.RefreshRange(values[0], len(values), payload)
		return
	}
	for _, v := range values {
		e.RefreshItem(v, payload)
	}
}

// SetHeaderVisible shows or hides the header. Setting the value last
// requested is a no-op.
func (e *Engine[T]) SetHeaderVisible(visible bool) {
	e.intentMu.Lock()
	defer e.intentMu.Unlock()
	if e.header.visible == visible {
		return
	}
	if e.submit(command[T]{op: opHeaderVisible, visible: visible}) {
		e.header.visible = visible
	}
}

// SetHeaderContent swaps the header content handle.
func (e *Engine[T]) SetHeaderContent(c Content) {
	e.intentMu.Lock()
	defer e.intentMu.Unlock()
	if sameContent(e.header.content, c) {
		return
	}
	if e.submit(command[T]{op: opHeaderContent, content: c}) {
		e.header.content = c
	}
}

// SetFooterVisible shows or hides the footer.
func (e *Engine[T]) SetFooterVisible(visible bool) {
	e.intentMu.Lock()
	defer e.intentMu.Unlock()
	if e.footer.visible == visible {
		return
	}
	if e.submit(command[T]{op: opFooterVisible, visible: visible}) {
		e.footer.visible = visible
	}
}

// SetFooterContent swaps the footer content handle.
func (e *Engine[T]) SetFooterContent(c Content) {
	e.intentMu.Lock()
	defer e.intentMu.Unlock()
	if sameContent(e.footer.content, c) {
		return
	}
	if e.submit(command[T]{op: opFooterContent, content: c}) {
		e.footer.content = c
	}
}

// ScrollTo scrolls to the data row at index, clamped, with a pixel offset.
func (e *Engine[T]) ScrollTo(index, offset int) {
	e.submit(command[T]{op: opScroll, index: index, offset: offset})
}

// ClosePagination closes pagination until the next refresh and removes
// the loading row.
func (e *Engine[T]) ClosePagination() {
	e.submit(command[T]{op: opClose})
}

// PaginationLoading moves pagination to loading and invokes the load
// callback, as a retry from the failed row does.
func (e *Engine[T]) PaginationLoading() {
	e.submit(command[T]{op: opLoading})
}

// PaginationFailed reports that the last page load failed.
func (e *Engine[T]) PaginationFailed() {
	e.submit(command[T]{op: opFailed})
}

// PaginationNoMore reports that there are no more pages.
func (e *Engine[T]) PaginationNoMore() {
	e.submit(command[T]{op: opNoMore})
}

// Len returns the number of rows after the last applied command.
// Safe from any goroutine.
func (e *Engine[T]) Len() int {
	return int(e.length.Load())
}

// ShownLen returns the number of data rows the surface has been told
// about. Safe from any goroutine.
func (e *Engine[T]) ShownLen() int {
	return int(e.shownLen.Load())
}

// Layout returns the installed layout. Surface context only.
func (e *Engine[T]) Layout() Layout {
	return e.installed.layout
}

// Count returns the installed presentation count. Surface context only.
func (e *Engine[T]) Count() int {
	return e.installed.layout.Count()
}

// Items returns the installed data rows. The slice is shared and must not
// be modified. Surface context only.
func (e *Engine[T]) Items() []T {
	return e.installed.items
}

// Row classifies presentation index p. Surface context only.
func (e *Engine[T]) Row(p int) Row[T] {
	return e.installed.row(p)
}

// Bind is [Engine.Row] for a row about to be displayed. Binding a data row
// within the preload threshold of the end, or the loading row, requests
// the next page at most once per pagination state. Surface context only.
func (e *Engine[T]) Bind(p int) Row[T] {
	f := e.installed
	r := f.row(p)
	pos := r.Index
	switch r.Kind {
	case KindData:
	case KindLoading:
		pos = f.layout.Shown
	default:
		return r
	}
	if f.page.wants(pos, f.layout.Shown) && e.requested != f.page.epoch+1 {
		e.requested = f.page.epoch + 1
		e.submit(command[T]{op: opPage, epoch: f.page.epoch})
	}
	return r
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync

import (
	"slices"
	"unsafe"
)

// slot is a header or footer sentinel.
type slot struct {
	visible bool
	content Content
}

// model is the data model owned by the consumer goroutine.
//
// The source collection of a mutation is the list carried by its command;
// items is the shown collection. A published items slice is never written
// again: every mutation builds a new backing array, so frames handed to
// the surface context can share it.
type model[T comparable] struct {
	items    []T
	received bool
	header   slot
	footer   slot
	empty    EmptyState
	pager    pager
}

func newModel[T comparable](cfg Config) model[T] {
	return model[T]{
		header: slot{visible: cfg.Header.Visible, content: cfg.Header.Content},
		footer: slot{visible: cfg.Footer.Visible, content: cfg.Footer.Content},
		empty:  cfg.Empty,
		pager:  newPager(cfg.Pagination),
	}
}

// layout applies the sentinel policy to the current state.
func (m *model[T]) layout() Layout {
	return Layout{
		Shown:   len(m.items),
		Header:  m.header.visible,
		Footer:  m.footer.visible,
		Empty:   m.empty.Enabled && m.received && len(m.items) == 0,
		Loading: m.pager.visible(),
	}
}

func (m *model[T]) frame() *frame[T] {
	return &frame[T]{
		items:  m.items,
		layout: m.layout(),
		page:   m.pager.snapshot(),
		header: m.header.content,
		footer: m.footer.content,
		empty:  m.empty.Content,
	}
}

// sameSlice reports whether a and b share backing array and length.
func sameSlice[T any](a, b []T) bool {
	return len(a) == len(b) && unsafe.SliceData(a) == unsafe.SliceData(b)
}

// apply mutates the model for one command and appends the notifications
// that take the surface from the old layout to the new one. It reports
// whether the pagination load callback must be invoked.
func (m *model[T]) apply(c *command[T], s *script) (load bool) {
	switch c.op {
	case opRefresh:
		m.refresh(c.list, c.top, c.withHeader, c.offset, s)
	case opAdd:
		m.add(c.list, c.index, s)
	case opRemoveAt:
		if c.index >= 0 && c.index < len(m.items) {
			m.remove(m.items[c.index], s)
		}
	case opRemoveValue:
		m.remove(c.value, s)
	case opReplace:
		m.replace(c.index, c.list, c.payload, s)
	case opRefreshItem:
		m.refreshRange(slices.Index(m.items, c.value), 1, c.payload, s)
	case opRefreshItemAt:
		m.refreshRange(c.index, 1, c.payload, s)
	case opRefreshRange:
		m.refreshRange(slices.Index(m.items, c.value), c.count, c.payload, s)
	case opRefreshRangeAt:
		m.refreshRange(c.index, c.count, c.payload, s)
	case opHeaderVisible:
		m.setHeaderVisible(c.visible, s)
	case opHeaderContent:
		m.setHeaderContent(c.content, s)
	case opFooterVisible:
		m.setFooterVisible(c.visible, s)
	case opFooterContent:
		m.setFooterContent(c.content, s)
	case opScroll:
		m.scroll(c.index, c.offset, s)
	case opClose:
		before := m.layout()
		if m.pager.close() && before.Loading {
			s.removed(before.LoadingIndex(), 1)
		}
	case opLoading:
		display := m.pager.state.display()
		load = m.pager.retry()
		m.pageChanged(display, s)
	case opFailed:
		display := m.pager.state.display()
		m.pager.report(PageFailed)
		m.pageChanged(display, s)
	case opNoMore:
		display := m.pager.state.display()
		m.pager.report(PageNoMore)
		m.pageChanged(display, s)
	case opPage:
		if m.pager.epoch == c.epoch {
			load = m.pager.request(len(m.items))
		}
	case opFence:
	}
	return load
}

// pageChanged notifies the loading row when its rendering changed.
func (m *model[T]) pageChanged(before PageState, s *script) {
	l := m.layout()
	if l.Loading && m.pager.state.display() != before {
		s.changed(l.LoadingIndex(), 1, PayloadLoading)
	}
}

func (m *model[T]) refresh(list []T, top, withHeader bool, offset int, s *script) {
	before := m.layout()
	display := m.pager.state.display()
	oldLen := len(m.items)

	if list != nil {
		m.received = true
	}
	if !sameSlice(list, m.items) {
		m.items = slices.Clone(list)
	}
	m.pager.refresh(len(list))
	after := m.layout()

	if oldLen == 0 {
		s.rebuilt()
		return
	}

	if top {
		at := before.ToPresentation(0)
		if withHeader {
			at = before.HeaderIndex()
		}
		s.scrolled(at, offset)
	}

	start := before.ToPresentation(0)
	newLen := len(m.items)
	if oldLen > newLen {
		s.removed(start+newLen, oldLen-newLen)
	} else {
		s.inserted(start+oldLen, newLen-oldLen)
	}
	if after.Empty {
		s.inserted(after.EmptyIndex(), 1)
	}
	switch {
	case after.Loading && !before.Loading:
		s.inserted(after.LoadingIndex(), 1)
	case after.Loading && m.pager.state.display() != display:
		s.changed(after.LoadingIndex(), 1, PayloadLoading)
	}
	s.window(start, min(oldLen, newLen), nil)
}

func (m *model[T]) add(list []T, index int, s *script) {
	if len(m.items) == 0 {
		m.refresh(list, false, false, 0, s)
		return
	}
	if len(list) == 0 {
		return
	}

	display := m.pager.state.display()
	n := len(m.items)
	i := min(max(index, 0), n)
	atEnd := i == n

	m.items = slices.Concat(m.items[:i], list, m.items[i:])
	m.received = true
	if atEnd {
		m.pager.extend()
	}
	after := m.layout()

	at := after.ToPresentation(i)
	s.inserted(at, len(list))
	if atEnd {
		if after.Loading && m.pager.state.display() != display {
			s.changed(after.LoadingIndex(), 1, PayloadLoading)
		}
		return
	}
	s.window(at+len(list), n-i, nil)
}

func (m *model[T]) remove(value T, s *script) {
	i := slices.Index(m.items, value)
	if i < 0 {
		return
	}
	before := m.layout()
	at := before.ToPresentation(i)
	m.items = slices.Concat(m.items[:i], m.items[i+1:])
	after := m.layout()

	s.removed(at, 1)
	if after.Empty {
		s.inserted(after.EmptyIndex(), 1)
		return
	}
	s.window(at, len(m.items)-i, nil)
}

func (m *model[T]) refreshRange(i, count int, payload any, s *script) {
	if i < 0 || i >= len(m.items) {
		return
	}
	n := min(count, len(m.items)-i)
	s.changed(m.layout().ToPresentation(i), n, payload)
}

func (m *model[T]) replace(index int, list []T, payload any, s *script) {
	n := len(m.items)
	if n == 0 {
		return
	}
	i := max(index, 0)
	l := m.layout()
	if sameSlice(list, m.items) {
		if i < n {
			s.changed(l.ToPresentation(i), min(len(list), n-i), payload)
		}
		return
	}
	if len(list) == 0 {
		return
	}
	if i >= n {
		m.items = slices.Concat(m.items, list)
		s.inserted(l.ToPresentation(n), len(list))
		return
	}

	removed := min(n-i, len(list))
	m.items = slices.Concat(m.items[:i], list, m.items[i+removed:])
	at := l.ToPresentation(i)
	s.inserted(at+removed, len(list)-removed)
	s.changed(at, removed, payload)
}

func (m *model[T]) setHeaderVisible(visible bool, s *script) {
	if m.header.visible == visible {
		return
	}
	m.header.visible = visible
	after := m.layout()
	if visible {
		s.inserted(after.HeaderIndex(), 1)
	} else {
		s.removed(0, 1)
	}
	s.window(after.ToPresentation(0), len(m.items), PayloadHeader)
}

func (m *model[T]) setHeaderContent(c Content, s *script) {
	if sameContent(m.header.content, c) {
		return
	}
	m.header.content = c
	if m.header.visible {
		s.window(m.layout().HeaderIndex(), 1, PayloadHeader)
	}
}

func (m *model[T]) setFooterVisible(visible bool, s *script) {
	if m.footer.visible == visible {
		return
	}
	before := m.layout()
	m.footer.visible = visible
	after := m.layout()
	if visible {
		s.inserted(after.FooterIndex(), 1)
	} else {
		s.removed(before.FooterIndex(), 1)
	}
	if after.Loading {
		s.window(after.LoadingIndex(), 1, PayloadLoading)
	}
}

func (m *model[T]) setFooterContent(c Content, s *script) {
	if sameContent(m.footer.content, c) {
		return
	}
	m.footer.content = c
	if m.footer.visible {
		s.window(m.layout().FooterIndex(), 1, PayloadFooter)
	}
}

func (m *model[T]) scroll(index, offset int, s *script) {
	l := m.layout()
	if len(m.items) == 0 {
		if l.Count() > 0 {
			s.scrolled(0, offset)
		}
		return
	}
	s.scrolled(l.ToPresentation(min(max(index, 0), len(m.items)-1)), offset)
}

// frame is the immutable state published with one batch. The surface
// context reads rows from the frame installed with the batch it last
// dispatched, so reads always agree with the notifications seen so far.
type frame[T comparable] struct {
	items  []T
	layout Layout
	page   pageSnapshot
	header Content
	footer Content
	empty  Content
}

func (f *frame[T]) row(p int) Row[T] {
	k, i := f.layout.Classify(p)
	r := Row[T]{Kind: k, Index: i}
	switch k {
	case KindData:
		r.Item = f.items[i]
	case KindHeader:
		r.Content = f.header
	case KindFooter:
		r.Content = f.footer
	case KindEmpty:
		r.Content = f.empty
	case KindLoading:
		r.Page = f.page.state
	}
	return r
}

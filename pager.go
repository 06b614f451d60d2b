// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync

// PageState is the state of the trailing loading row.
type PageState uint8

const (
	PageIdle PageState = iota
	PageLoading
	PageFailed
	PageNoMore
	PageClosed
)

var pageStateNames = [...]string{
	PageIdle:    "idle",
	PageLoading: "loading",
	PageFailed:  "failed",
	PageNoMore:  "no-more",
	PageClosed:  "closed",
}

func (s PageState) String() string {
	if int(s) < len(pageStateNames) {
		return pageStateNames[s]
	}
	return "unknown"
}

// display maps a state to what the loading row renders. Idle and Loading
// share the spinner, so moving between them needs no notification.
func (s PageState) display() PageState {
	if s == PageIdle {
		return PageLoading
	}
	return s
}

// pager is the pagination state machine. It is owned by the consumer;
// the surface side sees it through pageSnapshot values in frames.
//
//	Idle → Loading → {Failed, NoMore, Idle}
//	any  → Closed (until the next refresh)
type pager struct {
	load      func()
	fixed     int // caller threshold, 0 for half page
	state     PageState
	threshold int
	epoch     uint64 // bumped on every transition
}

func newPager(cfg Pagination) pager {
	return pager{load: cfg.Load, fixed: cfg.Threshold}
}

func (p *pager) enabled() bool { return p.load != nil }

// visible reports whether the loading row is part of the layout.
func (p *pager) visible() bool { return p.load != nil && p.state != PageClosed }

func (p *pager) set(s PageState) {
	p.state = s
	p.epoch++
}

// refresh resets to Idle after a full refresh, re-opening a closed pager,
// and recomputes the preload threshold from the new page size.
func (p *pager) refresh(pageSize int) {
	if !p.enabled() {
		return
	}
	p.threshold = p.fixed
	if p.threshold <= 0 {
		p.threshold = pageSize / 2
	}
	p.set(PageIdle)
}

// extend resets to Idle after rows were appended at the tail.
func (p *pager) extend() {
	if !p.visible() || p.state == PageIdle {
		return
	}
	p.set(PageIdle)
}

// request performs the bind-triggered Idle→Loading transition.
func (p *pager) request(shown int) bool {
	if !p.visible() || p.state != PageIdle || shown == 0 {
		return false
	}
	p.set(PageLoading)
	return true
}

// retry moves any open, non-loading state to Loading.
func (p *pager) retry() bool {
	if !p.visible() || p.state == PageLoading {
		return false
	}
	p.set(PageLoading)
	return true
}

// report moves to Failed or NoMore; repeated reports are no-ops.
func (p *pager) report(s PageState) bool {
	if !p.visible() || p.state == s {
		return false
	}
	p.set(s)
	return true
}

func (p *pager) close() bool {
	if !p.visible() {
		return false
	}
	p.set(PageClosed)
	return true
}

func (p *pager) snapshot() pageSnapshot {
	return pageSnapshot{state: p.state, threshold: p.threshold, epoch: p.epoch, visible: p.visible()}
}

// pageSnapshot is the pager as seen by the surface context.
type pageSnapshot struct {
	state     PageState
	threshold int
	epoch     uint64
	visible   bool
}

// wants reports whether binding logical row pos of shown rows should
// request the next page.
func (s pageSnapshot) wants(pos, shown int) bool {
	if !s.visible || s.state != PageIdle || shown == 0 {
		return false
	}
	return pos >= max(shown-s.threshold, 0)
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync

import "log/slog"

// DispatchMode selects the surface context.
type DispatchMode uint8

const (
	// DispatchPump runs surface notifications on a goroutine owned by
	// the engine.
	DispatchPump DispatchMode = iota

	// DispatchManual leaves dispatch to the caller, who drives
	// [Engine.Step] or [Engine.Flush] from its own loop (a UI thread).
	DispatchManual
)

func (d DispatchMode) String() string {
	if d == DispatchManual {
		return "manual"
	}
	return "pump"
}

// Sentinel configures a header or footer row.
type Sentinel struct {
	Visible bool
	Content Content
}

// EmptyState configures the row shown in place of an empty list.
type EmptyState struct {
	Enabled bool
	Content Content
}

// Pagination configures the trailing loading row.
type Pagination struct {
	// Load is invoked, on its own goroutine, on every transition into
	// the loading state. A nil Load disables pagination entirely.
	// The callee reports back through RefreshAll, Append,
	// PaginationFailed, PaginationNoMore or ClosePagination.
	Load func()

	// Threshold is the number of trailing rows that trigger a preload
	// when bound. Zero selects half of the latest refreshed page.
	Threshold int
}

// Config configures an engine. The zero value is usable.
//
//	field            default
//	QueueCapacity    1024
//	HandoffCapacity  64
//	ViewportSlack    4
//	Dispatch         DispatchPump
//	Header, Footer   hidden, no content
//	Empty            disabled
//	Pagination       disabled
//	Logger           slog.Default()
type Config struct {
	// QueueCapacity bounds the command queue (rounded up to a power of 2).
	QueueCapacity int

	// HandoffCapacity bounds the batch queue to the surface context.
	// Batches beyond it wait in an unbounded overflow on the consumer.
	HandoffCapacity int

	// ViewportSlack widens the visible window used to clip bulk
	// range-changed notifications.
	ViewportSlack int

	Dispatch   DispatchMode
	Header     Sentinel
	Footer     Sentinel
	Empty      EmptyState
	Pagination Pagination
	Logger     *slog.Logger
}

const (
	defaultQueueCapacity   = 1024
	defaultHandoffCapacity = 64
	defaultViewportSlack   = 4
)

func (c Config) withDefaults() Config {
	if c.QueueCapacity < 2 {
		c.QueueCapacity = defaultQueueCapacity
	}
	if c.HandoffCapacity < 2 {
		c.HandoffCapacity = defaultHandoffCapacity
	}
	if c.ViewportSlack <= 0 {
		c.ViewportSlack = defaultViewportSlack
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

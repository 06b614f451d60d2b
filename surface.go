// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync

import "reflect"

// Surface is the presentation side of an engine.
//
// All methods are called from a single surface context: the engine's
// pump goroutine, or the goroutine calling [Engine.Step] when the engine
// runs with [DispatchManual]. Structural notifications arrive in the
// order the engine computed them, and the surface is expected to apply
// each one against its current row count before reading the next.
type Surface interface {
	// PresentationCount returns the number of rows the surface currently holds.
	PresentationCount() int

	// NotifyInserted reports count rows inserted at index.
	NotifyInserted(index, count int)

	// NotifyRemoved reports count rows removed starting at index.
	NotifyRemoved(index, count int)

	// NotifyRangeChanged reports count rows starting at index whose content
	// changed. A non-nil payload allows partial rebinding.
	NotifyRangeChanged(index, count int, payload any)

	// NotifyRebuildAll discards every row; the surface rereads the engine.
	NotifyRebuildAll()

	// QueryViewport returns the first and last visible presentation
	// indices. ok is false when nothing is laid out yet.
	QueryViewport() (first, last int, ok bool)

	// ScrollTo scrolls to the presentation index with a pixel offset.
	ScrollTo(index, offset int)
}

// CountObserver is an optional [Surface] extension. A surface that
// implements it is told the presentation count right after every
// NotifyRebuildAll, so it need not call back into the engine.
type CountObserver interface {
	ObserveCount(count int)
}

// Content is an opaque sentinel content handle (a header widget, an
// empty-state view model, ...). The engine only stores handles and
// compares them by identity.
type Content = any

// sameContent reports whether a and b are the same handle. Dynamic types
// that are not comparable never compare equal.
func sameContent(a, b Content) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Payloads attached by the engine to sentinel range-changed notifications.
const (
	PayloadHeader  = "listsync:header"
	PayloadFooter  = "listsync:footer"
	PayloadLoading = "listsync:loading"
)

// Kind classifies a presentation row.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindHeader
	KindFooter
	KindLoading
	KindEmpty
	KindData
)

var kindNames = [...]string{
	KindUnknown: "unknown",
	KindHeader:  "header",
	KindFooter:  "footer",
	KindLoading: "loading",
	KindEmpty:   "empty",
	KindData:    "data",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Row is the classification of one presentation index.
//
// Index is the logical index for [KindData] rows and -1 otherwise.
// Item is set for data rows, Content for header, footer and empty rows,
// Page for the loading row.
type Row[T any] struct {
	Kind    Kind
	Index   int
	Item    T
	Content Content
	Page    PageState
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync

// Layout is the sentinel arrangement of one presentation state.
//
// The presentation sequence is, in order:
//
//	[header] (data rows | [empty]) [footer] [loading]
//
// Layout values are produced by the engine's sentinel policy and are
// immutable; the translation methods are pure.
type Layout struct {
	Shown   int  // number of data rows
	Header  bool // header occupies index 0
	Footer  bool // footer follows the data (or the empty row)
	Empty   bool // empty row replaces the data
	Loading bool // loading row is the last index
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Count returns the number of presentation rows.
func (l Layout) Count() int {
	return l.Shown + b2i(l.Empty) + b2i(l.Loading) + b2i(l.Header) + b2i(l.Footer)
}

// ToPresentation converts a logical data index to a presentation index.
func (l Layout) ToPresentation(logical int) int {
	return logical + b2i(l.Header)
}

// ToLogical converts a presentation index to a logical data index.
// The result is meaningful only for data rows.
func (l Layout) ToLogical(presentation int) int {
	return presentation - b2i(l.Header)
}

// HeaderIndex is the header position, valid only when Header is set.
func (l Layout) HeaderIndex() int { return 0 }

// FooterIndex is the footer position, valid only when Footer is set.
func (l Layout) FooterIndex() int {
	return max(l.Count()-1-b2i(l.Loading), 0)
}

// EmptyIndex is the empty row position, valid only when Empty is set.
func (l Layout) EmptyIndex() int {
	return b2i(l.Header)
}

// LoadingIndex is the loading row position, valid only when Loading is set.
func (l Layout) LoadingIndex() int {
	return max(l.Count()-1, 0)
}

// Classify returns the row kind at a presentation index and, for data
// rows, the logical index (otherwise -1).
//
// Sentinels are checked in a fixed precedence: header, footer, loading,
// empty, data. A layout whose sentinels overlap panics in debug builds
// and resolves by that precedence otherwise.
func (l Layout) Classify(presentation int) (Kind, int) {
	assertf(!(l.Empty && l.Shown > 0), "empty row with %d data rows", l.Shown)
	if presentation < 0 || presentation >= l.Count() {
		return KindUnknown, -1
	}
	if l.Header && presentation == 0 {
		return KindHeader, -1
	}
	dataEnd := l.Shown + b2i(l.Header) + b2i(l.Empty)
	if l.Footer && presentation == dataEnd {
		return KindFooter, -1
	}
	if l.Loading && presentation >= dataEnd {
		return KindLoading, -1
	}
	if l.Empty {
		return KindEmpty, -1
	}
	if i := l.ToLogical(presentation); i >= 0 && i < l.Shown {
		return KindData, i
	}
	return KindUnknown, -1
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync_test

import (
	"testing"
	"testing/quick"

	"code.hybscloud.com/listsync"
)

// TestPropertyPositionBijection proves that logical and presentation
// indices round-trip for every data row under every header and loading
// combination, and that the mapping is strictly monotonic.
func TestPropertyPositionBijection(t *testing.T) {
	property := func(shown uint8, header, loading, footer bool) bool {
		l := listsync.Layout{Shown: int(shown), Header: header, Loading: loading, Footer: footer}
		prev := -1
		for i := range l.Shown {
			p := l.ToPresentation(i)
			if l.ToLogical(p) != i || p <= prev {
				return false
			}
			if k, j := l.Classify(p); k != listsync.KindData || j != i {
				return false
			}
			prev = p
		}
		return true
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

func TestLayoutIndices(t *testing.T) {
	tests := []struct {
		name    string
		layout  listsync.Layout
		count   int
		footer  int
		empty   int
		loading int
	}{
		{"bare", listsync.Layout{Shown: 3}, 3, 2, 0, 2},
		{"header", listsync.Layout{Shown: 3, Header: true}, 4, 3, 1, 3},
		{"footer loading", listsync.Layout{Shown: 3, Footer: true, Loading: true}, 5, 3, 0, 4},
		{"all", listsync.Layout{Shown: 2, Header: true, Footer: true, Loading: true}, 5, 3, 1, 4},
		{"empty", listsync.Layout{Header: true, Empty: true, Footer: true}, 3, 2, 1, 2},
		{"nothing", listsync.Layout{}, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.layout
			if got := l.Count(); got != tt.count {
				t.Fatalf("Count: got %d, want %d", got, tt.count)
			}
			if got := l.FooterIndex(); got != tt.footer {
				t.Fatalf("FooterIndex: got %d, want %d", got, tt.footer)
			}
			if got := l.EmptyIndex(); got != tt.empty {
				t.Fatalf("EmptyIndex: got %d, want %d", got, tt.empty)
			}
			if got := l.LoadingIndex(); got != tt.loading {
				t.Fatalf("LoadingIndex: got %d, want %d", got, tt.loading)
			}
		})
	}
}

func TestLayoutClassify(t *testing.T) {
	l := listsync.Layout{Header: true, Empty: true, Footer: true, Loading: true}
	want := []listsync.Kind{listsync.KindHeader, listsync.KindEmpty, listsync.KindFooter, listsync.KindLoading}
	for p, k := range want {
		if got, i := l.Classify(p); got != k || i != -1 {
			t.Fatalf("Classify(%d): got %v %d, want %v", p, got, i, k)
		}
	}
	for _, p := range []int{-1, 4, 100} {
		if got, _ := l.Classify(p); got != listsync.KindUnknown {
			t.Fatalf("Classify(%d): got %v, want unknown", p, got)
		}
	}

	l = listsync.Layout{Shown: 3, Header: true, Footer: true, Loading: true}
	want = []listsync.Kind{
		listsync.KindHeader, listsync.KindData, listsync.KindData, listsync.KindData,
		listsync.KindFooter, listsync.KindLoading,
	}
	for p, k := range want {
		if got, _ := l.Classify(p); got != k {
			t.Fatalf("Classify(%d): got %v, want %v", p, got, k)
		}
	}
	if got := l.FooterIndex(); got != 4 {
		t.Fatalf("FooterIndex: got %d, want 4", got)
	}
}

// TestPropertyEmptyExclusive proves that an empty row never shares the
// presentation space with a data row.
func TestPropertyEmptyExclusive(t *testing.T) {
	property := func(header, footer, loading bool, p uint8) bool {
		l := listsync.Layout{Header: header, Empty: true, Footer: footer, Loading: loading}
		k, _ := l.Classify(int(p) % (l.Count() + 1))
		return k != listsync.KindData
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

func TestKindString(t *testing.T) {
	if listsync.KindLoading.String() != "loading" || listsync.Kind(99).String() != "unknown" {
		t.Fatal("Kind.String")
	}
	if listsync.PageNoMore.String() != "no-more" || listsync.PageState(99).String() != "unknown" {
		t.Fatal("PageState.String")
	}
}

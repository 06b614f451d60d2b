// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync_test

import (
	"context"
	"log/slog"
	"slices"
	"testing"
	"time"

	"code.hybscloud.com/listsync"
	"code.hybscloud.com/listsync/listsynctest"
)

var quiet = slog.New(slog.DiscardHandler)

// newEngine creates a manually dispatched engine over a recorder, waits
// for the initial rebuild and discards it. Sync on a manual engine steps
// on the calling goroutine, so tests may read rows afterwards.
func newEngine[T comparable](tb testing.TB, cfg listsync.Config) (*listsync.Engine[T], *listsynctest.Recorder) {
	tb.Helper()
	if cfg.Logger == nil {
		cfg.Logger = quiet
	}
	cfg.Dispatch = listsync.DispatchManual
	rec := listsynctest.NewRecorder()
	e := listsync.New[T](rec, cfg)
	tb.Cleanup(e.Detach)
	syncEngine(tb, e)
	rec.Take()
	return e, rec
}

// syncEngine waits for every submitted command to reach the surface.
func syncEngine[T comparable](tb testing.TB, e *listsync.Engine[T]) {
	tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Sync(ctx); err != nil {
		tb.Fatalf("Sync: %v", err)
	}
}

// expectEvents syncs and compares the events recorded since the last call.
func expectEvents[T comparable](tb testing.TB, e *listsync.Engine[T], rec *listsynctest.Recorder, want ...string) {
	tb.Helper()
	syncEngine(tb, e)
	var got []string
	for _, ev := range rec.Take() {
		got = append(got, ev.String())
	}
	if !slices.Equal(got, want) {
		tb.Fatalf("events:\n got %q\nwant %q", got, want)
	}
	if v := rec.Violations(); len(v) > 0 {
		tb.Fatalf("out of bounds notifications: %q", v)
	}
	if got, want := rec.PresentationCount(), e.Count(); got != want {
		tb.Fatalf("surface count %d, engine count %d", got, want)
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package listsync_test

import "testing"

// skipRace skips tests that run an engine.
// The race detector tracks per-variable happens-before and cannot
// see lfq's cross-variable memory ordering (store-release on the slot,
// load-acquire on the index), producing false positives on every
// command and batch that crosses a queue.
func skipRace(tb testing.TB) {
	tb.Helper()
	tb.Skip("skip: lfq uses cross-variable memory ordering")
}

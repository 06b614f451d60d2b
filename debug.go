// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build listsync_debug

package listsync

import "fmt"

// DebugEnabled is true when built with the listsync_debug tag.
// Invariant violations panic instead of falling back to sentinel precedence.
const DebugEnabled = true

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("listsync: "+format, args...))
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !listsync_debug

package listsync

// DebugEnabled is false in normal builds.
const DebugEnabled = false

func assertf(bool, string, ...any) {}

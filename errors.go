// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates that no batch is waiting for the surface.
//
// [Engine.Step] returns it when the hand-off queue is empty. It is a
// control flow signal, not a failure: the caller simply tries again on
// its next frame or tick.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrDetached is returned by the blocking and stepping helpers once the
// engine has been detached from its surface.
var ErrDetached = errors.New("listsync: engine detached")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

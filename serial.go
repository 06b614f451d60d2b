// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listsync

import (
	"log/slog"

	"code.hybscloud.com/atomix"
)

// Serial identifies an engine in log records. Serials increase
// monotonically across every [New] call in the process.
type Serial uint32

// LogValue implements [slog.LogValuer].
func (s Serial) LogValue() slog.Value {
	return slog.Uint64Value(uint64(s))
}

// engines is the source of engine serials.
var engines atomix.Uint32

func nextSerial() Serial {
	return Serial(engines.Add(1))
}

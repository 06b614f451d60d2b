// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package replay

import (
	"bufio"
	"io"
	"strconv"
)

// WriteText writes the human-readable transcript of r:
//
//	# name
//	0 attach
//	  rebuild 0
//	1 refresh
//	  rebuild 3
//	rows
//	  0 data 0 a
//	violations
//	  (none)
func WriteText(w io.Writer, r *Result) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("# " + r.Name + "\n")
	for _, s := range r.Steps {
		bw.WriteString(strconv.Itoa(s.Step) + " " + s.Op + "\n")
		if s.Bound != "" {
			bw.WriteString("  bound " + s.Bound + "\n")
		}
		lines(bw, s.Events)
		if s.Load {
			bw.WriteString("  load\n")
		}
	}
	bw.WriteString("rows\n")
	lines(bw, r.Rows)
	bw.WriteString("violations\n")
	lines(bw, r.Violations)
	return bw.Flush()
}

func lines(bw *bufio.Writer, ss []string) {
	if len(ss) == 0 {
		bw.WriteString("  (none)\n")
		return
	}
	for _, s := range ss {
		bw.WriteString("  " + s + "\n")
	}
}

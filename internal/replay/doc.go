// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package replay runs YAML scripts of list mutations against an engine
// over a recording surface and produces the notification transcript of
// every step.
//
// Scripts look like:
//
//	name: pagination
//	config:
//	  header: {visible: true, content: H}
//	  pagination: {threshold: 2}
//	  viewport: {first: 0, last: 9}
//	steps:
//	  - op: refresh
//	    items: [a, b, c]
//	  - op: bind
//	    index: 3
//
// Transcripts are stable across runs, which makes them suitable as
// golden files.
package replay

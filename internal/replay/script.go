// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package replay

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Ops lists the step operations a script may use, in documentation order.
var Ops = []string{
	"refresh", "add", "remove", "remove_at", "replace",
	"refresh_item", "refresh_range", "header", "footer", "scroll",
	"close", "loading", "failed", "no_more", "bind", "viewport",
}

var (
	// ErrUnknownOp is returned for a step whose op is not in [Ops].
	ErrUnknownOp = errors.New("replay: unknown op")

	// ErrInvalidStep is returned for a step missing a required field.
	ErrInvalidStep = errors.New("replay: invalid step")
)

// Script is a replayable sequence of engine mutations.
type Script struct {
	// Name identifies the script in transcripts and golden files.
	Name string `yaml:"name"`

	// Description explains what the script exercises.
	Description string `yaml:"description,omitempty"`

	Config Config `yaml:"config"`
	Steps  []Step `yaml:"steps"`
}

// Config is the engine configuration of a script. Contents are plain
// strings, rendered as-is in the final rows.
type Config struct {
	Header     *Sentinel   `yaml:"header,omitempty"`
	Footer     *Sentinel   `yaml:"footer,omitempty"`
	Empty      *Empty      `yaml:"empty,omitempty"`
	Pagination *Pagination `yaml:"pagination,omitempty"`
	Viewport   *Viewport   `yaml:"viewport,omitempty"`

	// Slack overrides the viewport slack; zero keeps the engine default.
	Slack int `yaml:"slack,omitempty"`
}

// Sentinel configures a header or footer.
type Sentinel struct {
	Visible bool   `yaml:"visible"`
	Content string `yaml:"content,omitempty"`
}

// Empty configures the empty row.
type Empty struct {
	Content string `yaml:"content,omitempty"`
}

// Pagination enables the loading row. The load callback only records
// that it ran.
type Pagination struct {
	Threshold int `yaml:"threshold,omitempty"`
}

// Viewport is the inclusive range of visible presentation rows.
type Viewport struct {
	First int `yaml:"first"`
	Last  int `yaml:"last"`
}

// Step is one mutation. Which fields apply depends on Op:
//
//	refresh        items, top, with_header, offset
//	add            items, index (absent: append)
//	remove         value
//	remove_at      index
//	replace        index, items, payload
//	refresh_item   value or index, payload
//	refresh_range  value or index, count, payload
//	header/footer  visible, content
//	scroll         index, offset
//	bind           index (presentation position)
//	viewport       first, last (both absent: clear)
//	close, loading, failed, no_more
type Step struct {
	Op         string   `yaml:"op"`
	Items      []string `yaml:"items,omitempty"`
	Index      *int     `yaml:"index,omitempty"`
	Count      int      `yaml:"count,omitempty"`
	Value      *string  `yaml:"value,omitempty"`
	Payload    string   `yaml:"payload,omitempty"`
	Visible    *bool    `yaml:"visible,omitempty"`
	Content    *string  `yaml:"content,omitempty"`
	Top        bool     `yaml:"top,omitempty"`
	WithHeader bool     `yaml:"with_header,omitempty"`
	Offset     int      `yaml:"offset,omitempty"`
	First      *int     `yaml:"first,omitempty"`
	Last       *int     `yaml:"last,omitempty"`
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a script, rejecting unknown fields, and validates its steps.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i := range s.Steps {
		if err := s.Steps[i].validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

func (st *Step) validate() error {
	switch st.Op {
	case "refresh", "add", "close", "loading", "failed", "no_more":
	case "remove":
		if st.Value == nil {
			return fmt.Errorf("%w: remove needs value", ErrInvalidStep)
		}
	case "remove_at", "replace", "scroll", "bind":
		if st.Index == nil {
			return fmt.Errorf("%w: %s needs index", ErrInvalidStep, st.Op)
		}
	case "refresh_item", "refresh_range":
		if (st.Value == nil) == (st.Index == nil) {
			return fmt.Errorf("%w: %s needs exactly one of value and index", ErrInvalidStep, st.Op)
		}
	case "header", "footer":
		if st.Visible == nil && st.Content == nil {
			return fmt.Errorf("%w: %s needs visible or content", ErrInvalidStep, st.Op)
		}
	case "viewport":
		if (st.First == nil) != (st.Last == nil) {
			return fmt.Errorf("%w: viewport needs both first and last", ErrInvalidStep)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, st.Op)
	}
	return nil
}

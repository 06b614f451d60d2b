// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package replay

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	s, err := Parse([]byte(`
name: parse
config:
  header: {visible: true, content: H}
  empty: {content: E}
  pagination: {threshold: 3}
  viewport: {first: 1, last: 5}
  slack: 2
steps:
  - op: refresh
    items: [a, b]
  - op: add
    items: [c]
  - op: add
    items: [d]
    index: 0
  - op: refresh_item
    index: 1
    payload: p
`))
	require.NoError(t, err)

	assert.Equal(t, "parse", s.Name)
	require.NotNil(t, s.Config.Header)
	assert.True(t, s.Config.Header.Visible)
	assert.Equal(t, "H", s.Config.Header.Content)
	assert.Nil(t, s.Config.Footer)
	require.NotNil(t, s.Config.Empty)
	assert.Equal(t, "E", s.Config.Empty.Content)
	require.NotNil(t, s.Config.Pagination)
	assert.Equal(t, 3, s.Config.Pagination.Threshold)
	assert.Equal(t, &Viewport{First: 1, Last: 5}, s.Config.Viewport)
	assert.Equal(t, 2, s.Config.Slack)

	require.Len(t, s.Steps, 4)
	assert.Equal(t, []string{"a", "b"}, s.Steps[0].Items)
	assert.Nil(t, s.Steps[1].Index, "absent index appends")
	require.NotNil(t, s.Steps[2].Index)
	assert.Equal(t, 0, *s.Steps[2].Index)
	assert.Nil(t, s.Steps[3].Value)
	assert.Equal(t, "p", s.Steps[3].Payload)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		is     error
		msg    string
	}{
		{
			name:   "unknown op",
			script: "steps:\n  - op: shuffle\n",
			is:     ErrUnknownOp,
			msg:    "step 1",
		},
		{
			name:   "remove without value",
			script: "steps:\n  - op: refresh\n  - op: remove\n",
			is:     ErrInvalidStep,
			msg:    "step 2",
		},
		{
			name:   "bind without index",
			script: "steps:\n  - op: bind\n",
			is:     ErrInvalidStep,
			msg:    "bind needs index",
		},
		{
			name:   "refresh_item with value and index",
			script: "steps:\n  - op: refresh_item\n    value: a\n    index: 0\n",
			is:     ErrInvalidStep,
			msg:    "exactly one",
		},
		{
			name:   "header without fields",
			script: "steps:\n  - op: header\n",
			is:     ErrInvalidStep,
			msg:    "visible or content",
		},
		{
			name:   "half viewport",
			script: "steps:\n  - op: viewport\n    first: 1\n",
			is:     ErrInvalidStep,
			msg:    "both first and last",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.script))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.is)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse([]byte("steps:\n  - op: refresh\n    itemz: [a]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "itemz")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read script")
}

func TestOpsAreValid(t *testing.T) {
	for _, op := range Ops {
		st := Step{Op: op}
		err := st.validate()
		assert.NotErrorIs(t, err, ErrUnknownOp, op)
	}
}

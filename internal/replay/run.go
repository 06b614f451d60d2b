// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package replay

import (
	"context"
	"fmt"
	"log/slog"

	"code.hybscloud.com/listsync"
	"code.hybscloud.com/listsync/listsynctest"
)

// Result is the transcript of one script run.
type Result struct {
	Name       string       `json:"name"`
	Steps      []StepResult `json:"steps"`
	Rows       []string     `json:"rows"`
	Violations []string     `json:"violations"`
}

// StepResult holds the notifications one step produced. Step 0 is the
// initial rebuild the engine sends on attach.
type StepResult struct {
	Step   int      `json:"step"`
	Op     string   `json:"op"`
	Events []string `json:"events"`

	// Bound is the row returned by a bind step.
	Bound string `json:"bound,omitempty"`

	// Load reports that the step moved pagination into loading and the
	// load callback ran.
	Load bool `json:"load,omitempty"`
}

// OK reports whether every notification stayed within the surface bounds.
func (r *Result) OK() bool {
	return len(r.Violations) == 0
}

// Run replays s against a manually dispatched engine over a
// [listsynctest.Recorder]. The calling goroutine is the surface context;
// the engine is synced after every step. A nil log discards engine logs.
func Run(ctx context.Context, s *Script, log *slog.Logger) (*Result, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	rec := listsynctest.NewRecorder()
	if vp := s.Config.Viewport; vp != nil {
		rec.SetViewport(vp.First, vp.Last)
	}
	loads := make(chan struct{}, 64)
	e := listsync.New[string](rec, s.Config.engine(loads, log))
	defer e.Detach()

	res := &Result{Name: s.Name}
	if err := e.Sync(ctx); err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	res.Steps = append(res.Steps, StepResult{Op: "attach", Events: take(rec)})

	for i := range s.Steps {
		st := &s.Steps[i]
		before := pageState(e)
		sr := StepResult{Step: i + 1, Op: st.Op}
		sr.Bound = step(e, rec, st)
		if err := e.Sync(ctx); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		sr.Events = take(rec)
		if pageState(e) == listsync.PageLoading && before != listsync.PageLoading {
			select {
			case <-loads:
				sr.Load = true
			case <-ctx.Done():
				return nil, fmt.Errorf("step %d: waiting for load: %w", i+1, ctx.Err())
			}
		}
		log.Debug("replay: step", "step", i+1, "op", st.Op, "events", len(sr.Events))
		res.Steps = append(res.Steps, sr)
	}

	for p := range e.Count() {
		res.Rows = append(res.Rows, describe(p, e.Row(p)))
	}
	res.Violations = rec.Violations()
	return res, nil
}

// engine builds the engine configuration. The load callback only
// records that it ran.
func (c *Config) engine(loads chan<- struct{}, log *slog.Logger) listsync.Config {
	cfg := listsync.Config{
		Dispatch:      listsync.DispatchManual,
		ViewportSlack: c.Slack,
		Logger:        log,
	}
	if c.Header != nil {
		cfg.Header = listsync.Sentinel{Visible: c.Header.Visible, Content: content(c.Header.Content)}
	}
	if c.Footer != nil {
		cfg.Footer = listsync.Sentinel{Visible: c.Footer.Visible, Content: content(c.Footer.Content)}
	}
	if c.Empty != nil {
		cfg.Empty = listsync.EmptyState{Enabled: true, Content: content(c.Empty.Content)}
	}
	if c.Pagination != nil {
		cfg.Pagination = listsync.Pagination{
			Threshold: c.Pagination.Threshold,
			Load: func() {
				select {
				case loads <- struct{}{}:
				default:
				}
			},
		}
	}
	return cfg
}

// step submits the mutation of st. It returns the bound row for bind.
func step(e *listsync.Engine[string], rec *listsynctest.Recorder, st *Step) string {
	payload := content(st.Payload)
	switch st.Op {
	case "refresh":
		if st.Top {
			e.RefreshAllScroll(st.Items, listsync.Scroll{IncludeHeader: st.WithHeader, Offset: st.Offset})
		} else {
			e.RefreshAll(st.Items)
		}
	case "add":
		if st.Index == nil {
			e.Append(st.Items)
		} else {
			e.AddAt(st.Items, *st.Index)
		}
	case "remove":
		e.RemoveValue(*st.Value)
	case "remove_at":
		e.RemoveAt(*st.Index)
	case "replace":
		e.ReplaceRange(*st.Index, st.Items, payload)
	case "refresh_item":
		if st.Value != nil {
			e.RefreshItem(*st.Value, payload)
		} else {
			e.RefreshItemAt(*st.Index, payload)
		}
	case "refresh_range":
		if st.Value != nil {
			e.RefreshRange(*st.Value, st.Count, payload)
		} else {
			e.RefreshRangeAt(*st.Index, st.Count, payload)
		}
	case "header":
		if st.Visible != nil {
			e.SetHeaderVisible(*st.Visible)
		}
		if st.Content != nil {
			e.SetHeaderContent(content(*st.Content))
		}
	case "footer":
		if st.Visible != nil {
			e.SetFooterVisible(*st.Visible)
		}
		if st.Content != nil {
			e.SetFooterContent(content(*st.Content))
		}
	case "scroll":
		e.ScrollTo(*st.Index, st.Offset)
	case "close":
		e.ClosePagination()
	case "loading":
		e.PaginationLoading()
	case "failed":
		e.PaginationFailed()
	case "no_more":
		e.PaginationNoMore()
	case "bind":
		return describe(*st.Index, e.Bind(*st.Index))
	case "viewport":
		if st.First == nil {
			rec.ClearViewport()
		} else {
			rec.SetViewport(*st.First, *st.Last)
		}
	}
	return ""
}

// content maps the empty string to no content.
func content(s string) listsync.Content {
	if s == "" {
		return nil
	}
	return s
}

// pageState returns the state of the installed loading row, or
// [listsync.PageClosed] when there is none.
func pageState(e *listsync.Engine[string]) listsync.PageState {
	l := e.Layout()
	if !l.Loading {
		return listsync.PageClosed
	}
	return e.Row(l.LoadingIndex()).Page
}

func take(rec *listsynctest.Recorder) []string {
	ev := rec.Take()
	out := make([]string, 0, len(ev))
	for _, x := range ev {
		out = append(out, x.String())
	}
	return out
}

// describe renders presentation row p.
func describe(p int, r listsync.Row[string]) string {
	switch r.Kind {
	case listsync.KindData:
		return fmt.Sprintf("%d data %d %s", p, r.Index, r.Item)
	case listsync.KindLoading:
		return fmt.Sprintf("%d loading %s", p, r.Page)
	case listsync.KindUnknown:
		return fmt.Sprintf("%d unknown", p)
	}
	if r.Content == nil {
		return fmt.Sprintf("%d %s", p, r.Kind)
	}
	return fmt.Sprintf("%d %s %v", p, r.Kind, r.Content)
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"code.hybscloud.com/listsync/internal/replay"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Timeout time.Duration
}

// ReplayReport is the JSON output of the replay command.
type ReplayReport struct {
	Scripts []*replay.Result `json:"scripts"`
	OK      bool             `json:"ok"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>...",
		Short: "Replay mutation scripts and print the surface notifications",
		Long: `Replay YAML mutation scripts against an engine over a recording surface.

Each step is synced before the next one, and the notifications it produced
are printed under it, followed by the final presentation rows.

Exit codes:
  0 - Every notification stayed within the surface bounds
  1 - A script produced an out-of-bounds notification
  2 - Command error (unreadable or invalid script, timeout)

Examples:
  listsync replay testdata/scripts/pagination.yaml
  listsync replay --format json a.yaml b.yaml
  listsync replay -v --timeout 2s a.yaml`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return NewExitError(ExitCommandError, "replay needs at least one script")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd, args)
		},
	}

	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 10*time.Second, "timeout per script")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command, paths []string) error {
	log := slog.New(slog.DiscardHandler)
	if opts.Verbose {
		log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	report := ReplayReport{Scripts: make([]*replay.Result, 0, len(paths)), OK: true}
	failed := 0
	for _, path := range paths {
		s, err := replay.Load(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load script", err)
		}
		res, err := replayScript(cmd.Context(), opts.Timeout, s, log.With("script", s.Name))
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay %s", path), err)
		}
		if !res.OK() {
			report.OK = false
			failed++
		}
		report.Scripts = append(report.Scripts, res)
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return WrapExitError(ExitCommandError, "failed to encode report", err)
		}
	} else {
		for _, res := range report.Scripts {
			if err := replay.WriteText(cmd.OutOrStdout(), res); err != nil {
				return WrapExitError(ExitCommandError, "failed to write transcript", err)
			}
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d script(s) produced out-of-bounds notifications", failed))
	}
	return nil
}

func replayScript(parent context.Context, timeout time.Duration, s *replay.Script, log *slog.Logger) (*replay.Result, error) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()
	return replay.Run(ctx, s, log)
}

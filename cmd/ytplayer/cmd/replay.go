package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-drift/ytplayer/pkg/bridge"
	"github.com/go-drift/ytplayer/pkg/dispatch"
	"github.com/go-drift/ytplayer/pkg/event"
	"github.com/go-drift/ytplayer/pkg/netstate"
	"github.com/go-drift/ytplayer/pkg/player"
	"github.com/go-drift/ytplayer/pkg/surface"
)

var replayFlags struct {
	background bool
}

func init() {
	replayCmd.Flags().BoolVar(&replayFlags.background, "background", false, "Keep playing while the host is in the background")
	rootCmd.AddCommand(replayCmd)
}

var replayCmd = &cobra.Command{
	Use:   "replay <trace.jsonl>",
	Short: "Replay a recorded signal trace",
	Long: `Feed a recorded trace through a player and print the commands it
issues, one JSON frame per line.

Each trace line is one JSON object:
  {"event": "stateChange", "data": "PLAYING"}   a frame from the runtime
  {"lifecycle": "paused"}                       a host lifecycle transition
  {"network": false}                            a connectivity change
  {"open": ["https://youtu.be/vCKCkc8llaM"]}    open references once ready

Blank lines and lines starting with # are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		f, err := fs.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		rec := surface.NewRecorder()
		monitor := netstate.Always()
		view := player.NewView(rec, dispatch.Immediate{}, monitor)
		defer view.Release()

		view.EnableBackgroundPlayback(cfg.BackgroundPlaybackEnabled || replayFlags.background)
		if err := view.Initialize(newLogListener(logrus.StandardLogger()), cfg.HandleNetworkEvents, &cfg.Player); err != nil {
			return err
		}

		frames := bridge.New(func(category event.Category, payload string) {
			rec.Emit(category, payload)
		})
		if err := replay(f, view, monitor, frames); err != nil {
			return err
		}
		return writeCommands(cmd.OutOrStdout(), frames, rec.Calls())
	},
}

// traceLine is one line of a replay trace.
type traceLine struct {
	Event     string   `json:"event"`
	Lifecycle string   `json:"lifecycle"`
	Network   *bool    `json:"network"`
	Open      []string `json:"open"`
}

func replay(r io.Reader, view *player.View, monitor *netstate.Static, frames *bridge.Bridge) error {
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		var tl traceLine
		if err := json.Unmarshal(line, &tl); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}

		switch {
		case tl.Event != "":
			// Undecodable frames are reported and dropped, as a live bridge would.
			_ = frames.HandleFrame(line)
		case tl.Lifecycle != "":
			state, ok := player.ParseLifecycleState(tl.Lifecycle)
			if !ok {
				return fmt.Errorf("line %d: unknown lifecycle state %q", n, tl.Lifecycle)
			}
			view.HandleLifecycle(state)
		case tl.Network != nil:
			monitor.Set(*tl.Network)
		case len(tl.Open) > 0:
			refs := tl.Open
			view.WhenReady(func(p *player.Player) {
				player.Open(p, view.Eligibility().IsEligible(), refs...)
			})
		default:
			return fmt.Errorf("line %d: unrecognized trace entry", n)
		}
	}
	return scanner.Err()
}

func writeCommands(w io.Writer, frames *bridge.Bridge, calls []surface.Call) error {
	for _, call := range calls {
		data, err := frames.EncodeCommand(call.Command, call.Args...)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}

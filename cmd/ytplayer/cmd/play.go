package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-drift/ytplayer/pkg/dispatch"
	"github.com/go-drift/ytplayer/pkg/event"
	"github.com/go-drift/ytplayer/pkg/netstate"
	"github.com/go-drift/ytplayer/pkg/player"
	"github.com/go-drift/ytplayer/pkg/surface/jsruntime"
)

var playFlags struct {
	duration   time.Duration
	tick       time.Duration
	background bool
}

func init() {
	playCmd.Flags().DurationVarP(&playFlags.duration, "duration", "d", 0, "Stop after this long (0 plays until the last video ends)")
	playCmd.Flags().DurationVar(&playFlags.tick, "tick", jsruntime.DefaultTickInterval, "Playback clock interval")
	playCmd.Flags().BoolVar(&playFlags.background, "background", false, "Keep playing while the host is in the background")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <video-or-playlist>...",
	Short: "Play videos in a headless player",
	Long: `Play one or more videos, or a playlist, in the headless script
runtime and log every player event.

References may be video ids, playlist ids, or watch, short, and playlist
URLs. Several references are played as an ad-hoc playlist.

Usage:
  ytplayer play https://youtu.be/vCKCkc8llaM
  ytplayer play -d 30s PL0KROm2A3S8HaMLBxYPF5kuEEtTYvUJox`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, refs []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if playFlags.duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, playFlags.duration)
		defer cancel()
	}

	monitor := netstate.New()
	if c, ok := monitor.(io.Closer); ok {
		defer c.Close()
	}

	log := logrus.StandardLogger()
	rt := jsruntime.New(jsruntime.WithTickInterval(playFlags.tick))
	loop := dispatch.NewManualLoop()
	view := player.NewView(rt, loop, monitor)

	var initErr error
	loop.Post(func() {
		view.EnableBackgroundPlayback(cfg.BackgroundPlaybackEnabled || playFlags.background)
		if err := view.Initialize(newLogListener(log), cfg.HandleNetworkEvents, &cfg.Player); err != nil {
			initErr = err
			cancel()
			return
		}
		view.AddListener(&endWatcher{done: cancel})
		view.WhenReady(func(p *player.Player) {
			if !player.Open(p, view.Eligibility().IsEligible(), refs...) {
				initErr = fmt.Errorf("no playable reference in %q", refs)
				cancel()
			}
		})
	})

	go func() {
		<-ctx.Done()
		loop.Post(view.Release)
		loop.Close()
	}()

	log.WithField("refs", refs).Debug("starting player")
	loop.Run(context.Background())
	return initErr
}

// endWatcher stops playback once the player reports ENDED, which the runtime
// only does after the last video of a playlist.
type endWatcher struct {
	player.BaseListener
	done func()
}

func (w *endWatcher) OnStateChange(_ *player.Player, state event.PlayerState) {
	if state == event.StateEnded {
		w.done()
	}
}

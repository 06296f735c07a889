package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/go-drift/ytplayer/pkg/errors"
	"github.com/go-drift/ytplayer/pkg/event"
	"github.com/go-drift/ytplayer/pkg/player"
)

// setupLogging configures the standard logger and routes reported bridge
// errors through it.
func setupLogging(out io.Writer, level, format string, verbose bool) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	logrus.SetOutput(out)
	logrus.SetLevel(lvl)
	switch format {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid --log-format %q (use text or json)", format)
	}

	errors.SetHandler(&errors.LogHandler{Verbose: verbose})
	return nil
}

// logListener logs every player event. Telemetry is logged at debug level.
type logListener struct {
	log logrus.FieldLogger
}

func newLogListener(log logrus.FieldLogger) *logListener {
	return &logListener{log: log}
}

func (l *logListener) entry(p *player.Player) logrus.FieldLogger {
	return l.log.WithField("handle", p.ID())
}

func (l *logListener) OnReady(p *player.Player) {
	l.entry(p).Info("player ready")
}

func (l *logListener) OnStateChange(p *player.Player, state event.PlayerState) {
	l.entry(p).WithField("state", state.String()).Info("state changed")
}

func (l *logListener) OnPlaybackQualityChange(p *player.Player, q event.PlaybackQuality) {
	l.entry(p).WithField("quality", q.String()).Info("quality changed")
}

func (l *logListener) OnPlaybackRateChange(p *player.Player, rate string) {
	l.entry(p).WithField("rate", rate).Info("rate changed")
}

func (l *logListener) OnError(p *player.Player, e event.PlayerError) {
	l.entry(p).WithField("error", e.String()).Warn("player error")
}

func (l *logListener) OnApiChange(p *player.Player) {
	l.entry(p).Debug("api changed")
}

func (l *logListener) OnCurrentSecond(p *player.Player, second float64) {
	l.entry(p).WithField("second", second).Debug("position")
}

func (l *logListener) OnVideoDuration(p *player.Player, duration float64) {
	l.entry(p).WithField("duration", duration).Info("duration")
}

func (l *logListener) OnVideoLoadedFraction(p *player.Player, fraction float64) {
	l.entry(p).WithField("fraction", fraction).Debug("buffered")
}

func (l *logListener) OnVideoId(p *player.Player, id string) {
	l.entry(p).WithField("video", id).Info("video")
}

func (l *logListener) OnVideoUrl(p *player.Player, url string) {
	l.entry(p).WithField("url", url).Info("video url")
}

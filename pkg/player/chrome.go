package player

import (
	"strconv"

	"github.com/go-drift/ytplayer/pkg/event"
)

// ChromeState is what the default chrome would display. Rendering it is
// left to the host.
type ChromeState struct {
	State          event.PlayerState
	Playing        bool
	Buffering      bool
	CurrentSecond  float64
	Duration       float64
	LoadedFraction float64
	VideoID        string
	Fullscreen     bool

	ShowPlayPause        bool
	ShowSeekBar          bool
	ShowFullscreenButton bool
	ShowVideoButton      bool
}

// Chrome is the model behind the default player controls. It listens to the
// player and to fullscreen changes, and turns control presses into commands.
// Hosts that draw their own controls call [View.UseCustomUI], which detaches
// it.
//
// Chrome runs on the dispatcher like every listener; its methods must be
// called there too.
type Chrome struct {
	BaseListener

	player *Player
	state  ChromeState
}

func newChrome(p *Player) *Chrome {
	return &Chrome{
		player: p,
		state: ChromeState{
			ShowPlayPause:        true,
			ShowSeekBar:          true,
			ShowFullscreenButton: true,
			ShowVideoButton:      true,
		},
	}
}

// State returns a copy of the displayed state.
func (c *Chrome) State() ChromeState {
	return c.state
}

func (c *Chrome) OnStateChange(_ *Player, state event.PlayerState) {
	c.state.State = state
	switch state {
	case event.StatePlaying:
		c.state.Playing = true
		c.state.Buffering = false
	case event.StatePaused, event.StateVideoCued:
		c.state.Playing = false
		c.state.Buffering = false
	case event.StateEnded:
		c.state.Playing = false
		c.state.Buffering = false
		c.state.CurrentSecond = 0
	case event.StateBuffering:
		c.state.Buffering = true
	}
}

func (c *Chrome) OnCurrentSecond(_ *Player, second float64) {
	c.state.CurrentSecond = second
}

func (c *Chrome) OnVideoDuration(_ *Player, duration float64) {
	c.state.Duration = duration
}

func (c *Chrome) OnVideoLoadedFraction(_ *Player, fraction float64) {
	c.state.LoadedFraction = fraction
}

func (c *Chrome) OnVideoId(_ *Player, videoID string) {
	c.state.VideoID = videoID
}

func (c *Chrome) OnEnterFullscreen() { c.state.Fullscreen = true }
func (c *Chrome) OnExitFullscreen()  { c.state.Fullscreen = false }

// PlayPause handles a press of the play/pause button.
func (c *Chrome) PlayPause() {
	if c.state.Playing {
		c.player.Pause()
	} else {
		c.player.Play()
	}
}

// Seek handles a seek bar drag released at seconds.
func (c *Chrome) Seek(seconds float64) {
	c.state.CurrentSecond = seconds
	c.player.SeekTo(seconds)
}

// WatchURL returns the link behind the video button: the loaded video on
// the web, at the current position. It is empty before a video is known.
func (c *Chrome) WatchURL() string {
	if c.state.VideoID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + c.state.VideoID + "#t=" + strconv.Itoa(int(c.state.CurrentSecond))
}

func (c *Chrome) ShowPlayPause(show bool) *Chrome {
	c.state.ShowPlayPause = show
	return c
}

func (c *Chrome) ShowSeekBar(show bool) *Chrome {
	c.state.ShowSeekBar = show
	return c
}

func (c *Chrome) ShowFullscreenButton(show bool) *Chrome {
	c.state.ShowFullscreenButton = show
	return c
}

func (c *Chrome) ShowVideoButton(show bool) *Chrome {
	c.state.ShowVideoButton = show
	return c
}

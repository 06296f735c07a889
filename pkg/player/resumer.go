package player

import (
	"github.com/go-drift/ytplayer/pkg/event"
	"github.com/go-drift/ytplayer/pkg/surface"
)

// Resumer remembers enough about playback to restart it after the host
// loses the network or goes to the background. It is registered as an
// internal listener and, like every listener, runs on the dispatcher.
type Resumer struct {
	BaseListener

	canLoad       bool
	playing       bool
	wantsResume   bool
	lastError     event.PlayerError
	videoID       string
	currentSecond float64
}

// NewResumer returns a resumer for a visible host.
func NewResumer() *Resumer {
	return &Resumer{canLoad: true}
}

// OnStateChange tracks whether the player is playing.
func (r *Resumer) OnStateChange(_ *Player, state event.PlayerState) {
	switch state {
	case event.StateEnded, event.StatePaused:
		r.playing = false
	case event.StatePlaying:
		r.playing = true
		r.wantsResume = false
	}
}

// OnError records HTML5 player errors. The player stops after one, so the
// next resume reloads the video.
func (r *Resumer) OnError(_ *Player, err event.PlayerError) {
	if err == event.ErrorHTML5Player {
		r.lastError = err
	}
}

// OnCurrentSecond tracks the playback position.
func (r *Resumer) OnCurrentSecond(_ *Player, second float64) {
	r.currentSecond = second
}

// OnVideoId tracks the loaded video.
func (r *Resumer) OnVideoId(_ *Player, videoID string) {
	r.videoID = videoID
}

// Playing reports whether the last state reported was playing.
func (r *Resumer) Playing() bool {
	return r.playing
}

// SetCanLoad records whether the host may start playback. A host that
// cannot load gets videos cued instead.
func (r *Resumer) SetCanLoad(canLoad bool) {
	r.canLoad = canLoad
}

// MarkWantsResume records that playback was interrupted by the host and
// should continue on the next resume.
func (r *Resumer) MarkWantsResume() {
	r.wantsResume = true
}

// WantsResume reports whether an interrupted playback is pending.
func (r *Resumer) WantsResume() bool {
	return r.wantsResume
}

// LastError returns the last recoverable error seen since the previous resume.
func (r *Resumer) LastError() event.PlayerError {
	return r.lastError
}

// Resume issues exactly one command that restarts playback and returns it.
//
// With a known video, the video is reloaded at the last position: loaded if
// it was playing, was interrupted, or failed with an HTML5 player error and
// the host can load; cued otherwise.
// With no known video, Play is issued.
func (r *Resumer) Resume(p *Player) surface.Command {
	defer func() {
		r.lastError = event.ErrorUnknown
		r.wantsResume = false
	}()

	if r.videoID == "" {
		p.Play()
		return surface.CommandPlayVideo
	}
	reload := r.playing || r.wantsResume || r.lastError == event.ErrorHTML5Player
	if reload && r.canLoad {
		p.LoadVideo(r.videoID, r.currentSecond)
		return surface.CommandLoadVideo
	}
	p.CueVideo(r.videoID, r.currentSecond)
	return surface.CommandCueVideo
}

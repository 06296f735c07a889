// Package player bridges an embedded web video player runtime to typed Go
// listeners.
//
// A [View] owns one embedding surface and the [Player] handle that controls
// it. Raw signals from the surface are posted to a dispatcher, decoded into
// typed events, and fanned out to registered [Listener] values. The view also
// keeps playback consistent with host lifecycle and network connectivity:
// it pauses playback the host is not eligible for, defers initialization
// until a network is available, and resumes when connectivity returns.
package player

import (
	"strings"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/go-drift/ytplayer/pkg/errors"
	"github.com/go-drift/ytplayer/pkg/surface"
)

// Volume bounds accepted by the runtime.
const (
	MinVolume = 0
	MaxVolume = 100
)

var nextHandleID atomic.Int64

// Player is the control handle of one embedded player. Every command is
// fire-and-forget: acknowledgment, if any, arrives later as a typed event.
// A command the surface fails to deliver is reported through
// [errors.Report] with [errors.KindSurface]. Commands issued after the
// handle is destroyed are discarded.
//
// Player methods are safe for concurrent use.
type Player struct {
	id        int64
	surface   surface.Surface
	destroyed atomic.Bool
}

func newPlayer(s surface.Surface) *Player {
	return &Player{
		id:      nextHandleID.Add(1),
		surface: s,
	}
}

// ID returns the handle identity used to route events.
func (p *Player) ID() int64 {
	return p.id
}

// LoadVideo loads and plays the video, starting at start seconds.
func (p *Player) LoadVideo(videoID string, start float64) {
	p.invoke(surface.CommandLoadVideo, videoID, start)
}

// CueVideo loads the video's thumbnail and prepares it without playing.
// Playback begins at start seconds once Play is called.
func (p *Player) CueVideo(videoID string, start float64) {
	p.invoke(surface.CommandCueVideo, videoID, start)
}

// LoadPlaylist loads and plays the playlist with the given list ID,
// starting with the video at index.
func (p *Player) LoadPlaylist(listID string, index int) {
	p.invoke(surface.CommandLoadPlaylist, listID, index)
}

// LoadPlaylistIDs loads and plays the given videos as a playlist, starting
// with the video at index.
func (p *Player) LoadPlaylistIDs(videoIDs []string, index int) {
	p.invoke(surface.CommandLoadPlaylist, cloneIDs(videoIDs), index)
}

// CuePlaylist prepares the playlist with the given list ID without playing.
func (p *Player) CuePlaylist(listID string, index int) {
	p.invoke(surface.CommandCuePlaylist, listID, index)
}

// CuePlaylistIDs prepares the given videos as a playlist without playing.
func (p *Player) CuePlaylistIDs(videoIDs []string, index int) {
	p.invoke(surface.CommandCuePlaylist, cloneIDs(videoIDs), index)
}

// Play plays the loaded or cued video.
func (p *Player) Play() {
	p.invoke(surface.CommandPlayVideo)
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.invoke(surface.CommandPauseVideo)
}

// NextVideo plays the next video of the loaded playlist.
func (p *Player) NextVideo() {
	p.invoke(surface.CommandNextVideo)
}

// PreviousVideo plays the previous video of the loaded playlist.
func (p *Player) PreviousVideo() {
	p.invoke(surface.CommandPreviousVideo)
}

// PlayVideoAt plays the video at index in the loaded playlist.
func (p *Player) PlayVideoAt(index int) {
	p.invoke(surface.CommandPlayVideoAt, index)
}

// Mute mutes the player.
func (p *Player) Mute() {
	p.invoke(surface.CommandMute)
}

// Unmute unmutes the player.
func (p *Player) Unmute() {
	p.invoke(surface.CommandUnMute)
}

// SetVolume sets the volume. Values outside [MinVolume, MaxVolume] are clamped.
func (p *Player) SetVolume(volume int) {
	p.invoke(surface.CommandSetVolume, lo.Clamp(volume, MinVolume, MaxVolume))
}

// SeekTo seeks to an absolute position in seconds.
func (p *Player) SeekTo(seconds float64) {
	p.invoke(surface.CommandSeekTo, seconds)
}

// SeekBy seeks relative to the current position. Negative offsets rewind.
func (p *Player) SeekBy(offset float64) {
	p.invoke(surface.CommandSeekBy, offset)
}

// SetPlaybackRate sets the playback rate, where 1 is normal speed.
func (p *Player) SetPlaybackRate(rate float64) {
	p.invoke(surface.CommandSetPlaybackRate, rate)
}

// RequestVideoURL asks the runtime for the URL of the loaded video. The
// answer arrives through [Listener.OnVideoUrl].
func (p *Player) RequestVideoURL() {
	p.invoke(surface.CommandGetVideoURL)
}

// SetLoop sets whether the loaded playlist restarts after its last video.
func (p *Player) SetLoop(loop bool) {
	p.invoke(surface.CommandSetLoop, loop)
}

// ToggleFullscreen toggles the runtime's own fullscreen mode.
func (p *Player) ToggleFullscreen() {
	p.invoke(surface.CommandToggleFullscreen)
}

// Destroyed reports whether the handle has been torn down.
func (p *Player) Destroyed() bool {
	return p.destroyed.Load()
}

func (p *Player) destroy() {
	p.destroyed.Store(true)
}

func (p *Player) invoke(cmd surface.Command, args ...any) {
	if p.destroyed.Load() {
		return
	}
	if err := p.surface.Invoke(cmd, args...); err != nil {
		errors.Report(&errors.BridgeError{
			Op:     "player.invoke",
			Kind:   errors.KindSurface,
			Handle: p.id,
			Event:  string(cmd),
			Err:    err,
		})
	}
}

func cloneIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// Package surface defines the contract between the player bridge and the
// embedding surface that actually hosts the player runtime (a web view, a
// browser engine, or a headless script runtime).
//
// The surface is an opaque collaborator. It receives player variables and
// outbound commands, and reports raw string-keyed signals back through a
// [Sink] from whatever goroutine it runs on.
package surface

import (
	"errors"

	"github.com/go-drift/ytplayer/pkg/event"
)

// Command names an outbound call into the player runtime.
type Command string

const (
	CommandLoadVideo        Command = "loadVideo"
	CommandCueVideo         Command = "cueVideo"
	CommandLoadPlaylist     Command = "loadPlaylist"
	CommandCuePlaylist      Command = "cuePlaylist"
	CommandPlayVideo        Command = "playVideo"
	CommandPauseVideo       Command = "pauseVideo"
	CommandNextVideo        Command = "nextVideo"
	CommandPreviousVideo    Command = "previousVideo"
	CommandPlayVideoAt      Command = "playVideoAt"
	CommandMute             Command = "mute"
	CommandUnMute           Command = "unMute"
	CommandSetVolume        Command = "setVolume"
	CommandSeekTo           Command = "seekTo"
	CommandSeekBy           Command = "seekBy"
	CommandSetPlaybackRate  Command = "setPlaybackRate"
	CommandGetVideoURL      Command = "getVideoUrl"
	CommandSetLoop          Command = "setLoop"
	CommandToggleFullscreen Command = "toggleFullscreen"
)

// Commands lists every outbound command.
var Commands = []Command{
	CommandLoadVideo,
	CommandCueVideo,
	CommandLoadPlaylist,
	CommandCuePlaylist,
	CommandPlayVideo,
	CommandPauseVideo,
	CommandNextVideo,
	CommandPreviousVideo,
	CommandPlayVideoAt,
	CommandMute,
	CommandUnMute,
	CommandSetVolume,
	CommandSeekTo,
	CommandSeekBy,
	CommandSetPlaybackRate,
	CommandGetVideoURL,
	CommandSetLoop,
	CommandToggleFullscreen,
}

// Sink receives raw signals from the runtime. It may be called from any
// goroutine and must not block.
type Sink func(category event.Category, payload string)

// Surface hosts one player runtime instance.
type Surface interface {
	// Initialize creates the runtime with the given player variables and
	// starts delivering raw signals to sink. It is called at most once.
	Initialize(vars map[string]any, sink Sink) error

	// Invoke forwards a command to the runtime. It must not wait for the
	// runtime to act on it.
	Invoke(cmd Command, args ...any) error

	// Destroy tears the runtime down. No signals are delivered afterwards.
	Destroy()
}

// Standard errors returned by surfaces.
var (
	// ErrNotInitialized indicates a command was invoked before Initialize.
	ErrNotInitialized = errors.New("surface not initialized")

	// ErrDestroyed indicates the surface has been torn down.
	ErrDestroyed = errors.New("surface destroyed")

	// ErrUnknownCommand indicates the runtime does not implement a command.
	ErrUnknownCommand = errors.New("unknown command")
)

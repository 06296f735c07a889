package event

// PlayerState represents the playback state reported by the player runtime.
type PlayerState int

const (
	// StateUnknown indicates the runtime reported a state this package does not recognize.
	StateUnknown PlayerState = iota

	// StateUnstarted indicates a video is loaded but playback has not begun.
	StateUnstarted

	// StateEnded indicates playback reached the end of the video.
	StateEnded

	// StatePlaying indicates the runtime is actively playing.
	StatePlaying

	// StatePaused indicates playback is paused and can be resumed.
	StatePaused

	// StateBuffering indicates the runtime is buffering before playback can continue.
	StateBuffering

	// StateVideoCued indicates a video is cued and ready to play on request.
	StateVideoCued
)

// String returns a human-readable label for the player state.
func (s PlayerState) String() string {
	switch s {
	case StateUnstarted:
		return "UNSTARTED"
	case StateEnded:
		return "ENDED"
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	case StateBuffering:
		return "BUFFERING"
	case StateVideoCued:
		return "VIDEO_CUED"
	default:
		return "UNKNOWN"
	}
}

// The runtime emits either the symbolic name or the numeric IFrame API code.
var playerStates = map[string]PlayerState{
	"unstarted":  StateUnstarted,
	"-1":         StateUnstarted,
	"ended":      StateEnded,
	"0":          StateEnded,
	"playing":    StatePlaying,
	"1":          StatePlaying,
	"paused":     StatePaused,
	"2":          StatePaused,
	"buffering":  StateBuffering,
	"3":          StateBuffering,
	"cued":       StateVideoCued,
	"video_cued": StateVideoCued,
	"5":          StateVideoCued,
}

// ParsePlayerState maps a raw token to a PlayerState, ignoring case.
// Unrecognized tokens yield StateUnknown.
func ParsePlayerState(raw string) PlayerState {
	return lookup(playerStates, raw, StateUnknown)
}

package event

// PlayerError is an error code reported by the player runtime. These are
// delivered to listeners as events; they are not Go errors.
type PlayerError int

const (
	// ErrorUnknown indicates an error code this package does not recognize.
	ErrorUnknown PlayerError = iota

	// ErrorInvalidParameterInRequest indicates the request carried an invalid
	// parameter, such as a malformed video ID.
	ErrorInvalidParameterInRequest

	// ErrorHTML5Player indicates the runtime's HTML5 player failed. This is
	// what a stalled or lost network looks like from the host side.
	ErrorHTML5Player

	// ErrorVideoNotFound indicates the video was removed or marked private.
	ErrorVideoNotFound

	// ErrorVideoNotPlayableInEmbeddedPlayer indicates the owner disallowed
	// embedded playback.
	ErrorVideoNotPlayableInEmbeddedPlayer

	// ErrorVideoContentRestrictionOrUnavailable indicates the video is
	// restricted for this viewer or otherwise unavailable.
	ErrorVideoContentRestrictionOrUnavailable
)

// String returns the error label.
func (e PlayerError) String() string {
	switch e {
	case ErrorInvalidParameterInRequest:
		return "INVALID_PARAMETER_IN_REQUEST"
	case ErrorHTML5Player:
		return "HTML5_PLAYER"
	case ErrorVideoNotFound:
		return "VIDEO_NOT_FOUND"
	case ErrorVideoNotPlayableInEmbeddedPlayer:
		return "VIDEO_NOT_PLAYABLE_IN_EMBEDDED_PLAYER"
	case ErrorVideoContentRestrictionOrUnavailable:
		return "VIDEO_CONTENT_RESTRICTION_OR_UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}

// The runtime reports numeric IFrame API codes; symbolic names are accepted
// as well so surfaces can forward either.
var playerErrors = map[string]PlayerError{
	"2":                                        ErrorInvalidParameterInRequest,
	"invalid_parameter_in_request":             ErrorInvalidParameterInRequest,
	"5":                                        ErrorHTML5Player,
	"html5_player":                             ErrorHTML5Player,
	"html_5_player":                            ErrorHTML5Player,
	"100":                                      ErrorVideoNotFound,
	"video_not_found":                          ErrorVideoNotFound,
	"101":                                      ErrorVideoNotPlayableInEmbeddedPlayer,
	"150":                                      ErrorVideoNotPlayableInEmbeddedPlayer,
	"video_not_playable_in_embedded_player":    ErrorVideoNotPlayableInEmbeddedPlayer,
	"video_content_restriction_or_unavailable": ErrorVideoContentRestrictionOrUnavailable,
}

// ParsePlayerError maps a raw token to a PlayerError, ignoring case.
// Unrecognized tokens yield ErrorUnknown.
func ParsePlayerError(raw string) PlayerError {
	return lookup(playerErrors, raw, ErrorUnknown)
}

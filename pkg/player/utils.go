package player

import (
	"net/url"
	"strings"
)

// Playback rate bounds and step used by rate controls.
const (
	RateMin  = 0.25
	RateMax  = 2.0
	RateStep = 0.25
)

// LoadOrCueVideo loads the video when the host can start playback and cues
// it otherwise, so a player in a background host never starts on its own.
func LoadOrCueVideo(p *Player, canLoad bool, videoID string, start float64) {
	if canLoad {
		p.LoadVideo(videoID, start)
	} else {
		p.CueVideo(videoID, start)
	}
}

// ParseVideoID extracts a video or playlist ID from one of:
//
//	vCKCkc8llaM
//	https://youtu.be/vCKCkc8llaM
//	https://youtube.com/watch?v=14VrDQSnfzI&feature=share
//	https://www.youtube.com/playlist?list=PL0KROm2A3S8HaMLBxYPF5kuEEtTYvUJox
//
// It returns false when no ID can be found.
func ParseVideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.Contains(raw, "/") && !strings.Contains(raw, "=") {
		return raw, true
	}

	if u, err := url.Parse(raw); err == nil {
		q := u.Query()
		for _, key := range []string{"v", "list"} {
			if id := q.Get(key); id != "" {
				return id, true
			}
		}
		if id := lastSegment(u.Path); id != "" && id != "watch" && id != "playlist" {
			return id, true
		}
		return "", false
	}

	// Fall back to the last path segment with any query stripped.
	id := lastSegment(raw)
	if i := strings.IndexByte(id, '='); i >= 0 {
		id = id[i+1:]
	}
	id, _, _ = strings.Cut(id, "&")
	return id, id != ""
}

// IsPlaylistID reports whether id names a playlist rather than a video.
func IsPlaylistID(id string) bool {
	return len(id) > 2 && strings.EqualFold(id[:2], "PL")
}

// Open starts playback of one or more video references, each in a form
// accepted by ParseVideoID. A single playlist reference loads the playlist,
// several references load as a playlist of videos, and a single video is
// loaded or cued depending on canLoad.
func Open(p *Player, canLoad bool, refs ...string) bool {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if id, ok := ParseVideoID(ref); ok {
			ids = append(ids, id)
		}
	}

	switch {
	case len(ids) == 0:
		return false
	case len(ids) > 1:
		p.LoadPlaylistIDs(ids, 0)
	case IsPlaylistID(ids[0]):
		p.LoadPlaylist(ids[0], 0)
	default:
		LoadOrCueVideo(p, canLoad, ids[0], 0)
	}
	return true
}

// StepRate returns current+step if it stays within [lower, upper], and
// current otherwise.
func StepRate(current, step, lower, upper float64) float64 {
	next := current + step
	if next < lower || next > upper {
		return current
	}
	return next
}

func lastSegment(path string) string {
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

package player

import "github.com/go-drift/ytplayer/pkg/event"

// Listener receives typed player events. Every method is called on the
// dispatcher, never concurrently and never reentrantly.
//
// Embed [BaseListener] to implement only the callbacks you need.
type Listener interface {
	// OnReady is called once the player accepts commands.
	OnReady(p *Player)
	// OnStateChange is called when the player state changes.
	OnStateChange(p *Player, state event.PlayerState)
	// OnPlaybackQualityChange is called when the playback quality changes.
	OnPlaybackQualityChange(p *Player, quality event.PlaybackQuality)
	// OnPlaybackRateChange is called when the playback rate changes. The rate
	// is passed exactly as the runtime reported it.
	OnPlaybackRateChange(p *Player, rate string)
	// OnError is called when the runtime reports an error.
	OnError(p *Player, err event.PlayerError)
	// OnApiChange is called when the runtime loads or unloads a module.
	OnApiChange(p *Player)
	// OnCurrentSecond is called with the playback position, several times a second.
	OnCurrentSecond(p *Player, second float64)
	// OnVideoDuration is called with the duration of the loaded video.
	OnVideoDuration(p *Player, duration float64)
	// OnVideoLoadedFraction is called with the buffered fraction in [0,1].
	OnVideoLoadedFraction(p *Player, fraction float64)
	// OnVideoId is called with the ID of the loaded video.
	OnVideoId(p *Player, videoID string)
	// OnVideoUrl is called in response to [Player.RequestVideoURL].
	OnVideoUrl(p *Player, url string)
}

// BaseListener implements Listener with no-op methods.
type BaseListener struct{}

func (BaseListener) OnReady(*Player)                                       {}
func (BaseListener) OnStateChange(*Player, event.PlayerState)              {}
func (BaseListener) OnPlaybackQualityChange(*Player, event.PlaybackQuality) {}
func (BaseListener) OnPlaybackRateChange(*Player, string)                  {}
func (BaseListener) OnError(*Player, event.PlayerError)                    {}
func (BaseListener) OnApiChange(*Player)                                   {}
func (BaseListener) OnCurrentSecond(*Player, float64)                      {}
func (BaseListener) OnVideoDuration(*Player, float64)                      {}
func (BaseListener) OnVideoLoadedFraction(*Player, float64)                {}
func (BaseListener) OnVideoId(*Player, string)                             {}
func (BaseListener) OnVideoUrl(*Player, string)                            {}

// deliver calls the Listener method matching ev.
func deliver(l Listener, p *Player, ev event.Event) {
	switch e := ev.(type) {
	case event.Ready:
		l.OnReady(p)
	case event.StateChange:
		l.OnStateChange(p, e.State)
	case event.QualityChange:
		l.OnPlaybackQualityChange(p, e.Quality)
	case event.RateChange:
		l.OnPlaybackRateChange(p, e.Rate)
	case event.Error:
		l.OnError(p, e.Err)
	case event.APIChange:
		l.OnApiChange(p)
	case event.CurrentSecond:
		l.OnCurrentSecond(p, e.Seconds)
	case event.VideoDuration:
		l.OnVideoDuration(p, e.Seconds)
	case event.LoadedFraction:
		l.OnVideoLoadedFraction(p, e.Fraction)
	case event.VideoID:
		l.OnVideoId(p, e.ID)
	case event.VideoURL:
		l.OnVideoUrl(p, e.URL)
	}
}

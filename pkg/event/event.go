// Package event decodes the raw, string-keyed signals emitted by an embedded
// player runtime into a closed set of typed events.
//
// Decoding is total: unrecognized enum tokens become the category's Unknown
// variant and never fail. The only inputs that produce no event are malformed
// current-time and loaded-fraction values, which are dropped.
package event

// Category names an inbound raw signal.
type Category string

const (
	CategoryReady          Category = "ready"
	CategoryAPIReady       Category = "apiReady"
	CategoryStateChange    Category = "stateChange"
	CategoryQualityChange  Category = "qualityChange"
	CategoryRateChange     Category = "rateChange"
	CategoryError          Category = "error"
	CategoryAPIChange      Category = "apiChange"
	CategoryCurrentTime    Category = "currentTime"
	CategoryDuration       Category = "duration"
	CategoryLoadedFraction Category = "loadedFraction"
	CategoryVideoID        Category = "videoId"
	CategoryVideoURL       Category = "videoUrl"
)

// Categories lists every inbound signal in wire order.
var Categories = []Category{
	CategoryReady,
	CategoryAPIReady,
	CategoryStateChange,
	CategoryQualityChange,
	CategoryRateChange,
	CategoryError,
	CategoryAPIChange,
	CategoryCurrentTime,
	CategoryDuration,
	CategoryLoadedFraction,
	CategoryVideoID,
	CategoryVideoURL,
}

// Known reports whether c is one of the inbound signal names.
func (c Category) Known() bool {
	_, ok := categorySet[c]
	return ok
}

var categorySet = func() map[Category]struct{} {
	m := make(map[Category]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

// Event is a decoded runtime signal. The set of implementations is closed.
type Event interface {
	// Category returns the inbound signal this event was decoded from.
	Category() Category
	isEvent()
}

// Ready is emitted once when the runtime has loaded and accepts commands.
type Ready struct{}

// APIReady is emitted when the runtime's scripting API has loaded, which may
// precede Ready.
type APIReady struct{}

// StateChange carries a new player state.
type StateChange struct {
	State PlayerState
}

// QualityChange carries a new playback quality.
type QualityChange struct {
	Quality PlaybackQuality
}

// RateChange carries the new playback rate exactly as the runtime reported it.
type RateChange struct {
	Rate string
}

// Error carries a runtime error code.
type Error struct {
	Err PlayerError
}

// APIChange is emitted when the runtime loaded or unloaded a module (such as captions).
type APIChange struct{}

// CurrentSecond carries the playback position in seconds.
type CurrentSecond struct {
	Seconds float64
}

// VideoDuration carries the duration of the loaded video in seconds.
type VideoDuration struct {
	Seconds float64
}

// LoadedFraction carries the buffered fraction of the video in [0,1].
type LoadedFraction struct {
	Fraction float64
}

// VideoID carries the ID of the loaded video.
type VideoID struct {
	ID string
}

// VideoURL carries the URL of the loaded video.
type VideoURL struct {
	URL string
}

func (Ready) Category() Category          { return CategoryReady }
func (APIReady) Category() Category       { return CategoryAPIReady }
func (StateChange) Category() Category    { return CategoryStateChange }
func (QualityChange) Category() Category  { return CategoryQualityChange }
func (RateChange) Category() Category     { return CategoryRateChange }
func (Error) Category() Category          { return CategoryError }
func (APIChange) Category() Category      { return CategoryAPIChange }
func (CurrentSecond) Category() Category  { return CategoryCurrentTime }
func (VideoDuration) Category() Category  { return CategoryDuration }
func (LoadedFraction) Category() Category { return CategoryLoadedFraction }
func (VideoID) Category() Category        { return CategoryVideoID }
func (VideoURL) Category() Category       { return CategoryVideoURL }

func (Ready) isEvent()          {}
func (APIReady) isEvent()       {}
func (StateChange) isEvent()    {}
func (QualityChange) isEvent()  {}
func (RateChange) isEvent()     {}
func (Error) isEvent()          {}
func (APIChange) isEvent()      {}
func (CurrentSecond) isEvent()  {}
func (VideoDuration) isEvent()  {}
func (LoadedFraction) isEvent() {}
func (VideoID) isEvent()        {}
func (VideoURL) isEvent()       {}

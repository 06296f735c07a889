package event

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Decode converts a raw signal into a typed event.
//
// It returns false only when the event must be dropped: a malformed current
// time or loaded fraction, or a category that is not an inbound signal name.
// A malformed or empty duration decodes to zero seconds.
func Decode(category Category, raw string) (Event, bool) {
	switch category {
	case CategoryReady:
		return Ready{}, true
	case CategoryAPIReady:
		return APIReady{}, true
	case CategoryStateChange:
		return StateChange{State: ParsePlayerState(raw)}, true
	case CategoryQualityChange:
		return QualityChange{Quality: ParsePlaybackQuality(raw)}, true
	case CategoryRateChange:
		return RateChange{Rate: raw}, true
	case CategoryError:
		return Error{Err: ParsePlayerError(raw)}, true
	case CategoryAPIChange:
		return APIChange{}, true
	case CategoryCurrentTime:
		seconds, ok := parseFloat(raw)
		if !ok {
			return nil, false
		}
		return CurrentSecond{Seconds: seconds}, true
	case CategoryDuration:
		seconds, _ := parseFloat(raw)
		return VideoDuration{Seconds: seconds}, true
	case CategoryLoadedFraction:
		fraction, ok := parseFloat(raw)
		if !ok {
			return nil, false
		}
		return LoadedFraction{Fraction: fraction}, true
	case CategoryVideoID:
		return VideoID{ID: raw}, true
	case CategoryVideoURL:
		return VideoURL{URL: raw}, true
	default:
		return nil, false
	}
}

// Float parses the reported rate. Runtimes report rates like "1", "1.5" or "0.25".
func (r RateChange) Float() (float64, bool) {
	return parseFloat(r.Rate)
}

func parseFloat(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func lookup[T any](table map[string]T, raw string, unknown T) T {
	return lo.ValueOr(table, strings.ToLower(strings.TrimSpace(raw)), unknown)
}

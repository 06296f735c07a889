package event

// PlaybackQuality is the rendition quality reported by the player runtime.
type PlaybackQuality int

const (
	QualityUnknown PlaybackQuality = iota
	QualitySmall
	QualityMedium
	QualityLarge
	QualityHD720
	QualityHD1080
	QualityHighRes
	QualityDefault
)

// String returns the quality label.
func (q PlaybackQuality) String() string {
	switch q {
	case QualitySmall:
		return "SMALL"
	case QualityMedium:
		return "MEDIUM"
	case QualityLarge:
		return "LARGE"
	case QualityHD720:
		return "HD720"
	case QualityHD1080:
		return "HD1080"
	case QualityHighRes:
		return "HIGH_RES"
	case QualityDefault:
		return "DEFAULT"
	default:
		return "UNKNOWN"
	}
}

var playbackQualities = map[string]PlaybackQuality{
	"small":    QualitySmall,
	"medium":   QualityMedium,
	"large":    QualityLarge,
	"hd720":    QualityHD720,
	"hd1080":   QualityHD1080,
	"highres":  QualityHighRes,
	"high_res": QualityHighRes,
	"default":  QualityDefault,
}

// ParsePlaybackQuality maps a raw token to a PlaybackQuality, ignoring case.
// Unrecognized tokens yield QualityUnknown.
func ParsePlaybackQuality(raw string) PlaybackQuality {
	return lookup(playbackQualities, raw, QualityUnknown)
}

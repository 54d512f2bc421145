// Package format maps requested quality tiers to yt-dlp format selector
// strings. Selectors prefer the avc (h264) codec family in an mp4 container
// capped at the tier's vertical resolution, with looser fallbacks when that
// combination is unavailable.
package format

import "strings"

// Quality is the closed set of supported video quality tiers.
type Quality int

const (
	QualityBest Quality = iota
	Quality1080p
	Quality720p
	Quality480p
	Quality360p
)

// Format selector strings handed to yt-dlp via -f.
const (
	selectorBest  = "bestvideo[ext=mp4][vcodec^=avc]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	selector1080p = "bestvideo[height<=1080][ext=mp4][vcodec^=avc]+bestaudio[ext=m4a]/best[ext=mp4]"
	selector720p  = "bestvideo[height<=720][ext=mp4][vcodec^=avc]+bestaudio[ext=m4a]/best[ext=mp4]"
	selector480p  = "bestvideo[height<=480][ext=mp4][vcodec^=avc]+bestaudio[ext=m4a]/best[ext=mp4]"
	selector360p  = "bestvideo[height<=360][ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]"
)

// Qualities lists all tiers in descending resolution order, for UI pickers.
func Qualities() []Quality {
	return []Quality{QualityBest, Quality1080p, Quality720p, Quality480p, Quality360p}
}

// Selector returns the yt-dlp format selector for the tier. Total over the
// enum; values outside it fall back to the best selector.
func (q Quality) Selector() string {
	switch q {
	case Quality1080p:
		return selector1080p
	case Quality720p:
		return selector720p
	case Quality480p:
		return selector480p
	case Quality360p:
		return selector360p
	default:
		return selectorBest
	}
}

// String returns the human-readable tier label.
func (q Quality) String() string {
	switch q {
	case Quality1080p:
		return "1080p"
	case Quality720p:
		return "720p"
	case Quality480p:
		return "480p"
	case Quality360p:
		return "360p"
	default:
		return "best"
	}
}

// ParseQuality maps a settings or CLI label back to a tier. Unknown labels
// fall back to QualityBest.
func ParseQuality(label string) Quality {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "1080p", "1080":
		return Quality1080p
	case "720p", "720":
		return Quality720p
	case "480p", "480":
		return Quality480p
	case "360p", "360":
		return Quality360p
	default:
		return QualityBest
	}
}

package archive

import "strings"

// PlatformOther labels URLs from hosts without a dedicated tag.
const PlatformOther = "other"

// DetectPlatform tags a URL with the hosting platform it points at. The
// match is a substring probe, not a parse; it only feeds display grouping.
func DetectPlatform(url string) string {
	switch {
	case strings.Contains(url, "youtube.com"), strings.Contains(url, "youtu.be"):
		return "youtube"
	case strings.Contains(url, "x.com"), strings.Contains(url, "twitter.com"):
		return "x"
	case strings.Contains(url, "facebook.com"), strings.Contains(url, "fb.watch"):
		return "facebook"
	case strings.Contains(url, "instagram.com"):
		return "instagram"
	case strings.Contains(url, "tiktok.com"):
		return "tiktok"
	default:
		return PlatformOther
	}
}

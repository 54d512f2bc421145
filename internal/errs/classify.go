package errs

import (
	"fmt"
	"strings"
)

// The matchers below are substring heuristics over yt-dlp's stderr. They are
// best-effort: the tool does not guarantee these strings, so a miss degrades
// to KindProcessFailure rather than a wrong hard classification.

// IsNetworkOutput reports whether stderr looks like a connection or timeout
// failure.
func IsNetworkOutput(stderr string) bool {
	return strings.Contains(stderr, "Unable to download") ||
		strings.Contains(stderr, "HTTP Error") ||
		strings.Contains(stderr, "Connection") ||
		strings.Contains(stderr, "timeout") ||
		strings.Contains(stderr, "network")
}

// IsRateLimitOutput reports whether stderr looks like platform throttling.
func IsRateLimitOutput(stderr string) bool {
	return strings.Contains(stderr, "rate limit") ||
		strings.Contains(stderr, "429") ||
		strings.Contains(stderr, "Too Many Requests")
}

// IsAuthOutput reports whether stderr looks like the platform wants
// credentials or cookies.
func IsAuthOutput(stderr string) bool {
	return strings.Contains(stderr, "Sign in") ||
		strings.Contains(stderr, "Private video") ||
		strings.Contains(stderr, "members-only") ||
		strings.Contains(stderr, "This video is only available") ||
		strings.Contains(stderr, "login required")
}

// IsCookieDecryptOutput reports a Windows DPAPI cookie decryption failure
// (Chrome/Edge cookie stores).
func IsCookieDecryptOutput(stderr string) bool {
	return strings.Contains(stderr, "Failed to decrypt with DPAPI") ||
		strings.Contains(stderr, "DPAPI") ||
		(strings.Contains(stderr, "decrypt") && strings.Contains(stderr, "cookie"))
}

// IsFfmpegOutput reports a merge/post-processing failure caused by a missing
// or broken ffmpeg.
func IsFfmpegOutput(stderr string) bool {
	return (strings.Contains(stderr, "ffmpeg") ||
		strings.Contains(stderr, "Merger") ||
		strings.Contains(stderr, "merge")) &&
		(strings.Contains(stderr, "not found") ||
			strings.Contains(stderr, "does not exist") ||
			strings.Contains(stderr, "NoneType") ||
			strings.Contains(stderr, "'lower'") ||
			strings.Contains(stderr, "FFmpeg"))
}

// Classify maps a non-zero yt-dlp exit into a DownloadError with a short
// user-facing message. More specific patterns win over the generic exit-code
// fallback.
func Classify(stderr string, exitCode int) *DownloadError {
	switch {
	case IsFfmpegOutput(stderr):
		return New(KindProcessFailure,
			"Video processing failed. FFmpeg is required to merge video and audio streams.")
	case IsCookieDecryptOutput(stderr):
		return New(KindAuthentication,
			"Cookie decryption failed. Close your browser and retry, or use Firefox.")
	case IsAuthOutput(stderr):
		return New(KindAuthentication,
			"Authentication required. Try enabling browser cookies.")
	case IsRateLimitOutput(stderr):
		return New(KindRateLimit,
			"Rate limit exceeded. Please wait and try again.")
	case IsNetworkOutput(stderr):
		return New(KindNetwork,
			"Network error. Check your connection and try again.")
	default:
		return New(KindProcessFailure, fmt.Sprintf("Download tool exited with code %d", exitCode))
	}
}

package ytdlp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ytget/ripvid/internal/model"
)

// LineKind classifies a single line of tool output.
type LineKind int

const (
	// LineNone is a diagnostic line producing no event.
	LineNone LineKind = iota

	// LineProgress carries a transfer snapshot.
	LineProgress

	// LineProcessing marks the switch from network transfer to local
	// post-processing.
	LineProcessing
)

// LineEvent is the parsed form of one output line.
type LineEvent struct {
	Kind     LineKind
	Progress model.ProgressSnapshot
	Message  string
}

// Patterns over yt-dlp's --progress --newline output, e.g.
// "[download]  55.0% of 10.00MiB at 1.21MiB/s ETA 00:42".
var (
	percentRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)%`)
	speedRe   = regexp.MustCompile(`at\s+(\S+)`)
	etaRe     = regexp.MustCompile(`ETA\s+(\S+)`)
)

// Markers for the post-processing phase (stream merging, audio extraction).
var processingMarkers = []string{
	"[Merger]",
	"Merging formats",
	"[ffmpeg]",
	"[ExtractAudio]",
}

// ClassifyLine turns one output line into at most one event. Lines that
// partially match but fail numeric parsing are diagnostics, not errors.
func ClassifyLine(line string) (LineEvent, bool) {
	for _, marker := range processingMarkers {
		if strings.Contains(line, marker) {
			return LineEvent{Kind: LineProcessing, Message: "Processing video..."}, true
		}
	}

	if snapshot, ok := parseProgress(line); ok {
		return LineEvent{Kind: LineProgress, Progress: snapshot}, true
	}

	return LineEvent{}, false
}

// parseProgress extracts a ProgressSnapshot from a download progress line.
func parseProgress(line string) (model.ProgressSnapshot, bool) {
	if !strings.Contains(line, "[download]") || !strings.Contains(line, "%") {
		return model.ProgressSnapshot{}, false
	}

	match := percentRe.FindStringSubmatch(line)
	if match == nil {
		return model.ProgressSnapshot{}, false
	}

	percent, err := strconv.ParseFloat(normalizeDecimal(match[1]), 64)
	if err != nil || percent < 0 || percent > 100 {
		return model.ProgressSnapshot{}, false
	}

	snapshot := model.ProgressSnapshot{
		Percent: percent,
		Speed:   model.UnknownSpeed,
		ETA:     model.UnknownETA,
	}

	if m := speedRe.FindStringSubmatch(line); m != nil {
		snapshot.Speed = m[1]
	}
	if m := etaRe.FindStringSubmatch(line); m != nil {
		snapshot.ETA = m[1]
	}

	return snapshot, true
}

// normalizeDecimal tolerates locale-dependent number formatting: a comma is
// treated as the decimal separator when no dot is present.
func normalizeDecimal(s string) string {
	if strings.Contains(s, ".") {
		return strings.ReplaceAll(s, ",", "")
	}
	return strings.ReplaceAll(s, ",", ".")
}

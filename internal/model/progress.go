package model

import (
	"fmt"
	"strings"
)

// Placeholder values for unknown speed/ETA fields
const (
	UnknownSpeed = "---"
	UnknownETA   = "--:--"
)

// ProgressSnapshot is an ephemeral view of a session's transfer progress.
// It is re-derived on every matching output line and superseded by the next
// snapshot; it is never persisted.
type ProgressSnapshot struct {
	Percent float64 // 0 to 100
	Speed   string  // human readable speed, e.g. "1.2MiB/s"
	ETA     string  // human readable remaining time, e.g. "00:42"
}

// String returns a compact single-line representation for logs and the CLI.
func (p ProgressSnapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%.1f%%", p.Percent)
	if p.Speed != "" && p.Speed != UnknownSpeed {
		fmt.Fprintf(&b, " at %s", p.Speed)
	}
	if p.ETA != "" && p.ETA != UnknownETA {
		fmt.Fprintf(&b, " ETA %s", p.ETA)
	}
	return b.String()
}

package download

import (
	"context"

	"github.com/ytget/ripvid/internal/format"
	"github.com/ytget/ripvid/internal/session"
	"github.com/ytget/ripvid/internal/ytdlp"
)

// Downloader defines the request surface the UI boundary drives.
type Downloader interface {
	// StartVideo validates inputs and launches a video download session,
	// returning its identifier.
	StartVideo(url, outputPath string, quality format.Quality) (string, error)

	// StartAudio validates inputs and launches an audio-only session.
	StartAudio(url, outputPath string) (string, error)

	// Cancel terminates a session. Returns session.ErrNotFound when the
	// identifier is unknown or already terminal.
	Cancel(id string) error

	// Active reports the number of live sessions.
	Active() int

	// FileExists probes for a finished artifact on disk.
	FileExists(path string) bool
}

// AttemptRunner is the narrow seam between the retry coordinator and the
// process runner, so tests can substitute a double and assert spawn counts.
type AttemptRunner interface {
	Run(ctx context.Context, handle *session.Handle, req ytdlp.Request, emit func(ytdlp.LineEvent)) error
}

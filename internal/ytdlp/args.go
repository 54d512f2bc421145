package ytdlp

import (
	"github.com/ytget/ripvid/internal/format"
	"github.com/ytget/ripvid/internal/model"
)

// Request describes one download attempt. URL and OutputPath are already
// validated strings; Request never sees raw user input.
type Request struct {
	URL        string
	OutputPath string
	Kind       model.DownloadKind
	Quality    format.Quality

	// CookieBrowser enables the authentication fallback: when non-empty the
	// tool reads cookies from the named browser's store.
	CookieBrowser string
}

// BuildArgs constructs the yt-dlp argument vector for a request. Arguments
// are always passed as a vector, never joined into a shell string.
func BuildArgs(req Request, ffmpegDir string) []string {
	args := []string{req.URL, "--no-playlist"}

	if ffmpegDir != "" {
		args = append(args, "--ffmpeg-location", ffmpegDir)
	}

	switch req.Kind {
	case model.KindAudio:
		args = append(args,
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", "0",
			"--embed-thumbnail",
			"--add-metadata",
		)
	default:
		args = append(args,
			"-f", req.Quality.Selector(),
			"--merge-output-format", "mp4",
		)
	}

	if req.CookieBrowser != "" {
		args = append(args, "--cookies-from-browser", req.CookieBrowser)
	}

	args = append(args,
		"-o", req.OutputPath,
		"--progress",
		"--newline",
	)

	return args
}

// Package binaries resolves the external executables the downloader drives:
// yt-dlp itself and the ffmpeg/ffprobe pair it needs for merging. Resolution
// only; downloading and updating the binaries is out of scope here.
package binaries

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ytget/ripvid/internal/errs"
)

// Executable names probed in the bundled directory and on PATH.
const (
	YtdlpName   = "yt-dlp"
	FfmpegName  = "ffmpeg"
	FfprobeName = "ffprobe"
)

// Resolver locates external executables, preferring a bundled directory over
// whatever is on PATH.
type Resolver struct {
	bundledDir string
}

// NewResolver creates a resolver. bundledDir may be empty, in which case only
// PATH is searched.
func NewResolver(bundledDir string) *Resolver {
	return &Resolver{bundledDir: bundledDir}
}

// YtdlpPath returns the absolute path to the yt-dlp executable. A missing
// binary is a setup problem (KindBinaryNotFound), never retried.
func (r *Resolver) YtdlpPath() (string, error) {
	if path, ok := r.bundled(YtdlpName); ok {
		return path, nil
	}
	if path, err := exec.LookPath(YtdlpName); err == nil {
		return path, nil
	}
	return "", errs.New(errs.KindBinaryNotFound,
		"yt-dlp executable not found. Reinstall the application or install yt-dlp.")
}

// FfmpegDir returns the directory holding both ffmpeg and ffprobe, for
// yt-dlp's --ffmpeg-location flag. The empty string means neither a bundled
// nor a system ffmpeg was found; downloads still work but merges may fail.
func (r *Resolver) FfmpegDir() string {
	if ffmpeg, ok := r.bundled(FfmpegName); ok {
		if _, ok := r.bundled(FfprobeName); ok {
			return filepath.Dir(ffmpeg)
		}
	}
	if ffmpeg, err := exec.LookPath(FfmpegName); err == nil {
		return filepath.Dir(ffmpeg)
	}
	return ""
}

// bundled probes the bundled directory for a regular, executable file.
func (r *Resolver) bundled(name string) (string, bool) {
	if r.bundledDir == "" {
		return "", false
	}

	candidate := filepath.Join(r.bundledDir, withExeSuffix(name))
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return "", false
	}
	return candidate, true
}

func withExeSuffix(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/ripvid/internal/format"
	"github.com/ytget/ripvid/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyMaxParallel        = "max_parallel_downloads"
	KeyQuality            = "video_quality"
	KeyCookieFallback     = "cookie_fallback_enabled"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultMaxParallel        = 2
	DefaultCookieFallback     = true
	DefaultAutoRevealComplete = true
)

// Settings manages application configuration backed by Fyne preferences.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMaxParallelDownloads returns the maximum number of parallel downloads
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetQuality returns the configured video quality tier
func (s *Settings) GetQuality() format.Quality {
	label := s.app.Preferences().String(KeyQuality)
	if label == "" {
		s.SetQuality(format.QualityBest)
		return format.QualityBest
	}
	return format.ParseQuality(label)
}

// SetQuality sets the video quality tier
func (s *Settings) SetQuality(q format.Quality) {
	s.app.Preferences().SetString(KeyQuality, q.String())
}

// GetCookieFallbackEnabled reports whether the browser cookie retry is
// allowed for authentication failures.
func (s *Settings) GetCookieFallbackEnabled() bool {
	return s.app.Preferences().BoolWithFallback(KeyCookieFallback, DefaultCookieFallback)
}

// SetCookieFallbackEnabled toggles the browser cookie retry
func (s *Settings) SetCookieFallbackEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeyCookieFallback, enabled)
}

// GetAutoRevealOnComplete returns whether to reveal completed downloads in
// the file manager
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete toggles revealing completed downloads
func (s *Settings) SetAutoRevealOnComplete(enabled bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, enabled)
}

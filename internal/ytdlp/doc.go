package ytdlp

// Package ytdlp drives the external yt-dlp binary: argument construction,
// process spawning with line-by-line output streaming, and classification of
// the tool's textual output into progress and phase events. The matching
// rules live behind ClassifyLine so they can change without touching
// orchestration, and so tests can feed synthetic lines without a subprocess.

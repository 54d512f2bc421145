package download

// Package download implements the session orchestration core: validation,
// session lifecycle, the retry coordinator with its authentication fallback,
// and event publication. It drives the yt-dlp process runner but never talks
// to the UI directly; everything crosses the boundary as events.

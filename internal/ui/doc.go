package ui

// Package ui implements the Fyne desktop interface: URL input, quality
// selection, live session rows fed from the download event channel, the
// completed-download archive tab, and the settings dialog. UI code never
// touches the subprocess; everything arrives over the event channel.

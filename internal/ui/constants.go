package ui

import "time"

// Window sizing
const (
	WindowDefaultWidth  = 720
	WindowDefaultHeight = 520
)

// Session row layout
const (
	StatusLabelWidth   float32 = 110
	SpeedEtaLabelWidth float32 = 170
)

// Notification panel
const (
	NotificationAutoHide = 5 * time.Second
)

// Status icons
const (
	IconDownloading = "↓"
	IconProcessing  = "⚙"
	IconDone        = "✓"
	IconError       = "✗"
	IconCancelled   = "⏹"
)

// Placeholder shown while speed or ETA are unknown
const DashPlaceholder = "---"

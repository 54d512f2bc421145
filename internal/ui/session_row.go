package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ripvid/internal/model"
)

// SessionRow is a compact row showing one live or finished download session.
type SessionRow struct {
	widget.BaseWidget

	sessionID  string
	outputPath string

	titleLabel    *widget.Label
	statusLabel   *widget.Label
	progressBar   *widget.ProgressBar
	speedEtaLabel *widget.Label

	cancelBtn *widget.Button
	revealBtn *widget.Button

	onCancel func(sessionID string)
	onReveal func(filePath string)
}

// NewSessionRow creates a row for a freshly started session.
func NewSessionRow(sessionID, title, outputPath string, onCancel func(string), onReveal func(string)) *SessionRow {
	sr := &SessionRow{
		sessionID:  sessionID,
		outputPath: outputPath,
		onCancel:   onCancel,
		onReveal:   onReveal,
	}
	sr.ExtendBaseWidget(sr)
	sr.createUI(title)
	return sr
}

// SessionID returns the session this row displays.
func (sr *SessionRow) SessionID() string {
	return sr.sessionID
}

func (sr *SessionRow) createUI(title string) {
	sr.titleLabel = widget.NewLabel(title)
	sr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	sr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	sr.statusLabel = widget.NewLabel(IconDownloading + " Starting")
	sr.statusLabel.Alignment = fyne.TextAlignTrailing

	sr.progressBar = widget.NewProgressBar()
	sr.progressBar.Max = 100

	sr.speedEtaLabel = widget.NewLabel(DashPlaceholder)
	sr.speedEtaLabel.TextStyle = fyne.TextStyle{Monospace: true}

	sr.cancelBtn = widget.NewButton("cancel", func() {
		if sr.onCancel != nil {
			sr.onCancel(sr.sessionID)
		}
	})
	sr.cancelBtn.Importance = widget.MediumImportance

	sr.revealBtn = widget.NewButton("open", func() {
		if sr.onReveal != nil && sr.outputPath != "" {
			sr.onReveal(sr.outputPath)
		}
	})
	sr.revealBtn.Importance = widget.MediumImportance
	sr.revealBtn.Hide()
}

// SetProgress updates the transfer snapshot.
func (sr *SessionRow) SetProgress(p model.ProgressSnapshot) {
	sr.statusLabel.Importance = widget.HighImportance
	sr.statusLabel.SetText(fmt.Sprintf("%s %.1f%%", IconDownloading, p.Percent))
	sr.progressBar.SetValue(p.Percent)
	sr.speedEtaLabel.SetText(fmt.Sprintf("%s · ETA %s", p.Speed, p.ETA))
}

// SetProcessing switches the row into the post-processing phase.
func (sr *SessionRow) SetProcessing(message string) {
	sr.statusLabel.Importance = widget.HighImportance
	sr.statusLabel.SetText(IconProcessing + " Processing")
	if message != "" {
		sr.speedEtaLabel.SetText(message)
	}
}

// SetCompleted marks the row finished and enables the reveal action.
func (sr *SessionRow) SetCompleted(path string) {
	sr.outputPath = path
	sr.statusLabel.Importance = widget.SuccessImportance
	sr.statusLabel.SetText(IconDone + " Done")
	sr.progressBar.SetValue(100)
	sr.speedEtaLabel.SetText("")
	sr.cancelBtn.Hide()
	sr.revealBtn.Show()
}

// SetFailed marks the row failed with a short error summary.
func (sr *SessionRow) SetFailed(summary string) {
	sr.statusLabel.Importance = widget.DangerImportance
	sr.statusLabel.SetText(IconError + " Failed")
	sr.speedEtaLabel.SetText(summary)
	sr.cancelBtn.Hide()
}

// SetCancelled marks the row cancelled.
func (sr *SessionRow) SetCancelled() {
	sr.statusLabel.Importance = widget.MediumImportance
	sr.statusLabel.SetText(IconCancelled + " Cancelled")
	sr.speedEtaLabel.SetText("")
	sr.cancelBtn.Hide()
}

// CreateRenderer builds the row layout.
func (sr *SessionRow) CreateRenderer() fyne.WidgetRenderer {
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	actions := container.NewHBox(sr.cancelBtn, sr.revealBtn)
	info := container.NewHBox(
		fixedWidth(SpeedEtaLabelWidth, sr.speedEtaLabel),
		fixedWidth(StatusLabelWidth, sr.statusLabel),
	)

	top := container.NewBorder(nil, nil, nil, container.NewBorder(nil, nil, nil, actions, info), sr.titleLabel)
	layout := container.NewVBox(top, sr.progressBar, widget.NewSeparator())

	return widget.NewSimpleRenderer(layout)
}

package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ripvid/internal/config"
	"github.com/ytget/ripvid/internal/format"
)

// SettingsDialog edits the persisted application settings.
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog

	downloadDirEntry *widget.Entry
	maxParallelEntry *widget.Entry
	qualitySelect    *widget.Select
	cookieCheck      *widget.Check
	autoRevealCheck  *widget.Check

	// Called after a successful save so the caller can apply live settings.
	onSaved func()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
		onSaved:  onSaved,
	}
	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder("Download directory path")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder("1-10")

	qualityOptions := []string{}
	for _, q := range format.Qualities() {
		qualityOptions = append(qualityOptions, q.String())
	}
	sd.qualitySelect = widget.NewSelect(qualityOptions, nil)

	sd.cookieCheck = widget.NewCheck("Retry blocked downloads with browser cookies", nil)
	sd.autoRevealCheck = widget.NewCheck("Reveal finished downloads in file manager", nil)

	form := container.NewVBox(
		widget.NewLabel("Download Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Download Directory:"),
		downloadDirRow,

		widget.NewLabel("Max Parallel Downloads:"),
		sd.maxParallelEntry,

		widget.NewLabel("Video Quality:"),
		sd.qualitySelect,

		widget.NewSeparator(),
		sd.cookieCheck,
		sd.autoRevealCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(500, 420))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelDownloads()))
	sd.qualitySelect.SetSelected(sd.settings.GetQuality().String())
	sd.cookieCheck.SetChecked(sd.settings.GetCookieFallbackEnabled())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	if raw := sd.maxParallelEntry.Text; raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			sd.settings.SetMaxParallelDownloads(n)
		}
	}

	if sd.qualitySelect.Selected != "" {
		sd.settings.SetQuality(format.ParseQuality(sd.qualitySelect.Selected))
	}

	sd.settings.SetCookieFallbackEnabled(sd.cookieCheck.Checked)
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}

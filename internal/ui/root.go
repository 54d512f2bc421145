package ui

import (
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/ripvid/internal/archive"
	"github.com/ytget/ripvid/internal/config"
	"github.com/ytget/ripvid/internal/download"
	"github.com/ytget/ripvid/internal/event"
	"github.com/ytget/ripvid/internal/format"
	"github.com/ytget/ripvid/internal/model"
	"github.com/ytget/ripvid/internal/platform"
)

// RootUI is the main window: input controls on top, live session rows and
// the archive below.
type RootUI struct {
	window   fyne.Window
	settings *config.Settings
	svc      download.Downloader
	store    *archive.Store
	log      *zap.Logger

	urlEntry      *widget.Entry
	qualitySelect *widget.Select
	videoBtn      *widget.Button
	audioBtn      *widget.Button

	sessionsBox *fyne.Container
	archiveTab  *ArchiveTab

	// sessionID -> row; also remembers the URL for archive records
	rows    map[string]*SessionRow
	rowURLs map[string]string

	notificationLabel *widget.Label
	notificationBox   *fyne.Container
}

// NewRootUI creates and wires the main window.
func NewRootUI(window fyne.Window, app fyne.App, svc download.Downloader, store *archive.Store, log *zap.Logger) *RootUI {
	if log == nil {
		log = zap.NewNop()
	}

	settings := config.NewSettings(app)
	platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory())

	ui := &RootUI{
		window:   window,
		settings: settings,
		svc:      svc,
		store:    store,
		log:      log,
		rows:     make(map[string]*SessionRow),
		rowURLs:  make(map[string]string),
	}

	window.SetTitle("ripVID")
	ui.setupUI()
	return ui
}

// Settings exposes the settings manager for startup wiring.
func (ui *RootUI) Settings() *config.Settings {
	return ui.settings
}

func (ui *RootUI) setupUI() {
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Paste a video URL")
	ui.urlEntry.OnSubmitted = func(string) { ui.onDownloadVideo() }

	qualityOptions := []string{}
	for _, q := range format.Qualities() {
		qualityOptions = append(qualityOptions, q.String())
	}
	ui.qualitySelect = widget.NewSelect(qualityOptions, nil)
	ui.qualitySelect.SetSelected(ui.settings.GetQuality().String())

	ui.videoBtn = widget.NewButton("Video", ui.onDownloadVideo)
	ui.videoBtn.Importance = widget.HighImportance
	ui.audioBtn = widget.NewButton("Audio", ui.onDownloadAudio)

	settingsBtn := widget.NewButton("Settings", ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	actions := container.NewHBox(ui.qualitySelect, ui.videoBtn, ui.audioBtn, settingsBtn)
	topPanel := container.NewBorder(nil, nil, nil, actions, ui.urlEntry)

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationBox = container.NewHBox(ui.notificationLabel)
	ui.notificationBox.Hide()

	ui.sessionsBox = container.NewVBox()
	sessionsScroll := container.NewVScroll(ui.sessionsBox)

	ui.archiveTab = NewArchiveTab(ui.store, ui.onRevealFile, ui.log)

	tabs := container.NewAppTabs(
		container.NewTabItem("Downloads", sessionsScroll),
		container.NewTabItem("Archive", ui.archiveTab.Container()),
	)

	content := container.NewBorder(
		container.NewVBox(topPanel, ui.notificationBox),
		nil, nil, nil,
		tabs,
	)

	ui.window.SetContent(content)
	ui.window.Resize(fyne.NewSize(WindowDefaultWidth, WindowDefaultHeight))
}

// ConsumeEvents pumps the download event channel into the UI. Run it on its
// own goroutine; it returns when the channel closes.
func (ui *RootUI) ConsumeEvents(events <-chan event.Event) {
	for ev := range events {
		ev := ev
		fyne.Do(func() { ui.handleEvent(ev) })
	}
}

func (ui *RootUI) handleEvent(ev event.Event) {
	row, ok := ui.rows[ev.SessionID()]
	if !ok {
		return
	}

	switch e := ev.(type) {
	case event.Started:
		// Row already exists; nothing to update yet.
	case event.Progress:
		row.SetProgress(model.ProgressSnapshot{Percent: e.Percent, Speed: e.Speed, ETA: e.ETA})
	case event.Processing:
		row.SetProcessing(e.Message)
	case event.Completed:
		if e.Success {
			row.SetCompleted(e.Path)
			ui.recordCompleted(ev.SessionID(), e.Path)
			if ui.settings.GetAutoRevealOnComplete() {
				ui.onRevealFile(e.Path)
			}
		} else {
			row.SetFailed(e.Err)
		}
		delete(ui.rowURLs, ev.SessionID())
	case event.Cancelled:
		row.SetCancelled()
		delete(ui.rowURLs, ev.SessionID())
	}
}

func (ui *RootUI) recordCompleted(sessionID, path string) {
	url := ui.rowURLs[sessionID]
	name := filepath.Base(path)
	entry := model.ArchiveEntry{
		URL:      url,
		Title:    strings.TrimSuffix(name, filepath.Ext(name)),
		FilePath: path,
		Format:   strings.TrimPrefix(filepath.Ext(name), "."),
	}
	if err := ui.store.Record(entry); err != nil {
		ui.log.Warn("failed to record archive entry", zap.Error(err))
	}
	ui.archiveTab.Reload()
}

func (ui *RootUI) onDownloadVideo() {
	ui.startDownload(model.KindVideo)
}

func (ui *RootUI) onDownloadAudio() {
	ui.startDownload(model.KindAudio)
}

func (ui *RootUI) startDownload(kind model.DownloadKind) {
	url := strings.TrimSpace(ui.urlEntry.Text)
	if url == "" {
		ui.showNotification("Please enter a URL")
		return
	}

	if ui.svc.Active() >= ui.settings.GetMaxParallelDownloads() {
		ui.showNotification("Too many active downloads, wait for one to finish")
		return
	}

	dir := ui.settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	outputPath := filepath.Join(dir, download.SuggestFileName(url, kind))

	var id string
	var err error
	if kind == model.KindAudio {
		id, err = ui.svc.StartAudio(url, outputPath)
	} else {
		id, err = ui.svc.StartVideo(url, outputPath, format.ParseQuality(ui.qualitySelect.Selected))
	}
	if err != nil {
		ui.showNotification(err.Error())
		return
	}

	ui.rowURLs[id] = url
	row := NewSessionRow(id, filepath.Base(outputPath), outputPath, ui.onCancelSession, ui.onRevealFile)
	ui.rows[id] = row
	ui.sessionsBox.Add(row)

	ui.urlEntry.SetText("")
}

func (ui *RootUI) onCancelSession(id string) {
	if err := ui.svc.Cancel(id); err != nil {
		ui.log.Info("cancel request had no target", zap.String("session_id", id), zap.Error(err))
	}
}

func (ui *RootUI) onRevealFile(path string) {
	if err := platform.OpenFileInManager(path); err != nil {
		ui.log.Warn("failed to reveal file", zap.String("path", path), zap.Error(err))
	}
}

func (ui *RootUI) onShowSettings() {
	sd := NewSettingsDialog(ui.settings, ui.window, func() {
		ui.qualitySelect.SetSelected(ui.settings.GetQuality().String())
	})
	sd.Show()
}

func (ui *RootUI) showNotification(message string) {
	ui.notificationLabel.SetText(message)
	ui.notificationBox.Show()

	go func() {
		time.Sleep(NotificationAutoHide)
		fyne.Do(func() {
			ui.notificationBox.Hide()
		})
	}()
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ytget/ripvid/internal/archive"
	"github.com/ytget/ripvid/internal/binaries"
	"github.com/ytget/ripvid/internal/config"
	"github.com/ytget/ripvid/internal/download"
	"github.com/ytget/ripvid/internal/event"
	"github.com/ytget/ripvid/internal/logging"
	"github.com/ytget/ripvid/internal/platform"
	"github.com/ytget/ripvid/internal/ui"
	"github.com/ytget/ripvid/internal/ytdlp"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.ripvid"
	AppName = "ripVID"

	WindowWidth  = 720
	WindowHeight = 520
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	dataDir := appDataDir()
	log, err := logging.New(logging.Config{
		Level:      "info",
		Format:     "console",
		OutputPath: filepath.Join(dataDir, "ripvid.log"),
	})
	if err != nil {
		fmt.Printf("failed to init logging: %v\n", err)
		log = logging.NewDefault()
	}
	defer log.Sync()

	store, err := archive.Open(filepath.Join(dataDir, "archive.db"))
	if err != nil {
		log.Error("failed to open archive", zap.Error(err))
		fmt.Printf("failed to open archive: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	resolver := binaries.NewResolver(bundledBinariesDir())
	runner := ytdlp.NewRunner(resolver, log)
	emitter := event.NewEmitter(event.DefaultBuffer, log)
	downloadSvc := download.NewService(runner, emitter, log)

	settings := config.NewSettings(myApp)
	downloadSvc.SetCookieFallbackEnabled(settings.GetCookieFallbackEnabled())
	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		log.Warn("failed to ensure downloads dir", zap.Error(err))
	}

	rootUI := ui.NewRootUI(myWindow, myApp, downloadSvc, store, log)
	go rootUI.ConsumeEvents(emitter.Events())

	myWindow.ShowAndRun()
}

// appDataDir returns the per-user directory for the log and archive,
// creating it if needed.
func appDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	dir := filepath.Join(base, "ripvid")
	if err := os.MkdirAll(dir, platform.DefaultDirPermissions); err != nil {
		return os.TempDir()
	}
	return dir
}

// bundledBinariesDir points at binaries shipped next to the executable.
func bundledBinariesDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(exe), "binaries")
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ytget/ripvid/internal/archive"
	"github.com/ytget/ripvid/internal/binaries"
	"github.com/ytget/ripvid/internal/download"
	"github.com/ytget/ripvid/internal/event"
	"github.com/ytget/ripvid/internal/format"
	"github.com/ytget/ripvid/internal/logging"
	"github.com/ytget/ripvid/internal/model"
	"github.com/ytget/ripvid/internal/platform"
	"github.com/ytget/ripvid/internal/ytdlp"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "ripvid",
		Short:   "Download videos and audio with yt-dlp",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			viper.SetEnvPrefix("RIPVID")
			viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			viper.AutomaticEnv()
			viper.BindPFlags(cmd.Flags())
			viper.BindPFlags(cmd.InheritedFlags())
		},
	}

	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("binaries-dir", "", "directory holding bundled yt-dlp and ffmpeg")

	root.AddCommand(newDownloadCmd())
	root.AddCommand(newHistoryCmd())
	return root
}

func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download a single video or audio track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(args[0])
		},
	}

	cmd.Flags().StringP("output-dir", "o", "", "output directory (default: user Downloads)")
	cmd.Flags().StringP("quality", "q", "best", "video quality (best, 1080p, 720p, 480p, 360p)")
	cmd.Flags().BoolP("audio", "a", false, "extract audio as mp3 instead of video")
	cmd.Flags().Bool("no-cookie-fallback", false, "disable the browser-cookie retry on authentication failures")
	return cmd
}

func runDownload(url string) error {
	log, err := logging.New(logging.Config{
		Level:      viper.GetString("log-level"),
		Format:     "console",
		OutputPath: "stderr",
	})
	if err != nil {
		return err
	}
	defer log.Sync()

	outputDir := viper.GetString("output-dir")
	if outputDir == "" {
		outputDir, err = platform.GetHomeDownloadsDir()
		if err != nil {
			return fmt.Errorf("no output directory configured and none could be derived: %w", err)
		}
	}
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		return err
	}

	kind := model.KindVideo
	if viper.GetBool("audio") {
		kind = model.KindAudio
	}
	outputPath := filepath.Join(outputDir, download.SuggestFileName(url, kind))

	resolver := binaries.NewResolver(viper.GetString("binaries-dir"))
	runner := ytdlp.NewRunner(resolver, log)
	emitter := event.NewEmitter(event.DefaultBuffer, log)
	svc := download.NewService(runner, emitter, log)
	if viper.GetBool("no-cookie-fallback") {
		svc.SetCookieFallbackEnabled(false)
	}

	var id string
	if kind == model.KindAudio {
		id, err = svc.StartAudio(url, outputPath)
	} else {
		id, err = svc.StartVideo(url, outputPath, format.ParseQuality(viper.GetString("quality")))
	}
	if err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Fprintln(os.Stderr, "\nCancelling...")
		svc.Cancel(id)
	}()

	for ev := range emitter.Events() {
		switch e := ev.(type) {
		case event.Started:
			fmt.Printf("Downloading to %s\n", e.Path)
		case event.Progress:
			fmt.Printf("\r%6.1f%%  %-12s ETA %s    ", e.Percent, e.Speed, e.ETA)
		case event.Processing:
			fmt.Printf("\nProcessing: %s\n", e.Message)
		case event.Completed:
			if e.Success {
				fmt.Printf("\nDone: %s\n", e.Path)
				recordHistory(url, e.Path, log)
				return nil
			}
			fmt.Println()
			return fmt.Errorf("download failed: %s", e.Err)
		case event.Cancelled:
			fmt.Println("\nCancelled")
			return nil
		}
	}
	return nil
}

// recordHistory is best effort; a broken archive never fails the download.
func recordHistory(url, path string, log *zap.Logger) {
	store, err := archive.Open(archiveDBPath())
	if err != nil {
		log.Warn("failed to open archive", zap.Error(err))
		return
	}
	defer store.Close()

	name := filepath.Base(path)
	err = store.Record(model.ArchiveEntry{
		URL:      url,
		Title:    strings.TrimSuffix(name, filepath.Ext(name)),
		FilePath: path,
		Format:   strings.TrimPrefix(filepath.Ext(name), "."),
	})
	if err != nil {
		log.Warn("failed to record download", zap.Error(err))
	}
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List previously completed downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := archive.Open(archiveDBPath())
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No downloads recorded yet.")
				return nil
			}

			for _, e := range entries {
				marker := " "
				if !e.FileExists {
					marker = "!"
				}
				fmt.Printf("%s %-10s %-19s %s\n", marker, e.Platform, e.CreatedAt.Format("2006-01-02 15:04"), e.FilePath)
			}
			return nil
		},
	}
}

func archiveDBPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	dir := filepath.Join(base, "ripvid")
	os.MkdirAll(dir, platform.DefaultDirPermissions)
	return filepath.Join(dir, "archive.db")
}

package ytdlp

import (
	"bufio"
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ytget/ripvid/internal/binaries"
	"github.com/ytget/ripvid/internal/errs"
	"github.com/ytget/ripvid/internal/platform"
	"github.com/ytget/ripvid/internal/session"
)

// stderr retained for terminal classification is capped; yt-dlp repeats its
// fatal lines near the end anyway.
const maxStderrBytes = 64 * 1024

// Runner spawns yt-dlp for a single attempt and streams its output through
// the line classifier. It attaches the live process to the session handle
// before the first line is read and detaches it unconditionally on exit.
type Runner struct {
	resolver *binaries.Resolver
	log      *zap.Logger
}

// NewRunner creates a process runner.
func NewRunner(resolver *binaries.Resolver, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{resolver: resolver, log: log}
}

// Run executes one download attempt. Line events are handed to emit in the
// order the subprocess produced them. Returns nil on exit code zero, a
// classified *errs.DownloadError otherwise. Partial artifacts are removed on
// failure and cancellation, best-effort.
func (r *Runner) Run(ctx context.Context, handle *session.Handle, req Request, emit func(LineEvent)) error {
	ytdlpPath, err := r.resolver.YtdlpPath()
	if err != nil {
		return err
	}

	args := BuildArgs(req, r.resolver.FfmpegDir())
	log := r.log.With(zap.String("session_id", handle.ID))
	log.Info("spawning downloader",
		zap.String("binary", ytdlpPath),
		zap.Int("arg_count", len(args)))

	cmd := exec.CommandContext(ctx, ytdlpPath, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errs.Wrap(errs.KindProcessFailure, "failed to open stdout pipe", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return errs.Wrap(errs.KindProcessFailure, "failed to open stderr pipe", err)
	}

	if err := cmd.Start(); err != nil {
		return errs.Wrap(errs.KindProcessFailure, "failed to start download tool", err)
	}

	// Attach before any line is read so an immediate cancel can find and
	// kill the process.
	handle.SetProcess(cmd.Process)
	defer handle.ClearProcess()

	var stderrBuf strings.Builder
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := scanner.Text()
			if ev, ok := ClassifyLine(line); ok {
				emit(ev)
			} else {
				log.Debug("tool output", zap.String("stream", "stdout"), zap.String("line", line))
			}
		}
	}()

	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			line := scanner.Text()
			log.Debug("tool output", zap.String("stream", "stderr"), zap.String("line", line))
			if stderrBuf.Len() < maxStderrBytes {
				stderrBuf.WriteString(line)
				stderrBuf.WriteByte('\n')
			}
		}
	}()

	wg.Wait()
	waitErr := cmd.Wait()

	if ctx.Err() != nil {
		r.cleanupPartials(handle.ID, req.OutputPath)
		if errors.Is(context.Cause(ctx), context.Canceled) || ctx.Err() == context.Canceled {
			return errs.New(errs.KindCancelled, "Download cancelled by user")
		}
		return errs.Wrap(errs.KindNetwork, "Download timed out", ctx.Err())
	}

	if waitErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		classified := errs.Classify(stderrBuf.String(), exitCode)
		log.Warn("download attempt failed",
			zap.Int("exit_code", exitCode),
			zap.String("kind", string(classified.Kind)))

		r.cleanupPartials(handle.ID, req.OutputPath)
		return classified
	}

	return nil
}

// cleanupPartials removes leftover temporary artifacts. Failures are logged,
// never propagated as the attempt's error.
func (r *Runner) cleanupPartials(sessionID, outputPath string) {
	removed, err := platform.RemovePartialFiles(outputPath)
	if err != nil {
		r.log.Warn("partial file cleanup failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return
	}
	for _, path := range removed {
		r.log.Info("removed partial file",
			zap.String("session_id", sessionID),
			zap.String("path", path))
	}
}

package download

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/ripvid/internal/browser"
	"github.com/ytget/ripvid/internal/errs"
	"github.com/ytget/ripvid/internal/event"
	"github.com/ytget/ripvid/internal/format"
	"github.com/ytget/ripvid/internal/model"
	"github.com/ytget/ripvid/internal/platform"
	"github.com/ytget/ripvid/internal/session"
	"github.com/ytget/ripvid/internal/validate"
	"github.com/ytget/ripvid/internal/ytdlp"
)

// Retry policy constants
const (
	// MaxAttempts caps the numbered retry budget. The authentication
	// cookie-fallback attempt is free and sits outside this budget.
	MaxAttempts = 3

	// BaseBackoff is doubled per numbered attempt: 1s, 2s, 4s.
	BaseBackoff = 1 * time.Second
)

// Service orchestrates download sessions end to end.
type Service struct {
	runner   AttemptRunner
	registry *session.Registry
	emitter  *event.Emitter
	log      *zap.Logger

	// Injectable seams for tests
	sleep         func(ctx context.Context, d time.Duration) error
	detectBrowser func() string
	fileExists    func(path string) bool
}

// NewService creates the orchestration service.
func NewService(runner AttemptRunner, emitter *event.Emitter, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		runner:        runner,
		registry:      session.NewRegistry(),
		emitter:       emitter,
		log:           log,
		sleep:         sleepContext,
		detectBrowser: browser.Detect,
		fileExists:    platform.FileExists,
	}
}

// SetCookieFallbackEnabled toggles the authentication cookie-fallback
// retry. When disabled, authentication failures are terminal.
func (s *Service) SetCookieFallbackEnabled(enabled bool) {
	if enabled {
		s.detectBrowser = browser.Detect
	} else {
		s.detectBrowser = func() string { return "" }
	}
}

// StartVideo validates inputs and launches a video download session.
func (s *Service) StartVideo(url, outputPath string, quality format.Quality) (string, error) {
	return s.start(model.KindVideo, url, outputPath, quality)
}

// StartAudio validates inputs and launches an audio-only session.
func (s *Service) StartAudio(url, outputPath string) (string, error) {
	return s.start(model.KindAudio, url, outputPath, format.QualityBest)
}

// start runs validation synchronously so callers get InvalidInput before any
// session exists; no subprocess is spawned and no event is emitted on a
// rejected input.
func (s *Service) start(kind model.DownloadKind, rawURL, rawPath string, quality format.Quality) (string, error) {
	url, err := validate.ValidateURL(rawURL)
	if err != nil {
		s.log.Info("download request rejected", zap.Error(err))
		return "", errs.Wrap(errs.KindInvalidInput, err.Error(), err)
	}

	outputPath, err := validate.ValidateOutputPath(rawPath)
	if err != nil {
		s.log.Info("download request rejected", zap.Error(err))
		return "", errs.Wrap(errs.KindInvalidInput, err.Error(), err)
	}

	sess := model.NewSession(kind, url, outputPath)
	if kind == model.KindVideo {
		sess.Quality = quality.String()
	}

	ctx, cancel := context.WithCancel(context.Background())
	handle := session.NewHandle(sess.ID, outputPath, cancel)
	s.registry.Register(handle)

	s.log.Info("download session starting",
		zap.String("session_id", sess.ID),
		zap.String("kind", string(kind)),
		zap.String("quality", sess.Quality),
		zap.String("url", url),
		zap.String("output", outputPath))

	s.emitter.Publish(event.NewStarted(sess.ID, outputPath))

	go s.run(ctx, sess, handle, ytdlp.Request{
		URL:        url,
		OutputPath: outputPath,
		Kind:       kind,
		Quality:    quality,
	})

	return sess.ID, nil
}

// Cancel terminates a session by identifier. The terminal Cancelled event is
// emitted by the session's own goroutine once it observes the kill.
func (s *Service) Cancel(id string) error {
	s.log.Info("cancel requested", zap.String("session_id", id))
	return s.registry.Cancel(id)
}

// Active reports the number of live sessions.
func (s *Service) Active() int {
	return s.registry.Len()
}

// FileExists probes for a finished artifact on disk.
func (s *Service) FileExists(path string) bool {
	return s.fileExists(path)
}

// run is the retry coordinator for one session. Exactly one terminal event
// is published, and the registry entry is removed right after.
func (s *Service) run(ctx context.Context, sess *model.DownloadSession, handle *session.Handle, req ytdlp.Request) {
	log := s.log.With(zap.String("session_id", sess.ID))

	cookieTried := false
	attempt := 1

	for {
		log.Info("download attempt starting",
			zap.Int("attempt", attempt),
			zap.Bool("cookie_fallback", req.CookieBrowser != ""))

		sess.SetState(model.StateRunning)
		err := s.runner.Run(ctx, handle, req, s.lineHandler(sess))
		if err == nil {
			s.finishSuccess(sess, log)
			return
		}

		if ctx.Err() != nil || errs.KindOf(err) == errs.KindCancelled {
			s.finishCancelled(sess, log)
			return
		}

		kind := errs.KindOf(err)
		log.Warn("download attempt failed",
			zap.Int("attempt", attempt),
			zap.String("kind", string(kind)),
			zap.Error(err))

		// One free cookie-fallback retry when the failure smells like an
		// authentication wall. Does not consume the numbered budget.
		if kind == errs.KindAuthentication && !cookieTried {
			cookieTried = true
			if b := s.detectBrowser(); b != "" {
				log.Warn("retrying with browser cookies", zap.String("browser", b))
				req.CookieBrowser = b
				continue
			}
			log.Warn("no browser found for cookie fallback")
		}

		if !errs.Retryable(kind) || attempt >= MaxAttempts {
			s.finishFailure(sess, err, log)
			return
		}

		delay := BaseBackoff << (attempt - 1)
		log.Warn("retrying after backoff",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay))

		if s.sleep(ctx, delay) != nil {
			s.finishCancelled(sess, log)
			return
		}
		attempt++
	}
}

// lineHandler translates parsed output lines into session state and events,
// preserving the order the subprocess produced them.
func (s *Service) lineHandler(sess *model.DownloadSession) func(ytdlp.LineEvent) {
	return func(ev ytdlp.LineEvent) {
		switch ev.Kind {
		case ytdlp.LineProgress:
			sess.SetProgress(ev.Progress)
			s.emitter.Publish(event.NewProgress(sess.ID, ev.Progress.Percent, ev.Progress.Speed, ev.Progress.ETA))
		case ytdlp.LineProcessing:
			if sess.SetState(model.StateProcessing) {
				s.log.Info("post-processing phase", zap.String("session_id", sess.ID))
			}
			s.emitter.Publish(event.NewProcessing(sess.ID, ev.Message))
		}
	}
}

func (s *Service) finishSuccess(sess *model.DownloadSession, log *zap.Logger) {
	defer s.registry.Remove(sess.ID)

	// The tool exited cleanly; confirm it actually left an artifact behind.
	if !s.fileExists(sess.OutputPath) {
		log.Error("tool exited cleanly but artifact is missing",
			zap.String("output", sess.OutputPath))
		err := errs.New(errs.KindProcessFailure, "Download finished but the output file is missing.")
		sess.LastError = err.Message
		sess.SetState(model.StateFailed)
		s.emitter.Publish(event.NewCompleted(sess.ID, false, "", err.Message))
		return
	}

	sess.SetState(model.StateSucceeded)
	log.Info("download completed", zap.String("output", sess.OutputPath))
	s.emitter.Publish(event.NewCompleted(sess.ID, true, sess.OutputPath, ""))
}

func (s *Service) finishFailure(sess *model.DownloadSession, err error, log *zap.Logger) {
	defer s.registry.Remove(sess.ID)

	summary := err.Error()
	var de *errs.DownloadError
	if errors.As(err, &de) {
		summary = de.Message
	}

	sess.LastError = summary
	sess.SetState(model.StateFailed)
	log.Error("download failed", zap.String("error", summary))
	s.emitter.Publish(event.NewCompleted(sess.ID, false, "", summary))
}

func (s *Service) finishCancelled(sess *model.DownloadSession, log *zap.Logger) {
	defer s.registry.Remove(sess.ID)

	sess.SetState(model.StateCancelled)
	log.Info("download cancelled")
	s.emitter.Publish(event.NewCancelled(sess.ID, sess.OutputPath))
}

// sleepContext waits for the delay or the session's cancellation, whichever
// comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

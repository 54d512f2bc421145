package download

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ripvid/internal/errs"
	"github.com/ytget/ripvid/internal/event"
	"github.com/ytget/ripvid/internal/format"
	"github.com/ytget/ripvid/internal/model"
	"github.com/ytget/ripvid/internal/session"
	"github.com/ytget/ripvid/internal/ytdlp"
)

// scriptedRunner returns one canned outcome per call and records the request
// it saw, so tests can assert spawn counts and argument evolution.
type scriptedRunner struct {
	outcomes []func(emit func(ytdlp.LineEvent)) error
	requests []ytdlp.Request
}

func (r *scriptedRunner) Run(ctx context.Context, handle *session.Handle, req ytdlp.Request, emit func(ytdlp.LineEvent)) error {
	r.requests = append(r.requests, req)
	if len(r.requests) > len(r.outcomes) {
		return errs.New(errs.KindProcessFailure, "no more scripted outcomes")
	}
	return r.outcomes[len(r.requests)-1](emit)
}

func fail(kind errs.Kind, msg string) func(func(ytdlp.LineEvent)) error {
	return func(func(ytdlp.LineEvent)) error { return errs.New(kind, msg) }
}

func succeed() func(func(ytdlp.LineEvent)) error {
	return func(func(ytdlp.LineEvent)) error { return nil }
}

func newTestService(t *testing.T, runner AttemptRunner) (*Service, *event.Emitter) {
	t.Helper()
	em := event.NewEmitter(64, nil)
	svc := NewService(runner, em, nil)
	svc.fileExists = func(string) bool { return true }
	svc.detectBrowser = func() string { return "" }
	svc.sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	return svc, em
}

func waitEvent(t *testing.T, em *event.Emitter) event.Event {
	t.Helper()
	select {
	case ev := <-em.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

// waitTerminal drains non-terminal events until a Completed or Cancelled
// arrives.
func waitTerminal(t *testing.T, em *event.Emitter) event.Event {
	t.Helper()
	for {
		ev := waitEvent(t, em)
		switch ev.(type) {
		case event.Completed, event.Cancelled:
			return ev
		}
	}
}

func outPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "clip.mp4")
}

func TestServiceRetriesNetworkFailuresWithBackoff(t *testing.T) {
	runner := &scriptedRunner{outcomes: []func(func(ytdlp.LineEvent)) error{
		fail(errs.KindNetwork, "connection reset"),
		fail(errs.KindNetwork, "connection reset"),
		succeed(),
	}}
	svc, em := newTestService(t, runner)

	var delays []time.Duration
	svc.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	id, err := svc.StartVideo("https://www.youtube.com/watch?v=abc123", outPath(t), format.Quality720p)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	ev := waitEvent(t, em)
	started, ok := ev.(event.Started)
	require.True(t, ok, "first event must be Started, got %T", ev)
	assert.Equal(t, id, started.SessionID())

	term := waitTerminal(t, em)
	done, ok := term.(event.Completed)
	require.True(t, ok, "expected Completed, got %T", term)
	assert.True(t, done.Success)

	assert.Len(t, runner.requests, 3)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, delays)
	assert.Equal(t, 0, svc.Active())
}

func TestServiceCookieFallbackDoesNotConsumeBudget(t *testing.T) {
	runner := &scriptedRunner{outcomes: []func(func(ytdlp.LineEvent)) error{
		fail(errs.KindAuthentication, "Sign in to confirm your age"),
		succeed(),
	}}
	svc, em := newTestService(t, runner)
	svc.detectBrowser = func() string { return "firefox" }

	var delays []time.Duration
	svc.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	_, err := svc.StartVideo("https://www.youtube.com/watch?v=abc123", outPath(t), format.QualityBest)
	require.NoError(t, err)

	term := waitTerminal(t, em)
	done, ok := term.(event.Completed)
	require.True(t, ok, "expected Completed, got %T", term)
	assert.True(t, done.Success)

	require.Len(t, runner.requests, 2)
	assert.Empty(t, runner.requests[0].CookieBrowser)
	assert.Equal(t, "firefox", runner.requests[1].CookieBrowser)
	assert.Empty(t, delays, "cookie fallback must not wait out a backoff")
}

func TestServiceAuthFailureWithoutBrowserIsTerminal(t *testing.T) {
	runner := &scriptedRunner{outcomes: []func(func(ytdlp.LineEvent)) error{
		fail(errs.KindAuthentication, "Private video"),
	}}
	svc, em := newTestService(t, runner)

	_, err := svc.StartVideo("https://www.youtube.com/watch?v=abc123", outPath(t), format.QualityBest)
	require.NoError(t, err)

	term := waitTerminal(t, em)
	done, ok := term.(event.Completed)
	require.True(t, ok, "expected Completed, got %T", term)
	assert.False(t, done.Success)
	assert.Equal(t, "Private video", done.Err)
	assert.Len(t, runner.requests, 1)
}

func TestServiceRejectsInvalidInputBeforeSpawning(t *testing.T) {
	tests := []struct {
		name string
		url  string
		path string
	}{
		{"bad scheme", "ftp://example.com/video", "/tmp/out.mp4"},
		{"shell metacharacters", "https://example.com/watch;rm -rf /", "/tmp/out.mp4"},
		{"traversal path", "https://www.youtube.com/watch?v=abc123", "/tmp/../../etc/passwd"},
		{"relative path", "https://www.youtube.com/watch?v=abc123", "downloads/out.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &scriptedRunner{}
			svc, em := newTestService(t, runner)

			id, err := svc.StartVideo(tt.url, tt.path, format.QualityBest)
			require.Error(t, err)
			assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
			assert.Empty(t, id)

			assert.Empty(t, runner.requests, "no subprocess may be spawned for rejected input")
			assert.Equal(t, 0, svc.Active())
			select {
			case ev := <-em.Events():
				t.Fatalf("no event expected for rejected input, got %T", ev)
			default:
			}
		})
	}
}

func TestServiceEventOrderForCleanRun(t *testing.T) {
	runner := &scriptedRunner{outcomes: []func(func(ytdlp.LineEvent)) error{
		func(emit func(ytdlp.LineEvent)) error {
			for _, pct := range []float64{10, 55, 100} {
				emit(ytdlp.LineEvent{Kind: ytdlp.LineProgress, Progress: model.ProgressSnapshot{
					Percent: pct, Speed: "2.1MiB/s", ETA: "00:12",
				}})
			}
			emit(ytdlp.LineEvent{Kind: ytdlp.LineProcessing, Message: "Merging formats"})
			return nil
		},
	}}
	svc, em := newTestService(t, runner)

	path := outPath(t)
	id, err := svc.StartVideo("https://www.youtube.com/watch?v=abc123", path, format.Quality1080p)
	require.NoError(t, err)

	_, ok := waitEvent(t, em).(event.Started)
	require.True(t, ok)

	for _, want := range []float64{10, 55, 100} {
		ev := waitEvent(t, em)
		prog, ok := ev.(event.Progress)
		require.True(t, ok, "expected Progress, got %T", ev)
		assert.Equal(t, want, prog.Percent)
		assert.Equal(t, id, prog.SessionID())
	}

	ev := waitEvent(t, em)
	proc, ok := ev.(event.Processing)
	require.True(t, ok, "expected Processing, got %T", ev)
	assert.Equal(t, "Merging formats", proc.Message)

	ev = waitEvent(t, em)
	done, ok := ev.(event.Completed)
	require.True(t, ok, "expected Completed, got %T", ev)
	assert.True(t, done.Success)
	assert.Equal(t, path, done.Path)
}

func TestServiceMissingArtifactFailsCleanExit(t *testing.T) {
	runner := &scriptedRunner{outcomes: []func(func(ytdlp.LineEvent)) error{succeed()}}
	svc, em := newTestService(t, runner)
	svc.fileExists = func(string) bool { return false }

	_, err := svc.StartVideo("https://www.youtube.com/watch?v=abc123", outPath(t), format.QualityBest)
	require.NoError(t, err)

	term := waitTerminal(t, em)
	done, ok := term.(event.Completed)
	require.True(t, ok, "expected Completed, got %T", term)
	assert.False(t, done.Success)
	assert.Contains(t, done.Err, "output file is missing")
}

func TestServiceCancelDuringBackoffEmitsCancelledOnly(t *testing.T) {
	runner := &scriptedRunner{outcomes: []func(func(ytdlp.LineEvent)) error{
		fail(errs.KindNetwork, "connection reset"),
	}}
	svc, em := newTestService(t, runner)

	entered := make(chan struct{})
	svc.sleep = func(ctx context.Context, d time.Duration) error {
		close(entered)
		<-ctx.Done()
		return ctx.Err()
	}

	id, err := svc.StartVideo("https://www.youtube.com/watch?v=abc123", outPath(t), format.QualityBest)
	require.NoError(t, err)

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("session never reached the backoff wait")
	}
	require.NoError(t, svc.Cancel(id))

	term := waitTerminal(t, em)
	_, ok := term.(event.Cancelled)
	require.True(t, ok, "expected Cancelled, got %T", term)

	assert.Equal(t, 0, svc.Active())
	assert.ErrorIs(t, svc.Cancel(id), session.ErrNotFound)
}

func TestServiceRunnerCancelledKindEmitsCancelled(t *testing.T) {
	runner := &scriptedRunner{outcomes: []func(func(ytdlp.LineEvent)) error{
		fail(errs.KindCancelled, "killed"),
	}}
	svc, em := newTestService(t, runner)

	_, err := svc.StartAudio("https://www.youtube.com/watch?v=abc123", outPath(t))
	require.NoError(t, err)

	term := waitTerminal(t, em)
	_, ok := term.(event.Cancelled)
	require.True(t, ok, "expected Cancelled, got %T", term)
	assert.Len(t, runner.requests, 1)
}

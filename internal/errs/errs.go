// Package errs defines the error taxonomy for download sessions and the
// best-effort classification of yt-dlp output into it. Classification happens
// at the subprocess boundary; everything above sees only a DownloadError with
// a Kind and a short human-readable summary.
package errs

import (
	"errors"
	"fmt"
)

// Kind labels a download failure for retry policy and user messaging.
type Kind string

const (
	// KindInvalidInput is a malformed URL or destination path. Never retried.
	KindInvalidInput Kind = "invalid_input"

	// KindNetwork covers connection and timeout failures. Retried with backoff.
	KindNetwork Kind = "network"

	// KindRateLimit is platform-side throttling. Retried with backoff.
	KindRateLimit Kind = "rate_limit"

	// KindAuthentication means the platform wants credentials or cookies.
	// Triggers the one-shot browser-cookie fallback.
	KindAuthentication Kind = "authentication"

	// KindProcessFailure is a non-zero exit without a more specific match.
	KindProcessFailure Kind = "process_failure"

	// KindCancelled is a user-initiated abort. Never retried, never counted
	// as a failure in user-facing messaging.
	KindCancelled Kind = "cancelled"

	// KindBinaryNotFound means the external executable is missing. A setup
	// problem, not a download problem.
	KindBinaryNotFound Kind = "binary_not_found"
)

// DownloadError is the classified result of a failed download attempt.
type DownloadError struct {
	Kind    Kind
	Message string // short user-facing summary, never raw stderr
	Err     error  // underlying cause, for logs only
}

// Error implements the error interface.
func (e *DownloadError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *DownloadError) Unwrap() error {
	return e.Err
}

// New creates a DownloadError with the given kind and summary.
func New(kind Kind, message string) *DownloadError {
	return &DownloadError{Kind: kind, Message: message}
}

// Wrap creates a DownloadError around an underlying cause.
func Wrap(kind Kind, message string, err error) *DownloadError {
	return &DownloadError{Kind: kind, Message: message, Err: err}
}

// Newf creates a DownloadError with a formatted summary.
func Newf(kind Kind, format string, args ...any) *DownloadError {
	return &DownloadError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from an error chain. Unclassified errors report
// KindProcessFailure.
func KindOf(err error) Kind {
	var de *DownloadError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindProcessFailure
}

// Retryable reports whether a failure of the given kind may be retried with
// backoff under the numbered attempt budget.
func Retryable(kind Kind) bool {
	return kind == KindNetwork || kind == KindRateLimit || kind == KindProcessFailure
}

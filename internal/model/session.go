package model

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DownloadKind distinguishes video and audio-only sessions
type DownloadKind string

const (
	KindVideo DownloadKind = "video"
	KindAudio DownloadKind = "audio"
)

// DownloadSession represents one in-flight or completed download attempt.
// URL and OutputPath are validated before the session is created and are
// immutable afterwards. State transitions only move forward; SetState
// rejects anything else.
type DownloadSession struct {
	ID         string
	Kind       DownloadKind
	Quality    string // quality tier label, empty for audio sessions
	URL        string
	OutputPath string
	StartedAt  time.Time
	FinishedAt time.Time
	LastError  string // short human-readable summary of the final error

	mu       sync.RWMutex
	state    SessionState
	progress ProgressSnapshot
}

// NewSession creates a session in the Starting state with a fresh identifier.
func NewSession(kind DownloadKind, url, outputPath string) *DownloadSession {
	return &DownloadSession{
		ID:         generateSessionID(),
		Kind:       kind,
		URL:        url,
		OutputPath: outputPath,
		StartedAt:  time.Now(),
		state:      StateStarting,
	}
}

// State returns the current lifecycle state.
func (s *DownloadSession) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetState advances the session state. Transitions that would move backwards
// or leave a terminal state are rejected and reported to the caller.
func (s *DownloadSession) SetState(next SessionState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.CanTransition(next) {
		return false
	}
	s.state = next
	if next.IsTerminal() {
		s.FinishedAt = time.Now()
	}
	return true
}

// SetProgress stores the latest progress snapshot. Snapshots supersede each
// other; nothing is accumulated.
func (s *DownloadSession) SetProgress(p ProgressSnapshot) {
	s.mu.Lock()
	s.progress = p
	s.mu.Unlock()
}

// Progress returns the most recent progress snapshot.
func (s *DownloadSession) Progress() ProgressSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress
}

// DisplayName returns the output filename without extension, or the URL
// when no output path is known yet.
func (s *DownloadSession) DisplayName() string {
	if s.OutputPath != "" {
		parts := strings.FieldsFunc(s.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			name := parts[len(parts)-1]
			if idx := strings.LastIndex(name, "."); idx > 0 {
				name = name[:idx]
			}
			return name
		}
	}
	return s.URL
}

// generateSessionID generates a unique session ID using UUID v7 for better
// uniqueness and time ordering
func generateSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf("session-%d", time.Now().UnixNano())
	}
	return id.String()
}

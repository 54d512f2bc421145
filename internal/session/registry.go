// Package session tracks live download sessions so cancel requests can find
// and terminate their processes. The registry's map is the only structure in
// the core mutated by more than one task; all access goes through its lock.
package session

import (
	"context"
	"errors"
	"os"
	"sync"
)

// ErrNotFound signals that nothing is there to cancel: the identifier is
// unknown or the session already reached a terminal state. A benign no-op
// for callers, not a crash condition.
var ErrNotFound = errors.New("session not found")

// Handle is the registry's view of one session. It owns the session-level
// cancel function (which unblocks stream reads and backoff sleeps) and, while
// an attempt is running, an exclusive reference to the live process.
type Handle struct {
	ID         string
	OutputPath string

	cancel context.CancelFunc

	mu   sync.Mutex
	proc *os.Process
}

// NewHandle creates a handle owning the given session-level cancel function.
func NewHandle(id, outputPath string, cancel context.CancelFunc) *Handle {
	return &Handle{ID: id, OutputPath: outputPath, cancel: cancel}
}

// SetProcess attaches the live process for the current attempt. Called before
// the first output line is read so an immediate cancel can still find it.
func (h *Handle) SetProcess(p *os.Process) {
	h.mu.Lock()
	h.proc = p
	h.mu.Unlock()
}

// ClearProcess detaches the process reference. Called unconditionally when
// the process exits, whatever the outcome.
func (h *Handle) ClearProcess() {
	h.mu.Lock()
	h.proc = nil
	h.mu.Unlock()
}

// Kill forcefully terminates the live process, if any, and cancels the
// session context. The subprocess is not asked to shut down gracefully.
func (h *Handle) Kill() error {
	h.mu.Lock()
	proc := h.proc
	h.mu.Unlock()

	var err error
	if proc != nil {
		err = proc.Kill()
	}
	if h.cancel != nil {
		h.cancel()
	}
	return err
}

// Registry is a concurrency-safe mapping from session identifier to handle.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Handle)}
}

// Register stores a handle under its session identifier. Identifiers are
// fresh UUIDs, so a collision is not handled as a first-class error; the
// newer handle simply wins.
func (r *Registry) Register(h *Handle) {
	r.mu.Lock()
	r.sessions[h.ID] = h
	r.mu.Unlock()
}

// Lookup returns the handle for an identifier.
func (r *Registry) Lookup(id string) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.sessions[id]
	return h, ok
}

// Cancel removes the session and forcefully terminates its process. Returns
// ErrNotFound when the identifier is absent or already terminal.
func (r *Registry) Cancel(id string) error {
	r.mu.Lock()
	h, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	return h.Kill()
}

// Remove deletes a session entry. Idempotent.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

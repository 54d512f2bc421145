// Package event carries download lifecycle events from the core to whatever
// front end consumes them. The core publishes fire-and-forget; consumers read
// a channel and must keep it drained. No UI-framework types appear here.
package event

// Event is implemented by every download lifecycle event. SessionID
// correlates events belonging to the same session.
type Event interface {
	SessionID() string
}

type sessionEvent struct {
	ID string
}

func (e sessionEvent) SessionID() string {
	return e.ID
}

// Started is published once a session's process has been spawned and
// registered.
type Started struct {
	sessionEvent
	Path string
}

// Progress carries the latest transfer snapshot for a session.
type Progress struct {
	sessionEvent
	Percent float64
	Speed   string
	ETA     string
}

// Processing signals that the external tool moved from network transfer into
// local post-processing (merging streams, extracting audio).
type Processing struct {
	sessionEvent
	Message string
}

// Completed is the terminal event for a successful or failed session.
// Exactly one Completed or Cancelled is published per session.
type Completed struct {
	sessionEvent
	Success bool
	Path    string
	Err     string // short summary, empty on success
}

// Cancelled is the terminal event for a user-cancelled session.
type Cancelled struct {
	sessionEvent
	Path string
}

// NewStarted builds a Started event.
func NewStarted(id, path string) Started {
	return Started{sessionEvent{id}, path}
}

// NewProgress builds a Progress event.
func NewProgress(id string, percent float64, speed, eta string) Progress {
	return Progress{sessionEvent{id}, percent, speed, eta}
}

// NewProcessing builds a Processing event.
func NewProcessing(id, message string) Processing {
	return Processing{sessionEvent{id}, message}
}

// NewCompleted builds a terminal Completed event.
func NewCompleted(id string, success bool, path, errSummary string) Completed {
	return Completed{sessionEvent{id}, success, path, errSummary}
}

// NewCancelled builds a terminal Cancelled event.
func NewCancelled(id, path string) Cancelled {
	return Cancelled{sessionEvent{id}, path}
}

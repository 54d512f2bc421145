package model

// SessionState represents the lifecycle state of a download session
type SessionState string

const (
	// StateStarting means the session was created and the process is being spawned
	StateStarting SessionState = "Starting"

	// StateRunning means the external tool is transferring data
	StateRunning SessionState = "Running"

	// StateProcessing means the external tool moved into local post-processing
	StateProcessing SessionState = "Processing"

	// StateSucceeded means the output file was finalized
	StateSucceeded SessionState = "Succeeded"

	// StateFailed means the session ended with a classified error
	StateFailed SessionState = "Failed"

	// StateCancelled means the session was cancelled by the user
	StateCancelled SessionState = "Cancelled"
)

// String returns the string representation of SessionState
func (s SessionState) String() string {
	return string(s)
}

// IsTerminal returns true if the state is final
func (s SessionState) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateCancelled
}

// IsActive returns true if the session still owns work
func (s SessionState) IsActive() bool {
	return s == StateStarting || s == StateRunning || s == StateProcessing
}

// rank orders states along the forward-only lifecycle. Terminal states share
// the highest rank; Running and Processing are both reachable from Starting
// since short downloads may never surface a distinct processing phase.
func (s SessionState) rank() int {
	switch s {
	case StateStarting:
		return 0
	case StateRunning:
		return 1
	case StateProcessing:
		return 2
	case StateSucceeded, StateFailed, StateCancelled:
		return 3
	default:
		return -1
	}
}

// CanTransition reports whether moving from s to next respects the
// forward-only lifecycle Starting -> Running -> (Processing) -> terminal.
// No transition leaves a terminal state.
func (s SessionState) CanTransition(next SessionState) bool {
	if s.IsTerminal() {
		return false
	}
	return next.rank() > s.rank()
}

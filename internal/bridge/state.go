package bridge

// Status is an invocation's lifecycle state. An invocation moves
// NotStarted → Running, bounces between Running and AwaitingPrompt while
// the script asks questions, and ends in exactly one terminal state once
// the child process has been reaped.
type Status int

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusAwaitingPrompt
	StatusSucceeded
	StatusFailed
	StatusTimedOut
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusRunning:
		return "running"
	case StatusAwaitingPrompt:
		return "awaiting_prompt"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusTimedOut:
		return "timed_out"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether s is a final state.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusTimedOut, StatusCancelled:
		return true
	}
	return false
}

// canTransition encodes the invocation state machine.
func canTransition(from, to Status) bool {
	if from.Terminal() {
		return false
	}
	switch from {
	case StatusNotStarted:
		return to == StatusRunning || to.Terminal()
	case StatusRunning:
		return to == StatusAwaitingPrompt || to.Terminal()
	case StatusAwaitingPrompt:
		return to == StatusRunning || to.Terminal()
	}
	return false
}

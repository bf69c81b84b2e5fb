package engine

// State is the orchestrator state of the most recent Search call.
type State int32

const (
	StateIdle State = iota
	StateDebouncing
	StateRacing
	StateResolved
	StateCancelled
	StateTimedOut
	StateFailed
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StateDebouncing: "debouncing",
	StateRacing:     "racing",
	StateResolved:   "resolved",
	StateCancelled:  "cancelled",
	StateTimedOut:   "timed_out",
	StateFailed:     "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether the state ends a query's lifecycle.
func (s State) Terminal() bool {
	return s >= StateResolved
}

package acquire

// State is the per-asset acquisition state. Each id's state is owned
// exclusively by one worker for the duration of that id's acquisition.
type State int

const (
	StateNotRequested State = iota
	StateActivating
	StateActive
	StateInactive
	StateDownloading
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateNotRequested: "not_requested",
	StateActivating:   "activating",
	StateActive:       "active",
	StateInactive:     "inactive",
	StateDownloading:  "downloading",
	StateDone:         "done",
	StateFailed:       "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

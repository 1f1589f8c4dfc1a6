package session

// State is a step in a session's lifecycle.
//
// Batch mode moves Init, Loaded, Filtered, Rendered, Done. Interactive mode
// moves Init, Loaded, then alternates AwaitingInput and Refreshing until the
// user quits.
type State int

const (
	StateInit State = iota
	StateLoaded
	StateFiltered
	StateRendered
	StateDone
	StateAwaitingInput
	StateRefreshing
)

var stateNames = [...]string{
	StateInit:          "init",
	StateLoaded:        "loaded",
	StateFiltered:      "filtered",
	StateRendered:      "rendered",
	StateDone:          "done",
	StateAwaitingInput: "awaiting_input",
	StateRefreshing:    "refreshing",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

package playmode

import "github.com/google/uuid"

// State is the editor's play state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	}
	return "Unknown"
}

// Request is a transition asked for by the UI or a keyboard shortcut.
type Request int

const (
	RequestPlay Request = iota + 1
	RequestPause
	RequestResume
	RequestStop
	// RequestTogglePause pauses while Playing and resumes while Paused
	RequestTogglePause
)

func (r Request) String() string {
	switch r {
	case RequestPlay:
		return "Play"
	case RequestPause:
		return "Pause"
	case RequestResume:
		return "Resume"
	case RequestStop:
		return "Stop"
	case RequestTogglePause:
		return "TogglePause"
	}
	return "Unknown"
}

// Event is delivered to subscribers after every state change and every
// failed transition. On failure From equals To and Err is set.
type Event struct {
	Request Request
	From    State
	To      State
	Session uuid.UUID
	Err     error
}

// Status mirrors the machine into the world as a singleton so systems can
// read it through ecs.Singleton[playmode.Status].
type Status struct {
	State   State
	Active  bool
	Session uuid.UUID
}

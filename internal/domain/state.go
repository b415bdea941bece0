package domain

import (
	"fmt"
	"time"
)

// State represents user's current step in the add-place dialogue
type State int

const (
	StateAwaitingStart State = iota
	StateAwaitingTitle
	StateAwaitingAddress

	stateCount = 3
)

var stateLabels = map[State]string{
	StateAwaitingStart:   "Начало работы",
	StateAwaitingTitle:   "Ввод названия места",
	StateAwaitingAddress: "Ввод местоположения",
}

var stateNames = map[State]string{
	StateAwaitingStart:   "awaiting_start",
	StateAwaitingTitle:   "awaiting_title",
	StateAwaitingAddress: "awaiting_address",
}

// Next returns the following state, wrapping around after StateAwaitingAddress
func (s State) Next() State {
	return (s + 1) % stateCount
}

// Label returns human-readable state description
func (s State) Label() string {
	if label, ok := stateLabels[s]; ok {
		return label
	}
	return "Неизвестно"
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Valid reports whether s is one of the known states
func (s State) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

// ParseState converts a state name back to State
func ParseState(name string) (State, error) {
	for state, n := range stateNames {
		if n == name {
			return state, nil
		}
	}
	return 0, fmt.Errorf("unknown state %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown state %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// StateData is the persisted form of user's state
type StateData struct {
	State     State     `json:"state"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Package debounce filters flickering digital inputs into single press and release events.
//
// Some controller inputs (the analog triggers in particular) toggle between 1 and 0 while held,
// so a button only counts as released once it has read 0 for a run of consecutive polls.
package debounce

import (
	"errors"
	"fmt"
)

// DefaultFloor is the counter floor used when none is configured. Its magnitude is the number of
// polls a button must read released, after the first, before a release is reported.
const DefaultFloor Floor = -5

var ErrInvalidFloor = errors.New("debounce floor must be a negative odd number")

type Transition int

const (
	Unchanged Transition = iota
	Pressed
	Released
)

func (t Transition) String() string {
	switch t {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	default:
		return "unchanged"
	}
}

// Floor is the lowest value a button counter can reach. A counter sitting on the floor means the
// button is released and its release has already been reported.
type Floor int

func ValidateFloor(floor int) (Floor, error) {
	if floor >= 0 || floor%2 == 0 {
		return DefaultFloor, fmt.Errorf("%w: %d", ErrInvalidFloor, floor)
	}
	return Floor(floor), nil
}

// State is the debounce counter for one input. The counter stays within [floor, 1].
type State struct {
	counter int
}

// NewState returns a counter for a button that starts out released.
func NewState(floor Floor) State {
	return State{counter: int(floor)}
}

// Active reports whether the button is currently considered held.
func (s State) Active(floor Floor) bool {
	return s.counter > int(floor)
}

// Step feeds one sample into the counter and returns the resulting transition.
func Step(asserted bool, s *State, floor Floor) Transition {
	if asserted {
		wasReleased := s.counter <= int(floor)
		s.counter = 1
		if wasReleased {
			return Pressed
		}
		return Unchanged
	}

	if s.counter <= int(floor) {
		s.counter = int(floor) // clamp, release was already reported
		return Unchanged
	}

	s.counter--
	if s.counter == int(floor) {
		return Released
	}
	return Unchanged
}

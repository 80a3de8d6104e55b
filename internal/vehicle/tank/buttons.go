package tank

import (
	"github.com/Speshl/gorrc_tank/internal/debounce"
	"github.com/Speshl/gorrc_tank/internal/input"
	log "github.com/sirupsen/logrus"
)

type buttonAction func(t *Tank)

var pressActions = map[input.Button]buttonAction{
	BrakeButton:  (*Tank).brakeEngaged,
	EnableButton: (*Tank).toggleEnabled,
}

var releaseActions = map[input.Button]buttonAction{
	BrakeButton: (*Tank).brakeReleased,
}

// dispatch must be called with the lock held.
func (t *Tank) dispatch(button input.Button, transition debounce.Transition) {
	log.Printf("%s %s\n", button, transition)

	var action buttonAction
	switch transition {
	case debounce.Pressed:
		action = pressActions[button]
	case debounce.Released:
		action = releaseActions[button]
	}
	if action != nil {
		action(t)
	}
}

func (t *Tank) brakeEngaged() {
	log.Println("brake engaged")
}

func (t *Tank) brakeReleased() {
	log.Println("brake released")
}

// toggleEnabled flips the enable flag, the poll that dispatched it writes it to the motors.
func (t *Tank) toggleEnabled() {
	t.state.Enabled = !t.state.Enabled
	log.Printf("motors enabled: %t\n", t.state.Enabled)
}

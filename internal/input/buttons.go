package input

// Button identifies one debounced digital input. The order is the order inputs are stepped each
// poll.
type Button int

const (
	ButtonSquare Button = iota
	ButtonCross
	ButtonCircle
	ButtonTriangle
	ButtonDpadUp
	ButtonDpadRight
	ButtonDpadDown
	ButtonDpadLeft
	ButtonL1
	ButtonR1
	ButtonL2
	ButtonR2
	ButtonShare
	ButtonOptions
	ButtonL3
	ButtonR3

	ButtonCount = int(ButtonR3) + 1
)

var buttonNames = [ButtonCount]string{
	ButtonSquare:    "Square",
	ButtonCross:     "Cross",
	ButtonCircle:    "Circle",
	ButtonTriangle:  "Triangle",
	ButtonDpadUp:    "Up",
	ButtonDpadRight: "Right",
	ButtonDpadDown:  "Down",
	ButtonDpadLeft:  "Left",
	ButtonL1:        "left bumper",
	ButtonR1:        "right bumper",
	ButtonL2:        "left trigger",
	ButtonR2:        "right trigger",
	ButtonShare:     "share button",
	ButtonOptions:   "options button",
	ButtonL3:        "left joystick",
	ButtonR3:        "right joystick",
}

func (b Button) String() string {
	if b < 0 || int(b) >= ButtonCount {
		return "unknown"
	}
	return buttonNames[b]
}

// bitSource says which snapshot byte a bit-mapped button lives in.
type bitSource int

const (
	fromButtons bitSource = iota
	fromTriggers
)

type bitButton struct {
	button Button
	source bitSource
	mask   uint8
}

// Bit-mapped inputs. The D-pad is not listed here, it comes from the hat switch.
var bitButtons = []bitButton{
	{ButtonSquare, fromButtons, 1 << 4},
	{ButtonCross, fromButtons, 1 << 5},
	{ButtonCircle, fromButtons, 1 << 6},
	{ButtonTriangle, fromButtons, 1 << 7},

	{ButtonL1, fromTriggers, 1 << 0},
	{ButtonR1, fromTriggers, 1 << 1},
	{ButtonL2, fromTriggers, 1 << 2},
	{ButtonR2, fromTriggers, 1 << 3},
	{ButtonShare, fromTriggers, 1 << 4},
	{ButtonOptions, fromTriggers, 1 << 5},
	{ButtonL3, fromTriggers, 1 << 6},
	{ButtonR3, fromTriggers, 1 << 7},
}

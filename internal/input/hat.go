package input

// Hat is the D-pad hat switch position, numbered clockwise from up.
//
//	   0
//	 7   1
//	6  8  2
//	 5   3
//	   4
type Hat uint8

const (
	HatUp Hat = iota
	HatUpRight
	HatRight
	HatDownRight
	HatDown
	HatDownLeft
	HatLeft
	HatUpLeft
	HatCentered
)

const hatMask = 0x0F

// HatFromButtons extracts the hat code from the low nibble of the buttons byte. Codes past
// HatCentered are not produced by a controller and read as centered.
func HatFromButtons(buttons uint8) Hat {
	code := Hat(buttons & hatMask)
	if code > HatCentered {
		return HatCentered
	}
	return code
}

// Directions returns the four D-pad flags for the position. Diagonals set two flags.
func (h Hat) Directions() (up, right, down, left bool) {
	switch h {
	case HatUp:
		return true, false, false, false
	case HatUpRight:
		return true, true, false, false
	case HatRight:
		return false, true, false, false
	case HatDownRight:
		return false, true, true, false
	case HatDown:
		return false, false, true, false
	case HatDownLeft:
		return false, false, true, true
	case HatLeft:
		return false, false, false, true
	case HatUpLeft:
		return true, false, false, true
	case HatCentered:
		return false, false, false, false
	default:
		return false, false, false, false
	}
}

func (h Hat) String() string {
	switch h {
	case HatUp:
		return "Up"
	case HatUpRight:
		return "Up + Right"
	case HatRight:
		return "Right"
	case HatDownRight:
		return "Down + Right"
	case HatDown:
		return "Down"
	case HatDownLeft:
		return "Down + Left"
	case HatLeft:
		return "Left"
	case HatUpLeft:
		return "Up + Left"
	default:
		return "Centered"
	}
}

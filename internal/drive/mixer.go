// Package drive mixes stick input into left/right motor commands and maps those commands onto
// H-bridge duty cycles.
package drive

const (
	MaxCommand = 127
	MinCommand = -127
)

// MotorCommand is a signed motor speed in [MinCommand, MaxCommand]. -128 is never produced so the
// magnitude always fits in 7 bits.
type MotorCommand int8

func (c MotorCommand) Magnitude() uint32 {
	if c < 0 {
		return uint32(-int16(c))
	}
	return uint32(c)
}

// Mixer does arcade style differential mixing.
type Mixer struct {
	// MirrorRight flips the sign of the right motor, for chassis where the right motor is
	// mounted facing the other way.
	MirrorRight bool
}

var defaultMixer = Mixer{MirrorRight: true}

// Mix mixes with the right motor mirrored.
func Mix(linear, rot int16) (left, right MotorCommand) {
	return defaultMixer.Mix(linear, rot)
}

// Mix turns a linear speed and a rotation into left and right commands. Positive rotation speeds
// up the right motor. When one side saturates both sides are shifted by the same amount, which
// keeps the turn rate and gives up forward speed.
//
// Only the first saturated side found (left over, left under, right over, right under) is
// corrected.
func (m Mixer) Mix(linear, rot int16) (left, right MotorCommand) {
	linear = clamp(linear)
	rot = clamp(rot)

	l := linear - rot
	r := linear + rot

	adj := int16(0)
	if l > MaxCommand {
		adj = l - MaxCommand
	} else if l < MinCommand {
		adj = l - MinCommand
	} else if r > MaxCommand {
		adj = r - MaxCommand
	} else if r < MinCommand {
		adj = r - MinCommand
	}

	l -= adj
	r -= adj

	if m.MirrorRight {
		r = -r
	}

	return MotorCommand(clamp(l)), MotorCommand(clamp(r))
}

func clamp(value int16) int16 {
	if value > MaxCommand {
		return MaxCommand
	}
	if value < MinCommand {
		return MinCommand
	}
	return value
}

package drive

// DefaultPwmFloor is the duty offset added to any nonzero command so the lowest speed still
// overcomes motor static friction. It is not calibrated for any particular chassis.
const DefaultPwmFloor = 80

// DutyPair is the duty for one motor driver: A drives reverse, B drives forward.
type DutyPair struct {
	A uint32
	B uint32
}

// DutyCeiling is the largest duty ToDuty produces for a floor, and the PWM cycle length the
// outputs are scaled against.
func DutyCeiling(pwmFloor uint32) uint32 {
	return pwmFloor + MaxCommand
}

// ToDuty maps a command onto the two driver channels. A zero command coasts with both channels
// off, or short brakes with both at the ceiling.
func ToDuty(command MotorCommand, brake bool, pwmFloor uint32) DutyPair {
	switch {
	case command == 0 && brake:
		ceiling := DutyCeiling(pwmFloor)
		return DutyPair{A: ceiling, B: ceiling}
	case command == 0:
		return DutyPair{}
	case command < 0:
		return DutyPair{A: pwmFloor + command.Magnitude()}
	default:
		return DutyPair{B: pwmFloor + command.Magnitude()}
	}
}

func (d DutyPair) Braking() bool {
	return d.A != 0 && d.A == d.B
}

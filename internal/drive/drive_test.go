package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMixSaturatedRight(t *testing.T) {
	left, right := Mix(100, 80)
	assert.Equal(t, MotorCommand(-33), left)
	assert.Equal(t, MotorCommand(-127), right)

	left, right = Mixer{MirrorRight: false}.Mix(100, 80)
	assert.Equal(t, MotorCommand(-33), left)
	assert.Equal(t, MotorCommand(127), right)
}

func TestMix(t *testing.T) {
	tests := []struct {
		name        string
		linear, rot int16
		left, right MotorCommand
	}{
		{"stopped", 0, 0, 0, 0},
		{"forward", 127, 0, 127, -127},
		{"reverse", -127, 0, -127, 127},
		{"spin right", 0, 127, -127, -127},
		{"spin left", 0, -127, 127, 127},
		{"left over", 127, -127, 127, 127},
		{"left under", -100, 60, -127, 7},
		{"right under", -100, -60, -7, 127},
		{"vertical stick full down", 128, 0, 127, -127},
		{"horizontal stick full left", 0, -128, 127, 127},
		{"out of range both ways", 300, -300, 127, 127},
	}

	for _, tt := range tests {
		left, right := Mix(tt.linear, tt.rot)
		assert.Equal(t, tt.left, left, tt.name+" left")
		assert.Equal(t, tt.right, right, tt.name+" right")
	}
}

func TestMixStaysInRangeAndShiftsUniformly(t *testing.T) {
	mixer := Mixer{MirrorRight: false}
	for linear := int16(MinCommand); linear <= MaxCommand; linear++ {
		for rot := int16(MinCommand); rot <= MaxCommand; rot++ {
			left, right := mixer.Mix(linear, rot)
			if left < MinCommand || left > MaxCommand || right < MinCommand || right > MaxCommand {
				t.Fatalf("mix(%d, %d) = (%d, %d) out of range", linear, rot, left, right)
			}
			if int16(right)-int16(left) != 2*rot {
				t.Fatalf("mix(%d, %d) = (%d, %d) lost rotation differential", linear, rot, left, right)
			}
		}
	}
}

func TestMirroredMixNegatesRight(t *testing.T) {
	for _, in := range [][2]int16{{10, 20}, {-50, 90}, {127, 127}, {-127, -3}} {
		l1, r1 := Mixer{MirrorRight: true}.Mix(in[0], in[1])
		l2, r2 := Mixer{MirrorRight: false}.Mix(in[0], in[1])
		assert.Equal(t, l2, l1)
		assert.Equal(t, -r2, r1)
	}
}

func TestToDuty(t *testing.T) {
	assert.Equal(t, DutyPair{}, ToDuty(0, false, DefaultPwmFloor))
	assert.Equal(t, DutyPair{A: 207, B: 207}, ToDuty(0, true, DefaultPwmFloor))
	assert.Equal(t, DutyPair{A: 80 + 33}, ToDuty(-33, false, DefaultPwmFloor))
	assert.Equal(t, DutyPair{B: 80 + 127}, ToDuty(127, false, DefaultPwmFloor))
	assert.Equal(t, DutyPair{A: 127}, ToDuty(-127, true, 0))
	assert.Equal(t, uint32(207), DutyCeiling(DefaultPwmFloor))
	assert.True(t, ToDuty(0, true, 10).Braking())
	assert.False(t, ToDuty(0, false, 10).Braking())
}

func TestToDutyOneChannelPerDirection(t *testing.T) {
	for _, floor := range []uint32{0, 1, 80, 1000} {
		for c := MinCommand; c <= MaxCommand; c++ {
			command := MotorCommand(c)
			for _, brake := range []bool{false, true} {
				duty := ToDuty(command, brake, floor)
				if command == 0 {
					continue
				}
				expected := floor + command.Magnitude()
				if command < 0 {
					assert.Equal(t, DutyPair{A: expected}, duty)
				} else {
					assert.Equal(t, DutyPair{B: expected}, duty)
				}
			}
		}
	}
}

package vehicle

import (
	"context"
	"time"

	"github.com/Speshl/gorrc_tank/internal/models"
)

// DutySink is the motor driver hardware. A slice is one motor: channel A drives it in reverse,
// channel B forward, both high brakes. Duty values are relative to the cycle length given at
// construction.
type DutySink interface {
	Init() error
	SetDuty(slice int, channelA, channelB uint32) error
	SetEnabled(slice int, enabled bool) error
	Stop() error
}

// SnapshotSource hands out the latest controller snapshot without blocking.
type SnapshotSource interface {
	Latest() (models.RawInputSnapshot, time.Time)
}

type Vehicle interface {
	Init() error
	Start(context.Context) error
}

// ScaleDuty maps a duty in [0, cycleLength] onto [0, top].
func ScaleDuty(duty, cycleLength, top uint32) uint32 {
	if cycleLength == 0 {
		return 0
	}
	if duty >= cycleLength {
		return top
	}
	return uint32(uint64(duty) * uint64(top) / uint64(cycleLength))
}

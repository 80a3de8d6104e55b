package tank

import (
	"sync"
	"time"

	"github.com/Speshl/gorrc_tank/internal/config"
	"github.com/Speshl/gorrc_tank/internal/debounce"
	"github.com/Speshl/gorrc_tank/internal/drive"
	"github.com/Speshl/gorrc_tank/internal/input"
	"github.com/Speshl/gorrc_tank/internal/models"
	"github.com/Speshl/gorrc_tank/internal/vehicle"
	"github.com/prometheus/procfs"
)

const (
	LeftSlice  = 0
	RightSlice = 1
	MotorCount = 2

	// Fixed actions
	BrakeButton  = input.ButtonCircle
	EnableButton = input.ButtonOptions

	NetStatsInterval = time.Second
	ErrorLogEvery    = 100
)

type Status int

const (
	StatusUninitialized Status = iota
	StatusRunning
)

func (s Status) String() string {
	if s == StatusRunning {
		return "running"
	}
	return "uninitialized"
}

// NetStatsReader returns link statistics for the HUD, ok is false when none are available.
type NetStatsReader func() (stats procfs.NetDevLine, ok bool)

type Tank struct {
	cfg    config.DriveConfig
	lock   sync.RWMutex
	status Status

	source vehicle.SnapshotSource
	sink   vehicle.DutySink
	mixer  drive.Mixer

	pwmFloor    uint32
	failsafe    time.Duration
	panel       *debounce.Panel
	transitions []debounce.Transition

	state       TankState
	writeErrors int

	hudChannel chan models.Hud
	netStats   NetStatsReader
	now        func() time.Time
}

// TankState is what was last applied to the motors.
type TankState struct {
	Left      drive.MotorCommand
	Right     drive.MotorCommand
	LeftDuty  drive.DutyPair
	RightDuty drive.DutyPair
	Brake     bool
	Enabled   bool
	Failsafe  bool
	Hat       input.Hat
}

package tank

import (
	"context"
	"fmt"
	"time"

	"github.com/Speshl/gorrc_tank/internal/config"
	"github.com/Speshl/gorrc_tank/internal/debounce"
	"github.com/Speshl/gorrc_tank/internal/drive"
	"github.com/Speshl/gorrc_tank/internal/input"
	"github.com/Speshl/gorrc_tank/internal/models"
	"github.com/Speshl/gorrc_tank/internal/vehicle"
	log "github.com/sirupsen/logrus"
)

func NewTank(cfg config.DriveConfig, source vehicle.SnapshotSource, sink vehicle.DutySink, hudChannel chan models.Hud) *Tank {
	log.Println("setting up tank")

	floor, err := debounce.ValidateFloor(cfg.DebounceFloor)
	if err != nil {
		log.Warnf("%s, using %d", err, floor)
	}

	return &Tank{
		cfg:         cfg,
		source:      source,
		sink:        sink,
		mixer:       drive.Mixer{MirrorRight: cfg.MirrorRight},
		pwmFloor:    uint32(cfg.PwmFloor),
		failsafe:    time.Duration(cfg.Failsafe) * time.Millisecond,
		panel:       debounce.NewPanel(floor, input.ButtonCount),
		transitions: make([]debounce.Transition, input.ButtonCount),
		state:       TankState{Enabled: true, Hat: input.HatCentered},
		hudChannel:  hudChannel,
		now:         time.Now,
	}
}

// CycleLength is the PWM cycle the motor drivers scale duty values against.
func CycleLength(cfg config.DriveConfig) uint32 {
	return drive.DutyCeiling(uint32(cfg.PwmFloor))
}

func (t *Tank) Init() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	err := t.sink.Init()
	if err != nil {
		return fmt.Errorf("failed initializing tank motor driver: %w", err)
	}

	for slice := 0; slice < MotorCount; slice++ {
		err = t.sink.SetEnabled(slice, t.state.Enabled)
		if err != nil {
			return fmt.Errorf("failed enabling motor %d: %w", slice, err)
		}
	}

	// coast until the first poll
	t.applyState(t.state)
	t.status = StatusRunning
	return nil
}

func (t *Tank) Status() Status {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.status
}

func (t *Tank) State() TankState {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.state
}

func (t *Tank) Stop() error {
	log.Println("stopping tank")
	t.lock.Lock()
	defer t.lock.Unlock()

	for slice := 0; slice < MotorCount; slice++ {
		err := t.sink.SetDuty(slice, 0, 0)
		if err != nil {
			log.Errorf("failed coasting motor %d: %s", slice, err.Error())
		}
		err = t.sink.SetEnabled(slice, false)
		if err != nil {
			log.Errorf("failed disabling motor %d: %s", slice, err.Error())
		}
	}

	err := t.sink.Stop()
	if err != nil {
		return fmt.Errorf("failed stopping motor driver: %w", err)
	}
	return nil
}

// Start polls the snapshot source until ctx is done. Hardware errors are logged and never stop
// the loop.
func (t *Tank) Start(ctx context.Context) error {
	if t.Status() != StatusRunning {
		return fmt.Errorf("tank not initialized")
	}
	log.Println("starting tank")

	if t.netStats == nil {
		t.netStats = NewNetStatsReader(t.cfg.NetInterface)
	}

	defer func() {
		err := t.Stop()
		if err != nil {
			log.Errorf("failed stopping tank: %s", err.Error())
		}
	}()

	pollTicker := time.NewTicker(time.Duration(t.cfg.PollInterval) * time.Millisecond)
	defer pollTicker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("stopping tank poll loop: %s\n", ctx.Err().Error())
			return ctx.Err()
		case <-pollTicker.C:
			t.step()
			t.updateHud()
		}
	}
}

// step runs one poll: decode, debounce, mix, map and write the motors.
func (t *Tank) step() {
	t.lock.Lock()
	defer t.lock.Unlock()

	snapshot, updated := t.source.Latest()
	failsafe := t.failsafeActive(updated)
	if failsafe != t.state.Failsafe {
		if failsafe {
			log.Warnf("no controller input for %s, failsafe engaged", t.failsafe)
		} else {
			log.Println("controller input restored")
		}
	}
	if failsafe {
		snapshot = models.NeutralSnapshot()
	}

	decoded := input.Decode(snapshot)
	t.panel.Step(decoded.Buttons[:], t.transitions)
	for i := range t.transitions {
		if t.transitions[i] != debounce.Unchanged {
			t.dispatch(input.Button(i), t.transitions[i])
		}
	}
	t.logSticks(decoded.Axes)

	state := t.state
	state.Failsafe = failsafe
	state.Hat = decoded.Hat
	state.Brake = t.panel.Active(int(BrakeButton))
	state.Left, state.Right = t.mixer.Mix(decoded.Axes.LY, decoded.Axes.RX)
	if state.Brake {
		state.Left, state.Right = 0, 0
	}

	t.applyState(state)
}

func (t *Tank) failsafeActive(updated time.Time) bool {
	if t.failsafe <= 0 {
		return false
	}
	return updated.IsZero() || t.now().Sub(updated) > t.failsafe
}

// applyState must be called with the lock held.
func (t *Tank) applyState(state TankState) {
	if state.Enabled {
		state.LeftDuty = drive.ToDuty(state.Left, state.Brake, t.pwmFloor)
		state.RightDuty = drive.ToDuty(state.Right, state.Brake, t.pwmFloor)
	} else {
		state.LeftDuty = drive.DutyPair{}
		state.RightDuty = drive.DutyPair{}
	}
	t.state = state

	t.writeMotor(LeftSlice, state.LeftDuty, state.Enabled)
	t.writeMotor(RightSlice, state.RightDuty, state.Enabled)
}

// writeMotor sets the duty and enable line of one motor, once each per poll.
func (t *Tank) writeMotor(slice int, duty drive.DutyPair, enabled bool) {
	err := t.sink.SetDuty(slice, duty.A, duty.B)
	if err != nil {
		t.writeError(fmt.Errorf("failed setting motor %d duty: %w", slice, err))
	}
	err = t.sink.SetEnabled(slice, enabled)
	if err != nil {
		t.writeError(fmt.Errorf("failed setting motor %d enabled: %w", slice, err))
	}
}

func (t *Tank) writeError(err error) {
	t.writeErrors++
	if t.writeErrors%ErrorLogEvery == 1 {
		log.Errorf("%s (%d errors)", err.Error(), t.writeErrors)
	}
}

func (t *Tank) logSticks(axes input.Axes) {
	if !log.IsLevelEnabled(log.DebugLevel) {
		return
	}
	threshold := int16(t.cfg.StickThreshold)
	if deflected(axes.LY, threshold) {
		log.Debugf("left joystick moved vertically: %d", axes.LY)
	}
	if deflected(axes.LX, threshold) {
		log.Debugf("left joystick moved horizontally: %d", axes.LX)
	}
	if deflected(axes.RY, threshold) {
		log.Debugf("right joystick moved vertically: %d", axes.RY)
	}
	if deflected(axes.RX, threshold) {
		log.Debugf("right joystick moved horizontally: %d", axes.RX)
	}
}

func deflected(value, threshold int16) bool {
	return value > threshold || value < -threshold
}

package pipwm

import (
	"fmt"

	"github.com/Speshl/gorrc_tank/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/stianeikeland/go-rpio/v4"
)

const (
	MaxSupportedMotors = 2
	NoEnablePin        = -1
)

// PwmPins are the BCM pins with hardware PWM, one per PWM channel.
var PwmPins = map[int]bool{12: true, 13: true, 18: true, 19: true}

// CommandDriver drives L298N style bridges from the Pi header: one hardware PWM pin for speed
// and two direction pins per motor.
type CommandDriver struct {
	cfg         config.CommandConfig
	cycleLength uint32
	motors      []Motor
}

type Motor struct {
	name      string
	pwm       rpio.Pin
	dirA      rpio.Pin
	dirB      rpio.Pin
	enable    rpio.Pin
	hasEnable bool
}

func NewCommand(cfg config.CommandConfig, cycleLength uint32) *CommandDriver {
	return &CommandDriver{
		cfg:         cfg,
		cycleLength: cycleLength,
	}
}

func (c *CommandDriver) Init() error {
	err := rpio.Open()
	if err != nil {
		return fmt.Errorf("failed opening rpio: %w", err)
	}

	motors := make([]Motor, 0, MaxSupportedMotors)
	for i := range c.cfg.MotorCfgs {
		if i >= MaxSupportedMotors {
			break
		}
		motorCfg := c.cfg.MotorCfgs[i]
		if !PwmPins[motorCfg.PwmPin] {
			return fmt.Errorf("motor %s pwm pin %d has no hardware pwm", motorCfg.Name, motorCfg.PwmPin)
		}

		motor := Motor{
			name: motorCfg.Name,
			pwm:  rpio.Pin(motorCfg.PwmPin),
			dirA: rpio.Pin(motorCfg.ChannelA),
			dirB: rpio.Pin(motorCfg.ChannelB),
		}
		motor.pwm.Mode(rpio.Pwm)
		motor.pwm.Freq(c.cfg.PwmFrequency * int(c.cycleLength))
		motor.pwm.DutyCycle(0, c.cycleLength)
		motor.dirA.Output()
		motor.dirA.Low()
		motor.dirB.Output()
		motor.dirB.Low()

		if motorCfg.EnablePin != NoEnablePin {
			motor.enable = rpio.Pin(motorCfg.EnablePin)
			motor.hasEnable = true
			motor.enable.Output()
			motor.enable.Low()
		}

		motors = append(motors, motor)
		log.Printf("motor added: %s (pwm %d, dir %d/%d)\n", motor.name, motorCfg.PwmPin, motorCfg.ChannelA, motorCfg.ChannelB)
	}
	c.motors = motors
	return nil
}

func (c *CommandDriver) Stop() error {
	for i := range c.motors {
		err := c.SetDuty(i, 0, 0)
		if err != nil {
			log.Errorf("failed stopping motor %s: %s", c.motors[i].name, err.Error())
		}
		if c.motors[i].hasEnable {
			c.motors[i].enable.Low()
		}
	}
	if c.motors == nil {
		return nil
	}
	err := rpio.Close()
	if err != nil {
		return fmt.Errorf("failed closing rpio: %w", err)
	}
	return nil
}

func (c *CommandDriver) SetDuty(slice int, channelA, channelB uint32) error {
	if slice < 0 || slice >= len(c.motors) {
		return fmt.Errorf("motor slice out of bounds - slice: %d motors: %d", slice, len(c.motors))
	}
	motor := c.motors[slice]

	dirA, dirB, duty := splitDuty(channelA, channelB)
	motor.dirA.Write(level(dirA))
	motor.dirB.Write(level(dirB))
	if duty > c.cycleLength {
		duty = c.cycleLength
	}
	motor.pwm.DutyCycle(duty, c.cycleLength)
	return nil
}

func (c *CommandDriver) SetEnabled(slice int, enabled bool) error {
	if slice < 0 || slice >= len(c.motors) {
		return fmt.Errorf("motor slice out of bounds - slice: %d motors: %d", slice, len(c.motors))
	}
	if c.motors[slice].hasEnable {
		c.motors[slice].enable.Write(level(enabled))
	}
	return nil
}

// splitDuty turns a channel pair into direction pin levels and one speed duty. Both channels
// set is a brake: both direction pins high.
func splitDuty(channelA, channelB uint32) (dirA, dirB bool, duty uint32) {
	dirA = channelA != 0
	dirB = channelB != 0
	duty = max(channelA, channelB)
	return dirA, dirB, duty
}

func level(high bool) rpio.State {
	if high {
		return rpio.High
	}
	return rpio.Low
}

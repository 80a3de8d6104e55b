package command

import (
	"fmt"

	"github.com/Speshl/gorrc_tank/internal/config"
	"github.com/Speshl/gorrc_tank/internal/vehicle"
	"github.com/googolgl/go-i2c"
	"github.com/googolgl/go-pca9685"
	log "github.com/sirupsen/logrus"
	"github.com/warthog618/go-gpiocdev"
)

const (
	MaxCounts   = 4095 // 12 bit
	FullCounts  = 4096 // bit 4 of the on/off high register, full on or full off
	Consumer    = "gorrc_tank"
	NoEnablePin = -1

	MaxSupportedChannels = 16
)

// Command drives each motor from two PCA9685 channels. Optional standby lines are driven
// through the gpio character device.
type Command struct {
	cfg         config.CommandConfig
	cycleLength uint32
	driver      *pca9685.PCA9685
	motors      []Motor
}

type Motor struct {
	name     string
	channelA int
	channelB int
	enable   *gpiocdev.Line
}

func NewCommand(cfg config.CommandConfig, cycleLength uint32) *Command {
	return &Command{
		cfg:         cfg,
		cycleLength: cycleLength,
	}
}

func (c *Command) Init() error {
	i2c, err := i2c.New(c.cfg.Address, c.cfg.I2CDevice)
	if err != nil {
		return fmt.Errorf("error starting i2c with address - %w", err)
	}

	c.driver, err = pca9685.New(i2c, nil)
	if err != nil {
		return fmt.Errorf("error getting pwm driver - %w", err)
	}

	err = c.driver.SetFreq(float32(c.cfg.PwmFrequency))
	if err != nil {
		return fmt.Errorf("error setting pwm frequency %d - %w", c.cfg.PwmFrequency, err)
	}

	motors := make([]Motor, 0, len(c.cfg.MotorCfgs))
	for i := range c.cfg.MotorCfgs {
		motorCfg := c.cfg.MotorCfgs[i]
		if !validChannel(motorCfg.ChannelA) || !validChannel(motorCfg.ChannelB) {
			return fmt.Errorf("motor %s has invalid channels %d/%d", motorCfg.Name, motorCfg.ChannelA, motorCfg.ChannelB)
		}

		motor := Motor{
			name:     motorCfg.Name,
			channelA: motorCfg.ChannelA,
			channelB: motorCfg.ChannelB,
		}

		if motorCfg.EnablePin != NoEnablePin {
			motor.enable, err = gpiocdev.RequestLine(c.cfg.GpioChip, motorCfg.EnablePin,
				gpiocdev.AsOutput(0),
				gpiocdev.WithConsumer(Consumer))
			if err != nil {
				return fmt.Errorf("failed requesting enable line %d for motor %s: %w", motorCfg.EnablePin, motorCfg.Name, err)
			}
		}

		motors = append(motors, motor)
		log.Printf("motor added: %s (channels %d/%d)\n", motor.name, motor.channelA, motor.channelB)
	}
	c.motors = motors
	return nil
}

func (c *Command) Stop() error {
	log.Println("stopping pca9685 motors")
	if c.driver == nil {
		return nil
	}
	var firstErr error
	for i := range c.motors {
		err := c.SetDuty(i, 0, 0)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if c.motors[i].enable != nil {
			err = c.motors[i].enable.SetValue(0)
			if err != nil {
				log.Errorf("failed disabling motor %s: %s", c.motors[i].name, err.Error())
			}
			err = c.motors[i].enable.Close()
			if err != nil {
				log.Errorf("failed releasing enable line for motor %s: %s", c.motors[i].name, err.Error())
			}
		}
	}
	return firstErr
}

func (c *Command) SetDuty(slice int, channelA, channelB uint32) error {
	motor, err := c.motor(slice)
	if err != nil {
		return err
	}

	on, off := c.channelCounts(channelA)
	err = c.driver.SetChannel(motor.channelA, on, off)
	if err != nil {
		return fmt.Errorf("failed setting channel a - motor: %s duty: %d - error: %w", motor.name, channelA, err)
	}

	on, off = c.channelCounts(channelB)
	err = c.driver.SetChannel(motor.channelB, on, off)
	if err != nil {
		return fmt.Errorf("failed setting channel b - motor: %s duty: %d - error: %w", motor.name, channelB, err)
	}
	return nil
}

// channelCounts maps a duty onto on/off counts. The ends use the full off and full on bits so
// coast is fully low and brake fully high.
func (c *Command) channelCounts(duty uint32) (on int, off int) {
	switch {
	case duty == 0 || c.cycleLength == 0:
		return 0, FullCounts
	case duty >= c.cycleLength:
		return FullCounts, 0
	default:
		return 0, int(vehicle.ScaleDuty(duty, c.cycleLength, MaxCounts))
	}
}

func (c *Command) SetEnabled(slice int, enabled bool) error {
	motor, err := c.motor(slice)
	if err != nil {
		return err
	}

	if motor.enable == nil {
		return nil
	}

	value := 0
	if enabled {
		value = 1
	}
	err = motor.enable.SetValue(value)
	if err != nil {
		return fmt.Errorf("failed setting enable line - motor: %s - error: %w", motor.name, err)
	}
	return nil
}

func (c *Command) motor(slice int) (Motor, error) {
	if slice < 0 || slice >= len(c.motors) {
		return Motor{}, fmt.Errorf("motor slice out of bounds - slice: %d motors: %d", slice, len(c.motors))
	}
	return c.motors[slice], nil
}

func validChannel(channel int) bool {
	return channel >= 0 && channel < MaxSupportedChannels
}

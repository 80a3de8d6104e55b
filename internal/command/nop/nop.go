// Package nop is a motor driver that only logs, for running the client on a bench without
// motor hardware attached.
package nop

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

type Command struct {
	lock    sync.Mutex
	motors  int
	duty    [][2]uint32
	enabled []bool
}

func NewCommand(motors int) *Command {
	return &Command{
		motors:  motors,
		duty:    make([][2]uint32, motors),
		enabled: make([]bool, motors),
	}
}

func (c *Command) Init() error {
	log.Printf("nop motor driver with %d motors, nothing will move\n", c.motors)
	return nil
}

func (c *Command) Stop() error {
	log.Println("stopping nop motor driver")
	return nil
}

func (c *Command) SetDuty(slice int, channelA, channelB uint32) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if slice < 0 || slice >= c.motors {
		return fmt.Errorf("motor slice out of bounds - slice: %d motors: %d", slice, c.motors)
	}
	if c.duty[slice] != [2]uint32{channelA, channelB} {
		log.WithField("slice", slice).Debugf("duty %d/%d", channelA, channelB)
	}
	c.duty[slice] = [2]uint32{channelA, channelB}
	return nil
}

func (c *Command) SetEnabled(slice int, enabled bool) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if slice < 0 || slice >= c.motors {
		return fmt.Errorf("motor slice out of bounds - slice: %d motors: %d", slice, c.motors)
	}
	if c.enabled[slice] != enabled {
		log.WithField("slice", slice).Debugf("enabled %t", enabled)
	}
	c.enabled[slice] = enabled
	return nil
}

// Duty returns the last duty pair written to a slice.
func (c *Command) Duty(slice int) (uint32, uint32) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.duty[slice][0], c.duty[slice][1]
}

func (c *Command) Enabled(slice int) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.enabled[slice]
}

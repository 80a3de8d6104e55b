package input

import (
	"sync"
	"time"

	"github.com/Speshl/gorrc_tank/internal/models"
)

// Cell is a single slot holding the most recent snapshot. Writers overwrite, readers always get
// the newest value; nothing is queued.
type Cell struct {
	lock     sync.RWMutex
	snapshot models.RawInputSnapshot
	updated  time.Time
	stores   uint64
	now      func() time.Time
}

func NewCell() *Cell {
	return &Cell{
		now: time.Now,
	}
}

func (c *Cell) Store(snapshot models.RawInputSnapshot) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.snapshot = snapshot
	c.updated = c.now()
	c.stores++
}

// Latest returns the newest snapshot and when it was stored. Before the first store it returns
// the all-zero snapshot and the zero time.
func (c *Cell) Latest() (models.RawInputSnapshot, time.Time) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.snapshot, c.updated
}

func (c *Cell) Stores() uint64 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.stores
}

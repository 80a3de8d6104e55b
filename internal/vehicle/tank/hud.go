package tank

import (
	"fmt"
	"time"

	"github.com/Speshl/gorrc_tank/internal/models"
	"github.com/prometheus/procfs"
	log "github.com/sirupsen/logrus"
)

// NewNetStatsReader reads interface counters from procfs, at most once per NetStatsInterval.
func NewNetStatsReader(iface string) NetStatsReader {
	p, err := procfs.Self()
	if err != nil {
		log.Warnf("procfs could not get process, no link stats on hud: %s", err.Error())
		return func() (procfs.NetDevLine, bool) { return procfs.NetDevLine{}, false }
	}

	var (
		last     procfs.NetDevLine
		found    bool
		lastRead time.Time
		warned   bool
	)
	return func() (procfs.NetDevLine, bool) {
		if !lastRead.IsZero() && time.Since(lastRead) < NetStatsInterval {
			return last, found
		}
		lastRead = time.Now()

		netDev, err := p.NetDev()
		if err != nil {
			if !warned {
				log.Warnf("failed getting netstat: %s", err.Error())
				warned = true
			}
			found = false
			return last, found
		}

		last, found = netDev[iface]
		if !found && !warned {
			log.Warnf("failed getting %s stats: not found", iface)
			warned = true
		}
		return last, found
	}
}

func (t *Tank) updateHud() {
	if t.hudChannel == nil {
		return
	}

	state := t.State()
	lines := make([]string, 0, 2)
	if t.netStats != nil {
		if netInfo, ok := t.netStats(); ok {
			lines = append(lines, fmt.Sprintf("RxPkt:%d | RxErr:%d | RxDrop: %d | TxPkt:%d | TxErr:%d | TxDrop: %d",
				netInfo.RxPackets,
				netInfo.RxErrors,
				netInfo.RxDropped,
				netInfo.TxPackets,
				netInfo.TxErrors,
				netInfo.TxDropped,
			))
		}
	}
	lines = append(lines, hudLine(state))

	select {
	case t.hudChannel <- models.Hud{Lines: lines}:
	default:
		log.Debug("tank hud channel full, skipping")
	}
}

func hudLine(state TankState) string {
	link := "ok"
	if state.Failsafe {
		link = "lost"
	}
	return fmt.Sprintf("L:%d | R:%d | Brake:%t | Enabled:%t | Dpad:%s | Link:%s",
		state.Left,
		state.Right,
		state.LeftDuty.Braking() || state.RightDuty.Braking(),
		state.Enabled,
		state.Hat,
		link,
	)
}

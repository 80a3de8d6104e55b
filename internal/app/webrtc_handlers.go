package app

import (
	"encoding/json"
	"time"

	"github.com/Speshl/gorrc_tank/internal/input"
	"github.com/Speshl/gorrc_tank/internal/models"
	"github.com/pion/webrtc/v3"
	log "github.com/sirupsen/logrus"
)

const PingSourceName = "car"

func (c *Connection) onICEConnectionStateChange(connectionState webrtc.ICEConnectionState) {
	log.Printf("Connection State has changed: %s\n", connectionState.String())
	if connectionState == webrtc.ICEConnectionStateFailed {
		log.Warn("ice connection failed, tank will failsafe once snapshots stop")
	}
}

func (c *Connection) onICECandidate(candidate *webrtc.ICECandidate) {
	if candidate != nil {
		log.Debugf("recieved ICE candidate from client: %s", candidate.String())
	}
}

func (c *Connection) onDataChannel(d *webrtc.DataChannel) {
	log.Printf("new data channel: %s\n", d.Label())

	d.OnOpen(func() {
		log.Printf("data channel open: %s\n", d.Label())
		c.outputLock.Lock()
		defer c.outputLock.Unlock()
		switch d.Label() {
		case "hud":
			c.HudOutput = d
		case "ping":
			c.PingOutput = d
		}
	})

	switch d.Label() {
	case "command":
		d.OnMessage(func(msg webrtc.DataChannelMessage) { c.onCommandHandler(msg.Data) })
	case "ping":
		d.OnMessage(func(msg webrtc.DataChannelMessage) { c.onPingHandler(msg.Data) })
	case "hud":
	default:
		log.Warnf("recieved message on unsupported channel: %s", d.Label())
	}
}

func (c *Connection) onCommandHandler(data []byte) {
	snapshot, err := input.ParseSnapshot(data)
	if err != nil {
		log.Debugf("failed parsing snapshot: %s", err.Error())
		return
	}
	c.Snapshots.Store(snapshot)
}

func (c *Connection) onPingHandler(data []byte) {
	ping := models.Ping{}
	err := json.Unmarshal(data, &ping)
	if err != nil {
		log.Printf("failed unmarshalling data channel msg: %s\n", data)
		return
	}
	if ping.Source != PingSourceName {
		return
	}

	roundTripTime := time.Now().UnixMilli() - ping.TimeStamp
	log.Debugf("ping: %d ms", roundTripTime)
	select {
	case c.PingInput <- roundTripTime:
	default:
	}
}

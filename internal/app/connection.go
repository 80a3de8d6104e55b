package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Speshl/gorrc_tank/internal/input"
	"github.com/Speshl/gorrc_tank/internal/models"
	socketio "github.com/googollee/go-socket.io"
	"github.com/pion/webrtc/v3"
	log "github.com/sirupsen/logrus"
)

const (
	PingInterval = 1 * time.Second
	HudInterval  = 33 * time.Millisecond //30hz
)

type Connection struct {
	Socket         socketio.Conn
	PeerConnection *webrtc.PeerConnection
	Ctx            context.Context
	CtxCancel      context.CancelFunc

	Snapshots  *input.Cell
	HudChannel chan models.Hud

	outputLock sync.RWMutex
	HudOutput  *webrtc.DataChannel
	PingOutput *webrtc.DataChannel
	PingInput  chan int64
}

func NewConnection(socketConn socketio.Conn, snapshots *input.Cell, hudChan chan models.Hud, stunServer string) (*Connection, error) {
	log.Printf("Creating User Connection %s\n", socketConn.ID())

	peerConn, err := webrtc.NewPeerConnection(webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{URLs: []string{stunServer}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed creating peer connection: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		Socket:         socketConn,
		PeerConnection: peerConn,
		Ctx:            ctx,
		CtxCancel:      cancel,
		Snapshots:      snapshots,
		HudChannel:     hudChan,
		PingInput:      make(chan int64, 10),
	}, nil
}

func (c *Connection) Disconnect() {
	log.Println("user disconnecting")
	c.CtxCancel()
	if c.PeerConnection != nil {
		err := c.PeerConnection.Close()
		if err != nil {
			log.Warnf("failed closing peer connection: %s", err.Error())
		}
	}
}

func (c *Connection) RegisterHandlers() {
	log.Println("start event listeners")
	// Notifies when the peer has connected/disconnected
	c.PeerConnection.OnICEConnectionStateChange(c.onICEConnectionStateChange)

	c.PeerConnection.OnICECandidate(c.onICECandidate)

	c.PeerConnection.OnDataChannel(c.onDataChannel)

	go c.updateUser()
}

// updateUser pings the user and forwards the latest hud, throttled to HudInterval.
func (c *Connection) updateUser() {
	pingTicker := time.NewTicker(PingInterval)
	defer pingTicker.Stop()
	hudTicker := time.NewTicker(HudInterval)
	defer hudTicker.Stop()

	sent := true
	hudToSend := models.Hud{}
	lastPing := int64(0)
	for {
		select {
		case <-c.Ctx.Done():
			log.Printf("stopping user updater: %s\n", c.Ctx.Err().Error())
			return
		case hud, ok := <-c.HudChannel:
			if !ok {
				log.Println("hud channel closed")
				return
			}
			hudToSend = hud
			sent = false
		case <-pingTicker.C:
			err := c.sendPing()
			if err != nil {
				log.Warnf("failed sending ping: %s", err.Error())
			}
		case recievedPing, ok := <-c.PingInput:
			if !ok {
				log.Println("ping channel closed")
				return
			}
			lastPing = recievedPing
		case <-hudTicker.C:
			if sent {
				continue
			}
			sent = true
			err := c.sendHud(withPing(hudToSend, lastPing))
			if err != nil {
				log.Warnf("failed sending hud: %s", err.Error())
			}
		}
	}
}

func (c *Connection) sendPing() error {
	c.outputLock.RLock()
	output := c.PingOutput
	c.outputLock.RUnlock()
	if output == nil {
		return nil
	}

	data, err := json.Marshal(models.Ping{
		TimeStamp: time.Now().UnixMilli(),
		Source:    PingSourceName,
	})
	if err != nil {
		return err
	}
	return output.Send(data)
}

func (c *Connection) sendHud(hud models.Hud) error {
	c.outputLock.RLock()
	output := c.HudOutput
	c.outputLock.RUnlock()
	if output == nil {
		return nil
	}

	encodedMsg, err := encode(hud)
	if err != nil {
		return err
	}
	return output.SendText(encodedMsg)
}

// withPing appends the round trip to the first line without touching the caller's lines.
func withPing(hud models.Hud, ping int64) models.Hud {
	if len(hud.Lines) == 0 {
		return hud
	}
	lines := make([]string, len(hud.Lines))
	copy(lines, hud.Lines)
	lines[0] = fmt.Sprintf("%s | Ping:%dms", lines[0], ping)
	return models.Hud{Lines: lines}
}

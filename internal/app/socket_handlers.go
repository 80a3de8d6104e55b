package app

import (
	"github.com/Speshl/gorrc_tank/internal/input"
	"github.com/Speshl/gorrc_tank/internal/models"
	socketio "github.com/googollee/go-socket.io"
	"github.com/pion/webrtc/v3"
	log "github.com/sirupsen/logrus"
)

func (a *App) onOffer(socketConn socketio.Conn, msgs []string) {
	if len(msgs) == 0 {
		log.Warnf("offer from %s had no msgs", socketConn.ID())
		return
	}
	if len(msgs) != 1 {
		log.Printf("offer from %s had to many msgs: %d\n", socketConn.ID(), len(msgs))
	}
	msg := msgs[0]

	offer := models.Offer{}
	err := decode(msg, &offer)
	if err != nil {
		log.Printf("offer from %s failed unmarshaling: %s\n - msg - %s", socketConn.ID(), err.Error(), msg)
		return
	}

	if offer.SeatNumber < 0 || offer.SeatNumber >= a.cfg.ServerCfg.SeatCount {
		log.Printf("offer was for unsupported seat number: %d\n", offer.SeatNumber)
		return
	}

	newConnection, err := NewConnection(socketConn, a.snapshots, a.hudChannel, a.cfg.ServerCfg.StunServer)
	if err != nil {
		log.Printf("failed creating connection on offer for seat %d: %s\n", offer.SeatNumber, err.Error())
		return
	}
	newConnection.RegisterHandlers()

	// one driver at a time, a new offer replaces the old user
	a.replaceUser(newConnection)

	// Set the received offer as the remote description
	err = newConnection.PeerConnection.SetRemoteDescription(offer.Offer)
	if err != nil {
		log.Printf("failed to set remote description: %s\n", err)
		return
	}

	answer, err := newConnection.PeerConnection.CreateAnswer(nil)
	if err != nil {
		log.Printf("Failed to create answer: %s\n", err)
		return
	}

	// Create channel that is blocked until ICE Gathering is complete
	gatherComplete := webrtc.GatheringCompletePromise(newConnection.PeerConnection)

	// Sets the LocalDescription, and starts our UDP listeners
	err = newConnection.PeerConnection.SetLocalDescription(answer)
	if err != nil {
		log.Println("Failed to set local description:", err)
		return
	}

	// Block until ICE Gathering is complete, only one signaling message is exchanged
	<-gatherComplete

	encodedAnswer, err := encode(models.Answer{
		Answer:     newConnection.PeerConnection.LocalDescription(),
		SeatNumber: offer.SeatNumber,
		UserId:     offer.UserId,
	})
	if err != nil {
		log.Printf("Failed encoding answer: %s", err.Error())
		return
	}
	log.Printf("sending answer to user %s\n", offer.UserId)
	a.client.Emit("answer", encodedAnswer)
}

func (a *App) onICECandidate(socketConn socketio.Conn, msg string) {
	decodedMsg := ""
	err := decode(msg, &decodedMsg)
	if err != nil {
		log.Printf("ice candidate from %s failed unmarshaling: %s\n", socketConn.ID(), msg)
		return
	}
}

func (a *App) onRegisterSuccess(socketConn socketio.Conn, msgs []string) {
	if len(msgs) == 0 {
		log.Warnf("register success from %s had no msgs", socketConn.ID())
		return
	}
	msg := msgs[0]

	decodedMsg := models.ConnectResp{}
	err := decode(msg, &decodedMsg)
	if err != nil {
		log.Printf("register success from %s failed unmarshaling: %s\n", socketConn.ID(), msg)
		return
	}

	a.carInfo = decodedMsg.Car
	a.trackInfo = decodedMsg.Track
	log.Printf("car connected as %s(%s) @ %s(%s) with %d seats available\n", a.carInfo.Name, a.carInfo.ShortName, a.trackInfo.Name, a.trackInfo.ShortName, a.cfg.ServerCfg.SeatCount)
}

// onSnapshot accepts snapshots relayed over signalling while no data channel is up.
func (a *App) onSnapshot(socketConn socketio.Conn, msg string) {
	a.storeSnapshot([]byte(msg))
}

func (a *App) storeSnapshot(data []byte) {
	snapshot, err := input.ParseSnapshot(data)
	if err != nil {
		log.Debugf("failed parsing relayed snapshot: %s", err.Error())
		return
	}
	a.snapshots.Store(snapshot)
}

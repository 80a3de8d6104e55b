package models

import (
	"github.com/google/uuid"
	"github.com/pion/webrtc/v3"
)

// SnapshotFrameSize is the length of the binary snapshot frame:
// buttons, triggers, lx, ly, rx, ry.
const SnapshotFrameSize = 6

type ConnectReq struct {
	Key       string `json:"key"`
	Password  string `json:"password"`
	SeatCount int    `json:"seat_count"`
}

type ConnectResp struct {
	Car   Car
	Track Track
}
type Car struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"short_name"`
	Type      string    `json:"type"`
}

type Track struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"short_name"`
	Type      string    `json:"type"`
}

type Offer struct {
	Offer        webrtc.SessionDescription `json:"offer"`
	CarShortName string                    `json:"car_name"`
	SeatNumber   int                       `json:"seat_number"`
	UserId       uuid.UUID                 `json:"user_id"`
}

type Answer struct {
	Answer     *webrtc.SessionDescription `json:"answer"`
	SeatNumber int                        `json:"seat_number"`
	UserId     uuid.UUID                  `json:"user_id"`
}

// RawInputSnapshot is one poll of the controller as delivered by the link. Axis values are
// unsigned with 128 as center; a vertical axis reads 0 when the stick is pushed up.
type RawInputSnapshot struct {
	Buttons  uint8 `json:"buttons"`
	Triggers uint8 `json:"triggers"`
	LX       uint8 `json:"lx"`
	LY       uint8 `json:"ly"`
	RX       uint8 `json:"rx"`
	RY       uint8 `json:"ry"`
}

// NeutralSnapshot has the hat centered, both sticks centered and nothing pressed.
func NeutralSnapshot() RawInputSnapshot {
	return RawInputSnapshot{
		Buttons: 0x08,
		LX:      128,
		LY:      128,
		RX:      128,
		RY:      128,
	}
}

type Hud struct {
	Lines []string `json:"lines"`
}

type Ping struct {
	Source    string `json:"source"`
	TimeStamp int64  `json:"time_stamp"`
}

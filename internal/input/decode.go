// Package input turns raw controller snapshots into button flags and centered stick values, and
// holds the latest snapshot handed over by the link.
package input

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Speshl/gorrc_tank/internal/models"
)

const axisCenter = 128

var ErrSnapshotLength = errors.New("snapshot frame has wrong length")

// Axes are the stick values centered on zero. Vertical axes are flipped so pushing a stick up is
// positive.
type Axes struct {
	LX int16
	LY int16
	RX int16
	RY int16
}

type Decoded struct {
	Buttons [ButtonCount]bool
	Hat     Hat
	Axes    Axes
}

func Decode(snapshot models.RawInputSnapshot) Decoded {
	decoded := Decoded{
		Hat: HatFromButtons(snapshot.Buttons),
		Axes: Axes{
			LX: centerHorizontal(snapshot.LX),
			LY: centerVertical(snapshot.LY),
			RX: centerHorizontal(snapshot.RX),
			RY: centerVertical(snapshot.RY),
		},
	}

	for _, b := range bitButtons {
		value := snapshot.Buttons
		if b.source == fromTriggers {
			value = snapshot.Triggers
		}
		decoded.Buttons[b.button] = value&b.mask != 0
	}

	up, right, down, left := decoded.Hat.Directions()
	decoded.Buttons[ButtonDpadUp] = up
	decoded.Buttons[ButtonDpadRight] = right
	decoded.Buttons[ButtonDpadDown] = down
	decoded.Buttons[ButtonDpadLeft] = left

	return decoded
}

func centerHorizontal(raw uint8) int16 {
	return int16(raw) - axisCenter
}

func centerVertical(raw uint8) int16 {
	return axisCenter - int16(raw)
}

// ParseSnapshot accepts either the 6 byte binary frame or a JSON object. Any 6 byte message is
// taken as a binary frame, a JSON snapshot is always longer.
func ParseSnapshot(data []byte) (models.RawInputSnapshot, error) {
	if len(data) != models.SnapshotFrameSize {
		if len(data) == 0 || data[0] != '{' {
			return models.RawInputSnapshot{}, fmt.Errorf("%w: got %d bytes, want %d", ErrSnapshotLength, len(data), models.SnapshotFrameSize)
		}
		snapshot := models.RawInputSnapshot{}
		err := json.Unmarshal(data, &snapshot)
		if err != nil {
			return models.RawInputSnapshot{}, fmt.Errorf("failed unmarshalling snapshot: %w", err)
		}
		return snapshot, nil
	}

	return models.RawInputSnapshot{
		Buttons:  data[0],
		Triggers: data[1],
		LX:       data[2],
		LY:       data[3],
		RX:       data[4],
		RY:       data[5],
	}, nil
}

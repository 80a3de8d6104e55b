package input

import (
	"sync"
	"testing"
	"time"

	"github.com/Speshl/gorrc_tank/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFaceButtons(t *testing.T) {
	decoded := Decode(models.RawInputSnapshot{Buttons: 0x10 | 0x08})
	assert.True(t, decoded.Buttons[ButtonSquare])
	assert.False(t, decoded.Buttons[ButtonCross])
	assert.False(t, decoded.Buttons[ButtonCircle])
	assert.False(t, decoded.Buttons[ButtonTriangle])
	assert.Equal(t, HatCentered, decoded.Hat)

	decoded = Decode(models.RawInputSnapshot{Buttons: 0xE8})
	assert.False(t, decoded.Buttons[ButtonSquare])
	assert.True(t, decoded.Buttons[ButtonCross])
	assert.True(t, decoded.Buttons[ButtonCircle])
	assert.True(t, decoded.Buttons[ButtonTriangle])
}

func TestDecodeTriggers(t *testing.T) {
	expected := []Button{ButtonL1, ButtonR1, ButtonL2, ButtonR2, ButtonShare, ButtonOptions, ButtonL3, ButtonR3}
	for bit, button := range expected {
		decoded := Decode(models.RawInputSnapshot{Buttons: 0x08, Triggers: 1 << bit})
		for i := 0; i < ButtonCount; i++ {
			assert.Equal(t, Button(i) == button, decoded.Buttons[i], "bit %d button %s", bit, Button(i))
		}
	}
}

func TestHatDirections(t *testing.T) {
	tests := []struct {
		code                  uint8
		up, right, down, left bool
	}{
		{0, true, false, false, false},
		{1, true, true, false, false},
		{2, false, true, false, false},
		{3, false, true, true, false},
		{4, false, false, true, false},
		{5, false, false, true, true},
		{6, false, false, false, true},
		{7, true, false, false, true},
		{8, false, false, false, false},
		{15, false, false, false, false},
	}

	for _, tt := range tests {
		decoded := Decode(models.RawInputSnapshot{Buttons: tt.code})
		assert.Equal(t, tt.up, decoded.Buttons[ButtonDpadUp], "code %d up", tt.code)
		assert.Equal(t, tt.right, decoded.Buttons[ButtonDpadRight], "code %d right", tt.code)
		assert.Equal(t, tt.down, decoded.Buttons[ButtonDpadDown], "code %d down", tt.code)
		assert.Equal(t, tt.left, decoded.Buttons[ButtonDpadLeft], "code %d left", tt.code)
	}

	assert.Equal(t, HatDownRight, HatFromButtons(0xF3))
	assert.Equal(t, "Down + Right", HatDownRight.String())
	assert.Equal(t, HatCentered, HatFromButtons(0x0C))
}

func TestDecodeAxes(t *testing.T) {
	decoded := Decode(models.RawInputSnapshot{LX: 0, LY: 0, RX: 255, RY: 255})
	assert.Equal(t, int16(-128), decoded.Axes.LX)
	assert.Equal(t, int16(128), decoded.Axes.LY)
	assert.Equal(t, int16(127), decoded.Axes.RX)
	assert.Equal(t, int16(-127), decoded.Axes.RY)

	decoded = Decode(models.NeutralSnapshot())
	assert.Equal(t, Axes{}, decoded.Axes)
	assert.Equal(t, [ButtonCount]bool{}, decoded.Buttons)
}

func TestDecodeIsPure(t *testing.T) {
	snapshot := models.RawInputSnapshot{Buttons: 0x53, Triggers: 0xA5, LX: 12, LY: 200, RX: 99, RY: 128}
	assert.Equal(t, Decode(snapshot), Decode(snapshot))
}

func TestParseSnapshot(t *testing.T) {
	snapshot, err := ParseSnapshot([]byte{0x13, 0x02, 1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, models.RawInputSnapshot{Buttons: 0x13, Triggers: 0x02, LX: 1, LY: 2, RX: 3, RY: 4}, snapshot)

	snapshot, err = ParseSnapshot([]byte(`{"buttons":8,"triggers":32,"lx":128,"ly":0,"rx":255,"ry":128}`))
	require.NoError(t, err)
	assert.Equal(t, models.RawInputSnapshot{Buttons: 8, Triggers: 32, LX: 128, LY: 0, RX: 255, RY: 128}, snapshot)

	snapshot, err = ParseSnapshot([]byte{'{', 0, 128, 128, 128, 128})
	require.NoError(t, err)
	assert.Equal(t, uint8('{'), snapshot.Buttons)

	_, err = ParseSnapshot([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrSnapshotLength)

	_, err = ParseSnapshot([]byte(`{"buttons":300}`))
	assert.Error(t, err)
}

func TestCellLatest(t *testing.T) {
	cell := NewCell()
	snapshot, updated := cell.Latest()
	assert.Equal(t, models.RawInputSnapshot{}, snapshot)
	assert.True(t, updated.IsZero())

	stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	cell.now = func() time.Time { return stamp }

	cell.Store(models.RawInputSnapshot{LX: 1})
	cell.Store(models.RawInputSnapshot{LX: 2})
	snapshot, updated = cell.Latest()
	assert.Equal(t, uint8(2), snapshot.LX)
	assert.Equal(t, stamp, updated)
	assert.Equal(t, uint64(2), cell.Stores())
}

func TestCellConcurrentWriters(t *testing.T) {
	cell := NewCell()
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				cell.Store(models.RawInputSnapshot{LX: uint8(w), LY: uint8(w)})
				snapshot, _ := cell.Latest()
				assert.Equal(t, snapshot.LX, snapshot.LY)
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, uint64(2000), cell.Stores())
}

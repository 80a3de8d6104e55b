package debounce

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFloor(t *testing.T) {
	floor, err := ValidateFloor(-5)
	require.NoError(t, err)
	assert.Equal(t, Floor(-5), floor)

	floor, err = ValidateFloor(-1)
	require.NoError(t, err)
	assert.Equal(t, Floor(-1), floor)

	for _, bad := range []int{0, 3, -4, -6} {
		floor, err = ValidateFloor(bad)
		assert.ErrorIs(t, err, ErrInvalidFloor, "floor %d", bad)
		assert.Equal(t, DefaultFloor, floor)
	}
}

func TestStepPressFromReleased(t *testing.T) {
	s := NewState(DefaultFloor)
	assert.False(t, s.Active(DefaultFloor))

	assert.Equal(t, Pressed, Step(true, &s, DefaultFloor))
	assert.Equal(t, 1, s.counter)
	assert.True(t, s.Active(DefaultFloor))

	// held
	assert.Equal(t, Unchanged, Step(true, &s, DefaultFloor))
	assert.Equal(t, 1, s.counter)
}

func TestStepSingleCycleTapReleasesAtFloor(t *testing.T) {
	s := NewState(DefaultFloor)
	require.Equal(t, Pressed, Step(true, &s, DefaultFloor))

	// counter walks 1 -> 0 -> -1 ... -> -5; release fires when it lands on the floor
	for i := 0; i < 5; i++ {
		assert.Equal(t, Unchanged, Step(false, &s, DefaultFloor), "sample %d", i)
	}
	assert.Equal(t, -4, s.counter)
	assert.Equal(t, Released, Step(false, &s, DefaultFloor))
	assert.Equal(t, int(DefaultFloor), s.counter)
}

func TestStepClampsAtFloor(t *testing.T) {
	s := NewState(DefaultFloor)
	for i := 0; i < 50; i++ {
		assert.Equal(t, Unchanged, Step(false, &s, DefaultFloor))
		assert.Equal(t, int(DefaultFloor), s.counter)
	}
}

func TestStepBounceIsMerged(t *testing.T) {
	s := NewState(DefaultFloor)
	samples := []bool{true, false, false, true, false, true, true, false}
	transitions := make([]Transition, 0, len(samples))
	for _, sample := range samples {
		transitions = append(transitions, Step(sample, &s, DefaultFloor))
	}
	assert.Equal(t, []Transition{Pressed, Unchanged, Unchanged, Unchanged, Unchanged, Unchanged, Unchanged, Unchanged}, transitions)
	assert.True(t, s.Active(DefaultFloor))
}

func TestStepPressRightAfterRelease(t *testing.T) {
	s := NewState(DefaultFloor)
	Step(true, &s, DefaultFloor)
	for i := 0; i < 6; i++ {
		Step(false, &s, DefaultFloor)
	}
	require.Equal(t, int(DefaultFloor), s.counter)
	assert.Equal(t, Pressed, Step(true, &s, DefaultFloor))
}

// A random sample stream must produce strictly alternating Pressed/Released events, each release
// preceded by more than |floor| released samples.
func TestStepAlternatesOnRandomInput(t *testing.T) {
	for _, floor := range []Floor{-1, -3, -5, -7} {
		rng := rand.New(rand.NewSource(int64(floor)))
		s := NewState(floor)
		held := false
		releasedRun := 0
		for i := 0; i < 10000; i++ {
			sample := rng.Intn(3) == 0
			if sample {
				releasedRun = 0
			} else {
				releasedRun++
			}

			switch Step(sample, &s, floor) {
			case Pressed:
				require.False(t, held, "floor %d sample %d: pressed twice", floor, i)
				require.True(t, sample)
				held = true
			case Released:
				require.True(t, held, "floor %d sample %d: released without press", floor, i)
				require.GreaterOrEqual(t, releasedRun, -int(floor))
				held = false
			}
			require.GreaterOrEqual(t, s.counter, int(floor))
			require.LessOrEqual(t, s.counter, 1)
		}
	}
}

func TestPanelStep(t *testing.T) {
	p := NewPanel(-3, 3)
	out := make([]Transition, 3)

	p.Step([]bool{true, false, true}, out)
	assert.Equal(t, []Transition{Pressed, Unchanged, Pressed}, out)
	assert.True(t, p.Active(0))
	assert.False(t, p.Active(1))
	assert.False(t, p.Active(7))

	p.Step([]bool{true, false, false}, out)
	assert.Equal(t, []Transition{Unchanged, Unchanged, Unchanged}, out)

	// short sample slice counts as released
	for i := 0; i < 3; i++ {
		p.Step([]bool{true}, out)
	}
	assert.Equal(t, []Transition{Unchanged, Unchanged, Released}, out)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, Floor(-3), p.Floor())
}

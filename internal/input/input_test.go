package input

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// script samples a fixed set of held keys.
type script map[Key]bool

func (s script) Held(k Key) bool { return s[k] }

func TestRepeatTiming(t *testing.T) {
	var d Debouncer
	p := RepeatProfile{Delay: 18, Interval: 10}

	var fired, edges []int
	for tick := 0; tick < 30; tick++ {
		d.Update(script{KeyDown: true})
		if d.Repeat(KeyDown, p) {
			fired = append(fired, tick)
		}
		if d.Pressed(KeyDown) {
			edges = append(edges, tick)
		}
	}
	require.Equal(t, []int{0, 18, 28}, fired)
	require.Equal(t, []int{0}, edges)

	d.Update(script{})
	require.False(t, d.Repeat(KeyDown, p))
	require.False(t, d.Pressed(KeyDown))
	require.Equal(t, KeyState{Held: false, PrevHeld: true, Frames: 0}, d.State(KeyDown))
}

func TestRepeatIntervalZeroIsEdgeOnly(t *testing.T) {
	var d Debouncer
	p := RepeatProfile{Delay: 2, Interval: 0}

	n := 0
	for tick := 0; tick < 50; tick++ {
		d.Update(script{KeyA: true})
		if d.Repeat(KeyA, p) {
			n++
		}
	}
	require.Equal(t, 1, n)
}

func TestReleaseAndRepress(t *testing.T) {
	var d Debouncer
	seq := []bool{true, true, false, true, true, true}
	var edges []int
	for tick, held := range seq {
		d.Update(script{KeyUp: held})
		if d.Pressed(KeyUp) {
			edges = append(edges, tick)
		}
	}
	require.Equal(t, []int{0, 3}, edges)
	require.EqualValues(t, 2, d.State(KeyUp).Frames)
}

func TestFramesSaturate(t *testing.T) {
	var d Debouncer
	d.keys[KeyB] = KeyState{Held: true, PrevHeld: true, Frames: math.MaxUint16 - 1}
	d.Update(script{KeyB: true})
	require.EqualValues(t, math.MaxUint16, d.State(KeyB).Frames)
	d.Update(script{KeyB: true})
	require.EqualValues(t, math.MaxUint16, d.State(KeyB).Frames)
	require.False(t, d.Pressed(KeyB))
}

func TestKeysIndependent(t *testing.T) {
	var d Debouncer
	d.Update(script{KeyL: true})
	d.Update(script{KeyL: true, KeyR: true})
	require.False(t, d.Pressed(KeyL))
	require.True(t, d.Pressed(KeyR))
	require.EqualValues(t, 1, d.State(KeyL).Frames)
	require.EqualValues(t, 0, d.State(KeyR).Frames)
}

func TestKeyString(t *testing.T) {
	require.Equal(t, "start", KeyStart.String())
	require.Equal(t, "unknown", KeyCount.String())
}

func TestLatch(t *testing.T) {
	l := NewLatch(3)
	require.False(t, l.Held(KeyA))

	l.Press(KeyA)
	var held []bool
	for i := 0; i < 5; i++ {
		held = append(held, l.Held(KeyA))
		l.Advance()
	}
	require.Equal(t, []bool{true, true, true, false, false}, held)

	l.Press(KeyX)
	l.Advance()
	l.Press(KeyX)
	l.Advance()
	l.Advance()
	require.True(t, l.Held(KeyX))
	l.Release(KeyX)
	require.False(t, l.Held(KeyX))

	l.Press(KeyCount)
	require.Equal(t, uint64(DefaultHoldTicks), NewLatch(0).HoldTicks)
}

func TestLatchDrivesDebouncer(t *testing.T) {
	l := NewLatch(2)
	var d Debouncer

	l.Press(KeyStart)
	var edges int
	for i := 0; i < 6; i++ {
		d.Update(l)
		if d.Pressed(KeyStart) {
			edges++
		}
		l.Advance()
	}
	require.Equal(t, 1, edges)
	require.False(t, d.State(KeyStart).Held)
}

// heldWithAutoRepeat returns the ticks at which a key held for 70 ticks
// repeats, given OS auto-repeat that starts after 30 ticks and then presses
// every 2 ticks.
func heldWithAutoRepeat(hold uint64, p RepeatProfile) []int {
	l := NewLatch(hold)
	var d Debouncer
	var fired []int
	for tick := 0; tick < 70; tick++ {
		if tick == 0 || (tick >= 30 && (tick-30)%2 == 0) {
			l.Press(KeyDown)
		}
		d.Update(l)
		if d.Repeat(KeyDown, p) {
			fired = append(fired, tick)
		}
		l.Advance()
	}
	return fired
}

func TestLatchAutoRepeatDelay(t *testing.T) {
	// The default hold expires during the OS delay, so auto-repeat starts a
	// second press and the profile delay runs again from there.
	require.Equal(t, []int{0, 30, 48, 58, 68}, heldWithAutoRepeat(DefaultHoldTicks, MenuRepeat))

	// A hold longer than the OS delay keeps the pad timeline.
	require.Equal(t, []int{0, 18, 28, 38, 48, 58, 68}, heldWithAutoRepeat(40, MenuRepeat))
}

// Package input turns sampled held/released key states into edge and
// rate-limited repeat events, one sample per frame tick.
package input

import "math"

// Key is a logical pad key.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyL
	KeyR
	KeyA
	KeyB
	KeyStart
	KeyX
	KeyY
	KeyCount
)

var keyNames = [KeyCount]string{
	"up", "down", "left", "right", "l", "r", "a", "b", "start", "x", "y",
}

func (k Key) String() string {
	if k < 0 || k >= KeyCount {
		return "unknown"
	}
	return keyNames[k]
}

// Sampler reports whether a key is currently held.
type Sampler interface {
	Held(k Key) bool
}

// RepeatProfile configures delayed key repeat, in ticks. An Interval of 0
// disables repeat.
type RepeatProfile struct {
	Delay    uint16 `json:"delay"`
	Interval uint16 `json:"interval"`
}

var (
	MenuRepeat    = RepeatProfile{Delay: 18, Interval: 10}
	ReadingRepeat = RepeatProfile{Delay: 18, Interval: 12}
)

// KeyState is the per-key debounce state. Frames is 0 on the first held tick
// and counts up while the key stays held.
type KeyState struct {
	Held     bool
	PrevHeld bool
	Frames   uint16
}

// Debouncer tracks every logical key.
type Debouncer struct {
	keys [KeyCount]KeyState
}

// Update samples every key once. It must be called exactly once per tick.
func (d *Debouncer) Update(s Sampler) {
	for k := range d.keys {
		st := &d.keys[k]
		held := s.Held(Key(k))

		st.PrevHeld = st.Held
		st.Held = held

		switch {
		case !held:
			st.Frames = 0
		case !st.PrevHeld:
			st.Frames = 0
		case st.Frames < math.MaxUint16:
			st.Frames++
		}
	}
}

// State returns the current state of k.
func (d *Debouncer) State(k Key) KeyState {
	return d.keys[k]
}

// Pressed reports a not-held to held transition on this tick.
func (d *Debouncer) Pressed(k Key) bool {
	st := &d.keys[k]
	return st.Held && !st.PrevHeld
}

// Repeat fires on the press tick and then, once the key has been held for
// p.Delay ticks, every p.Interval ticks.
func (d *Debouncer) Repeat(k Key, p RepeatProfile) bool {
	st := &d.keys[k]
	switch {
	case st.Held && !st.PrevHeld:
		return true
	case !st.Held:
		return false
	case st.Frames < p.Delay:
		return false
	case p.Interval == 0:
		return false
	}
	return (st.Frames-p.Delay)%p.Interval == 0
}

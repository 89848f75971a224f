package input

// DefaultHoldTicks keeps a key held across the gap between terminal
// auto-repeat events (about 30ms) at 60 ticks per second. It is shorter than
// the OS delay before the first auto-repeat (250-600ms), so a held key
// releases once and presses again when auto-repeat starts.
const DefaultHoldTicks = 4

// Latch is a Sampler for inputs that only report presses, such as a
// terminal. A press holds the key for HoldTicks ticks and every further press
// event extends the hold.
type Latch struct {
	HoldTicks uint64

	now   uint64
	until [KeyCount]uint64
}

// NewLatch returns a latch. A zero hold selects DefaultHoldTicks.
func NewLatch(hold uint64) *Latch {
	if hold == 0 {
		hold = DefaultHoldTicks
	}
	return &Latch{HoldTicks: hold}
}

// Press records a press event for k at the current tick.
func (l *Latch) Press(k Key) {
	if k < 0 || k >= KeyCount {
		return
	}
	l.until[k] = l.now + l.HoldTicks
}

// Release drops k immediately.
func (l *Latch) Release(k Key) {
	if k < 0 || k >= KeyCount {
		return
	}
	l.until[k] = l.now
}

// Advance moves the latch clock one tick forward.
func (l *Latch) Advance() {
	l.now++
}

// Held implements Sampler.
func (l *Latch) Held(k Key) bool {
	return l.now < l.until[k]
}

package animation

// clock is the implementation of the Clock interface.
type clock struct {
	time    float32
	delta   float32
	speed   float32
	playing bool
}

// Clock accumulates a layer's global animation time. The orchestrator
// advances it with the wall-clock frame delta; speed scales the advance and
// pausing freezes it, which is how layer-level play/pause/speed controls
// reach the shaders without touching per-feature state.
type Clock interface {
	// Advance moves the clock forward by an unscaled frame delta. While
	// paused, or for non-positive deltas, time holds and the scaled delta
	// reads zero.
	//
	// Parameters:
	//   - deltaSeconds: elapsed wall-clock time since the last frame
	Advance(deltaSeconds float32)

	// Time returns the accumulated animation time in seconds.
	//
	// Returns:
	//   - float32: the current time
	Time() float32

	// Delta returns the scaled delta applied by the last Advance.
	//
	// Returns:
	//   - float32: the last scaled delta, zero while paused
	Delta() float32

	// SetSpeed sets the time multiplier. Negative values clamp to zero.
	//
	// Parameters:
	//   - speed: the multiplier, 1 is real time
	SetSpeed(speed float32)

	// Speed returns the current time multiplier.
	//
	// Returns:
	//   - float32: the multiplier
	Speed() float32

	// Pause freezes the clock. Advancing a paused clock is a no-op.
	Pause()

	// Resume unfreezes the clock.
	Resume()

	// Playing reports whether the clock advances.
	//
	// Returns:
	//   - bool: true when running
	Playing() bool

	// Reset returns the clock to time zero. Speed and the playing bit are
	// unchanged.
	Reset()
}

var _ Clock = &clock{}

// NewClock builds a running clock at time zero with speed 1.
//
// Parameters:
//   - options: optional ClockBuilderOption functions
//
// Returns:
//   - Clock: the clock
func NewClock(options ...ClockBuilderOption) Clock {
	c := &clock{speed: 1, playing: true}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *clock) Advance(deltaSeconds float32) {
	if !c.playing || deltaSeconds <= 0 {
		c.delta = 0
		return
	}
	c.delta = deltaSeconds * c.speed
	c.time += c.delta
}

func (c *clock) Time() float32 {
	return c.time
}

func (c *clock) Delta() float32 {
	return c.delta
}

func (c *clock) SetSpeed(speed float32) {
	if speed < 0 {
		speed = 0
	}
	c.speed = speed
}

func (c *clock) Speed() float32 {
	return c.speed
}

func (c *clock) Pause() {
	c.playing = false
	c.delta = 0
}

func (c *clock) Resume() {
	c.playing = true
}

func (c *clock) Playing() bool {
	return c.playing
}

func (c *clock) Reset() {
	c.time = 0
	c.delta = 0
}

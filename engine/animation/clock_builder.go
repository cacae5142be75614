package animation

// ClockBuilderOption is a functional option for configuring a clock.
type ClockBuilderOption func(*clock)

// WithSpeed sets the initial time multiplier. Negative values clamp to
// zero.
//
// Parameters:
//   - speed: the multiplier, 1 is real time
//
// Returns:
//   - ClockBuilderOption: the option function
func WithSpeed(speed float32) ClockBuilderOption {
	return func(c *clock) {
		c.SetSpeed(speed)
	}
}

// WithPaused starts the clock frozen. Resume unfreezes it.
//
// Returns:
//   - ClockBuilderOption: the option function
func WithPaused() ClockBuilderOption {
	return func(c *clock) {
		c.playing = false
	}
}

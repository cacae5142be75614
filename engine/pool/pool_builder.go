package pool

const (
	defaultInitialCapacity = 64
	defaultGrowthFactor    = 2.0
	defaultMaxSize         = 65536

	minGrowthFactor = 1.1
)

// poolConfig collects builder option values before the generic pool is
// constructed, keeping the option type free of the pool's type parameter.
type poolConfig struct {
	initialCapacity int
	growthFactor    float64
	maxSize         int
}

// PoolBuilderOption is a functional option applied to a pool during construction via NewPool.
type PoolBuilderOption func(*poolConfig)

// WithInitialCapacity sets how many records the first growth event creates.
// When not specified, the default is 64.
//
// Parameters:
//   - n: the number of records to pre-create on first use
//
// Returns:
//   - PoolBuilderOption: a function that applies the initial capacity option to a pool
func WithInitialCapacity(n int) PoolBuilderOption {
	return func(c *poolConfig) {
		c.initialCapacity = n
	}
}

// WithGrowthFactor sets the multiplier applied to the created-record count on
// each growth event. Values below 1.1 are raised to 1.1 so growth always makes
// progress. When not specified, the default is 2.0.
//
// Parameters:
//   - f: the growth multiplier
//
// Returns:
//   - PoolBuilderOption: a function that applies the growth factor option to a pool
func WithGrowthFactor(f float64) PoolBuilderOption {
	return func(c *poolConfig) {
		c.growthFactor = f
	}
}

// WithMaxSize caps how many records the pool will create and retain. Acquires
// past the cap fall back to plain allocation rather than failing; the overflow
// shows up in Stats.FallbackAllocs. When not specified, the default is 65536.
//
// Parameters:
//   - n: the maximum number of pooled records
//
// Returns:
//   - PoolBuilderOption: a function that applies the max size option to a pool
func WithMaxSize(n int) PoolBuilderOption {
	return func(c *poolConfig) {
		c.maxSize = n
	}
}

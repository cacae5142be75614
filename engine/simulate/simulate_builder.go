package simulate

// TrafficBuilderOption is a functional option for configuring a Traffic
// simulation. Use the With* functions to create options that are applied
// directly to the simulation instance.
type TrafficBuilderOption func(*traffic)

// WithRegion sets the geographic bounding box routes and zones are generated
// in.
//
// Parameters:
//   - region: the bounding box in degrees
//
// Returns:
//   - TrafficBuilderOption: option function to apply
func WithRegion(region Region) TrafficBuilderOption {
	return func(t *traffic) {
		if region.MaxLng > region.MinLng && region.MaxLat > region.MinLat {
			t.region = region
		}
	}
}

// WithSeed sets the random seed. Worlds built with the same seed and options
// are identical.
//
// Parameters:
//   - seed: the seed value
//
// Returns:
//   - TrafficBuilderOption: option function to apply
func WithSeed(seed int64) TrafficBuilderOption {
	return func(t *traffic) {
		t.seed = seed
	}
}

// WithRoutes sets the number of generated routes. Values < 1 are ignored.
//
// Parameters:
//   - n: the route count
//
// Returns:
//   - TrafficBuilderOption: option function to apply
func WithRoutes(n int) TrafficBuilderOption {
	return func(t *traffic) {
		if n >= 1 {
			t.numRoutes = n
		}
	}
}

// WithZones sets the number of generated polygon zones. Negative values are
// ignored.
//
// Parameters:
//   - n: the zone count
//
// Returns:
//   - TrafficBuilderOption: option function to apply
func WithZones(n int) TrafficBuilderOption {
	return func(t *traffic) {
		if n >= 0 {
			t.numZones = n
		}
	}
}

// WithWaypoints sets the number of vertices per generated route. Values < 2
// are ignored.
//
// Parameters:
//   - n: vertices per route
//
// Returns:
//   - TrafficBuilderOption: option function to apply
func WithWaypoints(n int) TrafficBuilderOption {
	return func(t *traffic) {
		if n >= 2 {
			t.waypoints = n
		}
	}
}

// WithSpeedRange sets the vehicle speed range in route progress per second:
// a speed of 0.1 completes a full route loop in ten seconds.
//
// Parameters:
//   - minSpeed, maxSpeed: the inclusive speed bounds
//
// Returns:
//   - TrafficBuilderOption: option function to apply
func WithSpeedRange(minSpeed, maxSpeed float64) TrafficBuilderOption {
	return func(t *traffic) {
		if minSpeed > 0 && maxSpeed >= minSpeed {
			t.speedMin = minSpeed
			t.speedMax = maxSpeed
		}
	}
}

// WithWorkers sets the worker pool size used to shard Step. Values < 1 are
// ignored. The result of a step does not depend on the worker count.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - TrafficBuilderOption: option function to apply
func WithWorkers(n int) TrafficBuilderOption {
	return func(t *traffic) {
		if n >= 1 {
			t.workers = n
		}
	}
}

package geometry

// PipelineBuilderOption is a function that modifies the pipeline
// configuration shared by every specialization.
type PipelineBuilderOption func(*pipelineConfig)

// WithPools sets the record pool set the pipeline acquires from. Defaults
// to the process-wide shared set.
//
// Parameters:
//   - pools: the pool set to use
//
// Returns:
//   - PipelineBuilderOption: the option function to apply to the pipeline
func WithPools(pools *RecordPools) PipelineBuilderOption {
	return func(c *pipelineConfig) {
		if pools != nil {
			c.pools = pools
		}
	}
}

// WithTiming sets the per-feature time-offset strategy. Defaults to the
// sin-hash jitter.
//
// Parameters:
//   - timing: the timing function, must be pure
//
// Returns:
//   - PipelineBuilderOption: the option function to apply to the pipeline
func WithTiming(timing TimingFunc) PipelineBuilderOption {
	return func(c *pipelineConfig) {
		if timing != nil {
			c.timing = timing
		}
	}
}

// WithStyle sets the data-driven style resolution.
//
// Parameters:
//   - style: the style configuration
//
// Returns:
//   - PipelineBuilderOption: the option function to apply to the pipeline
func WithStyle(style StyleConfig) PipelineBuilderOption {
	return func(c *pipelineConfig) {
		c.style = style
	}
}

// WithInstancingThreshold sets the feature count at which the point
// pipeline switches to the instanced path. Defaults to
// DefaultInstancingThreshold.
//
// Parameters:
//   - threshold: the minimum record count for instancing
//
// Returns:
//   - PipelineBuilderOption: the option function to apply to the pipeline
func WithInstancingThreshold(threshold int) PipelineBuilderOption {
	return func(c *pipelineConfig) {
		if threshold > 0 {
			c.threshold = threshold
		}
	}
}

package instanced

import "github.com/Carmen-Shannon/oxy-maps/engine/gfx"

// BatchBuilderOption is a function that modifies the batch configuration.
type BatchBuilderOption func(*batch)

// WithDrawMode sets the primitive topology for the shared geometry. Defaults
// to gfx.Triangles.
//
// Parameters:
//   - mode: the topology to draw with
//
// Returns:
//   - BatchBuilderOption: the option function to apply to the batch
func WithDrawMode(mode gfx.DrawMode) BatchBuilderOption {
	return func(b *batch) {
		b.mode = mode
	}
}

// WithInstanceUsage sets the usage hint for the instance buffer. Defaults to
// gfx.DynamicDraw; batches whose instance data changes every frame should
// use gfx.StreamDraw.
//
// Parameters:
//   - usage: the buffer usage hint
//
// Returns:
//   - BatchBuilderOption: the option function to apply to the batch
func WithInstanceUsage(usage gfx.BufferUsage) BatchBuilderOption {
	return func(b *batch) {
		b.instanceUsage = usage
	}
}

package gfx

import "fmt"

// VertexAttrib describes one attribute slot within an interleaved buffer.
type VertexAttrib struct {
	// Index is the attribute slot the shader binds this attribute to.
	Index uint32
	// Name is the attribute variable name in the shader source.
	Name string
	// Size is the component count per vertex (1 to 4).
	Size int32
	// Type is the component type.
	Type ComponentType
	// Normalized converts integer components to [0,1] or [-1,1] on fetch.
	Normalized bool
	// Offset is the byte offset of the attribute within one stride.
	Offset int
}

// Layout describes the interleaved memory layout of one buffer: a byte
// stride and the attributes packed inside it. Layouts are plain values;
// pipelines declare them once and every rebuild of the same layout produces
// the same attribute setup.
type Layout struct {
	Stride     int
	Attributes []VertexAttrib
}

// Validate checks the layout for internal consistency.
//
// Returns:
//   - error: ErrInvalidLayout describing the first problem found, nil when valid
func (l Layout) Validate() error {
	if l.Stride <= 0 {
		return fmt.Errorf("%w: stride %d", ErrInvalidLayout, l.Stride)
	}
	seen := map[uint32]string{}
	for _, a := range l.Attributes {
		if a.Size < 1 || a.Size > 4 {
			return fmt.Errorf("%w: attribute %q size %d", ErrInvalidLayout, a.Name, a.Size)
		}
		if prev, ok := seen[a.Index]; ok {
			return fmt.Errorf("%w: attributes %q and %q share slot %d", ErrInvalidLayout, prev, a.Name, a.Index)
		}
		seen[a.Index] = a.Name
		end := a.Offset + int(a.Size)*a.Type.Size()
		if a.Offset < 0 || end > l.Stride {
			return fmt.Errorf("%w: attribute %q spans [%d, %d) outside stride %d", ErrInvalidLayout, a.Name, a.Offset, end, l.Stride)
		}
	}
	return nil
}

// FloatsPerVertex returns the stride expressed in float32 components.
//
// Returns:
//   - int: Stride / 4
func (l Layout) FloatsPerVertex() int {
	return l.Stride / 4
}

// AttribBindings returns the name-to-slot map in the form program
// construction expects for fixed attribute binding.
//
// Returns:
//   - map[string]uint32: attribute names keyed to their slot indices
func (l Layout) AttribBindings() map[string]uint32 {
	out := make(map[string]uint32, len(l.Attributes))
	for _, a := range l.Attributes {
		out[a.Name] = a.Index
	}
	return out
}

// ApplyLayout enables and points every attribute of the layout against the
// buffer currently bound to ArrayBuffer. Divisors are not touched; instanced
// setups apply those through their Instancing strategy.
//
// Parameters:
//   - ctx: the context to configure
//   - layout: the layout to apply
func ApplyLayout(ctx Context, layout Layout) {
	for _, a := range layout.Attributes {
		ctx.EnableVertexAttribArray(a.Index)
		ctx.VertexAttribPointer(a.Index, a.Size, a.Type, a.Normalized, layout.Stride, a.Offset)
	}
}

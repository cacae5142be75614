package glbackend

import "github.com/Carmen-Shannon/oxy-maps/engine/gfx"

// compatContext masquerades a capability-rich context as a limited-generation
// one. The native vertex-array and instancing bundles come back out through
// the extension accessors, so the extension code paths run on desktop
// hardware where no real limited context exists.
type compatContext struct {
	gfx.Context
	extensions map[string]bool
}

var _ gfx.Context = &compatContext{}

// NewCompatContext wraps a rich context and reports it as the limited
// generation, advertising the given extensions backed by the inner context's
// native bundles. With no names it advertises both OES_vertex_array_object
// and ANGLE_instanced_arrays; pass an explicit subset to exercise fallback
// paths (for example no instancing extension at all).
//
// Development aid only: shaders still compile against the inner context, so
// layers rendered through a desktop compat context keep their desktop shader
// target.
//
// Parameters:
//   - inner: the rich context to wrap
//   - extensions: extension names to advertise (default both)
//
// Returns:
//   - gfx.Context: the limited-generation facade
func NewCompatContext(inner gfx.Context, extensions ...string) gfx.Context {
	if len(extensions) == 0 {
		extensions = []string{gfx.ExtVertexArrayObject, gfx.ExtInstancedArrays}
	}
	set := make(map[string]bool, len(extensions))
	for _, name := range extensions {
		set[name] = true
	}
	return &compatContext{Context: inner, extensions: set}
}

func (c *compatContext) Generation() gfx.Generation {
	return gfx.GenerationLimited
}

func (c *compatContext) HasExtension(name string) bool {
	return c.extensions[name]
}

// NativeVertexArrays reports no native bundle; the limited generation only
// reaches vertex arrays through the extension accessor.
func (c *compatContext) NativeVertexArrays() (gfx.VertexArrayOps, bool) {
	return nil, false
}

// NativeInstancing reports no native bundle.
func (c *compatContext) NativeInstancing() (gfx.InstancedOps, bool) {
	return nil, false
}

func (c *compatContext) VertexArrayExtension() (gfx.VertexArrayOps, bool) {
	if !c.extensions[gfx.ExtVertexArrayObject] {
		return nil, false
	}
	return c.Context.NativeVertexArrays()
}

func (c *compatContext) InstancingExtension() (gfx.InstancedOps, bool) {
	if !c.extensions[gfx.ExtInstancedArrays] {
		return nil, false
	}
	return c.Context.NativeInstancing()
}

package gfxtest

import "github.com/Carmen-Shannon/oxy-maps/engine/gfx"

// ContextBuilderOption is a functional option applied to a fake context during construction via NewContext.
type ContextBuilderOption func(*Context)

// WithGeneration configures which API generation the fake reports.
//
// Parameters:
//   - g: the generation to report
//
// Returns:
//   - ContextBuilderOption: a function that applies the generation option to a fake context
func WithGeneration(g gfx.Generation) ContextBuilderOption {
	return func(c *Context) {
		c.generation = g
	}
}

// WithExtensions marks the given extensions available. Only meaningful
// together with WithGeneration(gfx.GenerationLimited); the rich generation
// reports no extensions.
//
// Parameters:
//   - names: the extension names to expose
//
// Returns:
//   - ContextBuilderOption: a function that applies the extensions option to a fake context
func WithExtensions(names ...string) ContextBuilderOption {
	return func(c *Context) {
		for _, n := range names {
			c.extensions[n] = true
		}
	}
}

// WithIntParameter overrides a device limit.
//
// Parameters:
//   - param: the limit to override
//   - value: the value to report
//
// Returns:
//   - ContextBuilderOption: a function that applies the parameter option to a fake context
func WithIntParameter(param gfx.IntParameter, value int) ContextBuilderOption {
	return func(c *Context) {
		c.intParams[param] = value
	}
}

// WithCompileFailure makes CompileShader fail for any shader whose source
// contains the given substring. Other shaders compile normally, so a test
// can fail one stage of a program while the other succeeds.
//
// Parameters:
//   - sourceSubstring: the source fragment that triggers failure
//
// Returns:
//   - ContextBuilderOption: a function that applies the failure option to a fake context
func WithCompileFailure(sourceSubstring string) ContextBuilderOption {
	return func(c *Context) {
		c.compileFailNeedle = sourceSubstring
	}
}

// WithLinkFailure makes every LinkProgram call fail.
//
// Returns:
//   - ContextBuilderOption: a function that applies the failure option to a fake context
func WithLinkFailure() ContextBuilderOption {
	return func(c *Context) {
		c.failLink = true
	}
}

// WithBufferCreationFailure makes every CreateBuffer call fail.
//
// Returns:
//   - ContextBuilderOption: a function that applies the failure option to a fake context
func WithBufferCreationFailure() ContextBuilderOption {
	return func(c *Context) {
		c.failCreateBuffer = true
	}
}

// WithShaderCreationFailure makes every CreateShader call fail.
//
// Returns:
//   - ContextBuilderOption: a function that applies the failure option to a fake context
func WithShaderCreationFailure() ContextBuilderOption {
	return func(c *Context) {
		c.failCreateShader = true
	}
}

// WithProgramCreationFailure makes every CreateProgram call fail.
//
// Returns:
//   - ContextBuilderOption: a function that applies the failure option to a fake context
func WithProgramCreationFailure() ContextBuilderOption {
	return func(c *Context) {
		c.failCreateProgram = true
	}
}

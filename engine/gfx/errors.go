package gfx

import "errors"

var (
	// ErrInstancingUnsupported is returned by every Instancing operation when
	// neither the native path nor the required extensions are available.
	// Callers distinguish it from real GPU failures and fall back to the
	// standard per-vertex path.
	ErrInstancingUnsupported = errors.New("gfx: instanced rendering is not supported by this context")

	// ErrContextLost is returned by operations attempted while the
	// underlying context is lost.
	ErrContextLost = errors.New("gfx: graphics context lost")

	// ErrObjectCreation is wrapped by backends when the context returns a
	// null object from a create call.
	ErrObjectCreation = errors.New("gfx: object creation failed")

	// ErrInvalidLayout is wrapped by Layout.Validate with a description of
	// the offending attribute.
	ErrInvalidLayout = errors.New("gfx: invalid buffer layout")
)

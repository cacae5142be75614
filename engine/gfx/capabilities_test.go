package gfx_test

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
	"github.com/Carmen-Shannon/oxy-maps/engine/gfx/gfxtest"
	"github.com/stretchr/testify/assert"
)

func TestProbeRichGeneration(t *testing.T) {
	ctx := gfxtest.NewContext(gfxtest.WithIntParameter(gfx.MaxVertexAttribs, 32))
	caps := gfx.Probe(ctx)

	assert.Equal(t, gfx.GenerationRich, caps.Generation)
	assert.True(t, caps.VertexArrays)
	assert.Equal(t, gfx.SourceNative, caps.VertexArraySource)
	assert.True(t, caps.Instancing)
	assert.Equal(t, gfx.SourceNative, caps.InstancingSource)
	assert.True(t, caps.FloatTextures)
	assert.Equal(t, 32, caps.MaxVertexAttribs)
	assert.Equal(t, 4096, caps.MaxTextureSize)
}

func TestProbeLimitedWithExtensions(t *testing.T) {
	ctx := gfxtest.NewContext(
		gfxtest.WithGeneration(gfx.GenerationLimited),
		gfxtest.WithExtensions(gfx.ExtVertexArrayObject, gfx.ExtInstancedArrays, gfx.ExtTextureFloat),
	)
	caps := gfx.Probe(ctx)

	assert.Equal(t, gfx.GenerationLimited, caps.Generation)
	assert.True(t, caps.VertexArrays)
	assert.Equal(t, gfx.SourceExtension, caps.VertexArraySource)
	assert.True(t, caps.Instancing)
	assert.Equal(t, gfx.SourceExtension, caps.InstancingSource)
	assert.True(t, caps.FloatTextures)
}

func TestProbeLimitedPartialExtensions(t *testing.T) {
	// instancing without vertex arrays is treated as unsupported, the batch
	// renderer cannot bind its buffers without one
	ctx := gfxtest.NewContext(
		gfxtest.WithGeneration(gfx.GenerationLimited),
		gfxtest.WithExtensions(gfx.ExtInstancedArrays),
	)
	caps := gfx.Probe(ctx)
	assert.False(t, caps.VertexArrays)
	assert.False(t, caps.Instancing)
	assert.Equal(t, gfx.SourceNone, caps.InstancingSource)

	ctx = gfxtest.NewContext(
		gfxtest.WithGeneration(gfx.GenerationLimited),
		gfxtest.WithExtensions(gfx.ExtVertexArrayObject),
	)
	caps = gfx.Probe(ctx)
	assert.True(t, caps.VertexArrays)
	assert.False(t, caps.Instancing)
}

func TestProbeLimitedBare(t *testing.T) {
	ctx := gfxtest.NewContext(gfxtest.WithGeneration(gfx.GenerationLimited))
	caps := gfx.Probe(ctx)

	assert.False(t, caps.VertexArrays)
	assert.False(t, caps.Instancing)
	assert.False(t, caps.FloatTextures)
}

func TestComponentTypeSize(t *testing.T) {
	assert.Equal(t, 1, gfx.UnsignedByte.Size())
	assert.Equal(t, 2, gfx.UnsignedShort.Size())
	assert.Equal(t, 4, gfx.UnsignedInt.Size())
	assert.Equal(t, 4, gfx.Float.Size())
	assert.Equal(t, 0, gfx.ComponentType(0).Size())
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "rich", gfx.GenerationRich.String())
	assert.Equal(t, "limited", gfx.GenerationLimited.String())
	assert.Equal(t, "unknown", gfx.GenerationUnknown.String())

	assert.Equal(t, "native", gfx.SourceNative.String())
	assert.Equal(t, "extension", gfx.SourceExtension.String())
	assert.Equal(t, "none", gfx.SourceNone.String())
}

package gfx_test

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
	"github.com/Carmen-Shannon/oxy-maps/engine/gfx/gfxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutValidate(t *testing.T) {
	valid := gfx.Layout{
		Stride: 20,
		Attributes: []gfx.VertexAttrib{
			{Index: 0, Name: "a_pos", Size: 2, Type: gfx.Float, Offset: 0},
			{Index: 1, Name: "a_color", Size: 3, Type: gfx.Float, Offset: 8},
		},
	}
	require.NoError(t, valid.Validate())
	assert.Equal(t, 5, valid.FloatsPerVertex())

	tests := []struct {
		name   string
		layout gfx.Layout
	}{
		{"zero stride", gfx.Layout{Stride: 0}},
		{"size out of range", gfx.Layout{Stride: 32, Attributes: []gfx.VertexAttrib{
			{Index: 0, Name: "a_big", Size: 5, Type: gfx.Float},
		}}},
		{"slot collision", gfx.Layout{Stride: 16, Attributes: []gfx.VertexAttrib{
			{Index: 0, Name: "a_one", Size: 2, Type: gfx.Float, Offset: 0},
			{Index: 0, Name: "a_two", Size: 2, Type: gfx.Float, Offset: 8},
		}}},
		{"attribute past stride", gfx.Layout{Stride: 12, Attributes: []gfx.VertexAttrib{
			{Index: 0, Name: "a_pos", Size: 2, Type: gfx.Float, Offset: 8},
		}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.layout.Validate(), gfx.ErrInvalidLayout)
		})
	}
}

func TestLayoutAttribBindings(t *testing.T) {
	layout := gfx.Layout{
		Stride: 16,
		Attributes: []gfx.VertexAttrib{
			{Index: 0, Name: "a_pos", Size: 2, Type: gfx.Float, Offset: 0},
			{Index: 3, Name: "a_uv", Size: 2, Type: gfx.Float, Offset: 8},
		},
	}
	assert.Equal(t, map[string]uint32{"a_pos": 0, "a_uv": 3}, layout.AttribBindings())
}

func TestApplyLayout(t *testing.T) {
	ctx := gfxtest.NewContext()
	buf, err := ctx.CreateBuffer()
	require.NoError(t, err)
	ctx.BindBuffer(gfx.ArrayBuffer, buf)

	layout := gfx.Layout{
		Stride: 24,
		Attributes: []gfx.VertexAttrib{
			{Index: 0, Name: "a_pos", Size: 2, Type: gfx.Float, Offset: 0},
			{Index: 1, Name: "a_color", Size: 4, Type: gfx.Float, Offset: 8},
		},
	}
	gfx.ApplyLayout(ctx, layout)

	pos, ok := ctx.VertexArrayAttrib(0, 0)
	require.True(t, ok)
	assert.True(t, pos.Enabled)
	assert.Equal(t, buf, pos.Buffer)
	assert.Equal(t, 24, pos.Stride)
	assert.Equal(t, 0, pos.Offset)

	color, ok := ctx.VertexArrayAttrib(0, 1)
	require.True(t, ok)
	assert.Equal(t, int32(4), color.Size)
	assert.Equal(t, 8, color.Offset)
	assert.Equal(t, gfx.Float, color.ComponentType)
}

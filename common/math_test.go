package common

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// applyMat transforms a 2D point by a column-major 4x4 matrix (z=0, w=1).
func applyMat(m []float32, x, y float32) (float32, float32) {
	ox := m[0]*x + m[4]*y + m[12]
	oy := m[1]*x + m[5]*y + m[13]
	return ox, oy
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes[float32](nil))
	assert.Nil(t, SliceToBytes([]float32{}))

	data := []float32{1, 2, 3}
	b := SliceToBytes(data)
	require.Len(t, b, 12)

	// The view aliases the source slice.
	data[0] = 42
	back := unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), 3)
	assert.Equal(t, float32(42), back[0])
	assert.Equal(t, float32(3), back[2])
}

func TestIdentity(t *testing.T) {
	m := [16]float32{3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3}
	Identity(m[:])

	x, y := applyMat(m[:], 7, -2)
	assert.Equal(t, float32(7), x)
	assert.Equal(t, float32(-2), y)
}

func TestOrthoCorners(t *testing.T) {
	var m [16]float32
	Ortho(m[:], 0, 2, 0, 1)

	x, y := applyMat(m[:], 0, 0)
	assert.InDelta(t, -1.0, x, 1e-5)
	assert.InDelta(t, -1.0, y, 1e-5)

	x, y = applyMat(m[:], 2, 1)
	assert.InDelta(t, 1.0, x, 1e-5)
	assert.InDelta(t, 1.0, y, 1e-5)

	x, y = applyMat(m[:], 1, 0.5)
	assert.InDelta(t, 0.0, x, 1e-5)
	assert.InDelta(t, 0.0, y, 1e-5)
}

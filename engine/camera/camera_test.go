package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-maps/engine/geo"
)

// applyMatrix transforms a plane point through a column-major 4x4 matrix and
// returns the clip-space x/y.
func applyMatrix(m [16]float32, x, y float64) (float64, float64) {
	fx, fy := float32(x), float32(y)
	cx := m[0]*fx + m[4]*fy + m[12]
	cy := m[1]*fx + m[5]*fy + m[13]
	return float64(cx), float64(cy)
}

func TestCameraCenterMapsToClipOrigin(t *testing.T) {
	ctrl := NewCameraController(WithCenter(-122.4194, 37.7749), WithZoom(10))
	cam := NewCamera(WithViewport(1024, 768), WithController(ctrl))
	cam.Update()

	// float32 matrix math at high zoom leaves sub-pixel residue, hence the
	// loose clip-space delta
	px, py := ctrl.PlaneCenter()
	x, y := applyMatrix(cam.ViewProjectionMatrix(), px, py)
	assert.InDelta(t, 0, x, 1e-3)
	assert.InDelta(t, 0, y, 1e-3)
}

func TestCameraNorthIsUp(t *testing.T) {
	ctrl := NewCameraController(WithCenter(0, 0), WithZoom(4))
	cam := NewCamera(WithViewport(800, 600), WithController(ctrl))
	cam.Update()

	cx, cy := ctrl.PlaneCenter()
	// a point north of center has smaller plane y and must land at
	// positive clip y
	_, y := applyMatrix(cam.ViewProjectionMatrix(), cx, cy-0.01)
	assert.Greater(t, y, 0.0)
	_, y = applyMatrix(cam.ViewProjectionMatrix(), cx, cy+0.01)
	assert.Less(t, y, 0.0)
}

func TestCameraViewportBounds(t *testing.T) {
	ctrl := NewCameraController(WithCenter(0, 0), WithZoom(2))
	cam := NewCamera(WithViewport(1024, 512), WithController(ctrl))
	cam.Update()

	b := cam.ViewportBounds()
	require.False(t, b.IsEmpty())

	world := TileSize * math.Pow(2, 2)
	assert.InDelta(t, 1024/world, b.Width(), 1e-9)
	assert.InDelta(t, 512/world, b.Height(), 1e-9)

	cx, cy := ctrl.PlaneCenter()
	assert.True(t, b.Contains(cx, cy))
}

func TestCameraResizeGrowsBounds(t *testing.T) {
	ctrl := NewCameraController(WithZoom(3))
	cam := NewCamera(WithViewport(512, 512), WithController(ctrl))
	cam.Update()
	before := cam.ViewportBounds()

	cam.SetViewport(1024, 512)
	after := cam.ViewportBounds()
	assert.InDelta(t, before.Width()*2, after.Width(), 1e-9)
	assert.InDelta(t, before.Height(), after.Height(), 1e-9)
}

func TestControllerZoomClampsToBounds(t *testing.T) {
	ctrl := NewCameraController(WithZoom(5), WithZoomBounds(2, 8), WithZoomSpeed(1))

	ctrl.ZoomBy(10)
	assert.Equal(t, 8.0, ctrl.Zoom())
	ctrl.ZoomBy(-100)
	assert.Equal(t, 2.0, ctrl.Zoom())

	ctrl.SetZoom(5.5)
	assert.Equal(t, 5.5, ctrl.Zoom())
	ctrl.SetZoom(100)
	assert.Equal(t, 8.0, ctrl.Zoom())
}

func TestControllerPanMovesCenterByPixels(t *testing.T) {
	ctrl := NewCameraController(WithCenter(0, 0), WithZoom(0))

	x0, y0 := ctrl.PlaneCenter()
	ctrl.PanBy(TileSize/2, 0)
	x1, y1 := ctrl.PlaneCenter()

	// at zoom 0 the world is TileSize pixels, so half a world of pixels
	// moves the center half a plane unit
	assert.InDelta(t, 0.5, x1-x0, 1e-9)
	assert.InDelta(t, y0, y1, 1e-9)
}

func TestControllerDragKeepsGrabbedPoint(t *testing.T) {
	ctrl := NewCameraController(WithCenter(10, 20), WithZoom(6))
	assert.False(t, ctrl.Dragging())

	x0, y0 := ctrl.PlaneCenter()
	ctrl.BeginDrag(100, 100)
	assert.True(t, ctrl.Dragging())

	ctrl.DragTo(150, 80)
	x1, y1 := ctrl.PlaneCenter()
	world := worldSize(6)
	assert.InDelta(t, -50/world, x1-x0, 1e-12, "drag east moves center west")
	assert.InDelta(t, 20/world, y1-y0, 1e-12, "drag north moves center south")

	ctrl.EndDrag()
	ctrl.DragTo(500, 500)
	x2, y2 := ctrl.PlaneCenter()
	assert.Equal(t, x1, x2, "moves after EndDrag are ignored")
	assert.Equal(t, y1, y2)
}

func TestControllerCenterRoundTrip(t *testing.T) {
	ctrl := NewCameraController()
	ctrl.SetCenter(139.6917, 35.6895)
	lng, lat := ctrl.Center()
	assert.InDelta(t, 139.6917, lng, 1e-9)
	assert.InDelta(t, 35.6895, lat, 1e-9)
}

func TestControllerCenterWrapsAntimeridian(t *testing.T) {
	ctrl := NewCameraController(WithCenter(179, 0), WithZoom(0))

	// pan a quarter world east across the antimeridian
	ctrl.PanBy(TileSize/4, 0)
	x, _ := ctrl.PlaneCenter()
	assert.GreaterOrEqual(t, x, 0.0)
	assert.Less(t, x, 1.0)

	lng, _ := ctrl.Center()
	assert.InDelta(t, -91, lng, 1e-6)
}

func TestCameraWorldSizeTracksZoom(t *testing.T) {
	ctrl := NewCameraController(WithZoom(0))
	cam := NewCamera(WithController(ctrl))
	assert.InDelta(t, TileSize, cam.WorldSize(), 1e-9)

	ctrl.SetZoom(3)
	assert.InDelta(t, TileSize*8, cam.WorldSize(), 1e-9)
}

func TestCameraWithoutControllerHoldsIdentity(t *testing.T) {
	cam := NewCamera()
	cam.Update()
	m := cam.ViewProjectionMatrix()
	assert.Equal(t, float32(1), m[0])
	assert.Equal(t, float32(1), m[5])
	assert.True(t, cam.ViewportBounds().IsEmpty())
	assert.InDelta(t, TileSize, cam.WorldSize(), 1e-9)
}

func TestControllerClampsLatitudeEdge(t *testing.T) {
	ctrl := NewCameraController(WithCenter(0, geo.MaxLatitude), WithZoom(1))

	// panning further north pins the center to the top plane edge
	ctrl.PanBy(0, -10000)
	_, y := ctrl.PlaneCenter()
	assert.Equal(t, 0.0, y)
}

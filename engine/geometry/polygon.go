package geometry

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/Carmen-Shannon/oxy-maps/common"
	"github.com/Carmen-Shannon/oxy-maps/engine/geo"
	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
)

// polygonPipeline renders polygon features as ear-clipped triangle fans of
// their outer rings. Every vertex carries a UV normalized against the ring's
// bounding box and the ring centroid, so fill effects can run in polygon
// space.
type polygonPipeline struct {
	ctx gfx.Context
	cfg pipelineConfig

	working      []*PolygonRecord
	featureCount int

	mesh            *mesh
	vertexData      []float32
	indexData       []uint32
	styleData       []float32
	interactionData []float32
}

var _ Pipeline = &polygonPipeline{}

// NewPolygonPipeline builds the polygon specialization.
//
// Parameters:
//   - ctx: the graphics context
//   - options: optional PipelineBuilderOption functions
//
// Returns:
//   - Pipeline: the polygon pipeline
//   - error: a GPU object creation failure
func NewPolygonPipeline(ctx gfx.Context, options ...PipelineBuilderOption) (Pipeline, error) {
	cfg := defaultPipelineConfig()
	for _, opt := range options {
		opt(&cfg)
	}
	m, err := newMesh(ctx)
	if err != nil {
		return nil, err
	}
	return &polygonPipeline{ctx: ctx, cfg: cfg, mesh: m}, nil
}

func (p *polygonPipeline) Kind() Kind {
	return KindPolygon
}

func (p *polygonPipeline) ProcessFeatures(features []*geojson.Feature) {
	p.cfg.pools.Polygons.ReleaseAll(p.working)
	p.working = p.working[:0]
	p.featureCount = len(features)

	for i, f := range features {
		rings := outerRings(f)
		if len(rings) == 0 {
			common.Logger().Debug("skipping feature without polygon geometry", "index", i)
			continue
		}
		color, intensity := p.cfg.style.Resolve(f)
		offset := p.cfg.timing(i, f)
		for _, ring := range rings {
			p.processRing(ring, i, offset, color, intensity)
		}
	}
}

// processRing projects and triangulates one outer ring. Degenerate rings
// (under 3 distinct points) and rings the triangulator rejects are skipped.
func (p *polygonPipeline) processRing(ring [][]float64, featureIndex int, offset float32, color common.Color, intensity float32) {
	r := p.cfg.pools.Polygons.Acquire()
	r.Vertices = r.Vertices[:0]
	for _, pos := range ring {
		x, y, ok := geo.ProjectPosition(pos)
		if !ok {
			p.cfg.pools.Polygons.Release(r)
			return
		}
		r.Vertices = append(r.Vertices, x, y)
	}

	// drop the GeoJSON closing point, the triangulator wants an open ring
	n := len(r.Vertices) / 2
	if n >= 2 && r.Vertices[0] == r.Vertices[2*(n-1)] && r.Vertices[1] == r.Vertices[2*(n-1)+1] {
		r.Vertices = r.Vertices[:2*(n-1)]
		n--
	}
	if n < 3 {
		p.cfg.pools.Polygons.Release(r)
		return
	}

	tri := EarClip(r.Vertices)
	if tri == nil {
		common.Logger().Debug("skipping untriangulatable ring", "feature", featureIndex, "vertices", n)
		p.cfg.pools.Polygons.Release(r)
		return
	}
	r.Indices = append(r.Indices[:0], tri...)

	r.MinX, r.MinY = r.Vertices[0], r.Vertices[1]
	r.MaxX, r.MaxY = r.Vertices[0], r.Vertices[1]
	cx, cy := 0.0, 0.0
	for v := 0; v < n; v++ {
		x, y := r.Vertices[2*v], r.Vertices[2*v+1]
		r.MinX, r.MaxX = min(r.MinX, x), max(r.MaxX, x)
		r.MinY, r.MaxY = min(r.MinY, y), max(r.MaxY, y)
		cx += x
		cy += y
	}
	r.CentroidX = cx / float64(n)
	r.CentroidY = cy / float64(n)
	r.FeatureIndex = featureIndex
	r.TimeOffset = offset
	r.Color = color
	r.Intensity = intensity
	p.working = append(p.working, r)
}

func (p *polygonPipeline) BuildBuffers() error {
	vertexTotal, indexTotal := 0, 0
	for _, r := range p.working {
		vertexTotal += len(r.Vertices) / 2
		indexTotal += len(r.Indices)
	}

	p.vertexData = ensureFloats(p.vertexData, vertexTotal*8)
	p.indexData = ensureIndices(p.indexData, indexTotal)
	p.styleData = ensureFloats(p.styleData, vertexTotal*5)
	p.interactionData = ensureFloats(p.interactionData, vertexTotal*2)

	vertexBase, indexBase := 0, 0
	for _, r := range p.working {
		n := len(r.Vertices) / 2
		w := r.MaxX - r.MinX
		h := r.MaxY - r.MinY

		for v := 0; v < n; v++ {
			x, y := r.Vertices[2*v], r.Vertices[2*v+1]
			u, vv := 0.0, 0.0
			if w > 0 {
				u = (x - r.MinX) / w
			}
			if h > 0 {
				vv = (y - r.MinY) / h
			}
			o := (vertexBase + v) * 8
			p.vertexData[o] = float32(x)
			p.vertexData[o+1] = float32(y)
			p.vertexData[o+2] = float32(u)
			p.vertexData[o+3] = float32(vv)
			p.vertexData[o+4] = float32(r.CentroidX)
			p.vertexData[o+5] = float32(r.CentroidY)
			p.vertexData[o+6] = float32(r.FeatureIndex)
			p.vertexData[o+7] = r.TimeOffset
		}

		for _, idx := range r.Indices {
			p.indexData[indexBase] = uint32(vertexBase) + idx
			indexBase++
		}

		fillStyle(p.styleData, vertexBase, n, r.Color, r.Intensity)
		vertexBase += n
	}
	fillInteractionDefaults(p.interactionData)

	p.mesh.upload(p.vertexData, p.indexData, p.styleData, p.interactionData)
	return nil
}

func (p *polygonPipeline) Draw() error {
	if len(p.working) == 0 {
		return nil
	}
	p.mesh.bind(PolygonMainLayout(), PolygonDataLayout(), PolygonInteractionLayout())
	p.mesh.drawTriangles()
	p.mesh.unbind(PolygonMainLayout(), PolygonDataLayout(), PolygonInteractionLayout())
	return nil
}

func (p *polygonPipeline) PatchInteraction(featurePairs []float32) {
	vertexBase := 0
	for _, r := range p.working {
		n := len(r.Vertices) / 2
		fo := r.FeatureIndex * interactionFloats
		if fo+1 < len(featurePairs) {
			for v := 0; v < n; v++ {
				o := (vertexBase + v) * interactionFloats
				p.interactionData[o] = featurePairs[fo]
				p.interactionData[o+1] = featurePairs[fo+1]
			}
		}
		vertexBase += n
	}
	p.mesh.patchInteraction(p.interactionData)
}

func (p *polygonPipeline) FeatureCount() int {
	return p.featureCount
}

func (p *polygonPipeline) RecordCount() int {
	return len(p.working)
}

func (p *polygonPipeline) Instanced() bool {
	return false
}

func (p *polygonPipeline) AttribBindings() map[string]uint32 {
	return mergeBindings(
		PolygonMainLayout().AttribBindings(),
		PolygonDataLayout().AttribBindings(),
		PolygonInteractionLayout().AttribBindings(),
	)
}

func (p *polygonPipeline) Defines() map[string]string {
	return map[string]string{}
}

func (p *polygonPipeline) Recreate() error {
	p.mesh.release()
	m, err := newMesh(p.ctx)
	if err != nil {
		return err
	}
	p.mesh = m
	return p.BuildBuffers()
}

func (p *polygonPipeline) Release() {
	p.cfg.pools.Polygons.ReleaseAll(p.working)
	p.working = p.working[:0]
	p.featureCount = 0
	p.mesh.release()
}

// outerRings extracts the outer ring of every polygon in the feature, nil
// when the feature carries no polygon geometry.
func outerRings(f *geojson.Feature) [][][]float64 {
	if f == nil || f.Geometry == nil {
		return nil
	}
	switch {
	case f.Geometry.IsPolygon():
		if len(f.Geometry.Polygon) == 0 {
			return nil
		}
		return [][][]float64{f.Geometry.Polygon[0]}
	case f.Geometry.IsMultiPolygon():
		var rings [][][]float64
		for _, poly := range f.Geometry.MultiPolygon {
			if len(poly) > 0 {
				rings = append(rings, poly[0])
			}
		}
		return rings
	default:
		return nil
	}
}

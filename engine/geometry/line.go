package geometry

import (
	"math"

	geojson "github.com/paulmach/go.geojson"

	"github.com/Carmen-Shannon/oxy-maps/common"
	"github.com/Carmen-Shannon/oxy-maps/engine/geo"
	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
)

// linePipeline renders line features as chains of screen-space quads, one
// per consecutive coordinate pair. Each vertex carries its own endpoint, the
// opposite endpoint and a side sign; the shader extrudes perpendicular to
// the segment direction at draw time. Cumulative progress along the whole
// line rides with every vertex for dash and flow effects.
type linePipeline struct {
	ctx gfx.Context
	cfg pipelineConfig

	working      []*SegmentRecord
	featureCount int

	mesh            *mesh
	vertexData      []float32
	indexData       []uint32
	styleData       []float32
	interactionData []float32
}

var _ Pipeline = &linePipeline{}

// NewLinePipeline builds the line specialization. Lines always use the
// standard per-vertex path; screen-space extrusion needs unique data on
// every vertex.
//
// Parameters:
//   - ctx: the graphics context
//   - options: optional PipelineBuilderOption functions
//
// Returns:
//   - Pipeline: the line pipeline
//   - error: a GPU object creation failure
func NewLinePipeline(ctx gfx.Context, options ...PipelineBuilderOption) (Pipeline, error) {
	cfg := defaultPipelineConfig()
	for _, opt := range options {
		opt(&cfg)
	}
	m, err := newMesh(ctx)
	if err != nil {
		return nil, err
	}
	return &linePipeline{ctx: ctx, cfg: cfg, mesh: m}, nil
}

func (p *linePipeline) Kind() Kind {
	return KindLine
}

func (p *linePipeline) ProcessFeatures(features []*geojson.Feature) {
	p.cfg.pools.Segments.ReleaseAll(p.working)
	p.working = p.working[:0]
	p.featureCount = len(features)

	for i, f := range features {
		parts := lineParts(f)
		if len(parts) == 0 {
			common.Logger().Debug("skipping feature without line geometry", "index", i)
			continue
		}
		color, intensity := p.cfg.style.Resolve(f)
		offset := p.cfg.timing(i, f)
		for _, part := range parts {
			p.processPart(part, i, offset, color, intensity)
		}
	}
}

// processPart projects one line part and emits its segment records with
// cumulative 0-1 progress.
func (p *linePipeline) processPart(part [][]float64, featureIndex int, offset float32, color common.Color, intensity float32) {
	pts := make([]float64, 0, len(part)*2)
	for _, pos := range part {
		x, y, ok := geo.ProjectPosition(pos)
		if !ok {
			return
		}
		pts = append(pts, x, y)
	}
	n := len(pts) / 2
	if n < 2 {
		return
	}

	total := 0.0
	cumulative := make([]float64, n)
	for j := 1; j < n; j++ {
		dx := pts[2*j] - pts[2*(j-1)]
		dy := pts[2*j+1] - pts[2*(j-1)+1]
		total += math.Hypot(dx, dy)
		cumulative[j] = total
	}

	for j := 0; j < n-1; j++ {
		r := p.cfg.pools.Segments.Acquire()
		r.X1, r.Y1 = pts[2*j], pts[2*j+1]
		r.X2, r.Y2 = pts[2*(j+1)], pts[2*(j+1)+1]
		if total > 0 {
			r.Progress1 = float32(cumulative[j] / total)
			r.Progress2 = float32(cumulative[j+1] / total)
		}
		r.FeatureIndex = featureIndex
		r.TimeOffset = offset
		r.Color = color
		r.Intensity = intensity
		p.working = append(p.working, r)
	}
}

func (p *linePipeline) BuildBuffers() error {
	n := len(p.working)
	p.vertexData = ensureFloats(p.vertexData, n*4*8)
	p.indexData = ensureIndices(p.indexData, n*6)
	p.styleData = ensureFloats(p.styleData, n*4*5)
	p.interactionData = ensureFloats(p.interactionData, n*4*2)

	for k, r := range p.working {
		x1, y1 := float32(r.X1), float32(r.Y1)
		x2, y2 := float32(r.X2), float32(r.Y2)

		// The shader derives the extrusion normal from a_pos - a_other,
		// which flips between the endpoints, so repeating +side, -side at
		// the far end walks the quad perimeter for the 0,1,2 0,2,3 split.
		writeLineVertex(p.vertexData, k*4, x1, y1, x2, y2, 1, r.Progress1, r.FeatureIndex, r.TimeOffset)
		writeLineVertex(p.vertexData, k*4+1, x1, y1, x2, y2, -1, r.Progress1, r.FeatureIndex, r.TimeOffset)
		writeLineVertex(p.vertexData, k*4+2, x2, y2, x1, y1, 1, r.Progress2, r.FeatureIndex, r.TimeOffset)
		writeLineVertex(p.vertexData, k*4+3, x2, y2, x1, y1, -1, r.Progress2, r.FeatureIndex, r.TimeOffset)

		base := uint32(k * 4)
		io := k * 6
		p.indexData[io] = base
		p.indexData[io+1] = base + 1
		p.indexData[io+2] = base + 2
		p.indexData[io+3] = base
		p.indexData[io+4] = base + 2
		p.indexData[io+5] = base + 3

		fillStyle(p.styleData, k*4, 4, r.Color, r.Intensity)
	}
	fillInteractionDefaults(p.interactionData)

	p.mesh.upload(p.vertexData, p.indexData, p.styleData, p.interactionData)
	return nil
}

func writeLineVertex(dst []float32, vertex int, x, y, ox, oy, side, progress float32, featureIndex int, timeOffset float32) {
	o := vertex * 8
	dst[o] = x
	dst[o+1] = y
	dst[o+2] = ox
	dst[o+3] = oy
	dst[o+4] = side
	dst[o+5] = progress
	dst[o+6] = float32(featureIndex)
	dst[o+7] = timeOffset
}

func (p *linePipeline) Draw() error {
	if len(p.working) == 0 {
		return nil
	}
	p.mesh.bind(LineMainLayout(), LineDataLayout(), LineInteractionLayout())
	p.mesh.drawTriangles()
	p.mesh.unbind(LineMainLayout(), LineDataLayout(), LineInteractionLayout())
	return nil
}

func (p *linePipeline) PatchInteraction(featurePairs []float32) {
	for k, r := range p.working {
		fo := r.FeatureIndex * interactionFloats
		if fo+1 >= len(featurePairs) {
			continue
		}
		for c := 0; c < 4; c++ {
			o := (k*4 + c) * interactionFloats
			p.interactionData[o] = featurePairs[fo]
			p.interactionData[o+1] = featurePairs[fo+1]
		}
	}
	p.mesh.patchInteraction(p.interactionData)
}

func (p *linePipeline) FeatureCount() int {
	return p.featureCount
}

func (p *linePipeline) RecordCount() int {
	return len(p.working)
}

func (p *linePipeline) Instanced() bool {
	return false
}

func (p *linePipeline) AttribBindings() map[string]uint32 {
	return mergeBindings(
		LineMainLayout().AttribBindings(),
		LineDataLayout().AttribBindings(),
		LineInteractionLayout().AttribBindings(),
	)
}

func (p *linePipeline) Defines() map[string]string {
	return map[string]string{}
}

func (p *linePipeline) Recreate() error {
	p.mesh.release()
	m, err := newMesh(p.ctx)
	if err != nil {
		return err
	}
	p.mesh = m
	return p.BuildBuffers()
}

func (p *linePipeline) Release() {
	p.cfg.pools.Segments.ReleaseAll(p.working)
	p.working = p.working[:0]
	p.featureCount = 0
	p.mesh.release()
}

// lineParts extracts the coordinate sequences of a feature, nil when the
// feature carries no line geometry.
func lineParts(f *geojson.Feature) [][][]float64 {
	if f == nil || f.Geometry == nil {
		return nil
	}
	switch {
	case f.Geometry.IsLineString():
		return [][][]float64{f.Geometry.LineString}
	case f.Geometry.IsMultiLineString():
		return f.Geometry.MultiLineString
	default:
		return nil
	}
}

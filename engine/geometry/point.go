package geometry

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/Carmen-Shannon/oxy-maps/common"
	"github.com/Carmen-Shannon/oxy-maps/engine/geo"
	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
	"github.com/Carmen-Shannon/oxy-maps/engine/instanced"
)

// pointPipeline renders point features as screen-facing quads. Below the
// instancing threshold every point becomes 4 vertices and 6 indices; at or
// above it every point becomes one instance on a shared quad. The path is
// selected once per rebuild.
type pointPipeline struct {
	ctx      gfx.Context
	strategy gfx.Instancing
	cfg      pipelineConfig

	working      []*PointRecord
	featureCount int

	useInstanced bool
	batch        instanced.Batch
	instanceData []float32

	mesh            *mesh
	vertexData      []float32
	indexData       []uint32
	styleData       []float32
	interactionData []float32
}

var _ Pipeline = &pointPipeline{}

// quadCorners are the per-record corner offsets of the standard path, in
// index order 0,1,2 / 0,2,3.
var quadCorners = [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// NewPointPipeline builds the point specialization.
//
// Parameters:
//   - ctx: the graphics context
//   - strategy: the instancing strategy selected for the context; an
//     unsupported strategy pins the pipeline to the standard path
//   - options: optional PipelineBuilderOption functions
//
// Returns:
//   - Pipeline: the point pipeline
//   - error: a GPU object creation failure
func NewPointPipeline(ctx gfx.Context, strategy gfx.Instancing, options ...PipelineBuilderOption) (Pipeline, error) {
	cfg := defaultPipelineConfig()
	for _, opt := range options {
		opt(&cfg)
	}

	m, err := newMesh(ctx)
	if err != nil {
		return nil, err
	}
	return &pointPipeline{ctx: ctx, strategy: strategy, cfg: cfg, mesh: m}, nil
}

func (p *pointPipeline) Kind() Kind {
	return KindPoint
}

func (p *pointPipeline) ProcessFeatures(features []*geojson.Feature) {
	p.cfg.pools.Points.ReleaseAll(p.working)
	p.working = p.working[:0]
	p.featureCount = len(features)

	for i, f := range features {
		positions := pointPositions(f)
		if len(positions) == 0 {
			common.Logger().Debug("skipping feature without point geometry", "index", i)
			continue
		}
		color, intensity := p.cfg.style.Resolve(f)
		offset := p.cfg.timing(i, f)
		for _, pos := range positions {
			x, y, ok := geo.ProjectPosition(pos)
			if !ok {
				continue
			}
			r := p.cfg.pools.Points.Acquire()
			r.X, r.Y = x, y
			r.FeatureIndex = i
			r.TimeOffset = offset
			r.Color = color
			r.Intensity = intensity
			p.working = append(p.working, r)
		}
	}
}

func (p *pointPipeline) BuildBuffers() error {
	n := len(p.working)
	p.useInstanced = n > 0 && n >= p.cfg.threshold && p.strategy.Supported()
	if p.useInstanced {
		return p.buildInstanced()
	}
	p.buildStandard()
	return nil
}

func (p *pointPipeline) buildInstanced() error {
	if p.batch == nil {
		b, err := instanced.NewBatch(p.ctx, p.strategy, PointSharedLayout(), PointInstanceLayout())
		if err != nil {
			return err
		}
		b.UploadShared(
			common.SliceToBytes(instanced.QuadVertices()),
			common.SliceToBytes(instanced.QuadIndices()),
			gfx.UnsignedShort, len(instanced.QuadIndices()),
		)
		p.batch = b
	}

	n := len(p.working)
	p.instanceData = ensureFloats(p.instanceData, n*InstanceFloatCount)
	for k, r := range p.working {
		o := k * InstanceFloatCount
		p.instanceData[o] = float32(r.X)
		p.instanceData[o+1] = float32(r.Y)
		p.instanceData[o+2] = float32(r.FeatureIndex)
		p.instanceData[o+3] = r.TimeOffset
		p.instanceData[o+4] = r.Color.R
		p.instanceData[o+5] = r.Color.G
		p.instanceData[o+6] = r.Color.B
		p.instanceData[o+7] = r.Color.A
		p.instanceData[o+8] = r.Intensity
		p.instanceData[o+9] = 1
		p.instanceData[o+10] = 0
	}
	p.batch.UploadInstances(common.SliceToBytes(p.instanceData))

	// the standard buffers are stale now, make sure they cannot draw
	p.mesh.upload(nil, nil, nil, nil)
	return nil
}

func (p *pointPipeline) buildStandard() {
	n := len(p.working)
	p.vertexData = ensureFloats(p.vertexData, n*4*6)
	p.indexData = ensureIndices(p.indexData, n*6)
	p.styleData = ensureFloats(p.styleData, n*4*5)
	p.interactionData = ensureFloats(p.interactionData, n*4*2)

	for k, r := range p.working {
		x, y := float32(r.X), float32(r.Y)
		for c, corner := range quadCorners {
			o := (k*4 + c) * 6
			p.vertexData[o] = x
			p.vertexData[o+1] = y
			p.vertexData[o+2] = corner[0]
			p.vertexData[o+3] = corner[1]
			p.vertexData[o+4] = float32(r.FeatureIndex)
			p.vertexData[o+5] = r.TimeOffset
		}
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
}

func (p *pointPipeline) Draw() error {
	if len(p.working) == 0 {
		return nil
	}
	if p.useInstanced {
		return p.batch.Draw(len(p.working))
	}
	p.mesh.bind(PointMainLayout(), PointDataLayout(), PointInteractionLayout())
	p.mesh.drawTriangles()
	p.mesh.unbind(PointMainLayout(), PointDataLayout(), PointInteractionLayout())
	return nil
}

func (p *pointPipeline) PatchInteraction(featurePairs []float32) {
	if p.useInstanced {
		for k, r := range p.working {
			o := k*InstanceFloatCount + 9
			fo := r.FeatureIndex * interactionFloats
			if fo+1 >= len(featurePairs) {
				continue
			}
			p.instanceData[o] = featurePairs[fo]
			p.instanceData[o+1] = featurePairs[fo+1]
		}
		p.batch.PatchInstances(0, common.SliceToBytes(p.instanceData))
		return
	}

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

func (p *pointPipeline) FeatureCount() int {
	return p.featureCount
}

func (p *pointPipeline) RecordCount() int {
	return len(p.working)
}

func (p *pointPipeline) Instanced() bool {
	return p.useInstanced
}

func (p *pointPipeline) AttribBindings() map[string]uint32 {
	if p.useInstanced {
		return mergeBindings(
			PointSharedLayout().AttribBindings(),
			PointInstanceLayout().AttribBindings(),
		)
	}
	return mergeBindings(
		PointMainLayout().AttribBindings(),
		PointDataLayout().AttribBindings(),
		PointInteractionLayout().AttribBindings(),
	)
}

func (p *pointPipeline) Defines() map[string]string {
	if p.useInstanced {
		return map[string]string{"INSTANCED": "1"}
	}
	return map[string]string{}
}

func (p *pointPipeline) Recreate() error {
	p.mesh.release()
	if p.batch != nil {
		p.batch.Release()
		p.batch = nil
	}
	m, err := newMesh(p.ctx)
	if err != nil {
		return err
	}
	p.mesh = m
	return p.BuildBuffers()
}

func (p *pointPipeline) Release() {
	p.cfg.pools.Points.ReleaseAll(p.working)
	p.working = p.working[:0]
	p.featureCount = 0
	p.mesh.release()
	if p.batch != nil {
		p.batch.Release()
		p.batch = nil
	}
}

// pointPositions extracts the projectable positions of a feature, nil when
// the feature carries no point geometry.
func pointPositions(f *geojson.Feature) [][]float64 {
	if f == nil || f.Geometry == nil {
		return nil
	}
	switch {
	case f.Geometry.IsPoint():
		return [][]float64{f.Geometry.Point}
	case f.Geometry.IsMultiPoint():
		return f.Geometry.MultiPoint
	default:
		return nil
	}
}

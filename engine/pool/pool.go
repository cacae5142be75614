// package pool provides a generic free-list allocator for the mutable records
// the geometry pipelines churn through on every rebuild. Records are acquired
// at the start of a rebuild, filled in place, and released in bulk at the start
// of the next one, so steady-state rebuilds allocate nothing.
//
// Pools are not safe for concurrent use. All access is expected to happen on
// the single render goroutine that owns the layers sharing the pool.
package pool

import (
	"github.com/Carmen-Shannon/oxy-maps/common"
)

// Pool hands out reusable records of a single concrete type. Records come
// from an idle free list when available, otherwise from the configured
// factory. Growth happens in multiplicative steps up to a configured maximum;
// past the maximum, acquisition degrades to plain allocation instead of
// failing, and the overflow is visible in Stats.
type Pool[T any] interface {
	// Acquire returns a ready-to-use record, taking one from the free list or
	// creating one when the list is empty.
	//
	// Returns:
	//   - *T: a record in reset state, never nil
	Acquire() *T

	// Release resets a record and returns it to the free list. Records beyond
	// the pool's retention capacity are dropped for the garbage collector.
	// Releasing nil is a no-op.
	//
	// Parameters:
	//   - record: the record to reset and recycle
	Release(record *T)

	// ReleaseAll releases every record in the slice and nils out the slice
	// entries so the caller's working list holds no stale references. This is
	// the bulk form used at the start of every rebuild.
	//
	// Parameters:
	//   - records: the working list to recycle
	ReleaseAll(records []*T)

	// Stats returns a snapshot of the pool's counters.
	//
	// Returns:
	//   - Stats: current counter values
	Stats() Stats

	// Drain drops every idle record, releasing the free list to the garbage
	// collector. Counters that describe history (created, growth events, peak)
	// are preserved. Used on full teardown.
	Drain()
}

// Stats is a snapshot of a pool's diagnostic counters.
type Stats struct {
	// Created is the total number of records ever constructed by the factory,
	// including fallback allocations past the configured maximum.
	Created int
	// Idle is the number of records currently sitting in the free list.
	Idle int
	// InUse is the number of records currently acquired and not yet released.
	InUse int
	// GrowthEvents counts how many times the free list was grown by the
	// growth factor.
	GrowthEvents int
	// PeakInUse is the highest concurrent InUse value observed.
	PeakInUse int
	// FallbackAllocs counts acquisitions that were served by plain allocation
	// because the pool had reached its configured maximum.
	FallbackAllocs int
}

type pool[T any] struct {
	factory func() *T
	reset   func(*T)

	idle []*T

	initialCapacity int
	growthFactor    float64
	maxSize         int

	created        int
	inUse          int
	growthEvents   int
	peakInUse      int
	fallbackAllocs int
}

var _ Pool[struct{}] = &pool[struct{}]{}

// NewPool constructs a Pool for one record type. The factory must return a
// record in reset state; the reset function must return a used record to that
// same state.
//
// Parameters:
//   - factory: allocates a new zero-state record
//   - reset: clears a used record back to zero state
//   - options: optional PoolBuilderOption functions to configure capacity and growth
//
// Returns:
//   - Pool[T]: the configured pool
func NewPool[T any](factory func() *T, reset func(*T), options ...PoolBuilderOption) Pool[T] {
	cfg := poolConfig{}
	for _, opt := range options {
		opt(&cfg)
	}

	p := &pool[T]{
		factory:         factory,
		reset:           reset,
		initialCapacity: common.Coalesce(cfg.initialCapacity, defaultInitialCapacity),
		growthFactor:    common.Coalesce(cfg.growthFactor, defaultGrowthFactor),
		maxSize:         common.Coalesce(cfg.maxSize, defaultMaxSize),
	}
	if p.growthFactor < minGrowthFactor {
		p.growthFactor = minGrowthFactor
	}
	if p.initialCapacity < 1 {
		p.initialCapacity = 1
	}
	if p.maxSize < p.initialCapacity {
		p.maxSize = p.initialCapacity
	}
	return p
}

func (p *pool[T]) Acquire() *T {
	if len(p.idle) == 0 && p.created < p.maxSize {
		p.grow()
	}

	var record *T
	if n := len(p.idle); n > 0 {
		record = p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]
	} else {
		record = p.factory()
		p.created++
		p.fallbackAllocs++
	}

	p.inUse++
	if p.inUse > p.peakInUse {
		p.peakInUse = p.inUse
	}
	return record
}

func (p *pool[T]) Release(record *T) {
	if record == nil {
		return
	}
	p.reset(record)
	if p.inUse > 0 {
		p.inUse--
	}
	if len(p.idle) < p.maxSize {
		p.idle = append(p.idle, record)
	}
}

func (p *pool[T]) ReleaseAll(records []*T) {
	for i, record := range records {
		p.Release(record)
		records[i] = nil
	}
}

func (p *pool[T]) Stats() Stats {
	return Stats{
		Created:        p.created,
		Idle:           len(p.idle),
		InUse:          p.inUse,
		GrowthEvents:   p.growthEvents,
		PeakInUse:      p.peakInUse,
		FallbackAllocs: p.fallbackAllocs,
	}
}

func (p *pool[T]) Drain() {
	for i := range p.idle {
		p.idle[i] = nil
	}
	p.idle = p.idle[:0]
}

// grow extends the free list multiplicatively, clamped to maxSize. The first
// growth fills the list to the initial capacity.
func (p *pool[T]) grow() {
	target := p.initialCapacity
	if p.created > 0 {
		target = int(float64(p.created) * p.growthFactor)
		if target <= p.created {
			target = p.created + 1
		}
	}
	if target > p.maxSize {
		target = p.maxSize
	}
	if target <= p.created {
		return
	}

	for i := p.created; i < target; i++ {
		p.idle = append(p.idle, p.factory())
	}
	p.created = target
	p.growthEvents++
}

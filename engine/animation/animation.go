// package animation tracks per-feature play state for animated overlay
// layers. Every feature identity owns a playing/paused bit, the global time
// captured at its last pause and a replay counter; a single coarse dirty
// flag tells the consumer when the GPU-side interaction data went stale.
// All access is confined to the render thread, matching the engine's
// cooperative frame model.
package animation

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/Carmen-Shannon/oxy-maps/engine/geo"
)

// State is the animation state of one tracked feature.
type State struct {
	// FeatureID is the resolved feature identity.
	FeatureID string
	// IsPlaying reports whether the feature's animation advances with
	// global time.
	IsPlaying bool
	// LocalTime is the global time captured at the last pause. The shader
	// renders the frozen instant from it while IsPlaying is false.
	LocalTime float32
	// PlayCount is the number of paused-to-playing transitions.
	PlayCount int
}

// states is the implementation of the States interface.
type states struct {
	idProperty string

	byID  map[string]*State
	order []string

	globalTime float32
	dirty      bool

	scratch []float32
}

// States manages the animation state of every feature in a layer's current
// snapshot. It is rebuilt wholesale from each feature snapshot; mutations
// between rebuilds come from the layer's interaction surface.
//
// The dirty flag is coarse: any state mutation sets it, and the consumer
// clears it after uploading the data from GenerateBufferData. Tick never
// sets it.
type States interface {
	// InitializeFromFeatures replaces all tracked state with fresh entries
	// for the given snapshot, one per feature identity in input order.
	// Every entry starts playing at local time zero. The dirty flag is set.
	//
	// Parameters:
	//   - features: the feature snapshot, may be empty or nil
	InitializeFromFeatures(features []*geojson.Feature)

	// Play transitions a paused feature to playing and increments its play
	// count. Playing or untracked features are left untouched.
	//
	// Parameters:
	//   - id: the feature identity
	Play(id string)

	// Pause transitions a playing feature to paused, capturing the current
	// global time into LocalTime so the frozen render reflects the instant
	// of pausing. Paused or untracked features are left untouched.
	//
	// Parameters:
	//   - id: the feature identity
	Pause(id string)

	// Toggle dispatches to Play or Pause based on the feature's current
	// state. Untracked features are left untouched.
	//
	// Parameters:
	//   - id: the feature identity
	Toggle(id string)

	// Reset returns a feature to local time zero with a zero play count.
	// The playing/paused bit is unchanged; callers wanting a specific bit
	// follow up with Play or Pause.
	//
	// Parameters:
	//   - id: the feature identity
	Reset(id string)

	// PlayAll applies the Play transition to every tracked feature.
	PlayAll()

	// PauseAll applies the Pause transition to every tracked feature.
	PauseAll()

	// ResetAll applies the Reset transition to every tracked feature.
	ResetAll()

	// Tick records the latest global animation time, which a subsequent
	// Pause captures. It is called once per frame by the orchestrator and
	// never sets the dirty flag.
	//
	// Parameters:
	//   - globalTime: the layer clock's current time in seconds
	//   - deltaTime: the scaled frame delta in seconds
	Tick(globalTime, deltaTime float32)

	// GenerateBufferData expands the per-feature isPlaying/localTime pair
	// into a flat float array, replicating each feature's pair across
	// verticesPerFeature consecutive vertices in snapshot order. The
	// returned slice is reused by the next call.
	//
	// Parameters:
	//   - verticesPerFeature: how many times to replicate each pair, min 1
	//
	// Returns:
	//   - []float32: isPlaying (1 or 0) and localTime per vertex
	GenerateBufferData(verticesPerFeature int) []float32

	// Get returns a snapshot of one feature's state.
	//
	// Parameters:
	//   - id: the feature identity
	//
	// Returns:
	//   - State: the state copy, zero when untracked
	//   - bool: false when the feature is untracked
	Get(id string) (State, bool)

	// GlobalTime returns the time recorded by the last Tick.
	//
	// Returns:
	//   - float32: the latest global animation time
	GlobalTime() float32

	// Count returns the number of tracked feature entries.
	//
	// Returns:
	//   - int: the tracked feature count
	Count() int

	// IsDirty reports whether state changed since the last ClearDirty.
	//
	// Returns:
	//   - bool: true when the GPU-side data is stale
	IsDirty() bool

	// MarkDirty forces the dirty flag, for consumers that rebuilt their
	// buffers from defaults and need the authoritative state reapplied.
	MarkDirty()

	// ClearDirty resets the dirty flag. Call it immediately after
	// consuming GenerateBufferData.
	ClearDirty()
}

var _ States = &states{}

// NewStates builds an empty state manager.
//
// Parameters:
//   - options: optional StatesBuilderOption functions
//
// Returns:
//   - States: the state manager
func NewStates(options ...StatesBuilderOption) States {
	s := &states{
		byID: map[string]*State{},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *states) InitializeFromFeatures(features []*geojson.Feature) {
	s.byID = make(map[string]*State, len(features))
	s.order = s.order[:0]

	for i, f := range features {
		id := geo.FeatureID(f, s.idProperty, i)
		s.order = append(s.order, id)
		if _, exists := s.byID[id]; exists {
			// duplicate identities share one entry
			continue
		}
		s.byID[id] = &State{FeatureID: id, IsPlaying: true}
	}
	s.dirty = true
}

func (s *states) Play(id string) {
	if st, ok := s.byID[id]; ok && !st.IsPlaying {
		st.IsPlaying = true
		st.PlayCount++
		s.dirty = true
	}
}

func (s *states) Pause(id string) {
	if st, ok := s.byID[id]; ok && st.IsPlaying {
		st.IsPlaying = false
		st.LocalTime = s.globalTime
		s.dirty = true
	}
}

func (s *states) Toggle(id string) {
	st, ok := s.byID[id]
	if !ok {
		return
	}
	if st.IsPlaying {
		s.Pause(id)
	} else {
		s.Play(id)
	}
}

func (s *states) Reset(id string) {
	if st, ok := s.byID[id]; ok {
		st.LocalTime = 0
		st.PlayCount = 0
		s.dirty = true
	}
}

func (s *states) PlayAll() {
	for _, st := range s.byID {
		if !st.IsPlaying {
			st.IsPlaying = true
			st.PlayCount++
			s.dirty = true
		}
	}
}

func (s *states) PauseAll() {
	for _, st := range s.byID {
		if st.IsPlaying {
			st.IsPlaying = false
			st.LocalTime = s.globalTime
			s.dirty = true
		}
	}
}

func (s *states) ResetAll() {
	for _, st := range s.byID {
		st.LocalTime = 0
		st.PlayCount = 0
		s.dirty = true
	}
}

func (s *states) Tick(globalTime, _ float32) {
	// only the time is recorded; per-feature time math runs in the shader
	s.globalTime = globalTime
}

func (s *states) GenerateBufferData(verticesPerFeature int) []float32 {
	if verticesPerFeature < 1 {
		verticesPerFeature = 1
	}
	n := len(s.order) * verticesPerFeature * 2
	if cap(s.scratch) < n {
		s.scratch = make([]float32, n)
	}
	s.scratch = s.scratch[:n]

	o := 0
	for _, id := range s.order {
		playing, localTime := float32(1), float32(0)
		if st, ok := s.byID[id]; ok {
			if !st.IsPlaying {
				playing = 0
			}
			localTime = st.LocalTime
		}
		for v := 0; v < verticesPerFeature; v++ {
			s.scratch[o] = playing
			s.scratch[o+1] = localTime
			o += 2
		}
	}
	return s.scratch
}

func (s *states) Get(id string) (State, bool) {
	if st, ok := s.byID[id]; ok {
		return *st, true
	}
	return State{}, false
}

func (s *states) GlobalTime() float32 {
	return s.globalTime
}

func (s *states) Count() int {
	return len(s.byID)
}

func (s *states) IsDirty() bool {
	return s.dirty
}

func (s *states) MarkDirty() {
	s.dirty = true
}

func (s *states) ClearDirty() {
	s.dirty = false
}

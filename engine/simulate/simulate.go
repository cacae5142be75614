// package simulate generates synthetic GeoJSON feeds for examples and load
// tests: a road network of route polylines, vehicles moving along them, and
// polygon zones. Construction is seeded and deterministic; Step advances the
// vehicles on a worker pool, sharded across disjoint index ranges.
//
// Snapshots returned by Vehicles are immutable by construction (every Step
// publishes freshly built features), so a layer's FeatureSource can hand
// them to the render thread while the simulation keeps stepping on its own
// goroutine.
package simulate

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	geojson "github.com/paulmach/go.geojson"
)

// Region is a geographic bounding box in degrees.
type Region struct {
	MinLng float64
	MinLat float64
	MaxLng float64
	MaxLat float64
}

func (r Region) width() float64  { return r.MaxLng - r.MinLng }
func (r Region) height() float64 { return r.MaxLat - r.MinLat }

// routePoint is one vertex of a generated route with the cumulative length of
// the polyline up to it, in degrees.
type routePoint struct {
	lng    float64
	lat    float64
	cumLen float64
}

// vehicle is the mutable state of one simulated vehicle: the route it
// follows, its normalized progress along it, and the last segment it was
// found on (a cursor that avoids re-scanning the route every step).
type vehicle struct {
	route   int
	t       float64
	speed   float64 // progress per second
	segment int

	lng     float64
	lat     float64
	bearing float64
}

// Traffic is a deterministic traffic world: static routes and zones built at
// construction, vehicles advanced by Step. Step must not be called
// concurrently with itself; snapshots from Vehicles are safe to read from any
// goroutine.
type Traffic interface {
	// Step advances every vehicle by the elapsed time. Progress wraps at the
	// end of a route, so vehicles loop forever. A new vehicle snapshot is
	// published when the step completes.
	//
	// Parameters:
	//   - deltaSeconds: elapsed simulation time in seconds
	Step(deltaSeconds float64)

	// Vehicles returns the latest published vehicle snapshot as point
	// features with "id", "route", "speed" and "bearing" properties.
	//
	// Returns:
	//   - []*geojson.Feature: the immutable snapshot
	Vehicles() []*geojson.Feature

	// Routes returns the static route polylines as line features with "id"
	// properties.
	//
	// Returns:
	//   - []*geojson.Feature: the route features, shared across calls
	Routes() []*geojson.Feature

	// Zones returns the static polygon zones with "id" and "intensity"
	// properties.
	//
	// Returns:
	//   - []*geojson.Feature: the zone features, shared across calls
	Zones() []*geojson.Feature

	// VehicleCount returns the number of simulated vehicles.
	//
	// Returns:
	//   - int: the vehicle count
	VehicleCount() int

	// Start spawns a goroutine stepping the simulation at a fixed rate,
	// invoking onStep after each step. Use onStep to hand change
	// notifications to the render thread. Calling Start on a running
	// simulation is ignored.
	//
	// Parameters:
	//   - stepsPerSecond: the step rate (values <= 0 default to 30)
	//   - onStep: called after every step, may be nil
	Start(stepsPerSecond float64, onStep func())

	// Stop terminates the Start goroutine. Safe to call multiple times;
	// subsequent calls are no-ops.
	Stop()
}

type traffic struct {
	mu *sync.RWMutex

	region    Region
	seed      int64
	workers   int
	speedMin  float64
	speedMax  float64
	waypoints int
	numRoutes int
	numZones  int

	routes        [][]routePoint
	routeFeatures []*geojson.Feature
	zoneFeatures  []*geojson.Feature

	vehicles []vehicle
	snapshot []*geojson.Feature

	// stepPool shards the per-vehicle advance across reusable workers.
	// Workers persist across steps, avoiding per-step goroutine churn.
	stepPool worker.DynamicWorkerPool

	started     bool
	quitChannel chan struct{}
	quitOnce    *sync.Once
}

var _ Traffic = &traffic{}

// NewTraffic builds a seeded traffic world with the given number of vehicles.
// Routes, zones and vehicle assignments are generated immediately; the first
// vehicle snapshot is available before any Step.
//
// Parameters:
//   - vehicles: the number of simulated vehicles
//   - options: functional options for region, seed, density and pacing
//
// Returns:
//   - Traffic: the simulation
func NewTraffic(vehicles int, options ...TrafficBuilderOption) Traffic {
	if vehicles < 0 {
		vehicles = 0
	}
	t := &traffic{
		mu: &sync.RWMutex{},
		// San Francisco by default, a compact region where routes read well
		region:    Region{MinLng: -122.52, MinLat: 37.70, MaxLng: -122.35, MaxLat: 37.83},
		seed:      1,
		workers:   max(runtime.NumCPU()-1, 1),
		speedMin:  0.02,
		speedMax:  0.1,
		waypoints: 6,
		numRoutes: max(vehicles/25, 1),
		numZones:  12,

		quitChannel: make(chan struct{}),
		quitOnce:    &sync.Once{},
	}
	for _, option := range options {
		option(t)
	}

	t.stepPool = worker.NewDynamicWorkerPool(t.workers, 256, 1*time.Second)

	rng := rand.New(rand.NewSource(t.seed))
	t.generateRoutes(rng)
	t.generateZones(rng)
	t.generateVehicles(rng, vehicles)
	t.advance(0)
	t.publish()
	return t
}

func (t *traffic) VehicleCount() int {
	return len(t.vehicles)
}

func (t *traffic) Routes() []*geojson.Feature {
	return t.routeFeatures
}

func (t *traffic) Zones() []*geojson.Feature {
	return t.zoneFeatures
}

func (t *traffic) Vehicles() []*geojson.Feature {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshot
}

func (t *traffic) Step(deltaSeconds float64) {
	if deltaSeconds < 0 {
		deltaSeconds = 0
	}
	t.advance(deltaSeconds)
	t.publish()
}

func (t *traffic) Start(stepsPerSecond float64, onStep func()) {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return
	}
	t.started = true
	t.mu.Unlock()

	if stepsPerSecond <= 0 {
		stepsPerSecond = 30
	}
	interval := time.Duration(float64(time.Second) / stepsPerSecond)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		last := time.Now()
		for {
			select {
			case <-t.quitChannel:
				return
			case now := <-ticker.C:
				t.Step(now.Sub(last).Seconds())
				last = now
				if onStep != nil {
					onStep()
				}
			}
		}
	}()
}

func (t *traffic) Stop() {
	t.quitOnce.Do(func() {
		close(t.quitChannel)
	})
}

// advance moves every vehicle forward by dt, sharded across the worker pool.
// Shards cover disjoint index ranges and the motion is pure arithmetic, so
// the result is identical for any worker count.
func (t *traffic) advance(dt float64) {
	n := len(t.vehicles)
	if n == 0 {
		return
	}

	shards := t.workers
	if shards > n {
		shards = n
	}
	per := (n + shards - 1) / shards

	var wg sync.WaitGroup
	for s := 0; s < shards; s++ {
		start := s * per
		end := min(start+per, n)
		if start >= end {
			break
		}
		wg.Add(1)
		t.stepPool.SubmitTask(worker.Task{
			ID: s,
			Do: func() (any, error) {
				defer wg.Done()
				for i := start; i < end; i++ {
					t.moveVehicle(&t.vehicles[i], dt)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// moveVehicle advances one vehicle's progress and resolves its position and
// bearing along the assigned route.
func (t *traffic) moveVehicle(v *vehicle, dt float64) {
	route := t.routes[v.route]
	total := route[len(route)-1].cumLen

	v.t += v.speed * dt
	if v.t >= 1 {
		v.t -= math.Floor(v.t)
		v.segment = 0
	}

	target := v.t * total
	for v.segment < len(route)-2 && route[v.segment+1].cumLen < target {
		v.segment++
	}

	a, b := route[v.segment], route[v.segment+1]
	segLen := b.cumLen - a.cumLen
	frac := 0.0
	if segLen > 0 {
		frac = (target - a.cumLen) / segLen
	}
	v.lng = a.lng + (b.lng-a.lng)*frac
	v.lat = a.lat + (b.lat-a.lat)*frac
	v.bearing = math.Atan2(b.lat-a.lat, b.lng-a.lng) * 180 / math.Pi
}

// publish builds a fresh feature snapshot from the vehicle state and swaps it
// in. Previously returned snapshots are never touched again.
func (t *traffic) publish() {
	features := make([]*geojson.Feature, len(t.vehicles))
	for i := range t.vehicles {
		v := &t.vehicles[i]
		f := geojson.NewFeature(geojson.NewPointGeometry([]float64{v.lng, v.lat}))
		f.SetProperty("id", fmt.Sprintf("veh-%d", i))
		f.SetProperty("route", v.route)
		f.SetProperty("speed", v.speed)
		f.SetProperty("bearing", v.bearing)
		features[i] = f
	}
	t.mu.Lock()
	t.snapshot = features
	t.mu.Unlock()
}

// generateRoutes lays out numRoutes random-walk polylines inside the region
// and their cumulative lengths.
func (t *traffic) generateRoutes(rng *rand.Rand) {
	t.routes = make([][]routePoint, t.numRoutes)
	t.routeFeatures = make([]*geojson.Feature, t.numRoutes)

	stepLng := t.region.width() / 8
	stepLat := t.region.height() / 8

	for r := range t.routes {
		pts := make([]routePoint, max(t.waypoints, 2))
		lng := t.region.MinLng + rng.Float64()*t.region.width()
		lat := t.region.MinLat + rng.Float64()*t.region.height()
		pts[0] = routePoint{lng: lng, lat: lat}

		for i := 1; i < len(pts); i++ {
			lng = clamp(lng+(rng.Float64()*2-1)*stepLng, t.region.MinLng, t.region.MaxLng)
			lat = clamp(lat+(rng.Float64()*2-1)*stepLat, t.region.MinLat, t.region.MaxLat)
			prev := pts[i-1]
			seg := math.Hypot(lng-prev.lng, lat-prev.lat)
			pts[i] = routePoint{lng: lng, lat: lat, cumLen: prev.cumLen + seg}
		}
		// degenerate walks would break progress interpolation
		if pts[len(pts)-1].cumLen == 0 {
			pts[len(pts)-1].lng += stepLng / 100
			pts[len(pts)-1].cumLen = stepLng / 100
		}
		t.routes[r] = pts

		coords := make([][]float64, len(pts))
		for i, p := range pts {
			coords[i] = []float64{p.lng, p.lat}
		}
		f := geojson.NewFeature(geojson.NewLineStringGeometry(coords))
		f.SetProperty("id", fmt.Sprintf("route-%d", r))
		t.routeFeatures[r] = f
	}
}

// generateZones lays out numZones hexagonal cells with random centers and
// sizes inside the region.
func (t *traffic) generateZones(rng *rand.Rand) {
	t.zoneFeatures = make([]*geojson.Feature, t.numZones)
	const sides = 6

	for z := range t.zoneFeatures {
		cx := t.region.MinLng + rng.Float64()*t.region.width()
		cy := t.region.MinLat + rng.Float64()*t.region.height()
		radius := (0.02 + rng.Float64()*0.06) * t.region.width()

		ring := make([][]float64, sides+1)
		for i := 0; i < sides; i++ {
			angle := 2 * math.Pi * float64(i) / sides
			ring[i] = []float64{cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)}
		}
		ring[sides] = ring[0]

		f := geojson.NewFeature(geojson.NewPolygonGeometry([][][]float64{ring}))
		f.SetProperty("id", fmt.Sprintf("zone-%d", z))
		f.SetProperty("intensity", rng.Float64())
		t.zoneFeatures[z] = f
	}
}

// generateVehicles spreads n vehicles across the routes with randomized
// progress and speed.
func (t *traffic) generateVehicles(rng *rand.Rand, n int) {
	t.vehicles = make([]vehicle, n)
	for i := range t.vehicles {
		t.vehicles[i] = vehicle{
			route: rng.Intn(len(t.routes)),
			t:     rng.Float64(),
			speed: t.speedMin + rng.Float64()*(t.speedMax-t.speedMin),
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

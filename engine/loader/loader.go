package loader

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	geojson "github.com/paulmach/go.geojson"
)

// LoaderBackendType identifies the feature document format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGeoJSON selects the GeoJSON document backend.
	BackendTypeGeoJSON LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	fsys fs.FS

	collectionCache map[string][]*geojson.Feature

	backend loaderBackend
}

// Loader defines the public-facing interface for loading and caching feature
// documents. It abstracts the document format behind a generic backend and
// manages a cache of previously loaded collections, so a document read once
// can feed any number of layers.
type Loader interface {
	// Load reads a feature document from a file and caches the result.
	// If the document is already cached (by file path), the cached collection
	// is returned. The backend is selected based on the file extension
	// (.geojson/.json → GeoJSON backend). When the loader was built with a
	// file system option, the path is resolved against that file system;
	// otherwise it is read from the OS.
	//
	// Parameters:
	//   - path: the file path to the feature document
	//
	// Returns:
	//   - []*geojson.Feature: the loaded and cached features
	//   - error: error if reading or parsing fails
	Load(path string) ([]*geojson.Feature, error)

	// LoadReader reads a feature document from a reader stream and caches it
	// by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded collection
	//   - r: the reader providing document data
	//
	// Returns:
	//   - []*geojson.Feature: the loaded features
	//   - error: error if reading or parsing fails
	LoadReader(name string, r io.Reader) ([]*geojson.Feature, error)

	// Parse parses an in-memory feature document and caches it by the given
	// name. FeatureCollection, single-Feature and bare-Geometry documents are
	// all accepted; the latter two load as one-feature collections.
	//
	// Parameters:
	//   - name: the cache key for the parsed collection
	//   - data: the raw document bytes
	//
	// Returns:
	//   - []*geojson.Feature: the parsed features
	//   - error: error if parsing fails
	Parse(name string, data []byte) ([]*geojson.Feature, error)

	// Get retrieves a cached collection by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - []*geojson.Feature: the cached features or nil
	Get(name string) []*geojson.Feature

	// Collections returns the full collection cache.
	//
	// Returns:
	//   - map[string][]*geojson.Feature: all cached collections keyed by name
	Collections() map[string][]*geojson.Feature

	// Source returns a feature source closure over the named cache entry,
	// suitable for constructing a layer. The closure re-reads the cache on
	// every call, so reloading the document under the same name is picked up
	// by the layer's next rebuild.
	//
	// Parameters:
	//   - name: the cache key the source tracks
	//
	// Returns:
	//   - func() []*geojson.Feature: the snapshot closure
	Source(name string) func() []*geojson.Feature
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGeoJSON)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:              sync.RWMutex{},
		collectionCache: make(map[string][]*geojson.Feature),
	}

	switch backendType {
	case BackendTypeGeoJSON:
		l.backend = newGeoJSONLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) ([]*geojson.Feature, error) {
	l.mu.RLock()
	if cached, ok := l.collectionCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	data, err := l.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	features, err := backend.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.mu.Lock()
	l.collectionCache[path] = features
	l.mu.Unlock()

	return features, nil
}

func (l *loader) LoadReader(name string, r io.Reader) ([]*geojson.Feature, error) {
	l.mu.RLock()
	if cached, ok := l.collectionCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	features, err := l.backend.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	l.mu.Lock()
	l.collectionCache[name] = features
	l.mu.Unlock()

	return features, nil
}

func (l *loader) Parse(name string, data []byte) ([]*geojson.Feature, error) {
	l.mu.RLock()
	if cached, ok := l.collectionCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	features, err := l.backend.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", name, err)
	}

	l.mu.Lock()
	l.collectionCache[name] = features
	l.mu.Unlock()

	return features, nil
}

func (l *loader) Get(name string) []*geojson.Feature {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.collectionCache[name]
}

func (l *loader) Collections() map[string][]*geojson.Feature {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string][]*geojson.Feature, len(l.collectionCache))
	for k, v := range l.collectionCache {
		result[k] = v
	}
	return result
}

func (l *loader) Source(name string) func() []*geojson.Feature {
	return func() []*geojson.Feature {
		return l.Get(name)
	}
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only GeoJSON is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".geojson", ".json":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported feature document format: %s", ext)
	}
}

// readFile reads the document bytes from the configured file system, or from
// the OS when none was set.
func (l *loader) readFile(path string) ([]byte, error) {
	if l.fsys != nil {
		return fs.ReadFile(l.fsys, path)
	}
	return os.ReadFile(path)
}

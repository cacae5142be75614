package loader

import (
	"io/fs"

	geojson "github.com/paulmach/go.geojson"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithFS is an option builder that sets the file system Load resolves paths
// against. Useful for embedded or in-memory document sets.
//
// Parameters:
//   - fsys: the file system to read documents from
//
// Returns:
//   - LoaderBuilderOption: a function that applies the file system option to a loader
func WithFS(fsys fs.FS) LoaderBuilderOption {
	return func(l *loader) {
		l.fsys = fsys
	}
}

// WithCollection is an option builder that pre-populates the collection cache.
//
// Parameters:
//   - key: the cache key for the collection
//   - features: the features to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the collection option to a loader
func WithCollection(key string, features []*geojson.Feature) LoaderBuilderOption {
	return func(l *loader) {
		l.collectionCache[key] = features
	}
}

package loader

import (
	geojson "github.com/paulmach/go.geojson"
)

// loaderBackend defines the generic interface for parsing feature documents.
// Concrete implementations (e.g., geojsonLoaderBackend) handle format-specific
// details.
type loaderBackend interface {
	// Parse decodes a raw feature document into its features.
	//
	// Parameters:
	//   - data: the raw document bytes
	//
	// Returns:
	//   - []*geojson.Feature: the decoded features
	//   - error: error if the document cannot be decoded
	Parse(data []byte) ([]*geojson.Feature, error)
}

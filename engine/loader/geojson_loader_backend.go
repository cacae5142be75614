package loader

import (
	"encoding/json"
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// geojsonLoaderBackendImpl is the implementation of geojsonLoaderBackend.
type geojsonLoaderBackendImpl struct{}

// geojsonLoaderBackend is a loaderBackend implementation for GeoJSON
// documents. It dispatches on the document's declared type, so collections,
// single features and bare geometries all decode to feature slices.
type geojsonLoaderBackend interface {
	loaderBackend
}

var _ geojsonLoaderBackend = &geojsonLoaderBackendImpl{}

// newGeoJSONLoaderBackend creates a new GeoJSON loader backend.
//
// Returns:
//   - geojsonLoaderBackend: the loader backend for GeoJSON documents
func newGeoJSONLoaderBackend() geojsonLoaderBackend {
	return &geojsonLoaderBackendImpl{}
}

func (b *geojsonLoaderBackendImpl) Parse(data []byte) ([]*geojson.Feature, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("invalid feature document: %w", err)
	}

	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("invalid feature collection: %w", err)
		}
		return fc.Features, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("invalid feature: %w", err)
		}
		return []*geojson.Feature{f}, nil
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("unsupported feature document type %q", head.Type)
		}
		return []*geojson.Feature{geojson.NewFeature(g)}, nil
	}
}

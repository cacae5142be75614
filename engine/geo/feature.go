package geo

import (
	"encoding/json"
	"math"
	"strconv"

	geojson "github.com/paulmach/go.geojson"
)

// FeatureID resolves the identity used to key a feature's animation state.
// Resolution order: the configured id property, then the GeoJSON feature id,
// then the feature's position in the snapshot. Numeric identities are
// normalized to their decimal string form so "42", 42 and 42.0 all key the
// same state.
//
// Parameters:
//   - feature: the source feature
//   - idProperty: name of the property holding the identity, "" to skip
//   - index: the feature's position in the snapshot, used as last resort
//
// Returns:
//   - string: the resolved identity, never empty
func FeatureID(feature *geojson.Feature, idProperty string, index int) string {
	if feature != nil {
		if idProperty != "" {
			if id, ok := normalizeID(feature.Properties[idProperty]); ok {
				return id
			}
		}
		if id, ok := normalizeID(feature.ID); ok {
			return id
		}
	}
	return strconv.Itoa(index)
}

// normalizeID renders a property or id value as a stable string key.
func normalizeID(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, id != ""
	case json.Number:
		return id.String(), true
	case float64:
		if id == math.Trunc(id) && !math.IsInf(id, 0) {
			return strconv.FormatInt(int64(id), 10), true
		}
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case float32:
		return normalizeID(float64(id))
	case int:
		return strconv.Itoa(id), true
	case int32:
		return strconv.FormatInt(int64(id), 10), true
	case int64:
		return strconv.FormatInt(id, 10), true
	case uint:
		return strconv.FormatUint(uint64(id), 10), true
	case uint64:
		return strconv.FormatUint(id, 10), true
	default:
		return "", false
	}
}

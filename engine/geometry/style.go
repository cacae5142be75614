package geometry

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/Carmen-Shannon/oxy-maps/common"
)

// StyleConfig resolves each feature's data-driven color and intensity.
// Per-feature property values override the defaults; features without the
// properties get the defaults unchanged.
type StyleConfig struct {
	// DefaultColor applies when the color property is absent or unparsable.
	DefaultColor common.Color
	// DefaultIntensity applies when the intensity property is absent.
	DefaultIntensity float32
	// ColorProperty is the feature property carrying a hex color string or
	// an array of 3-4 components in [0,1].
	ColorProperty string
	// IntensityProperty is the feature property carrying a numeric
	// intensity.
	IntensityProperty string
}

// DefaultStyle returns the style used when a layer configures none: opaque
// white at full intensity, reading the conventional "color" and "intensity"
// properties.
//
// Returns:
//   - StyleConfig: the default style
func DefaultStyle() StyleConfig {
	return StyleConfig{
		DefaultColor:      common.Color{R: 1, G: 1, B: 1, A: 1},
		DefaultIntensity:  1,
		ColorProperty:     "color",
		IntensityProperty: "intensity",
	}
}

// Resolve returns the color and intensity for one feature.
//
// Parameters:
//   - feature: the feature to style, nil yields the defaults
//
// Returns:
//   - common.Color: the resolved color
//   - float32: the resolved intensity
func (s StyleConfig) Resolve(feature *geojson.Feature) (common.Color, float32) {
	color := s.DefaultColor
	intensity := s.DefaultIntensity
	if feature == nil || feature.Properties == nil {
		return color, intensity
	}

	if raw, ok := feature.Properties[s.ColorProperty]; ok {
		if c, ok := coerceColor(raw); ok {
			color = c
		}
	}
	if raw, ok := feature.Properties[s.IntensityProperty]; ok {
		if f, ok := coerceFloat(raw); ok {
			intensity = f
		}
	}
	return color, intensity
}

func coerceColor(raw any) (common.Color, bool) {
	switch v := raw.(type) {
	case string:
		c, err := common.ParseColor(v)
		if err != nil {
			return common.Color{}, false
		}
		return c, true
	case []any:
		if len(v) < 3 {
			return common.Color{}, false
		}
		var comps [4]float32
		comps[3] = 1
		for i := 0; i < len(v) && i < 4; i++ {
			f, ok := coerceFloat(v[i])
			if !ok {
				return common.Color{}, false
			}
			comps[i] = f
		}
		return common.Color{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}, true
	default:
		return common.Color{}, false
	}
}

func coerceFloat(raw any) (float32, bool) {
	switch v := raw.(type) {
	case float64:
		return float32(v), true
	case float32:
		return v, true
	case int:
		return float32(v), true
	case int64:
		return float32(v), true
	case uint64:
		return float32(v), true
	default:
		return 0, false
	}
}

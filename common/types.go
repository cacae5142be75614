// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color with float32 channels in the [0, 1] range, matching
// the layout shaders expect for vec4 color uniforms and attributes.
type Color struct {
	// R is the red channel.
	R float32
	// G is the green channel.
	G float32
	// B is the blue channel.
	B float32
	// A is the alpha channel. 1 is fully opaque.
	A float32
}

// Array returns the color as a flat [4]float32 suitable for uniform uploads.
//
// Returns:
//   - [4]float32: the channels in RGBA order
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// Scaled returns a copy of the color with every channel (alpha included)
// multiplied by f. Useful for fading effects without touching the source.
//
// Parameters:
//   - f: multiplier applied to all four channels
//
// Returns:
//   - Color: the scaled color
func (c Color) Scaled(f float32) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f, A: c.A * f}
}

// ParseColor parses a CSS-style hex color string into a Color. Supported
// forms are "#rgb", "#rrggbb" and "#rrggbbaa"; the first two default alpha
// to 1. Parsing is case-insensitive.
// Reference: https://pkg.go.dev/github.com/lucasb-eyer/go-colorful
//
// Parameters:
//   - s: the hex color string, leading '#' required
//
// Returns:
//   - Color: the parsed color
//   - error: error if the string is not a recognized hex form
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color string")
	}

	alpha := float32(1)
	if strings.HasPrefix(s, "#") && len(s) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(s[7:9], "%02x", &a); err != nil {
			return Color{}, fmt.Errorf("invalid alpha component in %q: %w", s, err)
		}
		alpha = float32(a) / 255
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: alpha}, nil
}

// MustParseColor is ParseColor for compile-time constant strings. It panics
// on malformed input, so only use it with literals.
//
// Parameters:
//   - s: the hex color string
//
// Returns:
//   - Color: the parsed color
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// EffectConfig carries per-layer effect parameters as loosely typed key/value
// pairs, the shape they arrive in when decoded from JSON style options. The
// typed accessors coerce the common numeric encodings so callers do not have
// to care whether a value came from a Go literal or a decoded document.
type EffectConfig map[string]any

// Float returns the value at key as a float64, or fallback when the key is
// missing or not numeric. Accepts float64, float32 and the integer types.
//
// Parameters:
//   - key: config key to look up
//   - fallback: value returned when the key is absent or mistyped
//
// Returns:
//   - float64: the coerced value or fallback
func (c EffectConfig) Float(key string, fallback float64) float64 {
	v, ok := c[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	default:
		return fallback
	}
}

// Int returns the value at key as an int, truncating floats. Returns fallback
// when the key is missing or not numeric.
//
// Parameters:
//   - key: config key to look up
//   - fallback: value returned when the key is absent or mistyped
//
// Returns:
//   - int: the coerced value or fallback
func (c EffectConfig) Int(key string, fallback int) int {
	if _, ok := c[key]; !ok {
		return fallback
	}
	return int(c.Float(key, float64(fallback)))
}

// Bool returns the value at key as a bool, or fallback when the key is
// missing or not a bool.
//
// Parameters:
//   - key: config key to look up
//   - fallback: value returned when the key is absent or mistyped
//
// Returns:
//   - bool: the value or fallback
func (c EffectConfig) Bool(key string, fallback bool) bool {
	if b, ok := c[key].(bool); ok {
		return b
	}
	return fallback
}

// String returns the value at key as a string, or fallback when the key is
// missing or not a string.
//
// Parameters:
//   - key: config key to look up
//   - fallback: value returned when the key is absent or mistyped
//
// Returns:
//   - string: the value or fallback
func (c EffectConfig) String(key string, fallback string) string {
	if s, ok := c[key].(string); ok {
		return s
	}
	return fallback
}

// Color returns the value at key as a Color. Accepts a Color value directly,
// a hex string, or a [4]float32. Returns fallback when the key is missing or
// the value cannot be interpreted.
//
// Parameters:
//   - key: config key to look up
//   - fallback: value returned when the key is absent or malformed
//
// Returns:
//   - Color: the parsed or stored color, or fallback
func (c EffectConfig) Color(key string, fallback Color) Color {
	switch v := c[key].(type) {
	case Color:
		return v
	case string:
		parsed, err := ParseColor(v)
		if err != nil {
			return fallback
		}
		return parsed
	case [4]float32:
		return Color{R: v[0], G: v[1], B: v[2], A: v[3]}
	default:
		return fallback
	}
}

// Merge returns a new EffectConfig holding the receiver's entries overlaid
// with other's entries. Keys present in both take other's value. Neither
// input is modified.
//
// Parameters:
//   - other: entries that override the receiver's
//
// Returns:
//   - EffectConfig: the merged copy
func (c EffectConfig) Merge(other EffectConfig) EffectConfig {
	out := make(EffectConfig, len(c)+len(other))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Clone returns a shallow copy of the config.
//
// Returns:
//   - EffectConfig: the copied config
func (c EffectConfig) Clone() EffectConfig {
	out := make(EffectConfig, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

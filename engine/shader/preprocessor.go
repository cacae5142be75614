package shader

import (
	"sort"
	"strings"
)

// Target selects the GLSL dialect header the preprocessor emits.
type Target int

const (
	// TargetNone disables preprocessing, sources compile as provided.
	TargetNone Target = iota
	// TargetDesktop emits a #version 330 core header.
	TargetDesktop
	// TargetWebGL1 emits a GLSL ES 1.00 header with default float precision.
	TargetWebGL1
	// TargetWebGL2 emits a GLSL ES 3.00 header with default float precision.
	TargetWebGL2
)

// String returns the string representation of the Target.
//
// Returns:
//   - string: the string representation of the Target
func (t Target) String() string {
	switch t {
	case TargetDesktop:
		return "desktop"
	case TargetWebGL1:
		return "webgl1"
	case TargetWebGL2:
		return "webgl2"
	default:
		return "none"
	}
}

// Preprocess injects a dialect header into GLSL source: a version directive,
// default precision qualifiers for ES targets, and #define lines for each
// entry of defines. Defines are emitted in sorted name order so the same
// inputs always produce byte-identical source. A #version directive already
// present in the source is preserved as the first line and ours is skipped.
//
// Parameters:
//   - source: the GLSL source text
//   - target: the dialect to emit a header for, TargetNone passes through
//   - defines: preprocessor definitions, an empty value emits a bare #define
//
// Returns:
//   - string: the preprocessed source
func Preprocess(source string, target Target, defines map[string]string) string {
	if target == TargetNone && len(defines) == 0 {
		return source
	}

	version, body := splitVersion(source)
	var sb strings.Builder

	if version != "" {
		sb.WriteString(version)
		sb.WriteByte('\n')
	} else {
		switch target {
		case TargetDesktop:
			sb.WriteString("#version 330 core\n")
		case TargetWebGL2:
			sb.WriteString("#version 300 es\n")
		}
	}

	switch target {
	case TargetWebGL1, TargetWebGL2:
		sb.WriteString("precision highp float;\n")
	}

	names := make([]string, 0, len(defines))
	for name := range defines {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString("#define ")
		sb.WriteString(name)
		if value := defines[name]; value != "" {
			sb.WriteByte(' ')
			sb.WriteString(value)
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(body)
	return sb.String()
}

// splitVersion separates a leading #version directive from the rest of the
// source. The directive must appear before any non-blank, non-comment line
// to count as leading.
func splitVersion(source string) (version, body string) {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		if strings.HasPrefix(trimmed, "#version") {
			rest := append(append([]string{}, lines[:i]...), lines[i+1:]...)
			return trimmed, strings.Join(rest, "\n")
		}
		break
	}
	return "", source
}

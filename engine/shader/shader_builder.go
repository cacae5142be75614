package shader

// ProgramBuilderOption is a function that modifies the program configuration
// before the first compile.
type ProgramBuilderOption func(*program)

// WithAttribBindings sets fixed attribute slot bindings applied before every
// link, including hot-swap rebuilds. Fixed slots keep vertex layouts stable
// across program replacements.
//
// Parameters:
//   - bindings: attribute names keyed to the slot index they must occupy
//
// Returns:
//   - ProgramBuilderOption: the option function to apply to the program
func WithAttribBindings(bindings map[string]uint32) ProgramBuilderOption {
	return func(p *program) {
		for name, index := range bindings {
			p.attribBindings[name] = index
		}
	}
}

// WithPreprocessor enables source preprocessing targeting a specific GLSL
// dialect. The header (version directive, precision qualifiers, defines) is
// injected into both stages on every build, including hot-swap rebuilds.
//
// Parameters:
//   - target: the GLSL dialect to emit a header for
//   - defines: preprocessor definitions injected as #define lines, may be nil
//
// Returns:
//   - ProgramBuilderOption: the option function to apply to the program
func WithPreprocessor(target Target, defines map[string]string) ProgramBuilderOption {
	return func(p *program) {
		p.target = target
		p.defines = defines
	}
}

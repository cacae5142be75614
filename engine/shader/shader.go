// package shader owns GLSL program lifecycle against a gfx.Context: compile,
// link, cached uniform and attribute lookup, loosely typed uniform upload,
// and runtime hot-swap that keeps the previous program when the replacement
// fails to build.
package shader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-maps/common"
	"github.com/Carmen-Shannon/oxy-maps/engine/gfx"
)

// program is the implementation of the Program interface.
type program struct {
	ctx    gfx.Context
	handle gfx.ProgramID

	vertexSource   string
	fragmentSource string
	attribBindings map[string]uint32
	target         Target
	defines        map[string]string

	uniformCache map[string]gfx.UniformLocation
	attribCache  map[string]int32
}

// Program defines the interface for a linked GLSL shader program. A Program
// caches uniform and attribute locations per name and accepts the loosely
// typed name-to-value maps effect definitions produce for their uniforms.
type Program interface {
	// Handle retrieves the underlying GPU program handle.
	//
	// Returns:
	//   - gfx.ProgramID: the linked program object
	Handle() gfx.ProgramID

	// Use makes the program current for subsequent uniform uploads and draw
	// calls.
	Use()

	// UniformLocation resolves a uniform name, consulting the cache first.
	//
	// Parameters:
	//   - name: the uniform name
	//
	// Returns:
	//   - gfx.UniformLocation: the location, gfx.UniformNotFound if absent
	UniformLocation(name string) gfx.UniformLocation

	// AttribLocation resolves a vertex attribute name, consulting the cache
	// first.
	//
	// Parameters:
	//   - name: the attribute name
	//
	// Returns:
	//   - int32: the attribute slot, -1 if absent
	AttribLocation(name string) int32

	// SetUniform uploads one uniform value, coercing the common Go encodings
	// (float64/float32/int/int32/bool, fixed-size float arrays, 16-element
	// slices, common.Color). The program must be current.
	//
	// Parameters:
	//   - name: the uniform name
	//   - value: the value to upload
	//
	// Returns:
	//   - bool: false when the value type is unsupported or the uniform does
	//     not exist
	SetUniform(name string, value any) bool

	// SetUniforms uploads every entry of a name-to-value map via SetUniform.
	// Unknown names and unsupported types are skipped, not errors; effect
	// uniform maps routinely carry values the compiled program optimized out.
	//
	// Parameters:
	//   - values: uniform values keyed by name
	SetUniforms(values map[string]any)

	// Replace hot-swaps the program's source at runtime. The replacement is
	// compiled and linked as a fresh program first; only on success is the
	// old program deleted and the handle swapped, so a failed replacement
	// leaves the program fully usable.
	//
	// Parameters:
	//   - vertexSource: the new vertex shader source
	//   - fragmentSource: the new fragment shader source
	//
	// Returns:
	//   - error: the compile or link failure, nil on success
	Replace(vertexSource, fragmentSource string) error

	// VertexSource returns the currently active vertex source as compiled,
	// after preprocessing.
	//
	// Returns:
	//   - string: the active vertex source
	VertexSource() string

	// FragmentSource returns the currently active fragment source as
	// compiled, after preprocessing.
	//
	// Returns:
	//   - string: the active fragment source
	FragmentSource() string

	// Release deletes the GPU program. The Program is unusable afterwards.
	Release()
}

var _ Program = &program{}

// NewProgram compiles and links a program from a GLSL source pair.
//
// Parameters:
//   - ctx: the graphics context to build against
//   - vertexSource: vertex shader source text
//   - fragmentSource: fragment shader source text
//   - options: optional ProgramBuilderOption functions (attribute bindings, preprocessing)
//
// Returns:
//   - Program: the linked program
//   - error: the compile or link failure
func NewProgram(ctx gfx.Context, vertexSource, fragmentSource string, options ...ProgramBuilderOption) (Program, error) {
	p := &program{
		ctx:            ctx,
		attribBindings: map[string]uint32{},
		target:         TargetNone,
		uniformCache:   map[string]gfx.UniformLocation{},
		attribCache:    map[string]int32{},
	}
	for _, opt := range options {
		opt(p)
	}

	handle, vs, fs, err := p.build(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	p.handle = handle
	p.vertexSource = vs
	p.fragmentSource = fs
	return p, nil
}

func (p *program) Handle() gfx.ProgramID {
	return p.handle
}

func (p *program) Use() {
	p.ctx.UseProgram(p.handle)
}

func (p *program) UniformLocation(name string) gfx.UniformLocation {
	if loc, ok := p.uniformCache[name]; ok {
		return loc
	}
	loc := p.ctx.UniformLocation(p.handle, name)
	p.uniformCache[name] = loc
	return loc
}

func (p *program) AttribLocation(name string) int32 {
	if loc, ok := p.attribCache[name]; ok {
		return loc
	}
	loc := p.ctx.AttribLocation(p.handle, name)
	p.attribCache[name] = loc
	return loc
}

func (p *program) SetUniform(name string, value any) bool {
	loc := p.UniformLocation(name)
	if loc == gfx.UniformNotFound {
		return false
	}

	switch v := value.(type) {
	case float32:
		p.ctx.Uniform1f(loc, v)
	case float64:
		p.ctx.Uniform1f(loc, float32(v))
	case int:
		p.ctx.Uniform1i(loc, int32(v))
	case int32:
		p.ctx.Uniform1i(loc, v)
	case bool:
		if v {
			p.ctx.Uniform1i(loc, 1)
		} else {
			p.ctx.Uniform1i(loc, 0)
		}
	case [2]float32:
		p.ctx.Uniform2f(loc, v[0], v[1])
	case [3]float32:
		p.ctx.Uniform3f(loc, v[0], v[1], v[2])
	case [4]float32:
		p.ctx.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case common.Color:
		p.ctx.Uniform4f(loc, v.R, v.G, v.B, v.A)
	case [16]float32:
		p.ctx.UniformMatrix4fv(loc, v[:])
	case []float32:
		switch len(v) {
		case 2:
			p.ctx.Uniform2f(loc, v[0], v[1])
		case 3:
			p.ctx.Uniform3f(loc, v[0], v[1], v[2])
		case 4:
			p.ctx.Uniform4f(loc, v[0], v[1], v[2], v[3])
		case 16:
			p.ctx.UniformMatrix4fv(loc, v)
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func (p *program) SetUniforms(values map[string]any) {
	for name, value := range values {
		p.SetUniform(name, value)
	}
}

func (p *program) Replace(vertexSource, fragmentSource string) error {
	handle, vs, fs, err := p.build(vertexSource, fragmentSource)
	if err != nil {
		return err
	}

	p.ctx.DeleteProgram(p.handle)
	p.handle = handle
	p.vertexSource = vs
	p.fragmentSource = fs
	p.uniformCache = map[string]gfx.UniformLocation{}
	p.attribCache = map[string]int32{}
	return nil
}

func (p *program) VertexSource() string {
	return p.vertexSource
}

func (p *program) FragmentSource() string {
	return p.fragmentSource
}

func (p *program) Release() {
	if p.handle != 0 {
		p.ctx.DeleteProgram(p.handle)
		p.handle = 0
	}
}

// build compiles both stages and links them into a fresh program without
// touching the program currently held by p. Returns the preprocessed sources
// actually compiled.
func (p *program) build(vertexSource, fragmentSource string) (gfx.ProgramID, string, string, error) {
	vs := Preprocess(vertexSource, p.target, p.defines)
	fs := Preprocess(fragmentSource, p.target, p.defines)

	vertex, err := compileStage(p.ctx, gfx.VertexShader, vs)
	if err != nil {
		return 0, "", "", fmt.Errorf("vertex stage: %w", err)
	}
	fragment, err := compileStage(p.ctx, gfx.FragmentShader, fs)
	if err != nil {
		p.ctx.DeleteShader(vertex)
		return 0, "", "", fmt.Errorf("fragment stage: %w", err)
	}

	handle, err := p.ctx.CreateProgram()
	if err != nil {
		p.ctx.DeleteShader(vertex)
		p.ctx.DeleteShader(fragment)
		return 0, "", "", err
	}

	p.ctx.AttachShader(handle, vertex)
	p.ctx.AttachShader(handle, fragment)
	for name, index := range p.attribBindings {
		p.ctx.BindAttribLocation(handle, index, name)
	}
	p.ctx.LinkProgram(handle)

	// stages are owned by the program after linking
	p.ctx.DeleteShader(vertex)
	p.ctx.DeleteShader(fragment)

	if !p.ctx.ProgramLinkStatus(handle) {
		log := p.ctx.ProgramInfoLog(handle)
		p.ctx.DeleteProgram(handle)
		return 0, "", "", fmt.Errorf("%w: %s", ErrProgramLink, log)
	}
	return handle, vs, fs, nil
}

// compileStage compiles one shader stage, converting a failed status into an
// error carrying the driver's info log.
func compileStage(ctx gfx.Context, shaderType gfx.ShaderType, source string) (gfx.ShaderID, error) {
	id, err := ctx.CreateShader(shaderType)
	if err != nil {
		return 0, err
	}
	ctx.ShaderSource(id, source)
	ctx.CompileShader(id)
	if !ctx.ShaderCompileStatus(id) {
		log := ctx.ShaderInfoLog(id)
		ctx.DeleteShader(id)
		return 0, fmt.Errorf("%w: %s", ErrShaderCompile, log)
	}
	return id, nil
}

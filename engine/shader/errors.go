package shader

import "errors"

var (
	// ErrShaderCompile indicates a shader stage failed to compile. The
	// wrapped message carries the driver's info log.
	ErrShaderCompile = errors.New("shader compilation failed")

	// ErrProgramLink indicates program linking failed. The wrapped message
	// carries the driver's info log.
	ErrProgramLink = errors.New("program linking failed")
)

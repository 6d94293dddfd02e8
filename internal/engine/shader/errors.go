package shader

import (
	"errors"
	"fmt"
)

var (
	// ErrProgramNotLinked is returned when a program that failed to link, or
	// was released, is passed to Use or a uniform setter.
	ErrProgramNotLinked = errors.New("shader: program is not linked")

	// ErrForeignProgram is returned when a program built by another pipeline
	// is passed to this one.
	ErrForeignProgram = errors.New("shader: program belongs to a different pipeline")
)

// IOError reports a stage source that could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read shader source %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// CompileError carries the backend log of a stage that failed to compile.
type CompileError struct {
	Stage Stage
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("compile %s shader %s: %s", e.Stage, e.Path, e.Log)
	}
	return fmt.Sprintf("compile %s shader: %s", e.Stage, e.Log)
}

// LinkError carries the backend log of a failed link. Program is the failed
// program handle, kept for inspection; it is not deleted automatically and
// must never be activated.
type LinkError struct {
	Program uint32
	Log     string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link program %d: %s", e.Program, e.Log)
}

// BuildError wraps the failure of one Build attempt with the state the
// attempt stopped in.
type BuildError struct {
	Vertex   string
	Fragment string
	State    BuildState
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s + %s (%s): %v", e.Vertex, e.Fragment, e.State, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// UniformTypeError is returned for uniform values with no matching setter.
type UniformTypeError struct {
	Name  string
	Value any
}

func (e *UniformTypeError) Error() string {
	return fmt.Sprintf("uniform %q: unsupported value type %T", e.Name, e.Value)
}

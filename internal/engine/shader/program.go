package shader

import "github.com/ejricha/glpipeline/pkg/math"

// Program is a successfully linked program owned by the caller until
// Pipeline.Release.
type Program struct {
	pipeline *Pipeline
	handle   uint32
	vertex   string
	fragment string
	linked   bool

	uniforms *UniformCache
	missing  map[string]struct{}
}

func newProgram(p *Pipeline, handle uint32, vertex, fragment string) *Program {
	return &Program{
		pipeline: p,
		handle:   handle,
		vertex:   vertex,
		fragment: fragment,
		linked:   true,
		uniforms: newUniformCache(handle),
		missing:  make(map[string]struct{}),
	}
}

// Handle returns the backend program handle.
func (p *Program) Handle() uint32 { return p.handle }

// Linked reports whether the program can still be used.
func (p *Program) Linked() bool { return p.linked }

// Paths returns the vertex and fragment source paths the program was built from.
func (p *Program) Paths() (vertex, fragment string) { return p.vertex, p.fragment }

// Uniforms returns the program's location cache.
func (p *Program) Uniforms() *UniformCache { return p.uniforms }

// Use activates the program.
func (p *Program) Use() error {
	if p == nil {
		return ErrProgramNotLinked
	}
	return p.pipeline.Use(p)
}

// SetBool sets a bool uniform.
func (p *Program) SetBool(name string, v bool) error {
	return p.set(name, v)
}

// SetInt sets an int uniform, including sampler units.
func (p *Program) SetInt(name string, v int32) error {
	return p.set(name, v)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) error {
	return p.set(name, v)
}

// SetMat4 sets a mat4 uniform from a column-major matrix.
func (p *Program) SetMat4(name string, m math.Mat4) error {
	return p.set(name, m)
}

func (p *Program) set(name string, v any) error {
	if p == nil {
		return ErrProgramNotLinked
	}
	return p.pipeline.SetUniform(p, name, v)
}

package shader

import (
	"go.uber.org/zap"

	"github.com/ejricha/glpipeline/pkg/math"
)

// UniformCache maps uniform names to locations for one program. Misses are
// cached too: -1 means the uniform is not active in the program.
type UniformCache struct {
	program   uint32
	locations map[string]int32
}

func newUniformCache(program uint32) *UniformCache {
	return &UniformCache{
		program:   program,
		locations: make(map[string]int32),
	}
}

// Location returns the cached location for name, querying b on first use.
func (c *UniformCache) Location(b Backend, name string) int32 {
	if loc, ok := c.locations[name]; ok {
		return loc
	}
	loc := b.UniformLocation(c.program, name)
	if loc < 0 {
		loc = -1
	}
	c.locations[name] = loc
	return loc
}

// Len returns the number of cached names, found or not.
func (c *UniformCache) Len() int {
	return len(c.locations)
}

func (c *UniformCache) reset() {
	c.locations = make(map[string]int32)
}

// SetUniform activates prog if needed and pushes value to the named uniform.
// Supported values are bool, int, int32, float32, float64, math.Mat4 and
// [16]float32. A name that is not active in the program is silently skipped.
func (p *Pipeline) SetUniform(prog *Program, name string, value any) error {
	if err := p.check(prog); err != nil {
		return err
	}

	var push func(loc int32)
	switch v := value.(type) {
	case bool:
		i := int32(0)
		if v {
			i = 1
		}
		push = func(loc int32) { p.backend.Uniform1i(loc, i) }
	case int32:
		push = func(loc int32) { p.backend.Uniform1i(loc, v) }
	case int:
		push = func(loc int32) { p.backend.Uniform1i(loc, int32(v)) }
	case float32:
		push = func(loc int32) { p.backend.Uniform1f(loc, v) }
	case float64:
		push = func(loc int32) { p.backend.Uniform1f(loc, float32(v)) }
	case math.Mat4:
		m := [16]float32(v)
		push = func(loc int32) { p.backend.UniformMatrix4(loc, &m) }
	case [16]float32:
		push = func(loc int32) { p.backend.UniformMatrix4(loc, &v) }
	default:
		return &UniformTypeError{Name: name, Value: value}
	}

	if p.active != prog {
		if err := p.Use(prog); err != nil {
			return err
		}
	}

	loc := prog.uniforms.Location(p.backend, name)
	if loc < 0 {
		if _, warned := prog.missing[name]; !warned {
			prog.missing[name] = struct{}{}
			p.log.Debug("uniform not active, skipping",
				zap.Uint32("program", prog.handle),
				zap.String("name", name),
			)
		}
		return nil
	}
	push(loc)
	return nil
}

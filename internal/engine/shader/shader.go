// Package shader builds GLSL vertex+fragment programs, reports compile and link
// diagnostics, and binds uniform values on linked programs.
//
// All calls must happen on the goroutine that owns the current GL context.
package shader

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ejricha/glpipeline/pkg/encoding"
)

// MaxInfoLog bounds the compile/link info log fetched from the backend.
const MaxInfoLog = 1024

// Stage identifies a shader stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Status is the outcome of a compile or link step.
type Status int

const (
	StatusPending Status = iota
	StatusCompiled
	StatusLinked
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompiled:
		return "compiled"
	case StatusLinked:
		return "linked"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Backend is the slice of the graphics API the pipeline drives.
// Handles follow GL conventions: 0 is never a valid object and a uniform
// location of -1 means the name is not active in the program.
type Backend interface {
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	CompileStatus(shader uint32) bool
	ShaderInfoLog(shader uint32, maxLen int) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	LinkStatus(program uint32) bool
	ProgramInfoLog(program uint32, maxLen int) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	UniformMatrix4(location int32, m *[16]float32)
}

// boundLog trims a backend log to at most MaxInfoLog bytes, cutting on a rune
// boundary, and drops trailing NULs and newlines.
func boundLog(log string) string {
	if len(log) > MaxInfoLog {
		cut := MaxInfoLog
		for cut > 0 && !utf8.RuneStart(log[cut]) {
			cut--
		}
		log = log[:cut]
	}
	return strings.TrimRight(encoding.TrimNullString([]byte(log)), "\n")
}

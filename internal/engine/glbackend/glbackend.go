// Package glbackend implements shader.Backend on top of OpenGL 4.1 core.
//
// gl.Init must have been called on the thread that owns the context before
// any method is used.
package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/ejricha/glpipeline/internal/engine/shader"
)

// Backend forwards shader calls to the current GL context.
type Backend struct{}

var _ shader.Backend = Backend{}

// New returns a GL backend.
func New() Backend {
	return Backend{}
}

func stageType(stage shader.Stage) uint32 {
	switch stage {
	case shader.StageVertex:
		return gl.VERTEX_SHADER
	case shader.StageFragment:
		return gl.FRAGMENT_SHADER
	default:
		panic(fmt.Sprintf("glbackend: unsupported stage %s", stage))
	}
}

func (Backend) CreateShader(stage shader.Stage) uint32 {
	return gl.CreateShader(stageType(stage))
}

func (Backend) ShaderSource(s uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(s, 1, csource, nil)
	free()
}

func (Backend) CompileShader(s uint32) {
	gl.CompileShader(s)
}

func (Backend) CompileStatus(s uint32) bool {
	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (Backend) ShaderInfoLog(s uint32, maxLen int) string {
	var logLen int32
	gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &logLen)
	return readLog(logLen, maxLen, func(n int32, buf *uint8) {
		gl.GetShaderInfoLog(s, n, nil, buf)
	})
}

func (Backend) DeleteShader(s uint32) {
	gl.DeleteShader(s)
}

func (Backend) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (Backend) AttachShader(p, s uint32) {
	gl.AttachShader(p, s)
}

func (Backend) DetachShader(p, s uint32) {
	gl.DetachShader(p, s)
}

func (Backend) LinkProgram(p uint32) {
	gl.LinkProgram(p)
}

func (Backend) LinkStatus(p uint32) bool {
	var status int32
	gl.GetProgramiv(p, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (Backend) ProgramInfoLog(p uint32, maxLen int) string {
	var logLen int32
	gl.GetProgramiv(p, gl.INFO_LOG_LENGTH, &logLen)
	return readLog(logLen, maxLen, func(n int32, buf *uint8) {
		gl.GetProgramInfoLog(p, n, nil, buf)
	})
}

func (Backend) DeleteProgram(p uint32) {
	gl.DeleteProgram(p)
}

func (Backend) UseProgram(p uint32) {
	gl.UseProgram(p)
}

func (Backend) UniformLocation(p uint32, name string) int32 {
	cname, free := gl.Strs(name + "\x00")
	defer free()
	return gl.GetUniformLocation(p, *cname)
}

func (Backend) Uniform1i(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

func (Backend) Uniform1f(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

func (Backend) UniformMatrix4(loc int32, m *[16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// readLog fetches an info log of logLen bytes (including the NUL), capped at maxLen.
func readLog(logLen int32, maxLen int, fetch func(n int32, buf *uint8)) string {
	if logLen <= 0 {
		return ""
	}
	if maxLen > 0 && int(logLen) > maxLen {
		logLen = int32(maxLen)
	}
	buf := make([]byte, logLen)
	fetch(logLen, &buf[0])
	return gl.GoStr(&buf[0])
}

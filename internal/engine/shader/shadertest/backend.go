// Package shadertest provides an in-memory shader.Backend for tests.
//
// The backend understands enough GLSL to behave like a driver for the simple
// programs used in this repository: it rejects sources without a #version
// directive or with unbalanced brackets, fails links when main is missing or
// a fragment input has no matching vertex output, and only exposes uniforms
// that are referenced outside their declaration.
package shadertest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ejricha/glpipeline/internal/engine/shader"
)

type object struct {
	program bool

	// shader state
	stage      shader.Stage
	source     string
	compiled   bool
	deleted    bool
	attachedTo map[uint32]struct{}

	// program state
	attached []uint32
	linked   bool
	uniforms map[string]int32
	values   map[int32]any

	log string
}

// Backend is a fake GL implementation. The zero value is not usable; call New.
type Backend struct {
	next    uint32
	objects map[uint32]*object
	current uint32

	linkCalls     int
	uniformWrites int
	errors        []string
}

var _ shader.Backend = (*Backend)(nil)

// New returns an empty backend.
func New() *Backend {
	return &Backend{next: 1, objects: make(map[uint32]*object)}
}

func (b *Backend) alloc(o *object) uint32 {
	h := b.next
	b.next++
	b.objects[h] = o
	return h
}

func (b *Backend) shader(h uint32) *object {
	o, ok := b.objects[h]
	if !ok || o.program {
		b.errorf("GL_INVALID_VALUE: %d is not a shader", h)
		return nil
	}
	return o
}

func (b *Backend) prog(h uint32) *object {
	o, ok := b.objects[h]
	if !ok || !o.program {
		b.errorf("GL_INVALID_VALUE: %d is not a program", h)
		return nil
	}
	return o
}

func (b *Backend) errorf(format string, args ...any) {
	b.errors = append(b.errors, fmt.Sprintf(format, args...))
}

func (b *Backend) CreateShader(stage shader.Stage) uint32 {
	return b.alloc(&object{stage: stage, attachedTo: make(map[uint32]struct{})})
}

func (b *Backend) ShaderSource(h uint32, source string) {
	if o := b.shader(h); o != nil {
		o.source = source
	}
}

func (b *Backend) CompileShader(h uint32) {
	o := b.shader(h)
	if o == nil {
		return
	}
	o.log = checkSyntax(o.source)
	o.compiled = o.log == ""
}

func (b *Backend) CompileStatus(h uint32) bool {
	o := b.shader(h)
	return o != nil && o.compiled
}

func (b *Backend) ShaderInfoLog(h uint32, maxLen int) string {
	o := b.shader(h)
	if o == nil {
		return ""
	}
	return truncate(o.log, maxLen)
}

func (b *Backend) DeleteShader(h uint32) {
	o := b.shader(h)
	if o == nil {
		return
	}
	o.deleted = true
	if len(o.attachedTo) == 0 {
		delete(b.objects, h)
	}
}

func (b *Backend) CreateProgram() uint32 {
	return b.alloc(&object{program: true})
}

func (b *Backend) AttachShader(p, s uint32) {
	po, so := b.prog(p), b.shader(s)
	if po == nil || so == nil {
		return
	}
	po.attached = append(po.attached, s)
	so.attachedTo[p] = struct{}{}
}

func (b *Backend) DetachShader(p, s uint32) {
	po, so := b.prog(p), b.shader(s)
	if po == nil || so == nil {
		return
	}
	for i, h := range po.attached {
		if h == s {
			po.attached = append(po.attached[:i], po.attached[i+1:]...)
			break
		}
	}
	delete(so.attachedTo, p)
	if so.deleted && len(so.attachedTo) == 0 {
		delete(b.objects, s)
	}
}

func (b *Backend) LinkProgram(p uint32) {
	po := b.prog(p)
	if po == nil {
		return
	}
	b.linkCalls++
	stages := make([]*object, 0, len(po.attached))
	for _, h := range po.attached {
		stages = append(stages, b.objects[h])
	}
	po.uniforms, po.log = link(stages)
	po.linked = po.log == ""
	po.values = make(map[int32]any)
}

func (b *Backend) LinkStatus(p uint32) bool {
	po := b.prog(p)
	return po != nil && po.linked
}

func (b *Backend) ProgramInfoLog(p uint32, maxLen int) string {
	po := b.prog(p)
	if po == nil {
		return ""
	}
	return truncate(po.log, maxLen)
}

func (b *Backend) DeleteProgram(p uint32) {
	po := b.prog(p)
	if po == nil {
		return
	}
	for _, s := range po.attached {
		if so, ok := b.objects[s]; ok {
			delete(so.attachedTo, p)
			if so.deleted && len(so.attachedTo) == 0 {
				delete(b.objects, s)
			}
		}
	}
	delete(b.objects, p)
	if b.current == p {
		b.current = 0
	}
}

func (b *Backend) UseProgram(p uint32) {
	if p == 0 {
		b.current = 0
		return
	}
	po := b.prog(p)
	if po == nil {
		return
	}
	if !po.linked {
		b.errorf("GL_INVALID_OPERATION: program %d is not linked", p)
		return
	}
	b.current = p
}

func (b *Backend) UniformLocation(p uint32, name string) int32 {
	po := b.prog(p)
	if po == nil || !po.linked {
		return -1
	}
	if loc, ok := po.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (b *Backend) write(loc int32, v any) {
	if loc == -1 {
		return
	}
	if b.current == 0 {
		b.errorf("GL_INVALID_OPERATION: no program in use for uniform %d", loc)
		return
	}
	po := b.objects[b.current]
	found := false
	for _, l := range po.uniforms {
		if l == loc {
			found = true
			break
		}
	}
	if !found {
		b.errorf("GL_INVALID_OPERATION: location %d not in program %d", loc, b.current)
		return
	}
	po.values[loc] = v
	b.uniformWrites++
}

func (b *Backend) Uniform1i(loc int32, v int32)             { b.write(loc, v) }
func (b *Backend) Uniform1f(loc int32, v float32)           { b.write(loc, v) }
func (b *Backend) UniformMatrix4(loc int32, m *[16]float32) { b.write(loc, *m) }

// IsShader reports whether h names a live shader object. A deleted shader
// stays live while it is still attached to a program, as in GL.
func (b *Backend) IsShader(h uint32) bool {
	o, ok := b.objects[h]
	return ok && !o.program
}

// IsProgram reports whether h names a live program object.
func (b *Backend) IsProgram(h uint32) bool {
	o, ok := b.objects[h]
	return ok && o.program
}

// Current returns the program in use.
func (b *Backend) Current() uint32 { return b.current }

// LinkCalls counts LinkProgram calls.
func (b *Backend) LinkCalls() int { return b.linkCalls }

// UniformWrites counts uniform values stored in any program.
func (b *Backend) UniformWrites() int { return b.uniformWrites }

// Errors returns the GL errors raised so far.
func (b *Backend) Errors() []string { return b.errors }

// LiveShaders returns the number of shader objects not yet reclaimed.
func (b *Backend) LiveShaders() int {
	n := 0
	for _, o := range b.objects {
		if !o.program {
			n++
		}
	}
	return n
}

// LivePrograms returns the number of program objects not yet deleted.
func (b *Backend) LivePrograms() int {
	n := 0
	for _, o := range b.objects {
		if o.program {
			n++
		}
	}
	return n
}

// ActiveUniforms returns the active uniform names of a linked program, sorted.
func (b *Backend) ActiveUniforms(p uint32) []string {
	o, ok := b.objects[p]
	if !ok || !o.program {
		return nil
	}
	names := make([]string, 0, len(o.uniforms))
	for n := range o.uniforms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// UniformValue returns the last value stored for name in program p.
func (b *Backend) UniformValue(p uint32, name string) (any, bool) {
	o, ok := b.objects[p]
	if !ok || !o.program {
		return nil, false
	}
	loc, ok := o.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := o.values[loc]
	return v, ok
}

func truncate(s string, n int) string {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}

var (
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	declRe       = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(in|out|uniform)\s+(\w+)\s+(\w+)\s*(?:\[[^\]]*\])?\s*;`)
	mainRe       = regexp.MustCompile(`\bvoid\s+main\s*\(`)
)

func stripComments(src string) string {
	src = blockComment.ReplaceAllString(src, "")
	return lineComment.ReplaceAllString(src, "")
}

// checkSyntax returns a driver-style error log, or "" if src compiles.
func checkSyntax(src string) string {
	code := stripComments(src)
	if strings.TrimSpace(code) == "" {
		return "0:1(1): error: syntax error, unexpected end of file"
	}

	lines := strings.Split(code, "\n")
	first := 0
	for first < len(lines) && strings.TrimSpace(lines[first]) == "" {
		first++
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[first]), "#version") {
		return fmt.Sprintf("0:%d(1): error: #version directive missing or not first", first+1)
	}

	pairs := map[rune]rune{')': '(', '}': '{', ']': '['}
	var stack []rune
	for ln, line := range lines {
		for col, r := range line {
			switch r {
			case '(', '{', '[':
				stack = append(stack, r)
			case ')', '}', ']':
				if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
					return fmt.Sprintf("0:%d(%d): error: syntax error, unexpected '%c'", ln+1, col+1, r)
				}
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) > 0 {
		return fmt.Sprintf("0:%d(1): error: syntax error, unexpected end of file", len(lines))
	}
	return ""
}

type decl struct {
	qualifier string
	typ       string
	name      string
}

func declarations(src string) []decl {
	var out []decl
	for _, m := range declRe.FindAllStringSubmatch(src, -1) {
		out = append(out, decl{qualifier: m[1], typ: m[2], name: m[3]})
	}
	return out
}

// link validates the attached stages and assigns uniform locations.
func link(stages []*object) (map[string]int32, string) {
	var logs []string
	byStage := map[shader.Stage]*object{}
	for _, s := range stages {
		if s == nil || !s.compiled {
			return nil, "error: linking with uncompiled/unspecialized shader"
		}
		byStage[s.stage] = s
	}
	vs, fs := byStage[shader.StageVertex], byStage[shader.StageFragment]
	if vs == nil || fs == nil {
		return nil, "error: program requires a vertex and a fragment shader"
	}

	vcode, fcode := stripComments(vs.source), stripComments(fs.source)
	for _, s := range []struct {
		stage shader.Stage
		code  string
	}{{shader.StageVertex, vcode}, {shader.StageFragment, fcode}} {
		if !mainRe.MatchString(s.code) {
			logs = append(logs, fmt.Sprintf("error: %s shader lacks `main'", s.stage))
		}
	}

	outs := map[string]string{}
	for _, d := range declarations(vcode) {
		if d.qualifier == "out" {
			outs[d.name] = d.typ
		}
	}
	for _, d := range declarations(fcode) {
		if d.qualifier != "in" {
			continue
		}
		typ, ok := outs[d.name]
		switch {
		case !ok:
			logs = append(logs, fmt.Sprintf("error: fragment shader input `%s' has no matching output in the previous stage", d.name))
		case typ != d.typ:
			logs = append(logs, fmt.Sprintf("error: `%s' declared as type `%s' but output from previous stage is `%s'", d.name, d.typ, typ))
		}
	}

	uniformTypes := map[string]string{}
	declCount := map[string]int{}
	for _, code := range []string{vcode, fcode} {
		for _, d := range declarations(code) {
			if d.qualifier != "uniform" {
				continue
			}
			if prev, ok := uniformTypes[d.name]; ok && prev != d.typ {
				logs = append(logs, fmt.Sprintf("error: uniform `%s' declared as type `%s' and type `%s'", d.name, prev, d.typ))
			}
			uniformTypes[d.name] = d.typ
			declCount[d.name]++
		}
	}
	if len(logs) > 0 {
		return nil, strings.Join(logs, "\n")
	}

	var active []string
	for name := range uniformTypes {
		ref := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		uses := len(ref.FindAllStringIndex(vcode, -1)) + len(ref.FindAllStringIndex(fcode, -1))
		if uses > declCount[name] {
			active = append(active, name)
		}
	}
	sort.Strings(active)
	locations := make(map[string]int32, len(active))
	for i, name := range active {
		locations[name] = int32(i)
	}
	return locations, ""
}

package shader

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// BuildState tracks one Build attempt. Linked, CompileFailed and LinkFailed
// are terminal; every attempt starts again from BuildStart.
type BuildState int

const (
	BuildStart BuildState = iota
	BuildSourcesLoaded
	BuildStagesCompiling
	BuildStagesCompiled
	BuildCompileFailed
	BuildLinking
	BuildLinked
	BuildLinkFailed
)

var buildStateNames = [...]string{
	BuildStart:           "start",
	BuildSourcesLoaded:   "sources-loaded",
	BuildStagesCompiling: "stages-compiling",
	BuildStagesCompiled:  "stages-compiled",
	BuildCompileFailed:   "compile-failed",
	BuildLinking:         "linking",
	BuildLinked:          "linked",
	BuildLinkFailed:      "link-failed",
}

func (s BuildState) String() string {
	if s >= 0 && int(s) < len(buildStateNames) {
		return buildStateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether the attempt is finished.
func (s BuildState) Terminal() bool {
	return s == BuildLinked || s == BuildCompileFailed || s == BuildLinkFailed
}

// Pipeline turns stage sources into linked programs on one GL context.
// It tracks the active program explicitly instead of relying on GL state.
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	backend  Backend
	sources  *Sources
	reporter Reporter
	log      *zap.Logger

	active *Program
}

// New creates a pipeline. A nil log discards debug output; diagnostics go to
// a ZapReporter on the same logger unless SetReporter is called.
func New(backend Backend, sources *Sources, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		backend:  backend,
		sources:  sources,
		reporter: NewZapReporter(log),
		log:      log,
	}
}

// SetReporter replaces the diagnostic sink.
func (p *Pipeline) SetReporter(r Reporter) {
	if r == nil {
		r = NewZapReporter(p.log)
	}
	p.reporter = r
}

// Sources returns the loader used by Build.
func (p *Pipeline) Sources() *Sources {
	return p.sources
}

// Active returns the program most recently activated through this pipeline.
func (p *Pipeline) Active() *Program {
	return p.active
}

type attempt struct {
	vertex   string
	fragment string
	state    BuildState
	log      *zap.Logger
}

func (a *attempt) to(s BuildState) {
	a.log.Debug("build state",
		zap.Stringer("from", a.state),
		zap.Stringer("to", s),
	)
	a.state = s
}

func (a *attempt) fail(err error) error {
	return &BuildError{Vertex: a.vertex, Fragment: a.fragment, State: a.state, Err: err}
}

// Build loads, compiles and links a vertex+fragment program. On failure the
// returned error is a *BuildError wrapping an *IOError, *CompileError or
// *LinkError, and compile/link diagnostics have already been reported.
func (p *Pipeline) Build(vertexPath, fragmentPath string) (*Program, error) {
	a := &attempt{
		vertex:   vertexPath,
		fragment: fragmentPath,
		state:    BuildStart,
		log:      p.log.With(zap.String("vertex", vertexPath), zap.String("fragment", fragmentPath)),
	}

	vs, err := p.sources.Load(StageVertex, vertexPath)
	if err != nil {
		a.log.Error("shader source unreadable", zap.Error(err))
		return nil, a.fail(err)
	}
	fs, err := p.sources.Load(StageFragment, fragmentPath)
	if err != nil {
		a.log.Error("shader source unreadable", zap.Error(err))
		return nil, a.fail(err)
	}
	a.to(BuildSourcesLoaded)

	a.to(BuildStagesCompiling)
	stages := []*CompiledStage{p.Compile(vs), p.Compile(fs)}

	var compileErrs []error
	for _, s := range stages {
		if s.Status == StatusCompiled {
			continue
		}
		stage := s.Stage
		p.report(Diagnostic{Kind: KindCompile, Stage: &stage, Path: s.Path, Log: s.Log})
		compileErrs = append(compileErrs, &CompileError{Stage: s.Stage, Path: s.Path, Log: s.Log})
	}
	if len(compileErrs) > 0 {
		a.to(BuildCompileFailed)
		p.Link(stages...)
		return nil, a.fail(errors.Join(compileErrs...))
	}
	a.to(BuildStagesCompiled)

	a.to(BuildLinking)
	lp := p.Link(stages...)
	if lp.Status != StatusLinked {
		a.to(BuildLinkFailed)
		p.report(Diagnostic{Kind: KindLink, Program: lp.Handle, Path: vertexPath + " + " + fragmentPath, Log: lp.Log})
		return nil, a.fail(&LinkError{Program: lp.Handle, Log: lp.Log})
	}
	a.to(BuildLinked)

	a.log.Info("shader program built", zap.Uint32("program", lp.Handle))
	return newProgram(p, lp.Handle, vertexPath, fragmentPath), nil
}

// DeleteFailed deletes the program handle carried by a LinkError.
func (p *Pipeline) DeleteFailed(err *LinkError) {
	if err == nil || err.Program == 0 {
		return
	}
	p.backend.DeleteProgram(err.Program)
	err.Program = 0
}

// Use makes prog the active program.
func (p *Pipeline) Use(prog *Program) error {
	if err := p.check(prog); err != nil {
		return err
	}
	p.backend.UseProgram(prog.handle)
	p.active = prog
	return nil
}

// Release deletes prog. It is a no-op for an already released program.
func (p *Pipeline) Release(prog *Program) {
	if prog == nil || prog.pipeline != p || !prog.linked {
		return
	}
	if p.active == prog {
		p.backend.UseProgram(0)
		p.active = nil
	}
	p.backend.DeleteProgram(prog.handle)
	prog.linked = false
	prog.uniforms.reset()
	p.log.Debug("shader program released", zap.Uint32("program", prog.handle))
}

func (p *Pipeline) check(prog *Program) error {
	if prog == nil || !prog.linked {
		return ErrProgramNotLinked
	}
	if prog.pipeline != p {
		return ErrForeignProgram
	}
	return nil
}

package shader

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DiagnosticKind tells whether a diagnostic came from compiling or linking.
type DiagnosticKind int

const (
	KindCompile DiagnosticKind = iota
	KindLink
)

func (k DiagnosticKind) String() string {
	if k == KindLink {
		return "link"
	}
	return "compile"
}

// Diagnostic describes one compile or link failure.
type Diagnostic struct {
	Kind DiagnosticKind
	// Stage is nil for link diagnostics.
	Stage   *Stage
	Path    string
	Program uint32
	Log     string
}

// Subject is the stage name, or "program" for link diagnostics.
func (d Diagnostic) Subject() string {
	if d.Stage == nil {
		return "program"
	}
	return d.Stage.String()
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s error in %s", d.Kind, d.Subject())
	if d.Path != "" {
		fmt.Fprintf(&b, " (%s)", d.Path)
	}
	b.WriteString(":\n")
	b.WriteString(d.Log)
	return b.String()
}

// Reporter receives diagnostics before a failed build returns.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(d Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// MultiReporter sends each diagnostic to every reporter in order. A reporter
// that panics is skipped; the ones after it still run.
type MultiReporter []Reporter

func (m MultiReporter) Report(d Diagnostic) {
	for _, r := range m {
		if r != nil {
			safeReport(r, d)
		}
	}
}

func safeReport(r Reporter, d Diagnostic) {
	defer func() { _ = recover() }()
	r.Report(d)
}

// ZapReporter writes diagnostics to a zap logger at error level.
type ZapReporter struct {
	log *zap.Logger
}

// NewZapReporter returns a reporter writing to log. A nil log discards.
func NewZapReporter(log *zap.Logger) *ZapReporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapReporter{log: log}
}

func (r *ZapReporter) Report(d Diagnostic) {
	fields := []zap.Field{
		zap.Stringer("kind", d.Kind),
		zap.String("subject", d.Subject()),
		zap.String("log", d.Log),
	}
	if d.Path != "" {
		fields = append(fields, zap.String("path", d.Path))
	}
	if d.Program != 0 {
		fields = append(fields, zap.Uint32("program", d.Program))
	}
	r.log.Error("shader "+d.Kind.String()+" failed", fields...)
}

// report hands d to the pipeline's reporter. Panics are logged and dropped.
func (p *Pipeline) report(d Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warn("diagnostic reporter panicked", zap.Any("panic", r))
		}
	}()
	p.reporter.Report(d)
}

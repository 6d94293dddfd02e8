package shader

import "go.uber.org/zap"

// CompiledStage is one stage object owned by a single build attempt.
// Handle is only valid until the link attempt that consumes it completes.
type CompiledStage struct {
	Handle uint32
	Stage  Stage
	Path   string
	Status Status
	Log    string
}

// Compile submits src to the backend and records the outcome. A compile
// failure is reported through Status and Log, not as an error.
// The returned stage must be handed to Link, which deletes it.
func (p *Pipeline) Compile(src Source) *CompiledStage {
	cs := &CompiledStage{
		Stage:  src.Stage,
		Path:   src.Path,
		Status: StatusPending,
	}

	cs.Handle = p.backend.CreateShader(src.Stage)
	p.backend.ShaderSource(cs.Handle, src.Text)
	p.backend.CompileShader(cs.Handle)

	if p.backend.CompileStatus(cs.Handle) {
		cs.Status = StatusCompiled
	} else {
		cs.Status = StatusFailed
		cs.Log = boundLog(p.backend.ShaderInfoLog(cs.Handle, MaxInfoLog))
	}

	p.log.Debug("stage compiled",
		zap.Stringer("stage", cs.Stage),
		zap.String("path", cs.Path),
		zap.Uint32("handle", cs.Handle),
		zap.Stringer("status", cs.Status),
	)
	return cs
}

package shader

import "go.uber.org/zap"

// LinkedProgram is the outcome of one link attempt. It holds no stage
// handles: every stage passed to Link is deleted before Link returns.
type LinkedProgram struct {
	Handle uint32
	Status Status
	Log    string
}

// Link attaches stages to a new program and links it. If any stage did not
// compile, or the set is not exactly one vertex and one fragment stage, no
// program is created and the result is Failed with Handle 0. Stage handles
// are detached and deleted on every path.
func (p *Pipeline) Link(stages ...*CompiledStage) *LinkedProgram {
	lp := &LinkedProgram{Status: StatusPending}
	defer p.reclaim(lp, stages)

	if len(stages) == 0 {
		lp.Status = StatusFailed
		lp.Log = "no stages to link"
		return lp
	}
	for _, s := range stages {
		if s == nil || s.Status != StatusCompiled {
			lp.Status = StatusFailed
			lp.Log = "stage did not compile"
			if s != nil {
				lp.Log = s.Stage.String() + " stage did not compile"
			}
			return lp
		}
	}
	if !vertexFragmentPair(stages) {
		lp.Status = StatusFailed
		lp.Log = "program requires exactly one vertex and one fragment stage"
		return lp
	}

	lp.Handle = p.backend.CreateProgram()
	for _, s := range stages {
		p.backend.AttachShader(lp.Handle, s.Handle)
	}
	p.backend.LinkProgram(lp.Handle)

	if p.backend.LinkStatus(lp.Handle) {
		lp.Status = StatusLinked
	} else {
		lp.Status = StatusFailed
		lp.Log = boundLog(p.backend.ProgramInfoLog(lp.Handle, MaxInfoLog))
	}
	return lp
}

func vertexFragmentPair(stages []*CompiledStage) bool {
	if len(stages) != 2 {
		return false
	}
	var vertex, fragment int
	for _, s := range stages {
		switch s.Stage {
		case StageVertex:
			vertex++
		case StageFragment:
			fragment++
		}
	}
	return vertex == 1 && fragment == 1
}

func (p *Pipeline) reclaim(lp *LinkedProgram, stages []*CompiledStage) {
	for _, s := range stages {
		if s == nil || s.Handle == 0 {
			continue
		}
		if lp.Handle != 0 {
			p.backend.DetachShader(lp.Handle, s.Handle)
		}
		p.backend.DeleteShader(s.Handle)
		s.Handle = 0
	}
	p.log.Debug("stages reclaimed",
		zap.Uint32("program", lp.Handle),
		zap.Int("stages", len(stages)),
		zap.Stringer("status", lp.Status),
	)
}

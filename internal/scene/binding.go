package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ejricha/glpipeline/internal/engine/movement"
	"github.com/ejricha/glpipeline/internal/engine/shader"
)

// Binding is a preset's linked program plus the state its uniforms read.
// It owns no GL objects besides the program.
type Binding struct {
	preset   Preset
	pipeline *shader.Pipeline
	program  *shader.Program
	state    State
	log      *zap.Logger
}

// Bind builds the preset's program, points each sampler at its texture unit
// and seeds move. A program that failed to link is deleted once reported.
func Bind(p *shader.Pipeline, preset Preset, move *movement.Movement, log *zap.Logger) (*Binding, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if move == nil {
		move = &movement.Movement{}
	}

	prog, err := p.Build(preset.Vertex, preset.Fragment)
	if err != nil {
		var linkErr *shader.LinkError
		if errors.As(err, &linkErr) {
			p.DeleteFailed(linkErr)
		}
		return nil, fmt.Errorf("scene %s: %w", preset.Name, err)
	}

	for i := range preset.Textures {
		if err := prog.SetInt(SamplerName(i), int32(i)); err != nil {
			p.Release(prog)
			return nil, fmt.Errorf("scene %s: sampler %d: %w", preset.Name, i, err)
		}
	}

	if preset.Setup != nil {
		preset.Setup(move)
	}

	log.Info("scene bound",
		zap.String("preset", preset.Name),
		zap.String("vertex", preset.Vertex),
		zap.String("fragment", preset.Fragment),
		zap.Uint32("program", prog.Handle()),
		zap.Stringer("drive", preset.Drive))

	return &Binding{
		preset:   preset,
		pipeline: p,
		program:  prog,
		state:    State{Movement: move, Aspect: 1},
		log:      log,
	}, nil
}

// Preset returns the bound preset.
func (b *Binding) Preset() Preset { return b.preset }

// Program returns the linked program.
func (b *Binding) Program() *shader.Program { return b.program }

// State returns the frame state.
func (b *Binding) State() *State { return &b.state }

// SetAspect records the drawable aspect ratio for projection uniforms.
func (b *Binding) SetAspect(width, height int) {
	if width > 0 && height > 0 {
		b.state.Aspect = float32(width) / float32(height)
	}
}

// Frame advances movement by dt, activates the program and pushes the
// preset's uniforms.
func (b *Binding) Frame(now float64, dt float32) error {
	b.state.Time = now
	b.state.Dt = dt
	b.state.Movement.Step(dt)

	if err := b.program.Use(); err != nil {
		return err
	}
	if b.preset.Update == nil {
		return nil
	}
	if err := b.preset.Update(b.program, &b.state); err != nil {
		return fmt.Errorf("scene %s uniforms: %w", b.preset.Name, err)
	}
	return nil
}

// Release deletes the program.
func (b *Binding) Release() {
	if b.program != nil {
		b.pipeline.Release(b.program)
		b.program = nil
	}
}

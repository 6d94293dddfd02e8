// Package scene binds a shader program, geometry and textures into one of the
// viewer's presets and drives its uniforms every frame.
package scene

import (
	"fmt"
	stdmath "math"
	"sort"

	"github.com/ejricha/glpipeline/internal/engine/mesh"
	"github.com/ejricha/glpipeline/internal/engine/movement"
	"github.com/ejricha/glpipeline/internal/engine/shader"
	"github.com/ejricha/glpipeline/pkg/math"
)

// Drive selects what movement keys change.
type Drive int

const (
	// DrivePosition moves the position directly.
	DrivePosition Drive = iota
	// DriveVelocity changes the bounded velocity instead.
	DriveVelocity
)

func (d Drive) String() string {
	if d == DriveVelocity {
		return "velocity"
	}
	return "position"
}

// State is the per-frame input to a preset's uniforms.
type State struct {
	Time     float64 // seconds since start
	Dt       float32 // seconds since last frame
	Aspect   float32 // drawable width / height
	Movement *movement.Movement
	Angle    float32 // accumulated rotation, owned by the preset
}

// Preset describes one renderable scene.
type Preset struct {
	Name     string
	Vertex   string
	Fragment string
	Geometry func() mesh.Data
	// Textures are bound to units 0..n-1; sampler i is named texture<i+1>.
	Textures []string
	Drive    Drive
	// DepthTest asks the renderer for a depth buffer.
	DepthTest bool
	// Setup seeds the movement state before the first frame.
	Setup func(m *movement.Movement)
	// Update pushes the frame's uniforms. The program is already in use.
	Update func(p *shader.Program, s *State) error
}

// SamplerName returns the sampler uniform bound to texture unit i.
func SamplerName(i int) string {
	return fmt.Sprintf("texture%d", i+1)
}

var defaultTextures = []string{"container.jpg", "awesomeface.png"}

var presets = map[string]Preset{
	"triangle": {
		Name:     "triangle",
		Vertex:   "vs/simple.vert",
		Fragment: "fs/simple.frag",
		Geometry: mesh.Triangle,
	},
	"shaders": {
		Name:     "shaders",
		Vertex:   "vs/positions_and_colors.vert",
		Fragment: "fs/colors.frag",
		Geometry: mesh.Triangle,
		Update:   updateShaders,
	},
	"textures": {
		Name:     "textures",
		Vertex:   "vs/texture.vert",
		Fragment: "fs/texture.frag",
		Geometry: mesh.ColoredQuad,
		Textures: defaultTextures,
		Update:   updateTextures,
	},
	"transform": {
		Name:     "transform",
		Vertex:   "vs/transform.vert",
		Fragment: "fs/transform.frag",
		Geometry: mesh.TexturedQuad,
		Textures: defaultTextures,
		Drive:    DriveVelocity,
		Setup: func(m *movement.Movement) {
			m.SetVelocity(movement.AxisZ, 20)
		},
		Update: updateTransform,
	},
	"coordinates": {
		Name:      "coordinates",
		Vertex:    "vs/coordinates.vert",
		Fragment:  "fs/transform.frag",
		Geometry:  mesh.TexturedQuad,
		Textures:  defaultTextures,
		DepthTest: true,
		Setup: func(m *movement.Movement) {
			m.Set(movement.AxisZ, -3)
		},
		Update: updateCoordinates,
	},
}

// Lookup returns the named preset.
func Lookup(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown scene preset %q (have %v)", name, Names())
	}
	return p, nil
}

// Names returns every preset name, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func updateShaders(p *shader.Program, s *State) error {
	green := float32(stdmath.Sin(s.Time)/2 + 0.5)
	if err := p.SetFloat("uniformGreen", green); err != nil {
		return err
	}
	if err := p.SetFloat("uniformOffsetX", s.Movement.Get(movement.AxisX)); err != nil {
		return err
	}
	return p.SetFloat("uniformOffsetY", s.Movement.Get(movement.AxisY))
}

// updateTextures circles the quad around the current position.
func updateTextures(p *shader.Program, s *State) error {
	x := float32(stdmath.Sin(s.Time)/2) + s.Movement.Get(movement.AxisX)
	y := float32(stdmath.Cos(s.Time)/2) + s.Movement.Get(movement.AxisY)
	if err := p.SetFloat("uniformOffsetX", x); err != nil {
		return err
	}
	if err := p.SetFloat("uniformOffsetY", y); err != nil {
		return err
	}
	// Declared but unused by the stage, so this is a no-op.
	return p.SetFloat("uniformGreen", 1)
}

// rotationStep converts a Z velocity into radians per frame. At the maximum
// velocity a full turn takes 60 frames.
const rotationStep = 6000 / (2 * stdmath.Pi)

var transformAxis = math.Vec3{X: 1, Y: 0.2, Z: 0.4}

func updateTransform(p *shader.Program, s *State) error {
	m := s.Movement
	s.Angle -= float32(float64(m.Velocity(movement.AxisZ)) / rotationStep)

	offset := math.Translate(
		float32(m.Velocity(movement.AxisX))/movement.ParameterMax,
		float32(m.Velocity(movement.AxisY))/movement.ParameterMax,
		0,
	)
	return p.SetMat4("transform", offset.Mul(math.Rotate(s.Angle, transformAxis)))
}

var coordinatesModel = math.RotateX(math.Radians(-55))

func updateCoordinates(p *shader.Program, s *State) error {
	x, y, z := s.Movement.Position()
	aspect := s.Aspect
	if aspect <= 0 {
		aspect = 1
	}

	if err := p.SetMat4("model", coordinatesModel); err != nil {
		return err
	}
	if err := p.SetMat4("view", math.Translate(x, y, z)); err != nil {
		return err
	}
	return p.SetMat4("projection", math.Perspective(math.Radians(45), aspect, 0.1, 100))
}

// WithStages returns base with its stage paths replaced. Empty paths keep
// the base's. The result renders the base geometry and textures, so custom
// stages should declare the same attribute locations.
func WithStages(base Preset, vertex, fragment string) Preset {
	if vertex == "" && fragment == "" {
		return base
	}
	p := base
	p.Name = base.Name + "+custom"
	if vertex != "" {
		p.Vertex = vertex
	}
	if fragment != "" {
		p.Fragment = fragment
	}
	return p
}

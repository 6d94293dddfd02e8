package scene

import (
	"errors"
	stdmath "math"
	"strings"
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/ejricha/glpipeline/internal/engine/input"
	"github.com/ejricha/glpipeline/internal/engine/movement"
	"github.com/ejricha/glpipeline/internal/engine/shader"
	"github.com/ejricha/glpipeline/internal/engine/shader/shadertest"
	"github.com/ejricha/glpipeline/pkg/math"
	"github.com/ejricha/glpipeline/shaders"
)

func newPipeline(t *testing.T) (*shader.Pipeline, *shadertest.Backend) {
	t.Helper()
	backend := shadertest.New()
	return shader.New(backend, shader.NewSources(shaders.FS, "embedded"), nil), backend
}

func TestEveryPresetBuilds(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, backend := newPipeline(t)
			preset, err := Lookup(name)
			if err != nil {
				t.Fatalf("Lookup failed: %v", err)
			}

			b, err := Bind(p, preset, nil, nil)
			if err != nil {
				t.Fatalf("Bind failed: %v", err)
			}
			defer b.Release()

			if backend.LiveShaders() != 0 {
				t.Errorf("%d shaders still live after build", backend.LiveShaders())
			}
			for i := range preset.Textures {
				v, ok := backend.UniformValue(b.Program().Handle(), SamplerName(i))
				if !ok || v != int32(i) {
					t.Errorf("%s = %v (set %v), want %d", SamplerName(i), v, ok, i)
				}
			}
			if err := b.Frame(0, 0); err != nil {
				t.Errorf("Frame failed: %v", err)
			}
			if len(backend.Errors()) != 0 {
				t.Errorf("GL errors: %v", backend.Errors())
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestShadersUniforms(t *testing.T) {
	p, backend := newPipeline(t)
	preset, _ := Lookup("shaders")
	move := &movement.Movement{}
	move.Set(movement.AxisX, 0.25)

	b, err := Bind(p, preset, move, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if err := b.Frame(stdmath.Pi/2, 0); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	h := b.Program().Handle()
	tests := []struct {
		name string
		want float32
	}{
		{"uniformGreen", 1},
		{"uniformOffsetX", 0.25},
		{"uniformOffsetY", 0},
	}
	for _, tt := range tests {
		v, ok := backend.UniformValue(h, tt.name)
		if !ok {
			t.Errorf("%s not set", tt.name)
			continue
		}
		if got := v.(float32); stdmath.Abs(float64(got-tt.want)) > 1e-5 {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTexturesUnusedUniformIsDropped(t *testing.T) {
	p, backend := newPipeline(t)
	preset, _ := Lookup("textures")

	b, err := Bind(p, preset, nil, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if err := b.Frame(0, 0); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	for _, name := range backend.ActiveUniforms(b.Program().Handle()) {
		if name == "uniformGreen" {
			t.Error("uniformGreen should not be active")
		}
	}
	v, ok := backend.UniformValue(b.Program().Handle(), "uniformOffsetY")
	if !ok || v.(float32) != 0.5 {
		t.Errorf("uniformOffsetY = %v, want 0.5", v)
	}
}

func TestTransformRotates(t *testing.T) {
	p, backend := newPipeline(t)
	preset, _ := Lookup("transform")
	move := &movement.Movement{}

	b, err := Bind(p, preset, move, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if move.Velocity(movement.AxisZ) != 20 {
		t.Fatalf("Setup velocity Z = %d, want 20", move.Velocity(movement.AxisZ))
	}

	for i := 0; i < 3; i++ {
		if err := b.Frame(0, 0); err != nil {
			t.Fatalf("Frame failed: %v", err)
		}
	}
	want := float32(-3 * 20 / rotationStep)
	if got := b.State().Angle; stdmath.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("Angle = %v, want %v", got, want)
	}

	move.Pause(true)
	before := b.State().Angle
	if err := b.Frame(0, 0); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if b.State().Angle != before {
		t.Error("paused movement should not rotate")
	}

	v, ok := backend.UniformValue(b.Program().Handle(), "transform")
	if !ok {
		t.Fatal("transform not set")
	}
	wantMat := [16]float32(math.Rotate(before, transformAxis))
	if v.([16]float32) != wantMat {
		t.Errorf("transform = %v, want %v", v, wantMat)
	}
}

func TestCoordinatesView(t *testing.T) {
	p, backend := newPipeline(t)
	preset, _ := Lookup("coordinates")

	b, err := Bind(p, preset, nil, nil)
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	b.SetAspect(800, 600)
	if err := b.Frame(0, 0); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}

	h := b.Program().Handle()
	checks := map[string]math.Mat4{
		"model":      coordinatesModel,
		"view":       math.Translate(0, 0, -3),
		"projection": math.Perspective(math.Radians(45), 800.0/600.0, 0.1, 100),
	}
	for name, want := range checks {
		v, ok := backend.UniformValue(h, name)
		if !ok {
			t.Errorf("%s not set", name)
			continue
		}
		if v.([16]float32) != [16]float32(want) {
			t.Errorf("%s = %v, want %v", name, v, want)
		}
	}
}

func TestBindFailureReleasesNothing(t *testing.T) {
	p, backend := newPipeline(t)
	preset := Preset{Name: "broken", Vertex: "vs/missing.vert", Fragment: "fs/simple.frag"}

	if _, err := Bind(p, preset, nil, nil); err == nil {
		t.Fatal("expected error for missing source")
	}
	if backend.LiveShaders() != 0 {
		t.Errorf("%d shaders live after failed bind", backend.LiveShaders())
	}
}

func TestBindLinkFailureDeletesProgram(t *testing.T) {
	p, backend := newPipeline(t)
	// colors.frag reads ourColor, which simple.vert never writes.
	preset := Preset{Name: "mismatch", Vertex: "vs/simple.vert", Fragment: "fs/colors.frag"}

	_, err := Bind(p, preset, nil, nil)
	var linkErr *shader.LinkError
	if !errors.As(err, &linkErr) {
		t.Fatalf("expected LinkError, got %v", err)
	}
	if !strings.Contains(linkErr.Log, "ourColor") {
		t.Errorf("link log should name the variable: %q", linkErr.Log)
	}
	if backend.LivePrograms() != 0 || backend.LiveShaders() != 0 {
		t.Errorf("live programs %d, shaders %d; want none", backend.LivePrograms(), backend.LiveShaders())
	}
}

func TestControllerPosition(t *testing.T) {
	move := &movement.Movement{}
	c := NewController(move, nil, DrivePosition, nil)

	events := []input.Event{
		{Type: input.EventKeyDown, Key: sdl.K_RIGHT},
		{Type: input.EventKeyDown, Key: sdl.K_k, Repeat: true},
		{Type: input.EventKeyDown, Key: sdl.K_RIGHTBRACKET, Mod: sdl.KMOD_LSHIFT},
		{Type: input.EventKeyUp, Key: sdl.K_RIGHT},
		{Type: input.EventKeyDown, Key: sdl.K_F1},
	}
	for _, e := range events {
		if c.Handle(e) {
			t.Fatalf("Handle(%+v) requested quit", e)
		}
	}

	x, y, z := move.Position()
	want := [3]float32{0.04, 0.01, -0.04}
	got := [3]float32{x, y, z}
	for i := range want {
		if stdmath.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("position = %v, want %v", got, want)
			break
		}
	}
}

func TestControllerVelocity(t *testing.T) {
	move := &movement.Movement{}
	c := NewController(move, nil, DriveVelocity, nil)

	c.Handle(input.Event{Type: input.EventKeyDown, Key: sdl.K_l, Mod: sdl.KMOD_LCTRL})
	c.Handle(input.Event{Type: input.EventKeyDown, Key: sdl.K_UP})
	c.Handle(input.Event{Type: input.EventKeyDown, Key: sdl.K_LEFTBRACKET})

	tests := []struct {
		axis movement.Axis
		want int
	}{
		{movement.AxisX, 20},
		{movement.AxisY, 4},
		{movement.AxisZ, -4},
	}
	for _, tt := range tests {
		if got := move.Velocity(tt.axis); got != tt.want {
			t.Errorf("velocity %s = %d, want %d", tt.axis, got, tt.want)
		}
	}
}

func TestControllerPauseAndQuit(t *testing.T) {
	move := &movement.Movement{}
	c := NewController(move, nil, DrivePosition, nil)

	c.Handle(input.Event{Type: input.EventKeyDown, Key: sdl.K_SPACE})
	if !move.Paused() {
		t.Error("space should pause")
	}
	c.Handle(input.Event{Type: input.EventKeyDown, Key: sdl.K_SPACE})
	if move.Paused() {
		t.Error("second space should resume")
	}

	for _, key := range []sdl.Keycode{sdl.K_ESCAPE, sdl.K_q} {
		if !c.Handle(input.Event{Type: input.EventKeyDown, Key: key}) {
			t.Errorf("key %d should quit", key)
		}
	}
}

func TestWithStages(t *testing.T) {
	base, _ := Lookup("coordinates")

	tests := []struct {
		name         string
		vertex, frag string
		wantName     string
		wantV, wantF string
	}{
		{"none", "", "", "coordinates", "vs/coordinates.vert", "fs/transform.frag"},
		{"fragment only", "", "fs/texture.frag", "coordinates+custom", "vs/coordinates.vert", "fs/texture.frag"},
		{"both", "my.vert", "my.frag", "coordinates+custom", "my.vert", "my.frag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := WithStages(base, tt.vertex, tt.frag)
			if p.Name != tt.wantName || p.Vertex != tt.wantV || p.Fragment != tt.wantF {
				t.Errorf("WithStages = %s (%s, %s), want %s (%s, %s)",
					p.Name, p.Vertex, p.Fragment, tt.wantName, tt.wantV, tt.wantF)
			}
			if len(p.Textures) != len(base.Textures) {
				t.Error("textures should be kept")
			}
		})
	}
}

package viewer

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ejricha/glpipeline/internal/config"
	"github.com/ejricha/glpipeline/internal/engine/shader"
)

func TestResolvePreset(t *testing.T) {
	tests := []struct {
		name     string
		preset   string
		vertex   string
		wantName string
		wantErr  bool
	}{
		{"default", "", "", "triangle", false},
		{"named", "coordinates", "", "coordinates", false},
		{"override", "textures", "vs/mine.vert", "textures+custom", false},
		{"unknown", "nope", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Scene.Preset = tt.preset
			cfg.Shaders.Vertex = tt.vertex

			p, err := resolvePreset(cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolvePreset failed: %v", err)
			}
			if p.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", p.Name, tt.wantName)
			}
		})
	}
}

func TestDepthTest(t *testing.T) {
	tests := []struct {
		name   string
		preset string
		vertex string
		force  bool
		want   bool
	}{
		{"flat preset", "triangle", "", false, false},
		{"forced by config", "triangle", "", true, true},
		{"preset needs depth", "coordinates", "", false, true},
		{"override keeps preset depth", "coordinates", "vs/mine.vert", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Scene.Preset = tt.preset
			cfg.Scene.DepthTest = tt.force
			cfg.Shaders.Vertex = tt.vertex

			p, err := resolvePreset(cfg)
			if err != nil {
				t.Fatalf("resolvePreset failed: %v", err)
			}
			if got := depthTest(cfg, p); got != tt.want {
				t.Errorf("depthTest = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShaderRootsOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "fs"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	custom := "#version 330 core\nout vec4 FragColor;\nvoid main() { FragColor = vec4(1.0); }\n"
	if err := os.WriteFile(filepath.Join(dir, "fs", "simple.frag"), []byte(custom), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m, err := shaderRoots(dir, nil)
	if err != nil {
		t.Fatalf("shaderRoots failed: %v", err)
	}

	data, err := fs.ReadFile(m, "fs/simple.frag")
	if err != nil || string(data) != custom {
		t.Errorf("fs/simple.frag = %q, %v; want the override", data, err)
	}
	if _, err := fs.ReadFile(m, "vs/simple.vert"); err != nil {
		t.Errorf("embedded vs/simple.vert should still resolve: %v", err)
	}

	if _, err := shaderRoots(filepath.Join(dir, "missing"), nil); err == nil {
		t.Error("expected error for missing shader root")
	}
}

func TestDialogText(t *testing.T) {
	stage := shader.StageFragment
	short := shader.Diagnostic{Kind: shader.KindCompile, Stage: &stage, Path: "fs/x.frag", Log: "0:1(1): error"}
	if got := dialogText(short); got != short.String() {
		t.Errorf("dialogText = %q, want %q", got, short.String())
	}

	long := shader.Diagnostic{Kind: shader.KindLink, Log: strings.Repeat("x", 2*maxDialogLog)}
	got := dialogText(long)
	if len(got) != maxDialogLog+len("\n...") || !strings.HasSuffix(got, "\n...") {
		t.Errorf("long log not truncated: %d bytes", len(got))
	}
}

package scene

import (
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/ejricha/glpipeline/internal/engine/mesh"
	"github.com/ejricha/glpipeline/internal/engine/movement"
	"github.com/ejricha/glpipeline/internal/engine/shader"
	"github.com/ejricha/glpipeline/internal/engine/texture"
)

// maxTextureSize caps decoded images; larger ones are downscaled.
const maxTextureSize = 2048

// Scene is a bound preset with its geometry and textures on the GPU.
type Scene struct {
	*Binding
	mesh     *mesh.Mesh
	textures []*texture.Texture
}

// New builds the preset's program, uploads its geometry and loads its
// textures from textures. A texture that cannot be loaded is replaced by a
// white pixel so the scene still renders.
func New(p *shader.Pipeline, preset Preset, textures fs.FS, move *movement.Movement, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}

	b, err := Bind(p, preset, move, log)
	if err != nil {
		return nil, err
	}
	s := &Scene{Binding: b}

	s.mesh, err = mesh.New(preset.Geometry())
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("scene %s: %w", preset.Name, err)
	}

	for _, name := range preset.Textures {
		s.textures = append(s.textures, loadTexture(textures, name, log))
	}
	return s, nil
}

func loadTexture(fsys fs.FS, name string, log *zap.Logger) *texture.Texture {
	if fsys == nil {
		log.Warn("no texture root, using fallback", zap.String("texture", name))
		return texture.Solid(255, 255, 255, 255)
	}
	tex, err := texture.Load(fsys, name, texture.DecodeOptions{FlipY: true, MaxSize: maxTextureSize})
	if err != nil {
		log.Warn("texture load failed, using fallback", zap.String("texture", name), zap.Error(err))
		return texture.Solid(255, 255, 255, 255)
	}
	log.Debug("texture loaded", zap.String("texture", name),
		zap.Int("width", tex.Width), zap.Int("height", tex.Height))
	return tex
}

// Draw updates uniforms, binds textures and draws the geometry.
func (s *Scene) Draw(now float64, dt float32) error {
	if err := s.Frame(now, dt); err != nil {
		return err
	}
	for i, tex := range s.textures {
		tex.Bind(uint32(i))
	}
	s.mesh.Draw()
	return nil
}

// Close releases every GL object the scene owns.
func (s *Scene) Close() {
	for _, tex := range s.textures {
		tex.Delete()
	}
	s.textures = nil
	if s.mesh != nil {
		s.mesh.Delete()
		s.mesh = nil
	}
	s.Release()
}

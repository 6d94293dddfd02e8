// Package viewer implements the render loop around a scene preset.
package viewer

import (
	"fmt"
	"io/fs"
	"time"

	"go.uber.org/zap"

	"github.com/ejricha/glpipeline/internal/assets"
	"github.com/ejricha/glpipeline/internal/config"
	"github.com/ejricha/glpipeline/internal/engine/glbackend"
	"github.com/ejricha/glpipeline/internal/engine/input"
	"github.com/ejricha/glpipeline/internal/engine/movement"
	"github.com/ejricha/glpipeline/internal/engine/renderer"
	"github.com/ejricha/glpipeline/internal/engine/shader"
	"github.com/ejricha/glpipeline/internal/engine/window"
	"github.com/ejricha/glpipeline/internal/logger"
	"github.com/ejricha/glpipeline/internal/scene"
	"github.com/ejricha/glpipeline/shaders"
)

// Viewer owns the window, the shader pipeline and the active scene.
type Viewer struct {
	config     *config.Config
	running    bool
	window     *window.Window
	renderer   *renderer.Renderer
	input      *input.Input
	pipeline   *shader.Pipeline
	shaders    *assets.Manager
	textures   *assets.Manager
	scene      *scene.Scene
	controller *scene.Controller
	movement   *movement.Movement
	log        *zap.Logger
}

// New opens the window and builds the configured scene. A shader that fails
// to compile or link is returned as an error after its log has been reported.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config:   cfg,
		movement: &movement.Movement{},
		log:      logger.Named("viewer"),
	}

	v.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	preset, err := resolvePreset(cfg)
	if err != nil {
		return nil, err
	}

	// Window first: the renderer and everything after it need a current GL context.
	v.window, err = window.New(window.Config{
		Title:      fmt.Sprintf("%s - %s", cfg.Window.Title, preset.Name),
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Scene.ClearColor,
		Wireframe:  cfg.Scene.Wireframe,
		DepthTest:  depthTest(cfg, preset),
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.shaders, err = shaderRoots(cfg.Shaders.Root, logger.Named("assets"))
	if err != nil {
		v.Close()
		return nil, err
	}
	v.textures = assets.NewManager(logger.Named("assets"))
	var textureFS fs.FS
	if err := v.textures.AddDir(cfg.Scene.TextureDir); err != nil {
		v.log.Warn("texture dir unavailable", zap.Error(err))
	} else {
		textureFS = v.textures
	}

	label := "embedded"
	if cfg.Shaders.Root != "" {
		label = cfg.Shaders.Root
	}
	shaderLog := logger.Named("shader")
	v.pipeline = shader.New(glbackend.New(), shader.NewSources(v.shaders, label), shaderLog)
	if cfg.Shaders.ErrorDialog {
		v.pipeline.SetReporter(shader.MultiReporter{
			shader.NewZapReporter(shaderLog),
			dialogReporter{title: cfg.Window.Title},
		})
	}

	v.scene, err = scene.New(v.pipeline, preset, textureFS, v.movement, logger.Named("scene"))
	if err != nil {
		v.Close()
		return nil, err
	}
	v.scene.SetAspect(width, height)

	v.input = input.New()
	v.controller = scene.NewController(v.movement, input.DefaultBindings(), preset.Drive, logger.Named("input"))

	v.log.Info("viewer initialized", zap.String("preset", preset.Name))
	return v, nil
}

// resolvePreset picks the configured preset and applies stage overrides.
func resolvePreset(cfg *config.Config) (scene.Preset, error) {
	name := cfg.Scene.Preset
	if name == "" {
		name = "triangle"
	}
	base, err := scene.Lookup(name)
	if err != nil {
		return scene.Preset{}, err
	}
	return scene.WithStages(base, cfg.Shaders.Vertex, cfg.Shaders.Fragment), nil
}

func depthTest(cfg *config.Config, preset scene.Preset) bool {
	return cfg.Scene.DepthTest || preset.DepthTest
}

// shaderRoots layers a user shader directory over the embedded sources.
func shaderRoots(dir string, log *zap.Logger) (*assets.Manager, error) {
	m := assets.NewManager(log)
	m.AddFS("embedded", shaders.FS)
	if dir != "" {
		if err := m.AddDir(dir); err != nil {
			return nil, fmt.Errorf("shader root: %w", err)
		}
	}
	return m, nil
}

// Run drives the render loop until quit.
func (v *Viewer) Run() error {
	v.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		for _, event := range v.input.Events() {
			v.handle(event)
		}

		v.renderer.Begin()
		if err := v.scene.Draw(now.Sub(start).Seconds(), float32(dt)); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Stringer("movement", v.movement))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handle(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		width, height := v.window.DrawableSize()
		v.renderer.Resize(width, height)
		v.scene.SetAspect(width, height)
	case input.EventKeyDown:
		if v.controller.Handle(e) {
			v.running = false
		}
	}
}

// Close releases the scene, then the context.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.scene != nil {
		v.scene.Close()
		v.scene = nil
	}
	if v.shaders != nil {
		v.shaders.Close()
	}
	if v.textures != nil {
		v.textures.Close()
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
}

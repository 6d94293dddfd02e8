// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window"`
	Shaders ShadersConfig `yaml:"shaders" toml:"shaders"`
	Scene   SceneConfig   `yaml:"scene" toml:"scene"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
}

// ShadersConfig says where stage sources are read from.
type ShadersConfig struct {
	// Root is a directory searched before the embedded shaders. Empty means
	// embedded shaders only.
	Root string `yaml:"root" toml:"root"`
	// Vertex and Fragment override the preset's stage paths.
	Vertex   string `yaml:"vertex" toml:"vertex"`
	Fragment string `yaml:"fragment" toml:"fragment"`
	// ErrorDialog also shows compile and link logs in a native message box.
	ErrorDialog bool `yaml:"error_dialog" toml:"error_dialog"`
}

// SceneConfig selects and tweaks the scene to render.
type SceneConfig struct {
	Preset     string     `yaml:"preset" toml:"preset"`
	TextureDir string     `yaml:"texture_dir" toml:"texture_dir"`
	ClearColor [4]float32 `yaml:"clear_color" toml:"clear_color"`
	Wireframe  bool       `yaml:"wireframe" toml:"wireframe"`
	// DepthTest forces depth testing on. Presets that need it enable it anyway.
	DepthTest bool `yaml:"depth_test" toml:"depth_test"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "glpipeline",
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
		},
		Shaders: ShadersConfig{
			Root: "",
		},
		Scene: SceneConfig{
			Preset:     "coordinates",
			TextureDir: "textures",
			ClearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

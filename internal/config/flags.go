package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagScene      = flag.String("scene", "", "Scene preset to render")
	flagShaders    = flag.String("shaders", "", "Directory to load shader sources from")
	flagVertex     = flag.String("vertex", "", "Vertex shader path, relative to the shader root")
	flagFragment   = flag.String("fragment", "", "Fragment shader path, relative to the shader root")
	flagDialog     = flag.Bool("dialog", false, "Show shader errors in a message box")
	flagWireframe  = flag.Bool("wireframe", false, "Draw polygons as lines")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScene != "" {
		cfg.Scene.Preset = *flagScene
	}
	if *flagShaders != "" {
		cfg.Shaders.Root = *flagShaders
	}
	if *flagVertex != "" {
		cfg.Shaders.Vertex = *flagVertex
	}
	if *flagFragment != "" {
		cfg.Shaders.Fragment = *flagFragment
	}
	if *flagDialog {
		cfg.Shaders.ErrorDialog = true
	}
	if *flagWireframe {
		cfg.Scene.Wireframe = true
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}

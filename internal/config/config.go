package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"GopherView/internal/renderer"
)

type WindowConfig struct {
	Width  int32  `json:"width"`
	Height int32  `json:"height"`
	Title  string `json:"title"`
	VSync  bool   `json:"vsync"`
}

type ShaderConfig struct {
	VertexPath   string `json:"vertex_path,omitempty"`
	FragmentPath string `json:"fragment_path,omitempty"`
}

type SceneConfig struct {
	Seed        int64   `json:"seed"`
	GridSize    int     `json:"grid_size"`
	Spacing     float32 `json:"spacing"`
	MaxHeight   float32 `json:"max_height"`
	FogEnabled  bool    `json:"fog_enabled"`
	FogDensity  float32 `json:"fog_density"`
	CullEnabled bool    `json:"cull_enabled"`
}

// Config is the viewer configuration. Fields missing from a file keep their defaults.
type Config struct {
	Window  WindowConfig          `json:"window"`
	Motion  renderer.MotionConfig `json:"motion"`
	Lens    renderer.Lens         `json:"lens"`
	Shaders ShaderConfig          `json:"shaders"`
	Scene   SceneConfig           `json:"scene"`
	// EyeHeight is how far the floor is drawn below the camera's ground height.
	EyeHeight float32 `json:"eye_height"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			Title:  "GopherView",
			VSync:  true,
		},
		Motion: renderer.DefaultMotionConfig(),
		Lens: renderer.Lens{
			Near: 0.1,
			Far:  200.0,
		},
		Scene: SceneConfig{
			Seed:        1,
			GridSize:    24,
			Spacing:     3.0,
			MaxHeight:   6.0,
			FogEnabled:  true,
			FogDensity:  0.02,
			CullEnabled: true,
		},
		EyeHeight: 1.7,
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// FloorY is the world height of the floor's top face.
func (c Config) FloorY() float32 {
	return c.Motion.GroundHeight - c.EyeHeight
}

// Write encodes the configuration as indented JSON.
func (c Config) Write(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(c)
}

func (c Config) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return c.Write(file)
}

func (c Config) Validate() error {
	m := c.Motion
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case m.Speed <= 0:
		return fmt.Errorf("motion.speed must be positive, got %g", m.Speed)
	case m.SprintMultiplier <= 0:
		return fmt.Errorf("motion.sprint_multiplier must be positive, got %g", m.SprintMultiplier)
	case m.Sensitivity <= 0:
		return fmt.Errorf("motion.sensitivity must be positive, got %g", m.Sensitivity)
	case m.MinZoom <= 0 || m.MinZoom > m.MaxZoom || m.MaxZoom >= 180:
		return fmt.Errorf("motion zoom range must satisfy 0 < min <= max < 180, got [%g, %g]", m.MinZoom, m.MaxZoom)
	case m.Gravity >= 0:
		return fmt.Errorf("motion.gravity must be negative, got %g", m.Gravity)
	case m.JumpImpulse <= 0:
		return fmt.Errorf("motion.jump_impulse must be positive, got %g", m.JumpImpulse)
	case m.PitchLimit <= 0 || m.PitchLimit >= 90:
		return fmt.Errorf("motion.pitch_limit must be in (0, 90), got %g", m.PitchLimit)
	case c.Lens.Near <= 0 || c.Lens.Near >= c.Lens.Far:
		return fmt.Errorf("lens must satisfy 0 < near < far, got near=%g far=%g", c.Lens.Near, c.Lens.Far)
	case (c.Shaders.VertexPath == "") != (c.Shaders.FragmentPath == ""):
		return fmt.Errorf("shaders.vertex_path and shaders.fragment_path must be set together")
	case c.EyeHeight < 0:
		return fmt.Errorf("eye_height must not be negative, got %g", c.EyeHeight)
	case c.Scene.GridSize < 0:
		return fmt.Errorf("scene.grid_size must not be negative, got %d", c.Scene.GridSize)
	}
	return nil
}

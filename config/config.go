// Package config loads the demo's YAML configuration and turns it into component options.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-move/engine/logger"
	"github.com/Carmen-Shannon/oxy-move/engine/movement"
	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML document.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Engine     EngineConfig     `yaml:"engine"`
	Renderer   RendererConfig   `yaml:"renderer"`
	Controller ControllerConfig `yaml:"controller"`
	Log        logger.Config    `yaml:"log"`
}

// WindowConfig configures the GLFW window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// EngineConfig configures the tick and render loops.
type EngineConfig struct {
	TickRate         float64 `yaml:"tick_rate"`
	RenderFrameLimit float64 `yaml:"render_frame_limit"` // 0 = uncapped
	Profiling        bool    `yaml:"profiling"`
}

// RendererConfig configures surface presentation.
type RendererConfig struct {
	PresentMode   string `yaml:"present_mode"` // fifo or immediate
	ForceSoftware bool   `yaml:"force_software"`
}

// ControllerConfig mirrors the MoveController options. Absent bounds leave that side
// unbounded.
type ControllerConfig struct {
	MoveSpeed               float64  `yaml:"move_speed"`
	RotationSpeed           float64  `yaml:"rotation_speed"`
	Interval                float64  `yaml:"interval"`
	MinVerticalRotation     *float64 `yaml:"min_vertical_rotation"`
	MaxVerticalRotation     *float64 `yaml:"max_vertical_rotation"`
	MoveEnabled             bool     `yaml:"move_enabled"`
	RotationEnabled         bool     `yaml:"rotation_enabled"`
	VerticalRotationEnabled bool     `yaml:"vertical_rotation_enabled"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-move",
			Width:  1280,
			Height: 720,
		},
		Engine: EngineConfig{
			TickRate: 60,
		},
		Renderer: RendererConfig{
			PresentMode: "fifo",
		},
		Controller: ControllerConfig{
			MoveSpeed:               movement.DefaultMoveSpeed,
			RotationSpeed:           movement.DefaultRotationSpeed,
			Interval:                movement.DefaultInterval,
			MoveEnabled:             true,
			RotationEnabled:         true,
			VerticalRotationEnabled: true,
		},
		Log: logger.DefaultConfig(),
	}
}

// Load reads and validates the configuration at path.
//
// Parameters:
//   - path: path to a YAML file
//
// Returns:
//   - Config: the loaded configuration, defaults filled in
//   - error: an error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	cfg, err := Parse(file)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults and validates the result.
// Keys missing from the document keep their default values.
//
// Parameters:
//   - r: the YAML source
//
// Returns:
//   - Config: the parsed configuration
//   - error: an error if decoding or validation fails
func Parse(r io.Reader) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid value at once.
//
// Returns:
//   - error: nil if the configuration is usable
func (c Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Engine.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("engine tick_rate must be positive, got %v", c.Engine.TickRate))
	}
	if c.Engine.RenderFrameLimit < 0 {
		errs = append(errs, fmt.Errorf("engine render_frame_limit must not be negative, got %v", c.Engine.RenderFrameLimit))
	}
	switch c.Renderer.PresentMode {
	case "fifo", "immediate":
	default:
		errs = append(errs, fmt.Errorf("renderer present_mode must be fifo or immediate, got %q", c.Renderer.PresentMode))
	}
	if err := c.Controller.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Validate rejects negative speeds and intervals and inverted vertical bounds. The
// controller itself accepts all of these silently.
//
// Returns:
//   - error: nil if the controller configuration is usable
func (c ControllerConfig) Validate() error {
	var errs []error
	if c.MoveSpeed < 0 {
		errs = append(errs, fmt.Errorf("controller move_speed must not be negative, got %v", c.MoveSpeed))
	}
	if c.RotationSpeed < 0 {
		errs = append(errs, fmt.Errorf("controller rotation_speed must not be negative, got %v", c.RotationSpeed))
	}
	if c.Interval < 0 {
		errs = append(errs, fmt.Errorf("controller interval must not be negative, got %v", c.Interval))
	}
	if c.MinVerticalRotation != nil && c.MaxVerticalRotation != nil && *c.MinVerticalRotation > *c.MaxVerticalRotation {
		errs = append(errs, fmt.Errorf("controller min_vertical_rotation %v exceeds max_vertical_rotation %v",
			*c.MinVerticalRotation, *c.MaxVerticalRotation))
	}
	return errors.Join(errs...)
}

// Options converts the controller section into MoveController options.
//
// Returns:
//   - []movement.MoveControllerOption: options in application order
func (c ControllerConfig) Options() []movement.MoveControllerOption {
	options := []movement.MoveControllerOption{
		movement.WithMoveSpeed(c.MoveSpeed),
		movement.WithRotationSpeed(c.RotationSpeed),
		movement.WithInterval(c.Interval),
		movement.WithMoveEnabled(c.MoveEnabled),
		movement.WithRotationEnabled(c.RotationEnabled),
		movement.WithVerticalRotationEnabled(c.VerticalRotationEnabled),
	}
	if c.MinVerticalRotation != nil {
		options = append(options, movement.WithMinVerticalRotation(*c.MinVerticalRotation))
	}
	if c.MaxVerticalRotation != nil {
		options = append(options, movement.WithMaxVerticalRotation(*c.MaxVerticalRotation))
	}
	return options
}

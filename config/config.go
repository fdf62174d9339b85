// Package config loads the freecam YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/Carmen-Shannon/oxy-freecam/engine/input"
	"github.com/Carmen-Shannon/oxy-freecam/engine/logger"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation error returned from Load and Parse.
var ErrInvalidConfig = errors.New("invalid config")

const (
	defaultTitle         = "Oxy Freecam"
	defaultWidth         = 1280
	defaultHeight        = 720
	defaultTickRate      = 60
	defaultFovDegrees    = 60
	defaultNear          = 0.1
	defaultFar           = 1000
	defaultMovementSpeed = 5
	defaultBoost         = 10
)

var (
	defaultCameraPosition = [3]float32{0, 2, -10}
	defaultCameraRotation = [3]float32{15, 0, 0}
)

// Config is the root of the configuration file.
type Config struct {
	Log      logger.Config  `yaml:"log"`
	Window   WindowConfig   `yaml:"window"`
	Engine   EngineConfig   `yaml:"engine"`
	Camera   CameraConfig   `yaml:"camera"`
	Operator OperatorConfig `yaml:"operator"`
	Input    InputConfig    `yaml:"input"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type EngineConfig struct {
	TickRate int `yaml:"tick_rate"`
	// RenderFrameLimit caps frames per second; 0 renders as fast as the surface allows.
	RenderFrameLimit int  `yaml:"render_frame_limit"`
	Profiling        bool `yaml:"profiling"`
}

type CameraConfig struct {
	FovDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	// Position and Rotation are pointers so an explicit zero can be told apart from an omitted key.
	Position *[3]float32 `yaml:"position"`
	// Rotation is (pitch, yaw, roll) in degrees.
	Rotation *[3]float32 `yaml:"rotation"`
}

// PositionVec returns the configured camera position.
func (c CameraConfig) PositionVec() mgl32.Vec3 {
	if c.Position == nil {
		return mgl32.Vec3(defaultCameraPosition)
	}
	return mgl32.Vec3(*c.Position)
}

// RotationVec returns the configured camera Euler angles in degrees.
func (c CameraConfig) RotationVec() mgl32.Vec3 {
	if c.Rotation == nil {
		return mgl32.Vec3(defaultCameraRotation)
	}
	return mgl32.Vec3(*c.Rotation)
}

type OperatorConfig struct {
	MovementSpeed int `yaml:"movement_speed"`
	// Boost is a pointer so that 0 (boost disabled) is distinguishable from unset.
	Boost *int `yaml:"boost"`
}

// BoostValue returns the configured boost, or the default when unset.
func (c OperatorConfig) BoostValue() int {
	if c.Boost == nil {
		return defaultBoost
	}
	return *c.Boost
}

type InputConfig struct {
	// Watch reloads Actions whenever the config file changes.
	Watch   bool           `yaml:"watch"`
	Actions input.Bindings `yaml:"actions"`
}

// DefaultBindings returns the stock freecam bindings: right mouse to fly with WASD/QE,
// shift to boost, middle mouse to pan.
func DefaultBindings() input.Bindings {
	return input.Bindings{
		"StartMovement":    {Type: input.BindingButton, Controls: []string{"mouse:right"}},
		"MoveHorizontally": {Type: input.BindingComposite, Up: "key:W", Down: "key:S", Left: "key:A", Right: "key:D"},
		"MoveVertically":   {Type: input.BindingComposite, Up: "key:E", Down: "key:Q"},
		"Boost":            {Type: input.BindingButton, Controls: []string{"key:LeftShift"}},
		"Rotate":           {Type: input.BindingPointer, Scale: input.Scale{0.2, 0.2}},
		"StartPan":         {Type: input.BindingButton, Controls: []string{"mouse:middle"}},
		"Pan":              {Type: input.BindingPointer, Scale: input.Scale{-0.05, -0.05}},
	}
}

// Load reads and validates the configuration file at path.
//
// Parameters:
//   - path: the YAML file
//
// Returns:
//   - *Config: the configuration with defaults applied
//   - error: read, decode or validation error
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration document. An empty document yields the defaults.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - *Config: the configuration with defaults applied
//   - error: decode or validation error
func Parse(data []byte) (*Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadBindings reads only the input actions from the configuration file at path.
// Defaults are not applied, so a file without actions yields empty bindings.
//
// Parameters:
//   - path: the YAML file
//
// Returns:
//   - input.Bindings: the validated bindings
//   - error: read, decode or validation error
func LoadBindings(path string) (input.Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Input.Actions.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: input: %w", path, err)
	}
	return cfg.Input.Actions, nil
}

func decode(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	c.Log.Level = common.Coalesce(c.Log.Level, "info")

	c.Window.Title = common.Coalesce(c.Window.Title, defaultTitle)
	c.Window.Width = common.Coalesce(c.Window.Width, defaultWidth)
	c.Window.Height = common.Coalesce(c.Window.Height, defaultHeight)

	c.Engine.TickRate = common.Coalesce(c.Engine.TickRate, defaultTickRate)

	c.Camera.FovDegrees = common.Coalesce(c.Camera.FovDegrees, defaultFovDegrees)
	c.Camera.Near = common.Coalesce(c.Camera.Near, defaultNear)
	c.Camera.Far = common.Coalesce(c.Camera.Far, defaultFar)

	c.Operator.MovementSpeed = common.Coalesce(c.Operator.MovementSpeed, defaultMovementSpeed)

	if len(c.Input.Actions) == 0 {
		c.Input.Actions = DefaultBindings()
	}
}

// Validate checks value ranges and the input bindings.
//
// Returns:
//   - error: wraps ErrInvalidConfig (and the binding error, if any)
func (c *Config) Validate() error {
	switch {
	case c.Window.Width < 0 || c.Window.Height < 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Engine.TickRate < 0:
		return fmt.Errorf("%w: engine.tick_rate %d", ErrInvalidConfig, c.Engine.TickRate)
	case c.Engine.RenderFrameLimit < 0:
		return fmt.Errorf("%w: engine.render_frame_limit %d", ErrInvalidConfig, c.Engine.RenderFrameLimit)
	case c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180:
		return fmt.Errorf("%w: camera.fov_degrees %v must be in (0, 180)", ErrInvalidConfig, c.Camera.FovDegrees)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera clip planes near=%v far=%v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	case c.Operator.MovementSpeed < 0 || c.Operator.BoostValue() < 0:
		return fmt.Errorf("%w: operator speeds must not be negative", ErrInvalidConfig)
	}
	if err := c.Input.Actions.Validate(); err != nil {
		return fmt.Errorf("%w: input: %w", ErrInvalidConfig, err)
	}
	return nil
}

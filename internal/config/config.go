// Package config holds the runtime settings: defaults, a TOML file overlay,
// environment overrides and validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"raft/internal/scene"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// SeedEnv overrides the scene seed.
const SeedEnv = "RAFT_SEED"

// Window settings.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

// Assets are texture paths. Skybox is a directory of face images or a single
// horizontal-cross image.
type Assets struct {
	Box    string `toml:"box"`
	Wood   string `toml:"wood"`
	Sail   string `toml:"sail"`
	Skybox string `toml:"skybox"`
}

// Input settings. Sensitivities are degrees per pixel.
type Input struct {
	MouseSensitivity float32 `toml:"mouse_sensitivity"`
	CaptureLoss      string  `toml:"capture_loss"`
	TouchDevice      bool    `toml:"touch_device"`
}

// Audio settings. Volumes are in [0, 1].
type Audio struct {
	Enabled     bool    `toml:"enabled"`
	OceanVolume float64 `toml:"ocean_volume"`
	ClickVolume float64 `toml:"click_volume"`
}

// Config is the full settings tree.
type Config struct {
	Window   Window `toml:"window"`
	TickRate int    `toml:"tick_rate"` // simulation ticks per second
	Seed     uint64 `toml:"seed"`      // 0 seeds from the clock
	CullFace bool   `toml:"cull_face"`
	LogLevel string `toml:"log_level"`
	Assets   Assets `toml:"assets"`
	Input    Input  `toml:"input"`
	Audio    Audio  `toml:"audio"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "Raft",
			VSync:  true,
		},
		TickRate: 60,
		CullFace: true,
		LogLevel: "info",
		Assets: Assets{
			Box:    "assets/box.png",
			Wood:   "assets/wood.jpg",
			Sail:   "assets/sail.jpg",
			Skybox: "assets/skybox",
		},
		Input: Input{
			MouseSensitivity: 0.1,
			CaptureLoss:      scene.CaptureAuto,
		},
		Audio: Audio{
			Enabled:     true,
			OceanVolume: 0.5,
			ClickVolume: 0.6,
		},
	}
}

// Load reads path over the defaults and applies the environment. An empty path
// skips the file.
func Load(path string) (Config, error) {
	return LoadWith(path, Overrides{})
}

// LoadWith is Load with command-line overrides applied last, before validation.
func LoadWith(path string, ov Overrides) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := Decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	ov.Apply(&cfg)
	return cfg, cfg.Validate()
}

// Overrides are settings given on the command line. They win over the file
// and the environment, on the first load and on every reload.
type Overrides struct {
	Width, Height *int
	Seed          *uint64
	LogLevel      *string
}

// Apply writes every set override into c.
func (o Overrides) Apply(c *Config) {
	if o.Width != nil {
		c.Window.Width = *o.Width
	}
	if o.Height != nil {
		c.Window.Height = *o.Height
	}
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
}

// Decode overlays TOML data onto cfg. Unknown keys are an error.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// ApplyEnv applies environment overrides using getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if s := getenv(SeedEnv); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", SeedEnv, s, ErrInvalid)
		}
		c.Seed = v
	}
	return nil
}

// Validate rejects settings the program cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalid))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate %d: %w", c.TickRate, ErrInvalid))
	}
	if _, err := scene.NewCaptureLossPolicy(c.Input.CaptureLoss, c.Input.TouchDevice); err != nil {
		errs = append(errs, fmt.Errorf("input.capture_loss: %w", ErrInvalid))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if v := c.Audio.OceanVolume; v < 0 || v > 1 {
		errs = append(errs, fmt.Errorf("audio.ocean_volume %g: %w", v, ErrInvalid))
	}
	if v := c.Audio.ClickVolume; v < 0 || v > 1 {
		errs = append(errs, fmt.Errorf("audio.click_volume %g: %w", v, ErrInvalid))
	}
	return errors.Join(errs...)
}

// CaptureLossPolicy builds the scene policy from the input settings.
func (c Config) CaptureLossPolicy() (scene.CaptureLossPolicy, error) {
	return scene.NewCaptureLossPolicy(c.Input.CaptureLoss, c.Input.TouchDevice)
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, ErrInvalid)
	}
	return l, nil
}

// Package config holds engine settings loaded from TOML or YAML
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// MaxLightUnits mirrors the renderer light unit limit
const MaxLightUnits = 8

type Config struct {
	Window  Window  `toml:"window" yaml:"window"`
	Physics Physics `toml:"physics" yaml:"physics"`
	Render  Render  `toml:"render" yaml:"render"`
	Audio   Audio   `toml:"audio" yaml:"audio"`
	Log     Log     `toml:"log" yaml:"log"`
	Assets  Assets  `toml:"assets" yaml:"assets"`
}

type Window struct {
	Title     string `toml:"title" yaml:"title"`
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	FPS       int    `toml:"fps" yaml:"fps"`
	KeyHold   int    `toml:"key_hold" yaml:"key_hold"` // frames a key stays down after a press
	TrueColor bool   `toml:"true_color" yaml:"true_color"`
}

type Physics struct {
	Gravity [3]float64 `toml:"gravity" yaml:"gravity"`
	ERP     float64    `toml:"erp" yaml:"erp"`
	CFM     float64    `toml:"cfm" yaml:"cfm"`
	Mu      float64    `toml:"mu" yaml:"mu"`
	Bounce  float64    `toml:"bounce" yaml:"bounce"`
}

type Render struct {
	FOV        float64    `toml:"fov" yaml:"fov"` // vertical, degrees
	Near       float64    `toml:"near" yaml:"near"`
	Far        float64    `toml:"far" yaml:"far"`
	ClearColor [4]float64 `toml:"clear_color" yaml:"clear_color"`
	LightUnits int        `toml:"light_units" yaml:"light_units"`
}

type Audio struct {
	Enabled    bool    `toml:"enabled" yaml:"enabled"`
	SampleRate int     `toml:"sample_rate" yaml:"sample_rate"`
	Volume     float64 `toml:"volume" yaml:"volume"`
}

type Log struct {
	Debug bool   `toml:"debug" yaml:"debug"`
	Dir   string `toml:"dir" yaml:"dir"`
	File  string `toml:"file" yaml:"file"`
}

type Assets struct {
	MeshDir string `toml:"mesh_dir" yaml:"mesh_dir"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Window: Window{
			Title:     "ngine",
			Width:     800,
			Height:    600,
			FPS:       60,
			KeyHold:   8,
			TrueColor: true,
		},
		Physics: Physics{
			Gravity: [3]float64{0, -9.8, 0},
			ERP:     0.8,
			CFM:     1e-5,
			Mu:      10000,
			Bounce:  0,
		},
		Render: Render{
			FOV:        45,
			Near:       0.1,
			Far:        100,
			ClearColor: [4]float64{0.5, 0.5, 0.5, 1},
			LightUnits: MaxLightUnits,
		},
		Audio: Audio{
			Enabled:    true,
			SampleRate: 48000,
			Volume:     0.8,
		},
		Log: Log{
			Dir:  "logs",
			File: "ngine.log",
		},
		Assets: Assets{
			MeshDir: "assets",
		},
	}
}

// Load reads path on top of Default, picking the format from the extension
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a config in the format named by ext (".toml", ".yaml", ".yml") on top of Default and validates it
func Decode(r io.Reader, ext string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.NewDecoder(r).Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decode toml: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", ext)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	switch {
	case c.Window.FPS <= 0:
		return fmt.Errorf("%w: fps %d must be positive", ErrInvalid, c.Window.FPS)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Physics.ERP < 0 || c.Physics.ERP > 1:
		return fmt.Errorf("%w: erp %g outside [0,1]", ErrInvalid, c.Physics.ERP)
	case c.Physics.CFM < 0:
		return fmt.Errorf("%w: negative cfm %g", ErrInvalid, c.Physics.CFM)
	case c.Physics.Bounce < 0 || c.Physics.Bounce > 1:
		return fmt.Errorf("%w: bounce %g outside [0,1]", ErrInvalid, c.Physics.Bounce)
	case c.Render.LightUnits < 0 || c.Render.LightUnits > MaxLightUnits:
		return fmt.Errorf("%w: %d light units, at most %d", ErrInvalid, c.Render.LightUnits, MaxLightUnits)
	case c.Render.Near <= 0 || c.Render.Far <= c.Render.Near:
		return fmt.Errorf("%w: clip range %g..%g", ErrInvalid, c.Render.Near, c.Render.Far)
	case c.Audio.Enabled && c.Audio.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalid, c.Audio.SampleRate)
	}
	return nil
}

// FrameTime returns the fixed timestep in seconds
func (c Config) FrameTime() float64 {
	return 1 / float64(c.Window.FPS)
}

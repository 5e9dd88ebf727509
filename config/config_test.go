package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 60, cfg.Window.FPS)
	assert.Equal(t, [3]float64{0, -9.8, 0}, cfg.Physics.Gravity)
	assert.InDelta(t, 1.0/60, cfg.FrameTime(), 1e-12)
}

func TestDecodeTOMLKeepsDefaults(t *testing.T) {
	src := `
[window]
fps = 30

[physics]
gravity = [0.0, -1.0, 0.0]
`
	cfg, err := Decode(strings.NewReader(src), ".toml")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Window.FPS)
	assert.Equal(t, [3]float64{0, -1, 0}, cfg.Physics.Gravity)
	assert.Equal(t, "ngine", cfg.Window.Title)
	assert.InDelta(t, 0.8, cfg.Physics.ERP, 1e-12)
}

func TestDecodeYAML(t *testing.T) {
	src := "render:\n  light_units: 4\naudio:\n  enabled: false\n"
	cfg, err := Decode(strings.NewReader(src), ".YML")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Render.LightUnits)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 48000, cfg.Audio.SampleRate)
}

func TestDecodeEmptyYAML(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""), ".yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"fps":    func(c *Config) { c.Window.FPS = 0 },
		"size":   func(c *Config) { c.Window.Height = -1 },
		"erp":    func(c *Config) { c.Physics.ERP = 1.5 },
		"cfm":    func(c *Config) { c.Physics.CFM = -1 },
		"lights": func(c *Config) { c.Render.LightUnits = 9 },
		"clip":   func(c *Config) { c.Render.Far = c.Render.Near },
		"rate":   func(c *Config) { c.Audio.SampleRate = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "ngine.toml")
	require.NoError(t, os.WriteFile(good, []byte("[window]\ntitle = \"pong\"\n"), 0o644))
	cfg, err := Load(good)
	require.NoError(t, err)
	assert.Equal(t, "pong", cfg.Window.Title)

	bad := filepath.Join(dir, "ngine.toml.bak")
	require.NoError(t, os.WriteFile(bad, nil, 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "slow.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("window:\n  fps: -5\n"), 0o644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

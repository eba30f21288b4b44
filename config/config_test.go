package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/restyle/config"
	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/shadow"
	"github.com/npillmayer/schuko/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.LoadConfiguration("")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, tracing.LevelError, cfg.TraceLevel())
	assert.Equal(t, css.DefaultMetrics, cfg.CSSMetrics())
	assert.Equal(t, "sans-serif", cfg.Fonts.Family)
	d := cfg.ShadowDefaults()
	require.NotNil(t, d.Tint)
	assert.Equal(t, css.Color{A: 128}, *d.Tint)
	require.NotNil(t, d.Blend)
	assert.Equal(t, shadow.BlendNormal, *d.Blend)
	assert.Equal(t, cfg, config.Default())
}

func TestOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restyle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tracing:
  level: Debug
metrics:
  em_size: 12
shadow:
  color: "#336699"
  blend: multiply
`), 0o644))
	cfg, err := config.LoadConfiguration(path)
	require.NoError(t, err)
	assert.Equal(t, tracing.LevelDebug, cfg.TraceLevel())
	assert.Equal(t, css.Metrics{EmSize: 12, DeviceScale: 1}, cfg.CSSMetrics())
	assert.Equal(t, "sans-serif", cfg.Fonts.Family, "defaults are kept")
	d := cfg.ShadowDefaults()
	assert.Equal(t, css.Color{R: 0x33, G: 0x66, B: 0x99, A: 0xff}, *d.Tint)
	assert.Equal(t, shadow.BlendMultiply, *d.Blend)
	//
	data, err := config.Dump(cfg)
	require.NoError(t, err)
	again, err := config.Parse(data, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestInvalid(t *testing.T) {
	for _, yml := range []string{
		"unknown_key: 1\n",
		"version: 2\n",
		"tracing:\n  level: verbose\n",
		"metrics:\n  em_size: 0\n",
		"shadow:\n  color: nocolor\n",
		"shadow:\n  blend: glow\n",
		"fonts:\n  family: \"\"\n",
	} {
		_, err := config.Parse([]byte(yml), nil)
		assert.Error(t, err, yml)
	}
	_, err := config.LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

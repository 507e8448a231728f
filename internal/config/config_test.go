package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tilesynth/internal/config"
	"github.com/vovakirdan/tilesynth/internal/wfc"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestLoad_EmbeddedMatchesDefault(t *testing.T) {
	isolate(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad_CustomPathLayersOverDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	yaml := `
generate:
  width: 12
  order: entropy
palette:
  "0x0a": "~"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Generate.Width)
	assert.Equal(t, 20, cfg.Generate.Height, "omitted keys keep defaults")
	assert.Equal(t, "entropy", cfg.Generate.Order)
	assert.Equal(t, 99, cfg.Generate.Fallback)

	order, err := cfg.Generate.ParsedOrder()
	require.NoError(t, err)
	assert.Equal(t, wfc.OrderEntropy, order)

	pal, err := config.ParsePalette(cfg.Palette)
	require.NoError(t, err)
	assert.Equal(t, map[wfc.TileID]rune{10: '~'}, pal)
}

func TestLoad_CustomPathErrors(t *testing.T) {
	isolate(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("generate: ["), 0o644))
	_, err = config.Load(bad)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoad_SearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	local := filepath.Join(work, "configs")
	require.NoError(t, os.MkdirAll(local, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(local, "tilesynth.yaml"), []byte("generate:\n  width: 7\n"), 0o644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Generate.Width, "local configs directory is used")

	user := filepath.Join(home, ".tilesynth", "configs")
	require.NoError(t, os.MkdirAll(user, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(user, "tilesynth.yaml"), []byte("generate:\n  width: 9\n"), 0o644))

	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Generate.Width, "user directory wins over local")
}

func TestMarshalRoundTrip(t *testing.T) {
	isolate(t)
	want := config.Default()
	want.Generate.Seed = 42
	want.Palette = map[string]string{"3": "T"}

	data, err := config.Marshal(want)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		errMsg string
	}{
		{"zero width", func(c *config.Config) { c.Generate.Width = 0 }, "must be positive"},
		{"negative height", func(c *config.Config) { c.Generate.Height = -3 }, "must be positive"},
		{"unknown order", func(c *config.Config) { c.Generate.Order = "spiral" }, "unknown"},
		{"negative fallback", func(c *config.Config) { c.Generate.Fallback = -1 }, "non-negative"},
		{"tick rate", func(c *config.Config) { c.Viewer.TickRate = 0 }, "tick_rate"},
		{"steps per tick", func(c *config.Config) { c.Viewer.StepsPerTick = 0 }, "steps_per_tick"},
		{"log level", func(c *config.Config) { c.LogLevel = "loud" }, "log level"},
		{"palette glyph", func(c *config.Config) { c.Palette = map[string]string{"1": "ab"} }, "single character"},
		{"palette key", func(c *config.Config) { c.Palette = map[string]string{"x1": "a"} }, "not a tile id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	level, err := config.ParseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, level)

	level, err = config.ParseLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)
}

func TestServeIdleTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Minute, config.Default().Serve.IdleTimeout())
}

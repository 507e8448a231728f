// Package config provides YAML-based configuration loading and validation
// for tilesynth.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilesynth/internal/wfc"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all tilesynth configuration.
type Config struct {
	LogLevel string            `yaml:"log_level"`
	Training TrainingConfig    `yaml:"training"`
	Generate GenerateConfig    `yaml:"generate"`
	Viewer   ViewerConfig      `yaml:"viewer"`
	Palette  map[string]string `yaml:"palette"` // tile id (decimal or 0x hex) -> glyph
	Serve    ServeConfig       `yaml:"serve"`
	Storage  StorageConfig     `yaml:"storage"`
}

// TrainingConfig selects the training map.
type TrainingConfig struct {
	Map string `yaml:"map"` // Sample id, file path, or id under Dir
	Dir string `yaml:"dir"` // Directory searched for map ids
}

// GenerateConfig defines the output grid and generator parameters.
type GenerateConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Seed     int64  `yaml:"seed"`  // 0 = time based
	Order    string `yaml:"order"` // "scan" or "entropy"
	Fallback int    `yaml:"fallback"`
}

// ViewerConfig defines how the terminal viewer paces generation.
type ViewerConfig struct {
	TickRate     int `yaml:"tick_rate"`      // Ticks per second
	StepsPerTick int `yaml:"steps_per_tick"` // Cells collapsed per tick
	ViewWidth    int `yaml:"view_width"`     // 0 = fit terminal
	ViewHeight   int `yaml:"view_height"`    // 0 = fit terminal
}

// ServeConfig defines the SSH viewer server.
type ServeConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the idle timeout as a duration.
func (s ServeConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// StorageConfig defines where generation runs are recorded.
type StorageConfig struct {
	DB string `yaml:"db"`
}

// ParsedOrder returns the parsed visitation order.
func (g GenerateConfig) ParsedOrder() (wfc.Order, error) {
	return wfc.ParseOrder(g.Order)
}

// Validate checks the configuration for values the generator cannot use.
func (c Config) Validate() error {
	if c.Generate.Width <= 0 || c.Generate.Height <= 0 {
		return fmt.Errorf("%w: generate size %dx%d must be positive", ErrInvalidConfig, c.Generate.Width, c.Generate.Height)
	}
	if _, err := c.Generate.ParsedOrder(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Generate.Fallback < 0 {
		return fmt.Errorf("%w: fallback %d must be non-negative", ErrInvalidConfig, c.Generate.Fallback)
	}
	if c.Viewer.TickRate < 1 {
		return fmt.Errorf("%w: viewer tick_rate %d must be at least 1", ErrInvalidConfig, c.Viewer.TickRate)
	}
	if c.Viewer.StepsPerTick < 1 {
		return fmt.Errorf("%w: viewer steps_per_tick %d must be at least 1", ErrInvalidConfig, c.Viewer.StepsPerTick)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := ParsePalette(c.Palette); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ParseLogLevel maps a level name to a log level. Empty means info.
func ParseLogLevel(s string) (log.Level, error) {
	if s == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

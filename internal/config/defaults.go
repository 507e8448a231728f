package config

import _ "embed"

//go:embed defaults/tilesynth.yaml
var defaultYAML []byte

// Default returns the built-in configuration used when no file is found.
func Default() Config {
	return Config{
		LogLevel: "info",
		Training: TrainingConfig{
			Map: "islands",
		},
		Generate: GenerateConfig{
			Width:    40,
			Height:   20,
			Seed:     0,
			Order:    "scan",
			Fallback: 99,
		},
		Viewer: ViewerConfig{
			TickRate:     60,
			StepsPerTick: 1,
		},
		Palette: map[string]string{},
		Serve: ServeConfig{
			Address:            ":23235",
			IdleTimeoutMinutes: 30,
		},
		Storage: StorageConfig{
			DB: "~/.tilesynth/runs.db",
		},
	}
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilesynth/internal/config"
	"github.com/vovakirdan/tilesynth/internal/platform/tui"
	"github.com/vovakirdan/tilesynth/internal/render"
	"github.com/vovakirdan/tilesynth/internal/storage"
	"github.com/vovakirdan/tilesynth/internal/tilemap"
	"github.com/vovakirdan/tilesynth/internal/wfc"
)

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the configuration and applies global flag overrides.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Generate.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.Storage.DB = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg
}

// validate exits when cfg cannot drive a generator.
func validate(cfg config.Config) {
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}
}

// newLogger creates the stderr logger at the configured level.
func newLogger(cfg config.Config) *log.Logger {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		fatalf("%v", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilesynth",
		Level:           level,
	})
}

// loadMap resolves a map reference, falling back to the configured map.
func loadMap(cfg config.Config, args []string) tilemap.Map {
	ref := cfg.Training.Map
	if len(args) > 0 {
		ref = args[0]
	}
	m, err := tilemap.Resolve(ref, cfg.Training.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'tilesynth maps' to see available maps.")
		os.Exit(1)
	}
	return m
}

// allMaps returns the samples followed by the maps found under dir.
func allMaps(dir string) []tilemap.Map {
	maps := tilemap.Samples()
	if dir == "" {
		return maps
	}
	found, err := tilemap.NewLoader(dir).LoadAll()
	if err != nil {
		fatalf("%v", err)
	}
	return append(maps, found...)
}

// catalog trains every map under dir. Maps that fail to train are logged
// and skipped.
func catalog(dir string, logger *log.Logger) []tui.Entry {
	entries, err := tui.NewCatalog(allMaps(dir))
	if err != nil {
		logger.Warn("skipping maps", "error", err)
	}
	if len(entries) == 0 {
		fatalf("no trainable maps")
	}
	return entries
}

// trainMap loads and trains the referenced map.
func trainMap(cfg config.Config, args []string) (tilemap.Map, *wfc.Model) {
	m := loadMap(cfg, args)
	model, err := m.Train()
	if err != nil {
		fatalf("%v", err)
	}
	return m, model
}

// pickFallback moves a configured fallback that collides with a trained
// tile to a free id. An explicit --fallback that collides is an error.
func pickFallback(cmd *cobra.Command, cfg *config.Config, m tilemap.Map, model *wfc.Model, logger *log.Logger) {
	want := wfc.TileID(cfg.Generate.Fallback)
	if !model.Has(want) {
		return
	}
	if cmd.Flags().Changed("fallback") {
		fatalf("--fallback %d is a tile of map %s; pick an id the map does not use", want, m.ID)
	}
	free := model.FreeTile(want)
	logger.Info("fallback is a trained tile, using a free id", "map", m.ID, "configured", want, "fallback", free)
	cfg.Generate.Fallback = int(free)
}

// newPalette builds the palette from config overrides.
func newPalette(cfg config.Config) render.Palette {
	overrides, err := config.ParsePalette(cfg.Palette)
	if err != nil {
		fatalf("%v", err)
	}
	return render.NewPalette(wfc.TileID(cfg.Generate.Fallback), overrides)
}

// openStore opens the run history database.
func openStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.Storage.DB)
	if err != nil {
		fatalf("opening run database: %v", err)
	}
	return store
}

// seedOrNow returns seed, or a time based seed when it is zero.
func seedOrNow(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

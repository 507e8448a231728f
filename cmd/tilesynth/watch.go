package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilesynth/internal/config"
	"github.com/vovakirdan/tilesynth/internal/platform/tui"
	"github.com/vovakirdan/tilesynth/internal/wfc"
)

var watchCmd = &cobra.Command{
	Use:   "watch [map]",
	Short: "Watch a map being generated",
	Long: `Opens a full-screen viewer that collapses cells as it ticks.

Controls:
  Space       - Pause/resume
  N           - Single step while paused
  F           - Finish immediately
  R           - Regenerate with the next seed
  Arrows/hjkl - Scroll
  ?           - Toggle help
  Q/Ctrl+C    - Quit

Finished runs are recorded in the history database.

With --pick a map picker is shown first; Esc/B returns to it.

Examples:
  tilesynth watch islands
  tilesynth watch --pick
  tilesynth watch dungeon --order entropy --seed 3`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&flagWidth, "width", 0, "Output width in tiles (default from config)")
	watchCmd.Flags().IntVar(&flagHeight, "height", 0, "Output height in tiles (default from config)")
	watchCmd.Flags().StringVar(&flagOrder, "order", "", "Visit order: scan, entropy (default from config)")
	watchCmd.Flags().IntVar(&flagFallback, "fallback", -1, "Tile id emitted on contradiction (default from config)")
	watchCmd.Flags().BoolVar(&flagPick, "pick", false, "Choose the map from a picker")
}

var flagPick bool

// watchOptions builds viewer options from the config. MapID and Model are
// left for the caller.
func watchOptions(cfg config.Config) tui.WatchOptions {
	order, _ := cfg.Generate.ParsedOrder()
	return tui.WatchOptions{
		Width:        cfg.Generate.Width,
		Height:       cfg.Generate.Height,
		Seed:         cfg.Generate.Seed,
		Order:        order,
		Fallback:     wfc.TileID(cfg.Generate.Fallback),
		TickRate:     cfg.Viewer.TickRate,
		StepsPerTick: cfg.Viewer.StepsPerTick,
		ViewWidth:    cfg.Viewer.ViewWidth,
		ViewHeight:   cfg.Viewer.ViewHeight,
		Palette:      newPalette(cfg),
	}
}

func runWatch(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	applyGenerateFlags(cmd, &cfg.Generate)
	validate(cfg)

	opts := watchOptions(cfg)

	// The viewer owns the terminal, so only errors are logged.
	cfg.LogLevel = "error"
	opts.Logger = newLogger(cfg)

	store := openStore(cfg)
	defer store.Close()
	opts.Store = store

	if flagPick {
		entries := catalog(cfg.Training.Dir, opts.Logger)
		w, h, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			w, h = 80, 24
		}
		if err := tui.RunSession(entries, opts, w, h); err != nil {
			fatalf("%v", err)
		}
		return
	}

	m, model := trainMap(cfg, args)
	pickFallback(cmd, &cfg, m, model, opts.Logger)
	opts.MapID = m.ID
	opts.Model = model
	if err := tui.Run(opts); err != nil {
		fatalf("%v", err)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilesynth/internal/config"
	"github.com/vovakirdan/tilesynth/internal/render"
	"github.com/vovakirdan/tilesynth/internal/storage"
	"github.com/vovakirdan/tilesynth/internal/tilemap/formats"
	"github.com/vovakirdan/tilesynth/internal/wfc"
)

var (
	flagWidth    int
	flagHeight   int
	flagOrder    string
	flagFallback int
	flagOut      string
	flagNoColor  bool
	flagSave     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [map]",
	Short: "Generate a map",
	Long: `Trains on the given map and fills a new grid one cell at a time.

Cells whose candidates run out get the fallback tile (shown as '?') and are
counted as contradictions.

Visit orders:
  scan     - Row by row, the classic order
  entropy  - Most constrained cell first

Examples:
  tilesynth generate islands
  tilesynth generate dungeon --width 80 --height 24 --order entropy
  tilesynth generate ./maps/cave.txt --seed 42 --out cave-42.txt
  tilesynth generate islands --save`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&flagWidth, "width", 0, "Output width in tiles (default from config)")
	generateCmd.Flags().IntVar(&flagHeight, "height", 0, "Output height in tiles (default from config)")
	generateCmd.Flags().StringVar(&flagOrder, "order", "", "Visit order: scan, entropy (default from config)")
	generateCmd.Flags().IntVar(&flagFallback, "fallback", -1, "Tile id emitted on contradiction (default from config)")
	generateCmd.Flags().StringVar(&flagOut, "out", "", "Write the result as a hex map file")
	generateCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Print without colors")
	generateCmd.Flags().BoolVar(&flagSave, "save", false, "Record the run in the history database")
}

// applyGenerateFlags copies generate flags over the config.
func applyGenerateFlags(cmd *cobra.Command, gen *config.GenerateConfig) {
	flags := cmd.Flags()
	if flags.Changed("width") {
		gen.Width = flagWidth
	}
	if flags.Changed("height") {
		gen.Height = flagHeight
	}
	if flags.Changed("order") {
		gen.Order = flagOrder
	}
	if flags.Changed("fallback") {
		gen.Fallback = flagFallback
	}
}

func runGenerate(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	applyGenerateFlags(cmd, &cfg.Generate)
	validate(cfg)

	logger := newLogger(cfg)
	m, model := trainMap(cfg, args)
	order, _ := cfg.Generate.ParsedOrder()
	seed := seedOrNow(cfg.Generate.Seed)
	pickFallback(cmd, &cfg, m, model, logger)

	gen, err := wfc.NewMapGenerator(
		wfc.NewRNG(uint64(seed)),
		cfg.Generate.Width, cfg.Generate.Height, model,
		wfc.WithOrder(order),
		wfc.WithFallback(wfc.TileID(cfg.Generate.Fallback)),
		wfc.WithLogger(logger),
	)
	if err != nil {
		fatalf("%v", err)
	}
	gen.Run()

	output := gen.Output()
	stats := gen.Stats()
	logger.Info("generated",
		"map", m.ID,
		"seed", seed,
		"size", fmt.Sprintf("%dx%d", gen.Width(), gen.Height()),
		"order", gen.Order(),
		"contradictions", stats.Contradictions,
	)

	switch {
	case flagOut != "":
		if err := os.WriteFile(flagOut, []byte(formats.FormatHex(output)), 0o644); err != nil {
			fatalf("writing %s: %v", flagOut, err)
		}
		fmt.Printf("Wrote %s\n", flagOut)
	case flagNoColor || !term.IsTerminal(int(os.Stdout.Fd())):
		fmt.Println(render.Plain(output, newPalette(cfg)))
	default:
		fmt.Println(render.Styled(render.GridScreen(output, newPalette(cfg))))
	}

	if flagSave {
		store := openStore(cfg)
		defer store.Close()

		id, err := store.SaveRun(storage.Run{
			MapID:          m.ID,
			Seed:           seed,
			Width:          gen.Width(),
			Height:         gen.Height(),
			Order:          gen.Order().String(),
			Fallback:       int(gen.Fallback()),
			Contradictions: stats.Contradictions,
			Output:         output,
		})
		if err != nil {
			fatalf("saving run: %v", err)
		}
		logger.Info("run saved", "id", id)
	}
}

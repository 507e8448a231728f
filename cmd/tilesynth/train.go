package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilesynth/internal/tilemap/formats"
	"github.com/vovakirdan/tilesynth/internal/wfc"
)

var flagDump bool

var trainCmd = &cobra.Command{
	Use:   "train [map]",
	Short: "Train on a map and show adjacency statistics",
	Long: `Counts, for every tile and direction, which tiles were seen next to it
in the map, and prints a summary.

Examples:
  tilesynth train islands
  tilesynth train ./maps/cave.txt --dump`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTrain,
}

func init() {
	trainCmd.Flags().BoolVar(&flagDump, "dump", false, "Dump the full trained model")
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func runTrain(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	m, model := trainMap(cfg, args)

	if flagDump {
		dumpConfig.Fdump(os.Stdout, model)
		return
	}

	stats := model.Stats()
	fmt.Printf("Model - %s (%dx%d)\n", m.ID, m.Width, m.Height)
	fmt.Println()
	fmt.Printf("  Tiles:      %d\n", stats.Tiles)
	for _, d := range wfc.Directions {
		fmt.Printf("  %-10s  %d observations\n", d.String()+":", stats.Observations[d])
	}
	fmt.Printf("  Dead ends:  %d\n", stats.DeadEnds)
	fmt.Println()

	fmt.Printf("  %-4s  %-16s  %-16s  %-16s  %s\n", "Tile", "North", "East", "South", "West")
	fmt.Printf("  %-4s  %-16s  %-16s  %-16s  %s\n", "----", "-----", "----", "-----", "----")
	for _, id := range model.Tiles() {
		cols := make([]string, len(wfc.Directions))
		for i, d := range wfc.Directions {
			cols[i] = formats.FormatHexRow(model.Neighbors(id, d))
		}
		fmt.Printf("  %-4s  %-16s  %-16s  %-16s  %s\n", formats.FormatHexRow([]wfc.TileID{id}), cols[0], cols[1], cols[2], cols[3])
	}
}

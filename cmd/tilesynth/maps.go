package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mapsCmd = &cobra.Command{
	Use:   "maps [dir]",
	Short: "List available training maps",
	Long: `Shows the sample maps built into tilesynth and the maps found under a
directory (the argument, or training.dir from the config).

Map files are hex text (.txt, .hex) or YAML (.yaml, .yml).`,
	Args: cobra.MaximumNArgs(1),
	Run:  runMaps,
}

func runMaps(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)

	dir := cfg.Training.Dir
	if len(args) > 0 {
		dir = args[0]
	}
	maps := allMaps(dir)

	if len(maps) == 0 {
		fmt.Println("No maps available.")
		return
	}

	fmt.Println("Available maps:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, m := range maps {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Size", "Source")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "----", "------")

	for _, m := range maps {
		source := m.FilePath
		if source == "" {
			source = "(sample)"
		}
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, m.ID, fmt.Sprintf("%dx%d", m.Width, m.Height), source)
	}

	fmt.Println()
	fmt.Println("Run 'tilesynth generate <id>' to generate a map.")
}

// tilesynth generates tile maps with wave function collapse, learning which
// tiles may sit next to each other from an example map.
//
// Usage:
//
//	tilesynth maps [dir]          - List sample maps and maps under a directory
//	tilesynth train <map>         - Train on a map and show adjacency statistics
//	tilesynth generate <map>      - Generate a new map and print it
//	tilesynth watch [map]         - Watch generation step by step (--pick for a picker)
//	tilesynth serve [map]         - Serve the viewer over SSH
//	tilesynth history [map]       - Show recorded runs
//	tilesynth config              - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.tilesynth/configs, ./configs)
//	--seed <value>      - RNG seed for reproducible output
//	--db <path>         - Run history database (default: ~/.tilesynth/runs.db)
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilesynth",
	Short: "tilesynth - Generate tile maps from an example",
	Long: `tilesynth learns which tiles may be placed next to each other from an
example map and generates new maps that follow the same local rules.

Available commands:
  maps      - List sample maps and maps in a directory
  train     - Show what a map teaches the generator
  generate  - Generate a map
  watch     - Watch a map being generated
  serve     - Start SSH server for remote viewing
  history   - View recorded runs
  config    - Print the effective configuration

Examples:
  tilesynth maps
  tilesynth generate islands --width 60 --height 20 --seed 7
  tilesynth watch dungeon --order entropy
  tilesynth serve --ssh :2222
  tilesynth history islands`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	// Add subcommands
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

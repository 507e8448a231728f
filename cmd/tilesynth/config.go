package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilesynth/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after the search order and flag overrides
are applied, as YAML. Save the output to ~/.tilesynth/configs/tilesynth.yaml
to start customizing.`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) {
	cfg := loadConfig(cmd)
	validate(cfg)

	data, err := config.Marshal(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	os.Stdout.Write(data)
}

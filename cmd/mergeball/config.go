package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-mergeball/internal/config"
	"github.com/vovakirdan/tui-mergeball/internal/games/merge"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the game config",
	Long: `Print the built-in default config, ready to be saved and edited.

With --effective, print the config that would actually be used after
searching --config, ~/.arcade/configs/merge.yaml and ./configs/merge.yaml.

Examples:
  mergeball config > ~/.arcade/configs/merge.yaml
  mergeball config --effective --config ./my-merge.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the resolved config instead of the defaults")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagEffective {
		_, err := os.Stdout.Write(config.GetDefaultYAML(merge.GameID))
		return err
	}

	cfg, err := config.LoadMerge(flagConfig)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: cannot encode: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

// mergeball is a terminal merge ball game: drop numbered balls into a box,
// equal balls that touch merge into one of double value.
//
// Usage:
//
//	mergeball play [game]     - Play (default: merge)
//	mergeball serve           - Start SSH server for remote play
//	mergeball runs            - Browse recorded runs
//	mergeball replay <id>     - Replay a recorded run and show the result
//	mergeball config          - Print the default game config
//	mergeball list            - List available games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/runs.db)
//	--config <path>       - Use a custom game config YAML
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mergeball/internal/games/merge"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string

	logger  = log.New(io.Discard)
	logFile *os.File
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mergeball",
	Short: "Merge Balls - drop and merge numbered balls in your terminal",
	Long: `Merge Balls is a terminal physics puzzle. Drop numbered balls into
the box; two balls with the same number that touch merge into one ball
worth double, and the merged value is added to your score.

Available commands:
  play     - Play the game
  serve    - Start SSH server for remote play
  runs     - Browse recorded runs
  replay   - Replay a recorded run
  config   - Print the game config

Examples:
  mergeball play
  mergeball play --seed 42
  mergeball serve --ssh :2222
  mergeball runs
  mergeball replay 3`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/runs.db", "Path to the run journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging builds the shared logger from the global flags.
// Logs go to --log-file when set. Without it, the interactive commands
// discard logs so they cannot tear the TUI, and the rest log to stderr.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	case cmd.Name() == "play" || cmd.Name() == "runs":
		w = io.Discard
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "mergeball",
		Level:           level,
	})
	merge.SetLogger(logger)
	merge.SetConfigPath(flagConfig)
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-mergeball/internal/core"
	"github.com/vovakirdan/tui-mergeball/internal/games/merge"
	"github.com/vovakirdan/tui-mergeball/internal/platform/tui"
	"github.com/vovakirdan/tui-mergeball/internal/registry"
	"github.com/vovakirdan/tui-mergeball/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play the game",
	Long: `Start playing. The only game is "merge", which is also the default.

Controls:
  Left/Right, A/D  - Move the drop cursor
  Space/Down       - Drop the next ball
  Mouse click      - Drop the next ball at the clicked column
  P                - Pause
  R                - Restart (the current run is saved first)
  ?                - Show all keys
  Esc/Q/Ctrl+C     - Quit (the run is saved)

Examples:
  mergeball play
  mergeball play --seed 42
  mergeball play --config ./my-merge.yaml
  mergeball play --log-file merge.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := merge.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'mergeball list' to see available games)", gameID)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - game still works, runs are not recorded
		logger.Warn("could not open runs database", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting game", "game", gameID, "fps", flagFPS, "seed", flagSeed)
	if err := tui.Run(game, store, logger, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

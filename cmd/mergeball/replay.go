package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-mergeball/internal/core"
	"github.com/vovakirdan/tui-mergeball/internal/games/merge"
	"github.com/vovakirdan/tui-mergeball/internal/platform/tui"
	"github.com/vovakirdan/tui-mergeball/internal/storage"
)

var (
	flagSettle int
	flagWidth  int
	flagHeight int
)

var replayCmd = &cobra.Command{
	Use:   "replay <run>",
	Short: "Replay a recorded run",
	Long: `Re-run a recorded session headlessly with the same seed and drops,
then print the final field and a summary.

The replay uses the current game config, so a run recorded with a
different config can end differently.

Examples:
  mergeball replay 3
  mergeball replay 3 --settle 0
  mergeball replay 3 --width 60 --height 30`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&flagSettle, "settle", 180, "Ticks to simulate after the last recorded tick")
	replayCmd.Flags().IntVar(&flagWidth, "width", 0, "Output width (default: terminal width or 80)")
	replayCmd.Flags().IntVar(&flagHeight, "height", 0, "Output height (default: terminal height or 24)")
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", args[0], err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.LoadRun(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with id %d", id)
	}
	if run.GameID != merge.GameID {
		return fmt.Errorf("run %d was recorded for %q, not %q", id, run.GameID, merge.GameID)
	}

	logger.Debug("replaying run", "id", id, "seed", run.Seed, "drops", len(run.Drops), "ticks", run.Ticks)
	game := merge.ReplayGame(tui.JournalFromRun(*run), flagSettle)

	fd := int(os.Stdout.Fd())
	isTerm := term.IsTerminal(fd)
	width, height := 80, 24
	if isTerm {
		if w, h, sizeErr := term.GetSize(fd); sizeErr == nil {
			width, height = w, h-2 // Room for the summary
		}
	}
	if flagWidth > 0 {
		width = flagWidth
	}
	if flagHeight > 0 {
		height = flagHeight
	}

	screen := core.NewScreen(width, height)
	game.Resize(width, height)
	game.Render(screen)
	if isTerm {
		fmt.Println(tui.RenderScreen(screen))
	} else {
		fmt.Println(screen.String())
	}

	snap := game.Snapshot()
	fmt.Printf("Run %d: score %d, %d merges, %d balls, best ball %d, %d drops over %d ticks\n",
		id, snap.Score, snap.Merges, len(snap.Balls), snap.MaxValue, snap.Drops, run.Ticks)
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-mergeball/internal/games/merge"
	"github.com/vovakirdan/tui-mergeball/internal/platform/tui"
	"github.com/vovakirdan/tui-mergeball/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsPlain bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded runs",
	Long: `List the runs recorded when a session was quit or restarted.

In a terminal this opens a browser: Enter replays the selected run and
shows the final field, X deletes it. With --plain, or when the output is
not a terminal, a table is printed instead.

Examples:
  mergeball runs
  mergeball runs --plain --limit 5`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to print with --plain")
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print a table instead of opening the browser")
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagRunsPlain && term.IsTerminal(fd) {
		width, height, sizeErr := term.GetSize(fd)
		if sizeErr != nil {
			width, height = 80, 24
		}
		return tui.RunRunsBrowser(store, width, height)
	}

	runs, err := store.RecentRuns(merge.GameID, flagRunsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-6s  %-20s  %-5s  %-8s  %s\n", "Run", "Seed", "Drops", "Ticks", "Date")
	fmt.Printf("  %-6s  %-20s  %-5s  %-8s  %s\n", "---", "----", "-----", "-----", "----")
	for _, r := range runs {
		fmt.Printf("  %-6d  %-20d  %-5d  %-8d  %s\n",
			r.ID, r.Seed, r.DropCount, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Println("Run 'mergeball replay <run>' to replay one.")
	return nil
}

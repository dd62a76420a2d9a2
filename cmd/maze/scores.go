package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	flagScoresCSV    bool
	flagScoresLimit  int
	flagScoresClear  bool
	flagScoresImport string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best runs",
	Long: `Display the best runs for a mode, or for every mode when none is given.
Larger mazes rank first; equal sizes rank by time.

Examples:
  maze scores
  maze scores maze_endless --limit 20
  maze scores maze --csv > runs.csv
  maze scores --import runs.csv
  maze scores maze --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresCSV, "csv", false, "Write every run as CSV instead of a table")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete stored runs for the mode")
	scoresCmd.Flags().StringVar(&flagScoresImport, "import", "", "Add runs from a CSV file written by --csv")
}

func runScores(cmd *cobra.Command, args []string) error {
	var ids []string
	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			return fmt.Errorf("unknown mode %q (run 'maze list' to see available modes)", args[0])
		}
		ids = []string{args[0]}
	} else {
		for _, g := range registry.List() {
			ids = append(ids, g.ID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresImport != "" {
		return importRuns(out, store, flagScoresImport)
	}

	if flagScoresClear {
		if len(args) == 0 {
			return fmt.Errorf("--clear needs a mode")
		}
		if err := store.ClearRuns(ids[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared runs for %s.\n", ids[0])
		return nil
	}

	if flagScoresCSV {
		var runs []storage.Run
		for _, id := range ids {
			all, err := store.AllRuns(id)
			if err != nil {
				return err
			}
			runs = append(runs, all...)
		}
		return storage.ExportCSV(out, runs)
	}

	for i, id := range ids {
		if i > 0 {
			fmt.Fprintln(out)
		}
		runs, err := store.BestRuns(id, flagScoresLimit)
		if err != nil {
			return err
		}
		stats, err := store.GetGameStats(id)
		if err != nil {
			return err
		}
		printRuns(out, registry.Title(id), id, runs, stats)
	}
	return nil
}

// importRuns adds the runs of a CSV export to the store. Runs already
// present are skipped.
func importRuns(out io.Writer, store *storage.Store, path string) error {
	f, err := os.Open(path) //#nosec G304 -- path comes from the user
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer f.Close()

	runs, err := storage.ImportCSV(f)
	if err != nil {
		return err
	}
	added, err := store.ImportRuns(runs)
	if err != nil {
		return err
	}

	logger.Debug("runs imported", "path", path, "read", len(runs), "added", added)
	fmt.Fprintf(out, "Imported %d of %d runs.\n", added, len(runs))
	return nil
}

func printRuns(out io.Writer, title, id string, runs []storage.Run, stats *storage.GameStats) {
	fmt.Fprintf(out, "Best Runs - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No solved mazes yet.")
		fmt.Fprintf(out, "Play 'maze play %s' to set the first time!\n", id)
		return
	}

	fmt.Fprintf(out, "  %-4s  %-7s  %-8s  %-10s  %s\n", "Rank", "Grid", "Time", "Player", "Date")
	fmt.Fprintf(out, "  %-4s  %-7s  %-8s  %-10s  %s\n", "----", "----", "----", "------", "----")
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Fprintf(out, "  %-4d  %-7s  %-8s  %-10s  %s\n",
			i+1,
			fmt.Sprintf("%dx%d", r.Rows, r.Columns),
			formatTime(r.Duration()),
			player,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Solved: %d  Average: %s  Last played: %s\n",
		stats.Runs, formatTime(stats.AvgTime), stats.LastPlayed.Local().Format("2006-01-02 15:04"))
}

// formatTime renders a play time as m:ss.t.
func formatTime(d time.Duration) string {
	tenths := d.Milliseconds() / 100
	return fmt.Sprintf("%d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}

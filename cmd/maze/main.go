// maze is a terminal maze game: roll a ball through a generated perfect
// maze to the goal and watch the walls come down.
//
// Usage:
//
//	maze list                - List available modes
//	maze play [mode]         - Play a mode, or pick one from the menu
//	maze generate            - Print a generated maze (ASCII or YAML)
//	maze scores [mode]       - Show best runs, optionally as CSV
//	maze serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible mazes
//	--db <path>          - Set database path (default: ~/.maze/runs.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-maze/internal/games/ballmaze"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

// logger is shared by every command; its level follows --log-level.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "maze",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maze",
	Short: "Maze - roll a ball through a generated maze in your terminal",
	Long: `Maze generates a perfect maze for your terminal and lets you steer a
ball through it to the goal. Reaching the goal brings the walls down.

Available commands:
  list      - Show available modes
  play      - Play a mode (menu when no mode is given)
  generate  - Print a generated maze
  scores    - View best runs
  serve     - Start SSH server for remote play

Examples:
  maze play
  maze play maze_endless --difficulty easy
  maze generate --rows 8 --cols 12 --seed 7
  maze scores maze --csv > runs.csv
  maze serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		log.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.maze/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

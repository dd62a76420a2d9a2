package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/ballmaze"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

const endlessModeID = "maze_endless"

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a maze",
	Long: `Start playing. Without a mode an interactive menu is shown.

Controls:
  Arrows/WASD/hjkl  - Push the ball
  P/Space           - Pause
  N                 - Next maze (after solving)
  R                 - Restart from the first maze
  Esc/B             - Back to menu (paused or solved)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 6x8 grid, gentle ball
  normal - 13x14 grid
  hard   - 18x30 grid, lively ball
  fixed  - Configured grid, no growth between mazes

Examples:
  maze play
  maze play maze --difficulty hard
  maze play maze_endless --seed 42
  maze play maze --config ./my-maze.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom maze config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) error {
	if len(args) == 1 && !registry.Exists(args[0]) {
		return fmt.Errorf("unknown mode %q (run 'maze list' to see available modes)", args[0])
	}

	// The menu can start endless mode, so it needs a config valid for both.
	endless := len(args) == 0 || args[0] == endlessModeID
	if _, err := loadMazeConfig(flagConfig, flagDifficulty, endless); err != nil {
		return err
	}
	ballmaze.SetConfigPath(flagConfig)
	ballmaze.SetDifficultyPreset(flagDifficulty)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database, runs will not be saved", "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := terminalConfig()

	if len(args) == 1 {
		game, err := registry.Create(args[0])
		if err != nil {
			return err
		}
		_, err = tui.Run(game, store, cfg)
		return err
	}

	return menuLoop(store, cfg)
}

// menuLoop alternates between the menu, the scoreboard and games until the
// player quits.
func menuLoop(store *storage.Store, cfg core.RuntimeConfig) error {
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			game, err := registry.Create(result.GameID)
			if err != nil {
				logger.Error("cannot create game", "game", result.GameID, "error", err)
				continue
			}
			backToMenu, err := tui.Run(game, store, cfg)
			if err != nil {
				return err
			}
			if !backToMenu {
				return nil
			}
		}
	}
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	} else {
		logger.Debug("cannot read terminal size, using defaults", "error", err)
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

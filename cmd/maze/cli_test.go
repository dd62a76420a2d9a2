package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// execute runs the CLI with args and returns what it printed.
// Flag values are restored afterwards since they live in package globals.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func seedDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := storage.Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, r := range []storage.Run{
		{GameID: "maze", Rows: 13, Columns: 14, Level: 1, Ticks: 1530, TickRate: 60, Player: "bob"},
		{GameID: "maze", Rows: 6, Columns: 8, Level: 1, Ticks: 300, TickRate: 60},
		{GameID: "maze_endless", Rows: 15, Columns: 18, Level: 3, Ticks: 2400, TickRate: 60},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	return path
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"maze_endless", "Maze (Endless)", "maze play <id>"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestScoresCommand(t *testing.T) {
	db := seedDB(t)

	out, err := execute(t, "scores", "maze", "--db", db)
	if err != nil {
		t.Fatalf("scores failed: %v", err)
	}
	for _, want := range []string{"Best Runs - Maze", "13x14", "0:25.5", "bob", "local", "Solved: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("scores output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "13x14") > strings.Index(out, "6x8") {
		t.Error("larger grid should rank first")
	}

	out, err = execute(t, "scores", "--db", db)
	if err != nil {
		t.Fatalf("scores for all modes failed: %v", err)
	}
	if !strings.Contains(out, "Best Runs - Maze (Endless)") || !strings.Contains(out, "15x18") {
		t.Errorf("all-mode output missing endless runs:\n%s", out)
	}
}

func TestScoresErrors(t *testing.T) {
	db := seedDB(t)

	if _, err := execute(t, "scores", "pong", "--db", db); err == nil {
		t.Error("unknown mode should fail")
	}
	if _, err := execute(t, "scores", "--clear", "--db", db); err == nil {
		t.Error("--clear without a mode should fail")
	}
	if _, err := execute(t, "scores", "--import", filepath.Join(t.TempDir(), "missing.csv"), "--db", db); err == nil {
		t.Error("importing a missing file should fail")
	}
}

func TestScoresClear(t *testing.T) {
	db := seedDB(t)

	out, err := execute(t, "scores", "maze", "--clear", "--db", db)
	if err != nil {
		t.Fatalf("scores --clear failed: %v", err)
	}
	if !strings.Contains(out, "Cleared runs for maze") {
		t.Errorf("clear output = %q", out)
	}

	out, _ = execute(t, "scores", "maze", "--db", db)
	if !strings.Contains(out, "No solved mazes yet.") {
		t.Errorf("maze runs should be gone:\n%s", out)
	}
	out, _ = execute(t, "scores", "maze_endless", "--db", db)
	if !strings.Contains(out, "15x18") {
		t.Error("clearing one mode should keep the others")
	}
}

func TestScoresCSVImport(t *testing.T) {
	src := seedDB(t)

	csv, err := execute(t, "scores", "--csv", "--db", src)
	if err != nil {
		t.Fatalf("scores --csv failed: %v", err)
	}
	if !strings.HasPrefix(csv, "id,game,rows,columns") || strings.Count(csv, "\n") != 4 {
		t.Fatalf("csv output:\n%s", csv)
	}
	file := writeFile(t, "runs.csv", csv)

	dst := filepath.Join(t.TempDir(), "runs.db")
	out, err := execute(t, "scores", "--import", file, "--db", dst)
	if err != nil {
		t.Fatalf("scores --import failed: %v", err)
	}
	if !strings.Contains(out, "Imported 3 of 3 runs.") {
		t.Errorf("import output = %q", out)
	}

	out, _ = execute(t, "scores", "--import", file, "--db", dst)
	if !strings.Contains(out, "Imported 0 of 3 runs.") {
		t.Errorf("second import should add nothing, got %q", out)
	}

	out, _ = execute(t, "scores", "maze", "--db", dst)
	if !strings.Contains(out, "13x14") || !strings.Contains(out, "bob") {
		t.Errorf("imported runs missing:\n%s", out)
	}
}

func TestPlayRejectsInvalidGrid(t *testing.T) {
	cfg := writeFile(t, "maze.yaml", "grid:\n  rows: 0\n  columns: 5\n")
	db := filepath.Join(t.TempDir(), "runs.db")

	_, err := execute(t, "play", "maze", "--config", cfg, "--db", db)
	if !errors.Is(err, config.ErrInvalidGrid) {
		t.Errorf("play error = %v, want ErrInvalidGrid", err)
	}
}

func TestPlayRejectsUnknownInput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	if _, err := execute(t, "play", "pong", "--db", db); err == nil {
		t.Error("unknown mode should fail")
	}
	if _, err := execute(t, "play", "maze", "--difficulty", "brutal", "--db", db); err == nil {
		t.Error("unknown difficulty should fail")
	}
	if _, err := execute(t, "play", "maze", "--config", filepath.Join(t.TempDir(), "none.yaml"), "--db", db); err == nil {
		t.Error("missing config file should fail")
	}
}

func TestLoadMazeConfig(t *testing.T) {
	// Progression limits below the start grid only matter in endless mode.
	path := writeFile(t, "maze.yaml", "grid:\n  rows: 10\n  columns: 10\nprogression:\n  max_rows: 5\n  max_columns: 5\n")

	cfg, err := loadMazeConfig(path, "", false)
	if err != nil {
		t.Fatalf("classic config rejected: %v", err)
	}
	if cfg.Grid.Rows != 10 || cfg.Grid.Columns != 10 {
		t.Errorf("grid = %dx%d, want 10x10", cfg.Grid.Rows, cfg.Grid.Columns)
	}

	if _, err := loadMazeConfig(path, "", true); !errors.Is(err, config.ErrInvalidGrid) {
		t.Errorf("endless error = %v, want ErrInvalidGrid", err)
	}

	cfg, err = loadMazeConfig("", "easy", true)
	if err != nil {
		t.Fatalf("easy preset rejected: %v", err)
	}
	if cfg.Grid.Rows != 6 || cfg.Grid.Columns != 8 {
		t.Errorf("easy grid = %dx%d, want 6x8", cfg.Grid.Rows, cfg.Grid.Columns)
	}
}

func TestGenerateUsesConfig(t *testing.T) {
	path := writeFile(t, "maze.yaml", "grid:\n  rows: 3\n  columns: 4\n")

	out, err := execute(t, "generate", "--config", path, "--format", "yaml", "--seed", "3", "--verify")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	var m maze.Maze
	if err := yaml.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("output is not yaml: %v", err)
	}
	if m.Rows != 3 || m.Columns != 4 || m.OpenWalls() != 11 {
		t.Errorf("maze = %dx%d with %d open walls", m.Rows, m.Columns, m.OpenWalls())
	}

	bad := writeFile(t, "bad.yaml", "grid:\n  rows: -1\n  columns: 4\n")
	if _, err := execute(t, "generate", "--config", bad); !errors.Is(err, config.ErrInvalidGrid) {
		t.Errorf("generate error = %v, want ErrInvalidGrid", err)
	}
}

func TestServeConfig(t *testing.T) {
	t.Cleanup(func() { resetFlags(rootCmd) })
	db := filepath.Join(t.TempDir(), "runs.db")

	for flag, value := range map[string]string{"ssh": ":2222", "host-key": "/tmp/key", "idle-timeout": "5"} {
		if err := serveCmd.Flags().Set(flag, value); err != nil {
			t.Fatalf("set --%s: %v", flag, err)
		}
	}
	if err := rootCmd.PersistentFlags().Set("db", db); err != nil {
		t.Fatalf("set --db: %v", err)
	}
	if err := rootCmd.PersistentFlags().Set("fps", "30"); err != nil {
		t.Fatalf("set --fps: %v", err)
	}

	cfg, err := serveConfig()
	if err != nil {
		t.Fatalf("serveConfig() failed: %v", err)
	}
	if cfg.Address != ":2222" || cfg.HostKeyPath != "/tmp/key" || cfg.DBPath != db ||
		cfg.TickRate != 30 || cfg.IdleTimeout != 5*time.Minute {
		t.Errorf("config = %+v", cfg)
	}

	if err := serveCmd.Flags().Set("idle-timeout", "0"); err != nil {
		t.Fatalf("set --idle-timeout: %v", err)
	}
	if _, err := serveConfig(); err == nil {
		t.Error("zero idle timeout should be rejected")
	}
}

package config

// DifficultyPreset selects a starting grid size.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Keep the configured grid
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyMazePreset modifies the config based on a difficulty preset.
func ApplyMazePreset(cfg *MazeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Grid = GridConfig{Rows: 6, Columns: 8}
		cfg.Ball.VelocityStep = 4
	case DifficultyNormal:
		cfg.Grid = GridConfig{Rows: 13, Columns: 14}
	case DifficultyHard:
		cfg.Grid = GridConfig{Rows: 18, Columns: 30}
		cfg.Ball.VelocityStep = 6
	case DifficultyFixed:
		cfg.Progression.Enabled = false
	}

	// Keep the progression ceiling reachable from the new start grid.
	cfg.Progression.MaxRows = max(cfg.Progression.MaxRows, cfg.Grid.Rows)
	cfg.Progression.MaxColumns = max(cfg.Progression.MaxColumns, cfg.Grid.Columns)
}

// GridForLevel returns the grid used for the given level (0-based).
// Without progression every level uses the configured grid; with it the
// grid grows by GrowRows/GrowColumns per level up to the configured maximum.
func (c MazeConfig) GridForLevel(level int) GridConfig {
	g := c.Grid
	if !c.Progression.Enabled || level <= 0 {
		return g
	}

	g.Rows = min(g.Rows+level*c.Progression.GrowRows, c.Progression.MaxRows)
	g.Columns = min(g.Columns+level*c.Progression.GrowColumns, c.Progression.MaxColumns)
	return g
}

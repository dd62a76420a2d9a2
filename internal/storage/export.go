package storage

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

// RunRecord is the CSV row written for a run.
type RunRecord struct {
	ID        string  `csv:"id"`
	GameID    string  `csv:"game"`
	Rows      int     `csv:"rows"`
	Columns   int     `csv:"columns"`
	Level     int     `csv:"level"`
	Seconds   float64 `csv:"seconds"`
	Ticks     uint64  `csv:"ticks"`
	TickRate  int     `csv:"tick_rate"`
	Seed      int64   `csv:"seed"`
	Player    string  `csv:"player"`
	CreatedAt string  `csv:"created_at"`
}

// NewRunRecord flattens a run into its CSV form.
func NewRunRecord(r Run) RunRecord {
	return RunRecord{
		ID:        r.ID,
		GameID:    r.GameID,
		Rows:      r.Rows,
		Columns:   r.Columns,
		Level:     r.Level,
		Seconds:   r.Duration().Seconds(),
		Ticks:     r.Ticks,
		TickRate:  r.TickRate,
		Seed:      r.Seed,
		Player:    r.Player,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// ExportCSV writes runs as CSV with a header row.
func ExportCSV(w io.Writer, runs []Run) error {
	records := make([]RunRecord, 0, len(runs))
	for _, r := range runs {
		records = append(records, NewRunRecord(r))
	}

	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("storage: writing csv: %w", err)
	}
	return nil
}

// ImportCSV reads runs previously written by ExportCSV. Store them with
// Store.ImportRuns.
func ImportCSV(r io.Reader) ([]Run, error) {
	var records []RunRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("storage: reading csv: %w", err)
	}

	runs := make([]Run, 0, len(records))
	for _, rec := range records {
		run := Run{
			ID:       rec.ID,
			GameID:   rec.GameID,
			Rows:     rec.Rows,
			Columns:  rec.Columns,
			Level:    rec.Level,
			Ticks:    rec.Ticks,
			TickRate: rec.TickRate,
			Seed:     rec.Seed,
			Player:   rec.Player,
		}
		if t, err := time.Parse(time.RFC3339Nano, rec.CreatedAt); err == nil {
			run.CreatedAt = t
		}
		runs = append(runs, run)
	}
	return runs, nil
}

package core

import (
	"testing"
	"time"
)

func TestCompletionDuration(t *testing.T) {
	tests := []struct {
		name string
		c    Completion
		want time.Duration
	}{
		{"60Hz", Completion{Ticks: 1530, TickRate: 60}, 25500 * time.Millisecond},
		{"120Hz", Completion{Ticks: 240, TickRate: 120}, 2 * time.Second},
		{"no rate", Completion{Ticks: 100}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Duration(); got != tt.want {
				t.Errorf("Duration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ScreenW != 80 || cfg.ScreenH != 24 || cfg.TickRate != 60 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

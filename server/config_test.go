package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ropesim/rope"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Grid.CellSize != rope.DefaultCellSize {
		t.Fatalf("cell size: got %d want %d", cfg.Grid.CellSize, rope.DefaultCellSize)
	}
}

func TestLoadConfig_OverridesFields(t *testing.T) {
	p := filepath.Join(t.TempDir(), "ropesim.yaml")
	raw := `
tick_rate_hz: 30
rope:
  length: 4
grid:
  cell_size: 16
simulate:
  delay_min_ms: 10
  delay_max_ms: 20
  drop_prob: 0.25
`
	if err := os.WriteFile(p, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TickRateHz != 30 || cfg.Rope.Length != 4 || cfg.Grid.CellSize != 16 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Rope.MaxLength != DefaultConfig().Rope.MaxLength {
		t.Fatalf("unset field should keep default: got %d", cfg.Rope.MaxLength)
	}
	if cfg.Simulate.DropProb != 0.25 || cfg.Simulate.DelayMaxMs != 20 {
		t.Fatalf("simulate: %+v", cfg.Simulate)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	cases := map[string]string{
		"malformed":  "tick_rate_hz: [",
		"zero_tick":  "tick_rate_hz: 0",
		"zero_rope":  "rope:\n  length: 0",
		"short_max":  "rope:\n  length: 8\n  max_length: 4",
		"bad_cell":   "grid:\n  cell_size: -1",
		"bad_delay":  "simulate:\n  delay_min_ms: 50\n  delay_max_ms: 10",
		"bad_drop":   "simulate:\n  drop_prob: 1.5",
		"neg_inputs": "limits:\n  max_inputs_per_tick: -2",
		"huge_max":   "rope:\n  max_length: 1000000",
	}
	dir := t.TempDir()
	for name, raw := range cases {
		p := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(p, []byte(raw), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		_, err := LoadConfig(p)
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if !strings.Contains(err.Error(), p) {
			t.Fatalf("%s: error should name the file: %v", name, err)
		}
	}
}

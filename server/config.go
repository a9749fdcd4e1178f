package server

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ropesim/rope"
)

// Config 服务端配置（ropesim.yaml）
type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	TickRateHz  int    `yaml:"tick_rate_hz"`
	DefaultRoom string `yaml:"default_room"`

	Rope     RopeConfig     `yaml:"rope"`
	Grid     GridConfig     `yaml:"grid"`
	Limits   LimitsConfig   `yaml:"limits"`
	Simulate SimulateConfig `yaml:"simulate"`
	Log      LogConfig      `yaml:"log"`
}

type RopeConfig struct {
	Length    int `yaml:"length"`     // 新玩家默认段数
	MaxLength int `yaml:"max_length"` // grow 上限，0 表示不限
}

type GridConfig struct {
	CellSize int `yaml:"cell_size"` // 像素
}

type LimitsConfig struct {
	MaxInputsPerTick int `yaml:"max_inputs_per_tick"` // 0 表示不限
}

// SimulateConfig 模拟网络延迟与丢包，便于调试
type SimulateConfig struct {
	DelayMinMs int     `yaml:"delay_min_ms"`
	DelayMaxMs int     `yaml:"delay_max_ms"`
	DropProb   float64 `yaml:"drop_prob"`
}

type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultConfig 默认配置：20 TPS，单房间 room-1
func DefaultConfig() Config {
	return Config{
		ListenAddr:  ":8080",
		TickRateHz:  TicksPerSecond,
		DefaultRoom: "room-1",
		Rope:        RopeConfig{Length: 10, MaxLength: 256},
		Grid:        GridConfig{CellSize: rope.DefaultCellSize},
		Limits:      LimitsConfig{MaxInputsPerTick: 4},
		Log: LogConfig{
			File:       "app.log",
			Level:      "debug",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// LoadConfig 读取 YAML 配置；文件不存在时返回默认值，未填写的字段保留默认
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.TickRateHz <= 0:
		return fmt.Errorf("tick_rate_hz must be positive, got %d", c.TickRateHz)
	case c.Grid.CellSize <= 0:
		return fmt.Errorf("grid.cell_size must be positive, got %d", c.Grid.CellSize)
	case c.Rope.Length < 1:
		return fmt.Errorf("rope.length must be at least 1, got %d", c.Rope.Length)
	case c.Rope.Length > rope.MaxSegments || c.Rope.MaxLength > rope.MaxSegments:
		return fmt.Errorf("rope lengths must not exceed %d", rope.MaxSegments)
	case c.Rope.MaxLength != 0 && c.Rope.MaxLength < c.Rope.Length:
		return fmt.Errorf("rope.max_length %d below rope.length %d", c.Rope.MaxLength, c.Rope.Length)
	case c.Limits.MaxInputsPerTick < 0:
		return fmt.Errorf("limits.max_inputs_per_tick must not be negative")
	}
	return c.Simulate.validate()
}

func (s SimulateConfig) validate() error {
	if s.DelayMinMs < 0 || s.DelayMaxMs < s.DelayMinMs {
		return fmt.Errorf("simulate delay range [%d,%d] invalid", s.DelayMinMs, s.DelayMaxMs)
	}
	if s.DropProb < 0 || s.DropProb > 1 {
		return fmt.Errorf("simulate.drop_prob %.2f outside [0,1]", s.DropProb)
	}
	return nil
}

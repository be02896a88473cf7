package server

import (
	"fmt"
	"os"
	"time"

	errors "github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"
)

// Config carries every tuning constant for the arena. Interval fields are
// millisecond integers so the YAML stays plain numbers.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	BoardWidth  float64 `yaml:"board_width"`
	BoardHeight float64 `yaml:"board_height"`

	MaxPlayers int `yaml:"max_players"`
	MaxRooms   int `yaml:"max_rooms"` // 0 = unlimited

	MaxHazards   int     `yaml:"max_hazards"`
	SpawnEveryMS int     `yaml:"spawn_every_ms"`
	HazardSpeed  float64 `yaml:"hazard_speed"`
	HazardSize   float64 `yaml:"hazard_size"`
	CullMargin   float64 `yaml:"cull_margin"`

	TickMS int `yaml:"tick_ms"`
	OutMS  int `yaml:"out_ms"`

	PlayerHitRadius float64 `yaml:"player_hit_radius"`
	SwordReach      float64 `yaml:"sword_reach"`
	SwordHitRadius  float64 `yaml:"sword_hit_radius"`

	WarningLimit    int `yaml:"warning_limit"`
	LeaderboardSize int `yaml:"leaderboard_size"`
	BotEveryMS      int `yaml:"bot_every_ms"`
}

// DefaultConfig returns the standard arena tuning.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      ":10000",
		BoardWidth:      800,
		BoardHeight:     500,
		MaxPlayers:      8,
		MaxRooms:        0,
		MaxHazards:      14,
		SpawnEveryMS:    900,
		HazardSpeed:     2.3,
		HazardSize:      10,
		CullMargin:      80,
		TickMS:          33,
		OutMS:           30000,
		PlayerHitRadius: 18,
		SwordReach:      44,
		SwordHitRadius:  10,
		WarningLimit:    3,
		LeaderboardSize: 10,
		BotEveryMS:      20000,
	}
}

// LoadConfig builds a Config from defaults overlaid with a YAML file.
// Search order: explicit path -> ./configs/server.yaml -> defaults only.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
		return cfg, nil
	}

	if data, err := os.ReadFile("configs/server.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing configs/server.yaml: %w", err)
		}
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.BoardWidth <= 0 || c.BoardHeight <= 0 {
		el.Add(fmt.Errorf("board dimensions must be positive"))
	}
	if c.MaxPlayers < 1 {
		el.Add(fmt.Errorf("max_players must be at least 1"))
	}
	if c.MaxRooms < 0 {
		el.Add(fmt.Errorf("max_rooms must not be negative"))
	}
	if c.MaxHazards < 1 {
		el.Add(fmt.Errorf("max_hazards must be at least 1"))
	}
	if c.SpawnEveryMS <= 0 {
		el.Add(fmt.Errorf("spawn_every_ms must be positive"))
	}
	if c.HazardSpeed <= 0 {
		el.Add(fmt.Errorf("hazard_speed must be positive"))
	}
	if c.HazardSize <= 0 {
		el.Add(fmt.Errorf("hazard_size must be positive"))
	}
	if c.CullMargin < 0 {
		el.Add(fmt.Errorf("cull_margin must not be negative"))
	}
	if c.TickMS <= 0 {
		el.Add(fmt.Errorf("tick_ms must be positive"))
	}
	if c.OutMS <= 0 {
		el.Add(fmt.Errorf("out_ms must be positive"))
	}
	if c.PlayerHitRadius <= 0 {
		el.Add(fmt.Errorf("player_hit_radius must be positive"))
	}
	if c.SwordReach <= 0 {
		el.Add(fmt.Errorf("sword_reach must be positive"))
	}
	if c.SwordHitRadius <= 0 {
		el.Add(fmt.Errorf("sword_hit_radius must be positive"))
	}
	if c.WarningLimit < 1 {
		el.Add(fmt.Errorf("warning_limit must be at least 1"))
	}
	if c.LeaderboardSize < 0 {
		el.Add(fmt.Errorf("leaderboard_size must not be negative"))
	}
	if c.BotEveryMS <= 0 {
		el.Add(fmt.Errorf("bot_every_ms must be positive"))
	}

	return el.Err()
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

func (c Config) SpawnInterval() time.Duration {
	return time.Duration(c.SpawnEveryMS) * time.Millisecond
}

func (c Config) OutDuration() time.Duration {
	return time.Duration(c.OutMS) * time.Millisecond
}

func (c Config) BotInterval() time.Duration {
	return time.Duration(c.BotEveryMS) * time.Millisecond
}

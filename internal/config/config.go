package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig carries the tunables read once at module load.
type GameConfig struct {
	// DefaultTribes is the tribe roster used when a match is created
	// without an explicit selection.
	DefaultTribes []string `json:"default_tribes"`
	// BotMinDelaySeconds and BotMaxDelaySeconds bound the simulated
	// thinking pause before an automated participant acts.
	BotMinDelaySeconds int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds int `json:"bot_max_delay_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before
	// seating bots next to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	// SnapshotDBPath locates the SQLite snapshot database.
	SnapshotDBPath string `json:"snapshot_db_path"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, or safe defaults when no
// file was loaded.
func GetGameConfig() GameConfig {
	out := GameConfig{
		DefaultTribes:           []string{"orc", "giant", "merfolk", "troll"},
		BotMinDelaySeconds:      1,
		BotMaxDelaySeconds:      3,
		BotAutoFillDelaySeconds: 5,
		SnapshotDBPath:          "data/snapshots.db",
	}
	if cfg == nil {
		return out
	}
	if len(cfg.DefaultTribes) > 0 {
		out.DefaultTribes = cfg.DefaultTribes
	}
	if cfg.BotMinDelaySeconds > 0 {
		out.BotMinDelaySeconds = cfg.BotMinDelaySeconds
	}
	if cfg.BotMaxDelaySeconds > 0 {
		out.BotMaxDelaySeconds = cfg.BotMaxDelaySeconds
	}
	if cfg.BotAutoFillDelaySeconds > 0 {
		out.BotAutoFillDelaySeconds = cfg.BotAutoFillDelaySeconds
	}
	if cfg.SnapshotDBPath != "" {
		out.SnapshotDBPath = cfg.SnapshotDBPath
	}
	return out
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetGameConfigDefaults(t *testing.T) {
	got := GetGameConfig()
	if len(got.DefaultTribes) != 4 {
		t.Errorf("default tribes = %v, want four", got.DefaultTribes)
	}
	if got.BotMinDelaySeconds <= 0 || got.BotMaxDelaySeconds < got.BotMinDelaySeconds {
		t.Errorf("bot delays = %d..%d", got.BotMinDelaySeconds, got.BotMaxDelaySeconds)
	}
	if got.SnapshotDBPath == "" {
		t.Error("empty snapshot db path")
	}
}

func TestLoadGameConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game_config.json")
	body := `{"default_tribes":["orc","wizard"],"bot_min_delay_seconds":2,"bot_max_delay_seconds":6}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadGameConfig(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	got := GetGameConfig()
	if len(got.DefaultTribes) != 2 || got.DefaultTribes[0] != "orc" {
		t.Errorf("tribes = %v", got.DefaultTribes)
	}
	if got.BotMinDelaySeconds != 2 || got.BotMaxDelaySeconds != 6 {
		t.Errorf("delays = %d..%d", got.BotMinDelaySeconds, got.BotMaxDelaySeconds)
	}
	// Unset fields keep their defaults.
	if got.SnapshotDBPath == "" {
		t.Error("default snapshot path lost")
	}
}

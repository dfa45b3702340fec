package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"tribelands/internal/config"
	"tribelands/internal/store"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("Could not load game config, using defaults: %v", err)
	}

	var snapshots *store.Store
	cfg := config.GetGameConfig()
	if cfg.SnapshotDBPath != "" {
		s, err := store.New(cfg.SnapshotDBPath)
		if err != nil {
			logger.Error("Could not open snapshot store at %s: %v", cfg.SnapshotDBPath, err)
		} else {
			snapshots = s
		}
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameTribelands, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		if snapshots == nil {
			return newMatchHandler(nil), nil
		}
		return newMatchHandler(snapshots), nil
	}); err != nil {
		return err
	}

	logger.Info("Tribelands Go module loaded.")
	return nil
}

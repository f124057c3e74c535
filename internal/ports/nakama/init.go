package nakama

import (
	"context"
	"database/sql"

	"rpsarena/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires config, RPCs and the match handler for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	environment, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if err := config.LoadGameConfig(config.DefaultPath, environment); err != nil {
		logger.Warn("InitModule: Failed to load game config, using defaults: %v", err)
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameRPS, NewMatch); err != nil {
		return err
	}

	cfg := config.GetGameConfig()
	logger.Info("RPS Go module loaded (locale=%s, tick_rate=%d).", cfg.Locale, cfg.TickRate)
	return nil
}

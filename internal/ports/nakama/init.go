package nakama

import (
	"context"
	"database/sql"
	"time"

	"bingo/internal/app"
	"bingo/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and the match handler for the Nakama runtime. The
// room registry and connection directory are created here and shared by the
// RPC endpoints and every match instance.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("InitModule: could not load game config: %v", err)
	}

	inviteSecret := ""
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		inviteSecret = env["bingo_invite_secret"]
	}
	if inviteSecret == "" {
		logger.Warn("InitModule: bingo_invite_secret not set, invite RPCs will fail")
	}

	registry := app.NewRegistry(nil)
	directory := app.NewDirectory()
	invites := app.NewInviteService(
		inviteSecret,
		config.GetInviteIssuer(),
		time.Duration(config.GetInviteTTLMinutes())*time.Minute,
	)

	handlers := &rpcHandlers{registry: registry, directory: directory, invites: invites}
	if err := RegisterRPCs(initializer, handlers); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameBingo, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(registry, directory), nil
	}); err != nil {
		return err
	}

	logger.Info("Bingo Go module loaded.")
	return nil
}

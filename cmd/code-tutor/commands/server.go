package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/jinford/code-tutor/internal/platform/config"
)

// ServerStartAction はHTTPサーバを起動するコマンドのアクション
func ServerStartAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")

	appCtx, err := NewAppContext(envFile, func(cfg *config.Config) {
		if cmd.IsSet("port") {
			cfg.Server.Port = int(cmd.Int("port"))
		}
	})
	if err != nil {
		return err
	}

	appCtx.Logger().Info("starting code-tutor server",
		"addr", appCtx.Config.Server.Addr(),
		"model", appCtx.Config.OpenAI.Model,
		"enabled", appCtx.Config.Tutor.Enabled,
	)

	return appCtx.Container.NewServer().Run(ctx)
}

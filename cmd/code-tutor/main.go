package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/jinford/code-tutor/cmd/code-tutor/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 構造化ログの設定（設定読み込み後に置き換える）
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	gin.SetMode(gin.ReleaseMode)

	app := &cli.Command{
		Name:  "code-tutor",
		Usage: "質問からJavaScript関数と解説を生成するコーディングチューターAPI",
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "サーバ関連コマンド",
				Commands: []*cli.Command{
					{
						Name:  "start",
						Usage: "HTTPサーバを起動",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "env",
								Usage: "環境変数ファイルパス",
								Value: ".env",
							},
							&cli.IntFlag{
								Name:  "port",
								Usage: "HTTPポート（省略時は環境変数 SERVER_PORT またはデフォルトの8000）",
							},
						},
						Action: commands.ServerStartAction,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "質問からコードを1回だけ生成して表示",
				ArgsUsage: "<質問文>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
					&cli.BoolFlag{
						Name:  "enable",
						Usage: "TUTOR_ENABLED の設定に関わらずLLM呼び出しを有効化",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "結果をJSON形式で出力",
					},
				},
				Action: commands.AskAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

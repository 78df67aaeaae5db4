package commands

import (
	"fmt"
	"log/slog"

	"github.com/jinford/code-tutor/internal/platform/config"
	"github.com/jinford/code-tutor/internal/platform/container"
	"github.com/jinford/code-tutor/internal/platform/logger"
)

// AppContext はコマンド実行に必要な共通コンテキストを保持する
type AppContext struct {
	Config    *config.Config
	Container *container.ServiceContainer
}

// NewAppContext は設定ファイルを読み込み AppContext を作成する。
// configure が指定された場合、コンテナ構築前に設定を上書きできる。
func NewAppContext(envFile string, configure func(*config.Config)) (*AppContext, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗: %w", err)
	}

	if configure != nil {
		configure(cfg)
	}

	appLogger := logger.New(newLoggerConfig(cfg.Log))

	return &AppContext{
		Config:    cfg,
		Container: container.NewContainer(cfg, container.WithContainerLogger(appLogger)),
	}, nil
}

// newLoggerConfig はデフォルト設定に未指定でない値だけを上書きする
func newLoggerConfig(logCfg config.LogConfig) logger.Config {
	c := logger.DefaultConfig()
	if logCfg.Level != "" {
		c.Level = logger.ParseLevel(logCfg.Level)
	}
	if logCfg.Format != "" {
		c.Format = logCfg.Format
	}
	return c
}

// Logger はAppContextのロガーを返す
func (ac *AppContext) Logger() *slog.Logger {
	if ac.Container != nil {
		return ac.Container.Logger()
	}
	return slog.Default()
}

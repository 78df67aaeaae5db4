package container

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jinford/code-tutor/internal/core/tutor"
	"github.com/jinford/code-tutor/internal/infra/openai"
	"github.com/jinford/code-tutor/internal/interface/httpapi"
	"github.com/jinford/code-tutor/internal/platform/config"
)

// ServiceContainer はアプリケーションの依存関係を保持する。
type ServiceContainer struct {
	TutorService *tutor.Service
	Handler      *httpapi.Handler
	Router       *gin.Engine

	cfg    *config.Config
	logger *slog.Logger
}

type containerOptions struct {
	logger       *slog.Logger
	llmClient    tutor.Client
	tokenCounter tutor.TokenCounter
}

// ContainerOption は ServiceContainer 構築時のオプション
type ContainerOption func(*containerOptions)

// WithContainerLogger はロガーを差し替える
func WithContainerLogger(logger *slog.Logger) ContainerOption {
	return func(opts *containerOptions) {
		opts.logger = logger
	}
}

// WithContainerLLMClient は LLM クライアントを差し替える
func WithContainerLLMClient(client tutor.Client) ContainerOption {
	return func(opts *containerOptions) {
		opts.llmClient = client
	}
}

// WithContainerTokenCounter は TokenCounter を差し替える
func WithContainerTokenCounter(counter tutor.TokenCounter) ContainerOption {
	return func(opts *containerOptions) {
		opts.tokenCounter = counter
	}
}

// NewContainer は設定からコンテナを生成する。
func NewContainer(cfg *config.Config, opts ...ContainerOption) *ServiceContainer {
	options := containerOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	// LLMClient (OpenAI)
	llmClient := options.llmClient
	if llmClient == nil {
		clientOpts := []openai.ClientOption{openai.WithTimeout(cfg.OpenAI.Timeout)}
		if baseURL, ok := cfg.OpenAI.BaseURL.Get(); ok {
			clientOpts = append(clientOpts, openai.WithBaseURL(baseURL))
		}
		llmClient = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, clientOpts...)
	}

	tokenCounter := options.tokenCounter
	if tokenCounter == nil {
		tokenCounter = newTokenCounter(cfg.Tutor.Enabled, openai.NewTokenCounter, options.logger)
	}

	tutorService := tutor.NewService(
		llmClient,
		tutor.WithSettings(tutor.Settings{
			Enabled:     cfg.Tutor.Enabled,
			Model:       cfg.OpenAI.Model,
			Temperature: cfg.Tutor.Temperature,
			MaxTokens:   cfg.Tutor.MaxTokens,
		}),
		tutor.WithTokenCounter(tokenCounter),
		tutor.WithLogger(options.logger),
	)

	handler := httpapi.NewHandler(tutorService, options.logger)

	return &ServiceContainer{
		TutorService: tutorService,
		Handler:      handler,
		Router:       httpapi.NewRouter(handler, options.logger),
		cfg:          cfg,
		logger:       options.logger,
	}
}

// newTokenCounter は TokenCounter を生成する。
// 無効時は tiktoken のエンコーディングを読み込まず、文字数ベースの推定を使う。
// 読み込みに失敗した場合も推定にフォールバックする。
func newTokenCounter(enabled bool, load func() (*openai.TokenCounter, error), logger *slog.Logger) *openai.TokenCounter {
	if !enabled {
		return &openai.TokenCounter{}
	}
	counter, err := load()
	if err != nil {
		logger.Warn("tiktoken encoding unavailable, falling back to estimation", "error", err)
		return &openai.TokenCounter{}
	}
	return counter
}

// NewServer は設定済みのルーターで HTTP サーバを生成する。
func (c *ServiceContainer) NewServer() *httpapi.Server {
	return httpapi.NewServer(httpapi.ServerConfig{
		Addr:         c.cfg.Server.Addr(),
		ReadTimeout:  c.cfg.Server.ReadTimeout,
		WriteTimeout: c.cfg.Server.WriteTimeout,
		IdleTimeout:  c.cfg.Server.IdleTimeout,
	}, c.Router, c.logger)
}

// Logger はコンテナのロガーを返す。
func (c *ServiceContainer) Logger() *slog.Logger {
	return c.logger
}

package tutor

import (
	"context"
	"log/slog"
)

const (
	// DefaultModel はコード生成に使用するデフォルトのモデル
	DefaultModel = "gpt-3.5-turbo"

	// DefaultTemperature はコード生成時のデフォルトの Temperature
	DefaultTemperature = 0.7

	// DefaultMaxTokens はコード生成時のデフォルトの最大トークン数
	DefaultMaxTokens = 300
)

// Settings はコード生成サービスの動作設定
type Settings struct {
	// Enabled が false の場合、LLMを呼び出さずに常に IsRelevant=false の応答を返す
	Enabled bool

	Model       string
	Temperature float64
	MaxTokens   int
}

// DefaultSettings はデフォルトのサービス設定を返す。
// 初期状態ではLLM呼び出しは無効化されている。
func DefaultSettings() Settings {
	return Settings{
		Enabled:     false,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// Service は質問からJavaScript関数と説明文を生成するビジネスロジックを提供する
type Service struct {
	llm          Client
	settings     Settings
	tokenCounter TokenCounter
	logger       *slog.Logger
}

type ServiceOption func(*Service)

// WithLogger は Service にロガーを設定する
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithSettings は Service の動作設定を差し替える
func WithSettings(settings Settings) ServiceOption {
	return func(s *Service) {
		s.settings = settings
	}
}

// WithTokenCounter はプロンプトのトークン数計測に使う TokenCounter を設定する
func WithTokenCounter(counter TokenCounter) ServiceOption {
	return func(s *Service) {
		s.tokenCounter = counter
	}
}

// NewService は新しい Service を作成する
func NewService(llm Client, opts ...ServiceOption) *Service {
	svc := &Service{
		llm:      llm,
		settings: DefaultSettings(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(svc)
	}

	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc
}

// Enabled はLLM呼び出しが有効かどうかを返す
func (s *Service) Enabled() bool {
	return s.settings.Enabled
}

// GenerateCode は質問に対するJavaScript関数と一行説明を生成する。
// 失敗時は *ServiceError を返し、部分的な結果は返さない。
func (s *Service) GenerateCode(ctx context.Context, question string) (CodeResponse, error) {
	if !s.settings.Enabled {
		s.logger.Debug("code generation is disabled, skipping LLM call")
		return notRelevant(), nil
	}

	prompt := BuildPrompt(question)

	attrs := []any{
		"model", s.settings.Model,
		"maxTokens", s.settings.MaxTokens,
		"temperature", s.settings.Temperature,
	}
	if s.tokenCounter != nil {
		attrs = append(attrs, "promptTokens", s.tokenCounter.CountTokens(SystemPrompt)+s.tokenCounter.CountTokens(prompt))
	}
	s.logger.Info("generating code with LLM", attrs...)

	resp, err := s.llm.GenerateCompletion(ctx, CompletionRequest{
		SystemPrompt: SystemPrompt,
		Prompt:       prompt,
		Temperature:  s.settings.Temperature,
		MaxTokens:    s.settings.MaxTokens,
		Model:        s.settings.Model,
	})
	if err != nil {
		s.logger.Error("LLM call failed", "error", err)
		return CodeResponse{}, &ServiceError{Err: err}
	}

	function, explanation, err := ParseReply(resp.Content)
	if err != nil {
		s.logger.Warn("unexpected LLM reply format",
			"model", resp.Model,
			"replyLength", len(resp.Content),
		)
		return CodeResponse{}, &ServiceError{Err: err}
	}

	s.logger.Info("code generation completed",
		"model", resp.Model,
		"tokensUsed", resp.TokensUsed,
		"functionLength", len(function),
	)

	return CodeResponse{
		Function:    function,
		Explanation: explanation,
		IsRelevant:  true,
	}, nil
}

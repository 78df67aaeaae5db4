package tutor

import "context"

// Client はLLMサービスとのやり取りを抽象化するインターフェース
type Client interface {
	// GenerateCompletion はプロンプトに基づいてLLMから応答を生成する
	GenerateCompletion(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}

// CompletionRequest はLLMへのリクエストパラメータ
type CompletionRequest struct {
	// SystemPrompt はシステムロールとして送信する指示文
	SystemPrompt string

	// Prompt はユーザーロールとして送信するプロンプト
	Prompt string

	// Temperature は生成の多様性を制御する (0.0-2.0)
	Temperature float64

	// MaxTokens は生成する最大トークン数
	MaxTokens int

	// Model はLLMモデル名 (省略時はクライアントのデフォルトモデルを使用)
	Model string
}

// CompletionResponse はLLMからのレスポンス
type CompletionResponse struct {
	// Content は生成されたテキスト
	Content string

	// TokensUsed は使用されたトークン数
	TokensUsed int

	// Model は実際に使用されたモデル名
	Model string
}

// TokenCounter はプロンプトのトークン数を数える
type TokenCounter interface {
	CountTokens(text string) int
}

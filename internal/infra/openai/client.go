package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jinford/code-tutor/internal/core/tutor"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	// DefaultModel はデフォルトで使用するOpenAIモデル
	DefaultModel = tutor.DefaultModel

	// DefaultTimeout はAPI呼び出しのデフォルトタイムアウト
	DefaultTimeout = 60 * time.Second
)

// ErrNoChoices は応答に選択肢が含まれていない場合のエラー
var ErrNoChoices = errors.New("no completion choices returned")

// Client は OpenAI Chat Completions API を使用した LLM クライアント実装
type Client struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

type clientOptions struct {
	baseURL string
	timeout time.Duration
}

// ClientOption は Client のオプション設定
type ClientOption func(*clientOptions)

// WithBaseURL はAPIのベースURLを上書きする（互換API・テスト用）
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithTimeout はAPIコールのタイムアウトを上書きする
func WithTimeout(timeout time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// NewClient はAPIキーとモデルを指定して Client を作成する。
// APIキーの妥当性はここでは検証せず、API呼び出し時のエラーとして扱う。
func NewClient(apiKey, model string, opts ...ClientOption) *Client {
	options := clientOptions{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&options)
	}

	if model == "" {
		model = DefaultModel
	}

	// SDK のリトライは無効化する（失敗はそのまま呼び出し元へ返す）
	requestOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if options.baseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(options.baseURL))
	}

	return &Client{
		client:  openai.NewClient(requestOpts...),
		model:   model,
		timeout: options.timeout,
	}
}

// GenerateCompletion は OpenAI API を使用してテキストを生成する
func (c *Client) GenerateCompletion(ctx context.Context, req tutor.CompletionRequest) (tutor.CompletionResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	model := c.model
	if req.Model != "" {
		model = req.Model
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}

	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return tutor.CompletionResponse{}, fmt.Errorf("OpenAI API call failed with status %d: %w", apiErr.StatusCode, err)
		}
		return tutor.CompletionResponse{}, fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return tutor.CompletionResponse{}, ErrNoChoices
	}

	return tutor.CompletionResponse{
		Content:    completion.Choices[0].Message.Content,
		TokensUsed: int(completion.Usage.TotalTokens),
		Model:      string(completion.Model),
	}, nil
}

// インターフェース実装の確認
var _ tutor.Client = (*Client)(nil)

package openai

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/jinford/code-tutor/internal/core/tutor"
)

// DefaultEncoding はトークン数の計測に使うエンコーディング
const DefaultEncoding = "cl100k_base"

// TokenCounter はトークン数をカウントする機能を提供する
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTokenCounter は新しいTokenCounterを作成する
// cl100k_baseエンコーディングを使用する
func NewTokenCounter() (*TokenCounter, error) {
	encoding, err := tiktoken.GetEncoding(DefaultEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get tiktoken encoding: %w", err)
	}

	return &TokenCounter{
		encoding: encoding,
	}, nil
}

// CountTokens はテキストのトークン数をカウントする。
// エンコーディングが読み込めていない場合は EstimateTokens による推定値を返す。
func (tc *TokenCounter) CountTokens(text string) int {
	if tc == nil || tc.encoding == nil {
		return EstimateTokens(text)
	}
	return len(tc.encoding.Encode(text, nil, nil))
}

// EstimateTokens はテキストの推定トークン数を返す
// 正確にカウントせず、大まかな推定値を返す（文字数を基準）
func EstimateTokens(text string) int {
	// 英語の場合: 約4文字で1トークン
	return (len([]rune(text)) + 3) / 4
}

var _ tutor.TokenCounter = (*TokenCounter)(nil)

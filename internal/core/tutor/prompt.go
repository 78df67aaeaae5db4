package tutor

import (
	"fmt"
	"regexp"
	"strings"
)

// SystemPrompt はLLMに与えるシステムロールの指示文
const SystemPrompt = "You are a JavaScript coding tutor. Keep explanations simple and concise."

// promptTemplate の出力形式と functionPattern / explanationPattern は対応している。
// 片方を変更する場合はもう片方も合わせて変更すること。
const promptTemplate = `Create a simple JavaScript function based on this question: %s

Provide your response in the following format:
FUNCTION:
[The JavaScript function code]
EXPLANATION:
[A one-line explanation of what the function does]

Keep the function simple and focused on teaching basic concepts.
`

var (
	// functionPattern は FUNCTION: と EXPLANATION: の間（改行を含む）を抽出する
	functionPattern = regexp.MustCompile(`(?s)FUNCTION:[ \t]*\r?\n(.*?)\r?\nEXPLANATION:`)

	// explanationPattern は EXPLANATION: 以降の末尾までを抽出する
	explanationPattern = regexp.MustCompile(`(?s)EXPLANATION:[ \t]*\r?\n(.*)$`)
)

// BuildPrompt は質問文を埋め込んだコード生成用プロンプトを構築する
func BuildPrompt(question string) string {
	return fmt.Sprintf(promptTemplate, question)
}

// ParseReply はLLMの応答から関数コードと説明文を抽出する。
// どちらかのセクションが見つからない場合は ErrParseFailure を返す。
func ParseReply(content string) (function string, explanation string, err error) {
	functionMatch := functionPattern.FindStringSubmatch(content)
	explanationMatch := explanationPattern.FindStringSubmatch(content)

	if functionMatch == nil || explanationMatch == nil {
		return "", "", ErrParseFailure
	}

	return strings.TrimSpace(functionMatch[1]), strings.TrimSpace(explanationMatch[1]), nil
}

package tutor

// CodeRequest はコード生成エンドポイントへのリクエストを表す
type CodeRequest struct {
	Question string `json:"question"` // ユーザーの質問文
}

// CodeResponse はコード生成の結果を表す
// IsRelevant が false の場合、Function と Explanation は常に空文字列となる
type CodeResponse struct {
	Function    string `json:"function"`    // 生成された関数のコード
	Explanation string `json:"explanation"` // 関数の一行説明
	IsRelevant  bool   `json:"isRelevant"`  // 質問に対して回答が生成されたか
}

// notRelevant は回答を生成しなかった場合のレスポンスを返す
func notRelevant() CodeResponse {
	return CodeResponse{}
}

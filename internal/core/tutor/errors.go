package tutor

import "errors"

// ErrParseFailure はLLMの応答が FUNCTION:/EXPLANATION: の2セクション形式に従っていない場合のエラー
var ErrParseFailure = errors.New("failed to parse AI response")

// ServiceError はコード生成に失敗したことを表す。
// 上流APIの失敗と応答解析の失敗を区別せず、呼び出し元には原因のメッセージのみを返す。
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return "code generation failed"
	}
	return e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsServiceError はエラーが ServiceError を含むかどうかを判定する
func IsServiceError(err error) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr)
}

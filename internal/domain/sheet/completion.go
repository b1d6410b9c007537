package sheet

import (
	"fmt"
)

// CompletionResult 完了通知でネイティブ側へ伝える取引結果を表す値オブジェクト
type CompletionResult string

const (
	CompletionResultSuccess CompletionResult = "success" // 取引成立
	CompletionResultFail    CompletionResult = "fail"    // 取引不成立
	CompletionResultUnknown CompletionResult = "unknown" // 結果不明
)

// NewCompletionResult 新しいCompletionResultを作成
func NewCompletionResult(s string) (CompletionResult, error) {
	switch s {
	case "success", "fail", "unknown":
		return CompletionResult(s), nil
	default:
		return "", fmt.Errorf("invalid completion result: %s", s)
	}
}

// String 文字列表現を返す
func (cr CompletionResult) String() string {
	return string(cr)
}

// Valid 有効な完了結果かどうかを返す
func (cr CompletionResult) Valid() bool {
	switch cr {
	case CompletionResultSuccess, CompletionResultFail, CompletionResultUnknown:
		return true
	default:
		return false
	}
}

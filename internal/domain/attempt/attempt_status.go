package attempt

import (
	"fmt"
)

// AttemptStatus チェックアウト試行のステータスを表す値オブジェクト
type AttemptStatus string

const (
	AttemptStatusPending   AttemptStatus = "pending"   // パイプライン実行中（シート表示前）
	AttemptStatusNotReady  AttemptStatus = "not_ready" // 能力チェックで決済不可
	AttemptStatusShown     AttemptStatus = "shown"     // 決済シート表示中
	AttemptStatusCompleted AttemptStatus = "completed" // ユーザーが決済を承認
	AttemptStatusCancelled AttemptStatus = "cancelled" // ユーザーがシートを閉じた
	AttemptStatusTimedOut  AttemptStatus = "timed_out" // タイムアウト
	AttemptStatusAborted   AttemptStatus = "aborted"   // タイムアウト後の中断に成功
	AttemptStatusFailed    AttemptStatus = "failed"    // その他の失敗
)

// NewAttemptStatus 新しいAttemptStatusを作成
func NewAttemptStatus(s string) (AttemptStatus, error) {
	switch s {
	case "pending", "not_ready", "shown", "completed", "cancelled", "timed_out", "aborted", "failed":
		return AttemptStatus(s), nil
	default:
		return "", fmt.Errorf("invalid attempt status: %s", s)
	}
}

// String 文字列表現を返す
func (as AttemptStatus) String() string {
	return string(as)
}

// Valid 有効なステータスかどうかを返す
func (as AttemptStatus) Valid() bool {
	switch as {
	case AttemptStatusPending, AttemptStatusNotReady, AttemptStatusShown,
		AttemptStatusCompleted, AttemptStatusCancelled, AttemptStatusTimedOut,
		AttemptStatusAborted, AttemptStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal 終端状態かどうかを返す
func (as AttemptStatus) IsTerminal() bool {
	switch as {
	case AttemptStatusPending, AttemptStatusShown:
		return false
	default:
		return as.Valid()
	}
}

// IsShown 決済シート表示中かどうかを返す
func (as AttemptStatus) IsShown() bool {
	return as == AttemptStatusShown
}

// IsCompleted ユーザー承認済みかどうかを返す
func (as AttemptStatus) IsCompleted() bool {
	return as == AttemptStatusCompleted
}

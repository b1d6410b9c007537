package attempt

import "errors"

var (
	// ErrAttemptNotFound Attemptが見つからないエラー
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrInvalidAttemptID Attempt IDが無効エラー
	ErrInvalidAttemptID = errors.New("invalid attempt id")
	// ErrInvalidSessionID セッションIDが無効エラー
	ErrInvalidSessionID = errors.New("invalid session id")
	// ErrInvalidTransition 許可されない状態遷移エラー
	ErrInvalidTransition = errors.New("invalid attempt state transition")
	// ErrAttemptInProgress セッションで別の試行が進行中エラー
	ErrAttemptInProgress = errors.New("attempt already in progress")
)

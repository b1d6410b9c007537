package attempt

import (
	"context"
)

// Repository Attemptリポジトリインターフェース
type Repository interface {
	// Save Attemptを保存
	Save(ctx context.Context, attempt *Attempt) error

	// Update Attemptを更新
	Update(ctx context.Context, attempt *Attempt) error

	// FindByAttemptID Attempt IDでAttemptを取得
	FindByAttemptID(ctx context.Context, attemptID string) (*Attempt, error)

	// FindBySessionID セッションIDでAttempt一覧を新しい順に取得（ページネーション対応）
	FindBySessionID(ctx context.Context, sessionID string, limit, offset int) ([]*Attempt, error)

	// FindActiveBySessionID セッションの非終了状態のAttemptを取得
	// 存在しない場合はErrAttemptNotFoundを返す
	FindActiveBySessionID(ctx context.Context, sessionID string) (*Attempt, error)
}

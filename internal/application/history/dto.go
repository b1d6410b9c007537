package history

import "github.com/kamesh07032005/Gpaydynamic/internal/domain/attempt"

// GetAttemptHistoryRequest チェックアウト試行履歴取得リクエスト
type GetAttemptHistoryRequest struct {
	SessionID string
	Limit     int
	Offset    int
	Status    string // optional: "completed", "cancelled", etc.
}

// GetAttemptHistoryResponse チェックアウト試行履歴取得レスポンス
type GetAttemptHistoryResponse struct {
	Attempts []*attempt.Attempt
	Total    int
	Limit    int
	Offset   int
}

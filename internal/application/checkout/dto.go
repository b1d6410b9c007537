package checkout

// TriggerCheckoutRequest チェックアウト開始リクエスト
type TriggerCheckoutRequest struct {
	SessionID string
}

// TriggerCheckoutResponse チェックアウト開始レスポンス
type TriggerCheckoutResponse struct {
	AttemptID string
	SessionID string
	Status    string // "accepted"
}

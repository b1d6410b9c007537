package handler

// AttemptItem チェックアウト試行アイテム
// @Description チェックアウト試行アイテム
type AttemptItem struct {
	AttemptID      string `json:"attempt_id" example:"b3a6f4f6-31c2-4b6a-9a54-6d0d9f6f7c11"`
	Status         string `json:"status" example:"completed"`
	Amount         string `json:"amount,omitempty" example:"199.00"`
	Currency       string `json:"currency,omitempty" example:"INR"`
	TransactionRef string `json:"transaction_ref,omitempty" example:"8d2f5c60-7a4b-4d3e-b1c9-5e8f0a2d6b13"`
	FailureReason  string `json:"failure_reason,omitempty" example:"cart total fetch failed"`
	VerdictStatus  string `json:"verdict_status,omitempty" example:"success"`
	CreatedAt      string `json:"created_at" example:"2024-01-01T12:00:00Z"`
	UpdatedAt      string `json:"updated_at" example:"2024-01-01T12:02:30Z"`
}

// AttemptHistoryResponse 試行履歴レスポンス
// @Description 試行履歴レスポンス
type AttemptHistoryResponse struct {
	SessionID string        `json:"session_id" example:"0b79e2f1-9c1f-4f4e-8a5e-2f1f3a9d0c42"`
	Attempts  []AttemptItem `json:"attempts"`
	Total     int           `json:"total" example:"1"`
	Limit     int           `json:"limit" example:"50"`
	Offset    int           `json:"offset" example:"0"`
}

package handler

// TriggerCheckoutResponse チェックアウト起動レスポンス
// @Description チェックアウト起動レスポンス
type TriggerCheckoutResponse struct {
	AttemptID string `json:"attempt_id" example:"b3a6f4f6-31c2-4b6a-9a54-6d0d9f6f7c11"`
	SessionID string `json:"session_id" example:"0b79e2f1-9c1f-4f4e-8a5e-2f1f3a9d0c42"`
	Status    string `json:"status" example:"accepted"`
}

package handler

// GenerateTokenRequest トークン発行リクエスト
// @Description トークン発行リクエスト
type GenerateTokenRequest struct {
	SessionID string `json:"session_id,omitempty" example:"0b79e2f1-9c1f-4f4e-8a5e-2f1f3a9d0c42"`
}

// GenerateTokenResponse トークン発行レスポンス
// @Description トークン発行レスポンス
type GenerateTokenResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzaWQiOiJzZXNzaW9uMTIzIiwiZXhwIjoxNzAwMDAwMDAwfQ.signature"`
	SessionID string `json:"session_id" example:"0b79e2f1-9c1f-4f4e-8a5e-2f1f3a9d0c42"`
	ExpiresIn int    `json:"expires_in" example:"3600"`
	TokenType string `json:"token_type" example:"Bearer"`
}

// ErrorResponse エラーレスポンス
// @Description エラーレスポンス
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

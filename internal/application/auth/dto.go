package auth

// GenerateTokenRequest セッショントークン発行リクエスト
// SessionIDを省略した場合は新しいセッションIDを採番する
type GenerateTokenRequest struct {
	SessionID string
}

// GenerateTokenResponse セッショントークン発行レスポンス
type GenerateTokenResponse struct {
	Token     string
	SessionID string
	ExpiresIn int64  // 秒単位
	TokenType string // "Bearer"
}

package capability

import (
	"context"
	"time"
)

// CacheKey セッションごとの能力チェック結果を保持する既知のキャッシュキー
// ストア実装はこのキーをセッションIDで名前空間化する
const CacheKey = "canMakePaymentCache"

// Entry セッションスコープのキャッシュエントリ
// セッション中に一度書き込まれた後は明示的に無効化されない
type Entry struct {
	CanMakePayment bool
	CachedAt       time.Time
}

// Store セッションスコープの能力キャッシュへのポート
type Store interface {
	// Get セッションのキャッシュ済み判定を取得する
	// エントリが存在しない場合はErrNotCachedを返す
	Get(ctx context.Context, sessionID string) (*Entry, error)
	// Set セッションの判定を保存する
	Set(ctx context.Context, sessionID string, canMakePayment bool) error
}

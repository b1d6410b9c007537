package capability

import "errors"

var (
	// ErrNotCached セッションのキャッシュエントリが存在しないエラー
	ErrNotCached = errors.New("capability not cached")
)

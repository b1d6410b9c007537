package credential

import "errors"

var (
	// ErrPurchaseRejected 購入エンドポイントが非2xxを返したエラー
	ErrPurchaseRejected = errors.New("purchase request rejected")
	// ErrMalformedVerdict 判定レスポンスの解析に失敗したエラー
	ErrMalformedVerdict = errors.New("malformed verdict response")
)

package checkout

import "context"

// CartGateway カート合計を提供するサーバーエンドポイントへのポート
type CartGateway interface {
	// FetchTotal 現在のカート合計を未検証の文字列として取得する
	FetchTotal(ctx context.Context) (string, error)
}

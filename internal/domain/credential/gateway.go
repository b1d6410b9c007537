package credential

import "context"

// PurchaseGateway クレデンシャルを購入エンドポイントへ送信するポート
type PurchaseGateway interface {
	// Submit クレデンシャルを送信し、サーバーの判定を取得する
	Submit(ctx context.Context, cred *Credential) (*Verdict, error)
}

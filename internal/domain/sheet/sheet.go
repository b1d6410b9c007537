package sheet

import (
	"context"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/checkout"
	"github.com/kamesh07032005/Gpaydynamic/internal/domain/credential"
)

// PaymentApp ネイティブ決済シートを提供する外部アプリへのポート
type PaymentApp interface {
	// Available 決済APIがこの実行環境で利用可能かどうかを返す
	Available(ctx context.Context) bool
	// NewRequest 仕様から新しい決済リクエストを構築する
	// 構築時の検証エラーはそのまま返し、呼び出し側で試行を打ち切る
	NewRequest(ctx context.Context, spec *checkout.PaymentRequestSpec) (Handle, error)
}

// Handle 構築済み決済リクエストへのハンドル
type Handle interface {
	// Show 決済シートを表示し、ユーザーの承認またはキャンセルを待つ
	Show(ctx context.Context) (PaymentResponse, error)
	// Abort 進行中のリクエストを中断する
	// ユーザーが決済操作中の場合は失敗することがある
	Abort(ctx context.Context) error
}

// CapabilityChecker 能力チェック操作を公開するハンドル
// 提供しない環境があるため、Handleとは別の任意インターフェイスとして扱う
type CapabilityChecker interface {
	// CanMakePayment この環境で決済を完了できるかどうかを問い合わせる
	CanMakePayment(ctx context.Context) (bool, error)
}

// PaymentResponse シートでユーザーが承認した結果
type PaymentResponse interface {
	// Credential 承認された決済クレデンシャルを返す
	Credential() *credential.Credential
	// Complete ネイティブ側へ取引の結果を通知し、シートのライフサイクルを閉じる
	Complete(ctx context.Context, result CompletionResult) error
}

// Notifier ユーザー向け通知のポート
type Notifier interface {
	// PaymentNotReady 決済不可であることをユーザーへ通知する（ブロッキング）
	PaymentNotReady(ctx context.Context)
}

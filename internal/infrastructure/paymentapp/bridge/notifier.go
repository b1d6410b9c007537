package bridge

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	otelinfra "github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/observability/otel"
)

// notReadyMessage 決済不可のときに表示するメッセージ
const notReadyMessage = "Google Pay is not ready to pay."

// Notifier ブリッジ経由でユーザー通知を表示するsheet.Notifier実装
type Notifier struct {
	client *Client
	logger *otelinfra.Logger
}

// NewNotifier 新しいNotifierを作成
func NewNotifier(client *Client, logger *otelinfra.Logger) *Notifier {
	return &Notifier{
		client: client,
		logger: logger,
	}
}

// PaymentNotReady 決済不可であることをユーザーへ通知する
// 端末側のアラートが閉じられるまでブロックする
func (n *Notifier) PaymentNotReady(ctx context.Context) {
	in, err := structpb.NewStruct(map[string]interface{}{
		"message": notReadyMessage,
	})
	if err != nil {
		n.logger.Warn(ctx, "Failed to encode not-ready notification", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if _, err := n.client.invoke(ctx, methodNotify, in); err != nil {
		n.logger.Warn(ctx, "Failed to notify user", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

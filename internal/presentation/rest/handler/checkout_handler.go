package handler

import (
	"context"
	"net/http"

	checkoutapp "github.com/kamesh07032005/Gpaydynamic/internal/application/checkout"
	otelinfra "github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/observability/otel"

	"github.com/labstack/echo/v4"
)

// CheckoutService チェックアウトアプリケーションサービスのポート
type CheckoutService interface {
	// Trigger チェックアウト試行を登録する
	Trigger(ctx context.Context, req *checkoutapp.TriggerCheckoutRequest) (*checkoutapp.TriggerCheckoutResponse, error)
	// Execute 登録済みの試行に対してパイプラインを実行する
	Execute(ctx context.Context, attemptID string)
}

// CheckoutHandler チェックアウト関連ハンドラー
type CheckoutHandler struct {
	checkoutService CheckoutService
	logger          *otelinfra.Logger
}

// NewCheckoutHandler 新しいCheckoutHandlerを作成
func NewCheckoutHandler(checkoutService CheckoutService, logger *otelinfra.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// TriggerCheckout チェックアウト起動ハンドラー
// @Summary チェックアウトを起動
// @Description セッションのチェックアウト試行を登録し、決済パイプラインを非同期に実行します
// @Tags checkout
// @Accept json
// @Produce json
// @Security Bearer
// @Success 202 {object} TriggerCheckoutResponse "試行受付"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 409 {object} ErrorResponse "進行中の試行あり"
// @Router /checkout [post]
func (h *CheckoutHandler) TriggerCheckout(c echo.Context) error {
	// トークンからsession_idを取得
	sessionID, ok := c.Get("session_id").(string)
	if !ok || sessionID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "session_id not found in token")
	}

	req := &checkoutapp.TriggerCheckoutRequest{
		SessionID: sessionID,
	}

	resp, err := h.checkoutService.Trigger(c.Request().Context(), req)
	if err != nil {
		return err
	}

	// シート表示は最長20分待つため、リクエストのライフサイクルから切り離して実行する
	go h.checkoutService.Execute(context.WithoutCancel(c.Request().Context()), resp.AttemptID)

	h.logger.Info(c.Request().Context(), "Checkout pipeline dispatched", map[string]interface{}{
		"session_id": sessionID,
		"attempt_id": resp.AttemptID,
	})

	return c.JSON(http.StatusAccepted, TriggerCheckoutResponse{
		AttemptID: resp.AttemptID,
		SessionID: resp.SessionID,
		Status:    resp.Status,
	})
}

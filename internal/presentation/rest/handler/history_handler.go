package handler

import (
	"net/http"
	"strconv"
	"time"

	historyapp "github.com/kamesh07032005/Gpaydynamic/internal/application/history"

	"github.com/labstack/echo/v4"
)

// HistoryHandler 試行履歴関連ハンドラー
type HistoryHandler struct {
	historyService *historyapp.HistoryApplicationService
}

// NewHistoryHandler 新しいHistoryHandlerを作成
func NewHistoryHandler(historyService *historyapp.HistoryApplicationService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// GetAttemptHistory 試行履歴取得ハンドラー（セッションAPI用）
// @Summary 自セッションの試行履歴を取得
// @Description トークンのセッションに紐づくチェックアウト試行履歴を取得します。ページネーションとステータスフィルタに対応しています
// @Tags history
// @Accept json
// @Produce json
// @Security Bearer
// @Param limit query int false "取得件数（デフォルト: 50, 最大: 100)" default(50) example(50)
// @Param offset query int false "オフセット（デフォルト: 0)" default(0) example(0)
// @Param status query string false "ステータスでフィルタ（pending/not_ready/shown/completed/cancelled/timed_out/aborted/failed）" example(completed)
// @Success 200 {object} AttemptHistoryResponse "履歴取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /sessions/me/attempts [get]
func (h *HistoryHandler) GetAttemptHistory(c echo.Context) error {
	// トークンからsession_idを取得
	sessionID, ok := c.Get("session_id").(string)
	if !ok || sessionID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "session_id not found in token")
	}

	return h.getAttemptHistoryInternal(c, sessionID)
}

// GetAttemptHistoryAdmin 試行履歴取得ハンドラー（管理API用）
// @Summary 試行履歴を取得（管理API）
// @Description 指定されたセッションのチェックアウト試行履歴を取得します
// @Tags admin
// @Accept json
// @Produce json
// @Param session_id path string true "セッションID" example(0b79e2f1-9c1f-4f4e-8a5e-2f1f3a9d0c42)
// @Param X-API-Key header string true "APIキー"
// @Param limit query int false "取得件数（デフォルト: 50, 最大: 100)" default(50) example(50)
// @Param offset query int false "オフセット（デフォルト: 0)" default(0) example(0)
// @Param status query string false "ステータスでフィルタ（pending/not_ready/shown/completed/cancelled/timed_out/aborted/failed）" example(completed)
// @Success 200 {object} AttemptHistoryResponse "履歴取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/sessions/{session_id}/attempts [get]
func (h *HistoryHandler) GetAttemptHistoryAdmin(c echo.Context) error {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session_id is required")
	}

	return h.getAttemptHistoryInternal(c, sessionID)
}

// getAttemptHistoryInternal 試行履歴取得の内部実装
func (h *HistoryHandler) getAttemptHistoryInternal(c echo.Context, sessionID string) error {

	// クエリパラメータを取得
	limit := 50 // デフォルト値
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit parameter")
		}
	}

	offset := 0 // デフォルト値
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid offset parameter")
		}
	}

	status := c.QueryParam("status")

	req := &historyapp.GetAttemptHistoryRequest{
		SessionID: sessionID,
		Limit:     limit,
		Offset:    offset,
		Status:    status,
	}

	resp, err := h.historyService.GetAttemptHistory(c.Request().Context(), req)
	if err != nil {
		return err
	}

	// 試行をレスポンス形式に変換
	attempts := make([]AttemptItem, len(resp.Attempts))
	for i, a := range resp.Attempts {
		attempts[i] = AttemptItem{
			AttemptID:      a.AttemptID(),
			Status:         a.Status().String(),
			Amount:         a.Amount(),
			Currency:       a.Currency(),
			TransactionRef: a.TransactionRef(),
			FailureReason:  a.FailureReason(),
			VerdictStatus:  a.VerdictStatus(),
			CreatedAt:      a.CreatedAt().Format(time.RFC3339),
			UpdatedAt:      a.UpdatedAt().Format(time.RFC3339),
		}
	}

	return c.JSON(http.StatusOK, AttemptHistoryResponse{
		SessionID: sessionID,
		Attempts:  attempts,
		Total:     resp.Total,
		Limit:     resp.Limit,
		Offset:    resp.Offset,
	})
}

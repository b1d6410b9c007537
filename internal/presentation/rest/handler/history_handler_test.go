package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	historyapp "github.com/kamesh07032005/Gpaydynamic/internal/application/history"
	"github.com/kamesh07032005/Gpaydynamic/internal/domain/attempt"
	otelinfra "github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/observability/otel"
	restmiddleware "github.com/kamesh07032005/Gpaydynamic/internal/presentation/rest/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestHistoryHandler(t *testing.T, repo attempt.Repository) *HistoryHandler {
	t.Helper()
	logger := otelinfra.NewLogger(otel.Tracer("test"))
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)
	service := historyapp.NewHistoryApplicationService(repo, logger, metrics)
	return NewHistoryHandler(service)
}

func TestHistoryHandler_GetAttemptHistory(t *testing.T) {
	newTestServer := func(t *testing.T, repo attempt.Repository, sessionID string) *echo.Echo {
		e := echo.New()
		tracer := noop.NewTracerProvider().Tracer("test")
		logger := otelinfra.NewLogger(tracer)
		e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
		handler := newTestHistoryHandler(t, repo)
		e.GET("/sessions/me/attempts", handler.GetAttemptHistory, sessionMiddleware(sessionID))
		return e
	}

	t.Run("正常系: 自セッションの試行履歴を取得できる", func(t *testing.T) {
		repo := new(MockAttemptRepository)
		a := attempt.MustNewAttempt("attempt-1", "session123")
		require.NoError(t, a.MarkShown())
		require.NoError(t, a.MarkCompleted())
		repo.On("FindBySessionID", mock.Anything, "session123", 50, 0).
			Return([]*attempt.Attempt{a}, nil)

		e := newTestServer(t, repo, "session123")
		req := httptest.NewRequest(http.MethodGet, "/sessions/me/attempts", nil)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var response AttemptHistoryResponse
		err := json.Unmarshal(rec.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "session123", response.SessionID)
		require.Len(t, response.Attempts, 1)
		assert.Equal(t, "attempt-1", response.Attempts[0].AttemptID)
		assert.Equal(t, "completed", response.Attempts[0].Status)
		assert.Equal(t, 1, response.Total)
	})

	t.Run("正常系: ページネーションパラメータを引き渡す", func(t *testing.T) {
		repo := new(MockAttemptRepository)
		repo.On("FindBySessionID", mock.Anything, "session123", 10, 20).
			Return([]*attempt.Attempt{}, nil)

		e := newTestServer(t, repo, "session123")
		req := httptest.NewRequest(http.MethodGet, "/sessions/me/attempts?limit=10&offset=20", nil)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		repo.AssertExpectations(t)
	})

	t.Run("異常系: limitが不正", func(t *testing.T) {
		repo := new(MockAttemptRepository)

		e := newTestServer(t, repo, "session123")
		req := httptest.NewRequest(http.MethodGet, "/sessions/me/attempts?limit=9999", nil)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("異常系: セッションIDがコンテキストにない", func(t *testing.T) {
		repo := new(MockAttemptRepository)

		e := newTestServer(t, repo, "")
		req := httptest.NewRequest(http.MethodGet, "/sessions/me/attempts", nil)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHistoryHandler_GetAttemptHistoryAdmin(t *testing.T) {
	t.Run("正常系: 指定セッションの試行履歴を取得できる", func(t *testing.T) {
		repo := new(MockAttemptRepository)
		a := attempt.MustNewAttempt("attempt-1", "session456")
		require.NoError(t, a.MarkNotReady())
		repo.On("FindBySessionID", mock.Anything, "session456", 50, 0).
			Return([]*attempt.Attempt{a}, nil)

		e := echo.New()
		tracer := noop.NewTracerProvider().Tracer("test")
		logger := otelinfra.NewLogger(tracer)
		e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
		handler := newTestHistoryHandler(t, repo)
		e.GET("/admin/sessions/:session_id/attempts", handler.GetAttemptHistoryAdmin)

		req := httptest.NewRequest(http.MethodGet, "/admin/sessions/session456/attempts", nil)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		var response AttemptHistoryResponse
		err := json.Unmarshal(rec.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "session456", response.SessionID)
		require.Len(t, response.Attempts, 1)
		assert.Equal(t, "not_ready", response.Attempts[0].Status)
	})
}

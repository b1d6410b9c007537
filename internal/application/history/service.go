package history

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/attempt"
	otelinfra "github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/observability/otel"
)

// HistoryApplicationService 試行履歴アプリケーションサービス
type HistoryApplicationService struct {
	attemptRepo attempt.Repository
	logger      *otelinfra.Logger
	metrics     *otelinfra.Metrics
	tracer      trace.Tracer
}

// NewHistoryApplicationService 新しいHistoryApplicationServiceを作成
func NewHistoryApplicationService(
	attemptRepo attempt.Repository,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *HistoryApplicationService {
	return &HistoryApplicationService{
		attemptRepo: attemptRepo,
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer("history-service"),
	}
}

// GetAttemptHistory セッションのチェックアウト試行履歴を新しい順に取得
func (s *HistoryApplicationService) GetAttemptHistory(ctx context.Context, req *GetAttemptHistoryRequest) (*GetAttemptHistoryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "HistoryApplicationService.GetAttemptHistory")
	defer span.End()

	span.SetAttributes(
		attribute.String("session_id", req.SessionID),
		attribute.Int("limit", req.Limit),
		attribute.Int("offset", req.Offset),
	)

	s.logger.Info(ctx, "Getting attempt history", map[string]interface{}{
		"session_id": req.SessionID,
		"limit":      req.Limit,
		"offset":     req.Offset,
		"status":     req.Status,
	})

	// バリデーション
	if req.SessionID == "" {
		err := attempt.ErrInvalidSessionID
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}
	if req.Limit <= 0 {
		req.Limit = 50 // デフォルト値
	}
	if req.Limit > 100 {
		req.Limit = 100 // 最大値
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	// 試行履歴を取得
	attempts, err := s.attemptRepo.FindBySessionID(ctx, req.SessionID, req.Limit, req.Offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to get attempt history", err, map[string]interface{}{
			"session_id": req.SessionID,
		})
		return nil, fmt.Errorf("failed to get attempt history: %w", err)
	}

	// ステータスフィルタ
	filtered := make([]*attempt.Attempt, 0, len(attempts))
	for _, a := range attempts {
		if req.Status != "" {
			status, err := attempt.NewAttemptStatus(req.Status)
			if err == nil && a.Status() != status {
				continue
			}
		}
		filtered = append(filtered, a)
	}

	return &GetAttemptHistoryResponse{
		Attempts: filtered,
		Total:    len(filtered),
		Limit:    req.Limit,
		Offset:   req.Offset,
	}, nil
}

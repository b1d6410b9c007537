package settlement

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/attempt"
	"github.com/kamesh07032005/Gpaydynamic/internal/domain/credential"
	"github.com/kamesh07032005/Gpaydynamic/internal/domain/sheet"
	otelinfra "github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/observability/otel"
)

// SettlementApplicationService 購入確定アプリケーションサービス
// 承認済みクレデンシャルを購入エンドポイントへ送信し、判定に応じて完了通知を送る
type SettlementApplicationService struct {
	purchaseGateway credential.PurchaseGateway
	attemptRepo     attempt.Repository
	logger          *otelinfra.Logger
	metrics         *otelinfra.Metrics
	tracer          trace.Tracer
}

// NewSettlementApplicationService 新しいSettlementApplicationServiceを作成
func NewSettlementApplicationService(
	purchaseGateway credential.PurchaseGateway,
	attemptRepo attempt.Repository,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *SettlementApplicationService {
	return &SettlementApplicationService{
		purchaseGateway: purchaseGateway,
		attemptRepo:     attemptRepo,
		logger:          logger,
		metrics:         metrics,
		tracer:          otel.Tracer("settlement-service"),
	}
}

// Process クレデンシャルを購入エンドポイントへ送信し、判定を処理する
// 送信が失敗した場合は完了通知を送らずに打ち切る
// （ネイティブ側のリクエストは未完了のまま残る: 観測された挙動を維持）
func (s *SettlementApplicationService) Process(ctx context.Context, a *attempt.Attempt, response sheet.PaymentResponse) error {
	ctx, span := s.tracer.Start(ctx, "SettlementApplicationService.Process")
	defer span.End()

	cred := response.Credential()
	span.SetAttributes(
		attribute.String("attempt_id", a.AttemptID()),
		attribute.String("credential.method_name", cred.MethodName()),
	)

	s.logger.Info(ctx, "Submitting purchase", map[string]interface{}{
		"attempt_id":  a.AttemptID(),
		"method_name": cred.MethodName(),
	})

	verdict, err := s.purchaseGateway.Submit(ctx, cred)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.metrics.RecordVerdict(ctx, verdictLabel(err))
		s.logger.Error(ctx, "Failed to submit purchase", err, map[string]interface{}{
			"attempt_id": a.AttemptID(),
		})
		s.failAttempt(ctx, a, fmt.Sprintf("purchase submission failed: %v", err))
		return err
	}

	a.SetVerdict(verdict.Status.String(), verdict.Message)
	span.SetAttributes(attribute.String("verdict.status", verdict.Status.String()))
	s.metrics.RecordVerdict(ctx, verdict.Status.String())

	// 完了通知はサーバー判定のステータスをそのまま伝える
	result := sheet.CompletionResultFail
	if verdict.Status.IsSuccess() {
		result = sheet.CompletionResultSuccess
	}
	s.completePayment(ctx, a, response, result, verdict.Message)

	if markErr := a.MarkCompleted(); markErr != nil {
		s.logger.Warn(ctx, "Failed to mark attempt as completed", map[string]interface{}{
			"attempt_id": a.AttemptID(),
			"error":      markErr.Error(),
		})
	} else if updateErr := s.attemptRepo.Update(ctx, a); updateErr != nil {
		s.logger.Warn(ctx, "Failed to update attempt", map[string]interface{}{
			"attempt_id": a.AttemptID(),
			"error":      updateErr.Error(),
		})
	}

	span.SetStatus(otelcodes.Ok, "purchase processed")
	return nil
}

// completePayment ネイティブ側へ取引結果を通知する（一度だけ試行し、失敗してもリカバリしない）
func (s *SettlementApplicationService) completePayment(ctx context.Context, a *attempt.Attempt, response sheet.PaymentResponse, result sheet.CompletionResult, message string) {
	if err := response.Complete(ctx, result); err != nil {
		s.logger.Error(ctx, "Failed to complete payment", err, map[string]interface{}{
			"attempt_id": a.AttemptID(),
			"result":     result.String(),
		})
		return
	}

	s.logger.Info(ctx, "Payment completed", map[string]interface{}{
		"attempt_id": a.AttemptID(),
		"result":     result.String(),
		"message":    message,
	})
}

// failAttempt 試行を失敗として記録する
func (s *SettlementApplicationService) failAttempt(ctx context.Context, a *attempt.Attempt, reason string) {
	if err := a.MarkFailed(reason); err != nil {
		s.logger.Warn(ctx, "Failed to mark attempt as failed", map[string]interface{}{
			"attempt_id": a.AttemptID(),
			"error":      err.Error(),
		})
		return
	}
	if err := s.attemptRepo.Update(ctx, a); err != nil {
		s.logger.Warn(ctx, "Failed to update attempt", map[string]interface{}{
			"attempt_id": a.AttemptID(),
			"error":      err.Error(),
		})
	}
}

// verdictLabel 送信エラーをメトリクス用のラベルへ写像する
func verdictLabel(err error) string {
	switch {
	case errors.Is(err, credential.ErrPurchaseRejected):
		return "rejected"
	case errors.Is(err, credential.ErrMalformedVerdict):
		return "malformed"
	default:
		return "error"
	}
}

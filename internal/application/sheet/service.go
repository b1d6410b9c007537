package sheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/attempt"
	"github.com/kamesh07032005/Gpaydynamic/internal/domain/capability"
	"github.com/kamesh07032005/Gpaydynamic/internal/domain/sheet"
	otelinfra "github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/observability/otel"
)

// SheetApplicationService 決済シート表示アプリケーションサービス
// シートの表示からユーザー操作・タイムアウトまでのライフサイクルを管理する
type SheetApplicationService struct {
	notifier     sheet.Notifier
	attemptRepo  attempt.Repository
	sheetTimeout time.Duration
	logger       *otelinfra.Logger
	metrics      *otelinfra.Metrics
	tracer       trace.Tracer
}

// NewSheetApplicationService 新しいSheetApplicationServiceを作成
func NewSheetApplicationService(
	notifier sheet.Notifier,
	attemptRepo attempt.Repository,
	sheetTimeout time.Duration,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *SheetApplicationService {
	return &SheetApplicationService{
		notifier:     notifier,
		attemptRepo:  attemptRepo,
		sheetTimeout: sheetTimeout,
		logger:       logger,
		metrics:      metrics,
		tracer:       otel.Tracer("sheet-service"),
	}
}

// Present 能力判定に応じて決済シートを表示し、ユーザーの承認を待つ
// 決済不可の場合はシートを表示せず、ユーザーへ通知してErrPaymentNotReadyを返す
// タイムアウト時は進行中のリクエストの中断を一度だけ試みる
func (s *SheetApplicationService) Present(ctx context.Context, a *attempt.Attempt, handle sheet.Handle, decision capability.Decision) (sheet.PaymentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "SheetApplicationService.Present")
	defer span.End()

	span.SetAttributes(
		attribute.String("attempt_id", a.AttemptID()),
		attribute.String("capability.decision", decision.String()),
	)

	if !decision.CanPay() {
		s.notifier.PaymentNotReady(ctx)
		s.transition(ctx, a, a.MarkNotReady)
		s.metrics.RecordSheetResult(ctx, "not_ready")
		s.logger.Info(ctx, "Payment not ready, sheet not shown", map[string]interface{}{
			"attempt_id": a.AttemptID(),
			"decision":   decision.String(),
		})
		span.SetStatus(otelcodes.Ok, "payment not ready")
		return nil, sheet.ErrPaymentNotReady
	}

	s.transition(ctx, a, a.MarkShown)
	s.logger.Info(ctx, "Showing payment sheet", map[string]interface{}{
		"attempt_id": a.AttemptID(),
		"timeout":    s.sheetTimeout.String(),
	})

	// タイムアウトはShowの開始前に張り、Showの解決とどちらが先かで勝敗が決まる
	showCtx, cancel := context.WithTimeout(ctx, s.sheetTimeout)
	defer cancel()

	response, err := handle.Show(showCtx)
	if err != nil {
		return nil, s.handleShowFailure(ctx, showCtx, a, handle, span, err)
	}

	s.metrics.RecordSheetResult(ctx, "completed")
	s.logger.Info(ctx, "Payment sheet resolved", map[string]interface{}{
		"attempt_id": a.AttemptID(),
	})
	span.SetStatus(otelcodes.Ok, "payment sheet resolved")
	return response, nil
}

// handleShowFailure Showの失敗を種別ごとに処理する
func (s *SheetApplicationService) handleShowFailure(ctx, showCtx context.Context, a *attempt.Attempt, handle sheet.Handle, span trace.Span, err error) error {
	// タイマー先行: シートを中断してタイムアウトとして記録
	if showCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		s.transition(ctx, a, a.MarkTimedOut)
		s.metrics.RecordSheetResult(ctx, "timed_out")
		s.logger.Warn(ctx, "Payment sheet timed out", map[string]interface{}{
			"attempt_id": a.AttemptID(),
			"timeout":    s.sheetTimeout.String(),
		})
		s.abortAfterTimeout(ctx, a, handle)
		span.SetStatus(otelcodes.Ok, "payment sheet timed out")
		return sheet.ErrSheetTimedOut
	}

	// ユーザーがシートを閉じた: 再試行も完了通知も行わない
	if errors.Is(err, sheet.ErrSheetDismissed) {
		s.transition(ctx, a, a.MarkCancelled)
		s.metrics.RecordSheetResult(ctx, "cancelled")
		s.logger.Info(ctx, "Payment sheet dismissed by user", map[string]interface{}{
			"attempt_id": a.AttemptID(),
		})
		span.SetStatus(otelcodes.Ok, "payment sheet dismissed")
		return sheet.ErrSheetDismissed
	}

	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
	s.metrics.RecordSheetResult(ctx, "failed")
	s.logger.Error(ctx, "Failed to show payment sheet", err, map[string]interface{}{
		"attempt_id": a.AttemptID(),
	})
	if markErr := a.MarkFailed(fmt.Sprintf("show failed: %v", err)); markErr == nil {
		if updateErr := s.attemptRepo.Update(ctx, a); updateErr != nil {
			s.logger.Warn(ctx, "Failed to update attempt", map[string]interface{}{
				"attempt_id": a.AttemptID(),
				"error":      updateErr.Error(),
			})
		}
	}
	return fmt.Errorf("failed to show payment sheet: %w", err)
}

// abortAfterTimeout タイムアウト後の中断を一度だけ試みる
// ユーザーが決済操作中の場合は中断が失敗することがあり、それは想定内として扱う
func (s *SheetApplicationService) abortAfterTimeout(ctx context.Context, a *attempt.Attempt, handle sheet.Handle) {
	if err := handle.Abort(ctx); err != nil {
		s.logger.Warn(ctx, "cannot abort, user is mid-payment", map[string]interface{}{
			"attempt_id": a.AttemptID(),
			"error":      err.Error(),
		})
		return
	}

	s.transition(ctx, a, a.MarkAborted)
	s.metrics.RecordSheetResult(ctx, "aborted")
	s.logger.Info(ctx, "Payment request aborted after timeout", map[string]interface{}{
		"attempt_id": a.AttemptID(),
	})
}

// transition 状態遷移を適用して永続化する
func (s *SheetApplicationService) transition(ctx context.Context, a *attempt.Attempt, mark func() error) {
	if err := mark(); err != nil {
		s.logger.Warn(ctx, "Invalid attempt state transition", map[string]interface{}{
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

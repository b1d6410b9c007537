package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/attempt"
	"github.com/kamesh07032005/Gpaydynamic/internal/domain/capability"
	"github.com/kamesh07032005/Gpaydynamic/internal/domain/checkout"
	"github.com/kamesh07032005/Gpaydynamic/internal/domain/sheet"
	"github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/config"
	otelinfra "github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/observability/otel"
)

// CapabilityService 能力判定ステージのポート
type CapabilityService interface {
	// Check セッションの決済可否を判定する
	Check(ctx context.Context, sessionID string, handle sheet.Handle) capability.Decision
}

// SheetService シート表示ステージのポート
type SheetService interface {
	// Present 決済シートを表示し、ユーザーの承認を待つ
	Present(ctx context.Context, a *attempt.Attempt, handle sheet.Handle, decision capability.Decision) (sheet.PaymentResponse, error)
}

// SettlementService 購入確定ステージのポート
type SettlementService interface {
	// Process クレデンシャルを購入エンドポイントへ送信し、判定を処理する
	Process(ctx context.Context, a *attempt.Attempt, response sheet.PaymentResponse) error
}

// CheckoutApplicationService チェックアウトアプリケーションサービス
// トリガーから完了通知までのパイプラインを1回の試行として実行する
type CheckoutApplicationService struct {
	cartGateway       checkout.CartGateway
	paymentApp        sheet.PaymentApp
	capabilityService CapabilityService
	sheetService      SheetService
	settlementService SettlementService
	attemptRepo       attempt.Repository
	paymentConfig     *config.PaymentConfig
	logger            *otelinfra.Logger
	metrics           *otelinfra.Metrics
	tracer            trace.Tracer

	// 同一セッションの多重トリガーを防ぐ登録ガード
	mu sync.Mutex
}

// NewCheckoutApplicationService 新しいCheckoutApplicationServiceを作成
func NewCheckoutApplicationService(
	cartGateway checkout.CartGateway,
	paymentApp sheet.PaymentApp,
	capabilityService CapabilityService,
	sheetService SheetService,
	settlementService SettlementService,
	attemptRepo attempt.Repository,
	paymentConfig *config.PaymentConfig,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *CheckoutApplicationService {
	return &CheckoutApplicationService{
		cartGateway:       cartGateway,
		paymentApp:        paymentApp,
		capabilityService: capabilityService,
		sheetService:      sheetService,
		settlementService: settlementService,
		attemptRepo:       attemptRepo,
		paymentConfig:     paymentConfig,
		logger:            logger,
		metrics:           metrics,
		tracer:            otel.Tracer("checkout-service"),
	}
}

// Trigger チェックアウト試行を登録する
// セッションに進行中の試行がある場合はErrAttemptInProgressを返す
func (s *CheckoutApplicationService) Trigger(ctx context.Context, req *TriggerCheckoutRequest) (*TriggerCheckoutResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutApplicationService.Trigger")
	defer span.End()

	span.SetAttributes(attribute.String("session_id", req.SessionID))

	if req.SessionID == "" {
		err := attempt.ErrInvalidSessionID
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if active, err := s.attemptRepo.FindActiveBySessionID(ctx, req.SessionID); err == nil {
		span.SetAttributes(attribute.String("active_attempt_id", active.AttemptID()))
		span.SetStatus(otelcodes.Error, attempt.ErrAttemptInProgress.Error())
		s.logger.Warn(ctx, "Checkout attempt already in progress", map[string]interface{}{
			"session_id": req.SessionID,
			"attempt_id": active.AttemptID(),
		})
		return nil, attempt.ErrAttemptInProgress
	} else if !errors.Is(err, attempt.ErrAttemptNotFound) {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find active attempt: %w", err)
	}

	a, err := attempt.NewAttempt(uuid.NewString(), req.SessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	if err := s.attemptRepo.Save(ctx, a); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	span.SetAttributes(attribute.String("attempt_id", a.AttemptID()))
	span.SetStatus(otelcodes.Ok, "attempt registered")
	s.logger.Info(ctx, "Checkout attempt registered", map[string]interface{}{
		"session_id": req.SessionID,
		"attempt_id": a.AttemptID(),
	})

	return &TriggerCheckoutResponse{
		AttemptID: a.AttemptID(),
		SessionID: req.SessionID,
		Status:    "accepted",
	}, nil
}

// Execute 登録済みの試行に対してパイプラインを実行する
// 戻り値はなく、結果はログ・メトリクス・試行ジャーナルに記録される
// どのステージの失敗もその試行のみを打ち切り、自動リトライは行わない
func (s *CheckoutApplicationService) Execute(ctx context.Context, attemptID string) {
	ctx, span := s.tracer.Start(ctx, "CheckoutApplicationService.Execute")
	defer span.End()

	span.SetAttributes(attribute.String("attempt_id", attemptID))

	a, err := s.attemptRepo.FindByAttemptID(ctx, attemptID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to load attempt", err, map[string]interface{}{
			"attempt_id": attemptID,
		})
		return
	}
	defer func() {
		s.metrics.RecordAttempt(ctx, a.Status().String())
	}()

	// 1. カート合計の取得
	total, err := s.cartGateway.FetchTotal(ctx)
	if err != nil {
		s.failAttempt(ctx, span, a, "cart total fetch failed", err)
		return
	}

	// 2. 金額の検証ゲート: 数値でない、または0以下なら打ち切る
	amount, err := checkout.ParseAmount(total)
	if err != nil {
		s.failAttempt(ctx, span, a, "invalid cart total", fmt.Errorf("total %q: %w", total, err))
		return
	}

	// 3. ネイティブ決済APIの存在確認: 代替の決済経路は持たない
	if !s.paymentApp.Available(ctx) {
		s.failAttempt(ctx, span, a, "payment app unavailable", sheet.ErrAppUnavailable)
		return
	}

	// 4. 試行ごとに新しいPaymentRequestSpecを構築する
	transactionRef := uuid.NewString()
	spec, err := checkout.NewPaymentRequestSpec(
		s.paymentConfig.SupportedMethod,
		checkout.MerchantData{
			PayeeAddress:    s.paymentConfig.PayeeAddress,
			PayeeName:       s.paymentConfig.PayeeName,
			TransactionRef:  transactionRef,
			CallbackURL:     s.paymentConfig.CallbackURL,
			MerchantCode:    s.paymentConfig.MerchantCode,
			TransactionNote: s.paymentConfig.TransactionNote,
		},
		checkout.TotalSpec{
			Label:    s.paymentConfig.TotalLabel,
			Currency: s.paymentConfig.Currency,
			Amount:   amount,
		},
	)
	if err != nil {
		s.failAttempt(ctx, span, a, "payment request spec invalid", err)
		return
	}

	a.SetTotal(amount.String(), s.paymentConfig.Currency)
	a.SetTransactionRef(transactionRef)
	if err := s.attemptRepo.Update(ctx, a); err != nil {
		s.logger.Warn(ctx, "Failed to update attempt", map[string]interface{}{
			"attempt_id": a.AttemptID(),
			"error":      err.Error(),
		})
	}

	span.SetAttributes(
		attribute.String("payment.amount", amount.String()),
		attribute.String("payment.currency", s.paymentConfig.Currency),
		attribute.String("payment.transaction_ref", transactionRef),
	)

	// 5. ネイティブリクエストの構築
	handle, err := s.paymentApp.NewRequest(ctx, spec)
	if err != nil {
		s.failAttempt(ctx, span, a, "payment request construction failed", err)
		return
	}

	// 6. 能力判定からシート表示へ
	decision := s.capabilityService.Check(ctx, a.SessionID(), handle)
	response, err := s.sheetService.Present(ctx, a, handle, decision)
	if err != nil {
		// 決済不可・キャンセル・タイムアウトの記録はシートサービス側で完了している
		span.SetStatus(otelcodes.Ok, "attempt terminated before settlement")
		s.logger.Info(ctx, "Checkout attempt ended without settlement", map[string]interface{}{
			"attempt_id": a.AttemptID(),
			"reason":     err.Error(),
		})
		return
	}

	// 7. 購入確定と完了通知
	if err := s.settlementService.Process(ctx, a, response); err != nil {
		span.SetStatus(otelcodes.Ok, "settlement failed")
		return
	}

	span.SetStatus(otelcodes.Ok, "checkout attempt completed")
	s.logger.Info(ctx, "Checkout attempt completed", map[string]interface{}{
		"attempt_id": a.AttemptID(),
		"status":     a.Status().String(),
	})
}

// failAttempt 試行を失敗として記録し、診断ログへ出力する
func (s *CheckoutApplicationService) failAttempt(ctx context.Context, span trace.Span, a *attempt.Attempt, reason string, err error) {
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
	s.logger.Error(ctx, "Checkout attempt failed: "+reason, err, map[string]interface{}{
		"attempt_id": a.AttemptID(),
		"session_id": a.SessionID(),
	})

	if markErr := a.MarkFailed(fmt.Sprintf("%s: %v", reason, err)); markErr != nil {
		s.logger.Warn(ctx, "Failed to mark attempt as failed", map[string]interface{}{
			"attempt_id": a.AttemptID(),
			"error":      markErr.Error(),
		})
		return
	}
	if updateErr := s.attemptRepo.Update(ctx, a); updateErr != nil {
		s.logger.Warn(ctx, "Failed to update attempt", map[string]interface{}{
			"attempt_id": a.AttemptID(),
			"error":      updateErr.Error(),
		})
	}
}

package capability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/capability"
	"github.com/kamesh07032005/Gpaydynamic/internal/domain/sheet"
	otelinfra "github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/observability/otel"
)

// CapabilityApplicationService 能力チェックアプリケーションサービス
type CapabilityApplicationService struct {
	store   capability.Store
	logger  *otelinfra.Logger
	metrics *otelinfra.Metrics
	tracer  trace.Tracer
}

// NewCapabilityApplicationService 新しいCapabilityApplicationServiceを作成
func NewCapabilityApplicationService(
	store capability.Store,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *CapabilityApplicationService {
	return &CapabilityApplicationService{
		store:   store,
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer("capability-service"),
	}
}

// Check セッションの決済可否を判定する
// キャッシュ済みの判定があればネイティブチェックを呼ばずにそれを返す
// チェック失敗は不定(Unknown)として扱い、キャッシュしない
func (s *CapabilityApplicationService) Check(ctx context.Context, sessionID string, handle sheet.Handle) capability.Decision {
	ctx, span := s.tracer.Start(ctx, "CapabilityApplicationService.Check")
	defer span.End()

	span.SetAttributes(attribute.String("session_id", sessionID))

	entry, err := s.store.Get(ctx, sessionID)
	if err == nil {
		decision := capability.DecisionFromBool(entry.CanMakePayment)
		span.SetAttributes(
			attribute.Bool("capability.cache_hit", true),
			attribute.String("capability.decision", decision.String()),
		)
		span.SetStatus(otelcodes.Ok, "capability resolved from cache")
		s.metrics.RecordCapabilityCache(ctx, "hit")
		s.logger.Debug(ctx, "Capability resolved from session cache", map[string]interface{}{
			"session_id":       sessionID,
			"can_make_payment": entry.CanMakePayment,
		})
		return decision
	}
	if err != capability.ErrNotCached {
		// キャッシュ障害はミスとして扱い、ネイティブチェックへ進む
		s.logger.Warn(ctx, "Failed to read capability cache", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	// チェック操作を提供しない環境では決済可能とみなす
	canMakePayment := true
	if checker, ok := handle.(sheet.CapabilityChecker); ok {
		result, checkErr := checker.CanMakePayment(ctx)
		if checkErr != nil {
			span.RecordError(checkErr)
			span.SetStatus(otelcodes.Error, checkErr.Error())
			s.metrics.RecordCapabilityCache(ctx, "error")
			s.logger.Error(ctx, "Error calling canMakePayment", checkErr, map[string]interface{}{
				"session_id": sessionID,
			})
			return capability.DecisionUnknown
		}
		canMakePayment = result
	}

	// 判定をセッションキャッシュへ保存（デフォルト値も含む）
	if setErr := s.store.Set(ctx, sessionID, canMakePayment); setErr != nil {
		s.logger.Warn(ctx, "Failed to write capability cache", map[string]interface{}{
			"session_id": sessionID,
			"error":      setErr.Error(),
		})
	}

	decision := capability.DecisionFromBool(canMakePayment)
	span.SetAttributes(
		attribute.Bool("capability.cache_hit", false),
		attribute.String("capability.decision", decision.String()),
	)
	span.SetStatus(otelcodes.Ok, "capability checked")
	s.metrics.RecordCapabilityCache(ctx, "miss")
	s.logger.Info(ctx, "Capability checked", map[string]interface{}{
		"session_id":       sessionID,
		"can_make_payment": canMakePayment,
	})
	return decision
}

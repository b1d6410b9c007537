package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// チェックアウト試行数
	AttemptCount metric.Int64Counter

	// 決済シートの表示結果数
	SheetResultCount metric.Int64Counter

	// 購入エンドポイントの判定数
	VerdictCount metric.Int64Counter

	// 能力キャッシュの参照数
	CapabilityCacheCount metric.Int64Counter

	// 加盟店エンドポイントの応答時間
	MerchantLatency metric.Float64Histogram

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	attemptCount, err := meter.Int64Counter(
		"checkout_attempts_total",
		metric.WithDescription("Total number of checkout attempts by terminal outcome"),
	)
	if err != nil {
		return nil, err
	}

	sheetResultCount, err := meter.Int64Counter(
		"payment_sheet_total",
		metric.WithDescription("Total number of payment sheet presentations by result"),
	)
	if err != nil {
		return nil, err
	}

	verdictCount, err := meter.Int64Counter(
		"purchase_verdicts_total",
		metric.WithDescription("Total number of purchase verdicts by status"),
	)
	if err != nil {
		return nil, err
	}

	capabilityCacheCount, err := meter.Int64Counter(
		"capability_cache_total",
		metric.WithDescription("Total number of capability cache lookups by result"),
	)
	if err != nil {
		return nil, err
	}

	merchantLatency, err := meter.Float64Histogram(
		"merchant_request_seconds",
		metric.WithDescription("Merchant endpoint request duration in seconds"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		AttemptCount:         attemptCount,
		SheetResultCount:     sheetResultCount,
		VerdictCount:         verdictCount,
		CapabilityCacheCount: capabilityCacheCount,
		MerchantLatency:      merchantLatency,
		RequestCount:         requestCount,
		ResponseTime:         responseTime,
		ErrorCount:           errorCount,
	}, nil
}

// RecordAttempt チェックアウト試行の結果を記録
func (m *Metrics) RecordAttempt(ctx context.Context, outcome string) {
	m.AttemptCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("outcome", outcome),
		),
	)
}

// RecordSheetResult 決済シートの表示結果を記録
func (m *Metrics) RecordSheetResult(ctx context.Context, result string) {
	m.SheetResultCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("result", result),
		),
	)
}

// RecordVerdict 購入エンドポイントの判定を記録
func (m *Metrics) RecordVerdict(ctx context.Context, status string) {
	m.VerdictCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("status", status),
		),
	)
}

// RecordCapabilityCache 能力キャッシュの参照結果を記録
func (m *Metrics) RecordCapabilityCache(ctx context.Context, result string) {
	m.CapabilityCacheCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("result", result),
		),
	)
}

// RecordMerchantLatency 加盟店エンドポイントの応答時間を記録
func (m *Metrics) RecordMerchantLatency(ctx context.Context, endpoint string, duration float64) {
	m.MerchantLatency.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("endpoint", endpoint),
		),
	)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}

package merchant

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/checkout"
	"github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/config"
)

// CartGateway 加盟店サーバー実装のCartGateway
type CartGateway struct {
	client *Client
	config *config.MerchantConfig
	tracer trace.Tracer
}

// NewCartGateway 新しいCartGatewayを作成
func NewCartGateway(client *Client, cfg *config.MerchantConfig) *CartGateway {
	return &CartGateway{
		client: client,
		config: cfg,
		tracer: otel.Tracer("cart-gateway"),
	}
}

// FetchTotal カート合計金額を取得
func (g *CartGateway) FetchTotal(ctx context.Context) (string, error) {
	ctx, span := g.tracer.Start(ctx, "CartGateway.FetchTotal")
	defer span.End()

	url := g.config.CartTotalURL()
	span.SetAttributes(
		attribute.String("http.url", url),
		attribute.String("http.method", "POST"),
	)

	status, body, err := g.client.postJSON(ctx, "get-total", url, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return "", fmt.Errorf("failed to fetch cart total: %w", err)
	}

	span.SetAttributes(attribute.Int("http.status_code", status))

	if status < 200 || status >= 300 {
		err := fmt.Errorf("cart total request returned status %d: %w", status, checkout.ErrCartTotalUnavailable)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return "", err
	}

	var response cartTotalResponse
	if err := json.Unmarshal(body, &response); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return "", fmt.Errorf("failed to decode cart total response: %w", err)
	}

	// 失敗時のdataはエラーメッセージ文字列になる
	if !response.Success {
		var errMsg string
		if err := json.Unmarshal(response.Data, &errMsg); err != nil {
			errMsg = string(response.Data)
		}
		err := fmt.Errorf("cart total request failed: %s: %w", errMsg, checkout.ErrCartTotalUnavailable)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return "", err
	}

	var data cartTotalData
	if err := json.Unmarshal(response.Data, &data); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return "", fmt.Errorf("failed to decode cart total data: %w", err)
	}

	span.SetAttributes(attribute.String("cart.total", data.Total))
	span.SetStatus(otelcodes.Ok, "cart total fetched")
	return data.Total, nil
}

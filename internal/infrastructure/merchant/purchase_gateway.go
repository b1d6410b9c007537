package merchant

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/credential"
	"github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/config"
)

// PurchaseGateway 加盟店サーバー実装のPurchaseGateway
type PurchaseGateway struct {
	client *Client
	config *config.MerchantConfig
	tracer trace.Tracer
}

// NewPurchaseGateway 新しいPurchaseGatewayを作成
func NewPurchaseGateway(client *Client, cfg *config.MerchantConfig) *PurchaseGateway {
	return &PurchaseGateway{
		client: client,
		config: cfg,
		tracer: otel.Tracer("purchase-gateway"),
	}
}

// Submit クレデンシャルを購入エンドポイントへ送信し、判定を返す
// HTTPステータスがokでない場合はErrPurchaseRejectedを返す
func (g *PurchaseGateway) Submit(ctx context.Context, cred *credential.Credential) (*credential.Verdict, error) {
	ctx, span := g.tracer.Start(ctx, "PurchaseGateway.Submit")
	defer span.End()

	url := g.config.PurchaseURL()
	span.SetAttributes(
		attribute.String("http.url", url),
		attribute.String("http.method", "POST"),
		attribute.String("credential.method_name", cred.MethodName()),
		attribute.Bool("credential.has_shipping_address", cred.ShippingAddress() != nil),
	)

	payload := newCredentialPayload(cred)

	status, body, err := g.client.postJSON(ctx, "buy", url, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to submit purchase: %w", err)
	}

	span.SetAttributes(attribute.Int("http.status_code", status))

	if status < 200 || status >= 300 {
		err := fmt.Errorf("purchase request returned status %d: %w", status, credential.ErrPurchaseRejected)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	var response verdictResponse
	if err := json.Unmarshal(body, &response); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to decode purchase response: %w", err)
	}

	verdictStatus, err := credential.NewVerdictStatus(response.Status)
	if err != nil {
		err := fmt.Errorf("unexpected verdict status %q: %w", response.Status, credential.ErrMalformedVerdict)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("verdict.status", verdictStatus.String()))
	span.SetStatus(otelcodes.Ok, "purchase submitted")
	return &credential.Verdict{
		Status:  verdictStatus,
		Message: response.Message,
	}, nil
}

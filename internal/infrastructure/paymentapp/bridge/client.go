package bridge

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/checkout"
	"github.com/kamesh07032005/Gpaydynamic/internal/domain/sheet"
	"github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/config"
)

// serviceName ブリッジが公開する決済シートサービス名
const serviceName = "gpaybridge.v1.PaymentSheet"

// ブリッジRPCのメソッドパス
// 全メソッドがgoogle.protobuf.Structを入出力に取るため、生成コードなしで呼び出せる
const (
	methodCreateRequest  = "/" + serviceName + "/CreateRequest"
	methodCanMakePayment = "/" + serviceName + "/CanMakePayment"
	methodShow           = "/" + serviceName + "/Show"
	methodAbort          = "/" + serviceName + "/Abort"
	methodComplete       = "/" + serviceName + "/Complete"
	methodNotify         = "/" + serviceName + "/Notify"
)

// Client 決済ブリッジへのgRPCクライアント
// ブリッジはネイティブ決済シートを端末側で表示し、その結果を返す
type Client struct {
	conn   *grpc.ClientConn
	config *config.BridgeConfig
	tracer trace.Tracer
}

// NewClient 新しいClientを作成
func NewClient(cfg *config.BridgeConfig) (*Client, error) {
	conn, err := grpc.NewClient(
		cfg.Address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                30 * time.Second,
			Timeout:             10 * time.Second,
			PermitWithoutStream: true,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bridge connection: %w", err)
	}

	return &Client{
		conn:   conn,
		config: cfg,
		tracer: otel.Tracer("payment-bridge"),
	}, nil
}

// Close 接続を閉じる
func (c *Client) Close() error {
	return c.conn.Close()
}

// invoke Structベースの単項RPCを実行する
func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error) {
	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Available ブリッジのヘルスチェックで決済APIの利用可否を確認する
// 接続できない環境では決済APIなしとして扱う
func (c *Client) Available(ctx context.Context) bool {
	ctx, span := c.tracer.Start(ctx, "BridgeClient.Available")
	defer span.End()

	if !c.config.Enabled {
		span.SetStatus(otelcodes.Ok, "bridge disabled")
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	resp, err := grpc_health_v1.NewHealthClient(c.conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{
		Service: serviceName,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false
	}

	serving := resp.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING
	span.SetAttributes(attribute.Bool("bridge.serving", serving))
	span.SetStatus(otelcodes.Ok, "health checked")
	return serving
}

// NewRequest 仕様から決済リクエストを構築し、ハンドルを返す
func (c *Client) NewRequest(ctx context.Context, spec *checkout.PaymentRequestSpec) (sheet.Handle, error) {
	ctx, span := c.tracer.Start(ctx, "BridgeClient.NewRequest")
	defer span.End()

	span.SetAttributes(
		attribute.String("payment.supported_method", spec.SupportedMethod()),
		attribute.String("payment.amount", spec.Total().Amount.String()),
		attribute.String("payment.currency", spec.Total().Currency),
	)

	in, err := specToStruct(spec)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to encode payment request: %w", err)
	}

	rpcCtx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	out, err := c.invoke(rpcCtx, methodCreateRequest, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to create payment request: %w", err)
	}

	requestID := stringField(out.GetFields(), "requestId")
	if requestID == "" {
		err := fmt.Errorf("bridge returned no requestId")
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("bridge.request_id", requestID))
	span.SetStatus(otelcodes.Ok, "payment request created")
	return newHandle(c, requestID), nil
}

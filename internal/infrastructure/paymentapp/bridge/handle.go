package bridge

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/sheet"
)

// Handle ブリッジ上に構築された決済リクエストへのハンドル
type Handle struct {
	client    *Client
	requestID string
}

func newHandle(client *Client, requestID string) *Handle {
	return &Handle{
		client:    client,
		requestID: requestID,
	}
}

// requestStruct requestIdのみを持つリクエストを組み立てる
func (h *Handle) requestStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"requestId": h.requestID,
	})
}

// CanMakePayment この環境で決済を完了できるかどうかを問い合わせる
func (h *Handle) CanMakePayment(ctx context.Context) (bool, error) {
	ctx, span := h.client.tracer.Start(ctx, "BridgeHandle.CanMakePayment")
	defer span.End()

	span.SetAttributes(attribute.String("bridge.request_id", h.requestID))

	in, err := h.requestStruct()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to encode request: %w", err)
	}

	rpcCtx, cancel := context.WithTimeout(ctx, h.client.config.RequestTimeout)
	defer cancel()

	out, err := h.client.invoke(rpcCtx, methodCanMakePayment, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to check capability: %w", err)
	}

	result := out.GetFields()["canMakePayment"].GetBoolValue()
	span.SetAttributes(attribute.Bool("bridge.can_make_payment", result))
	span.SetStatus(otelcodes.Ok, "capability checked")
	return result, nil
}

// Show 決済シートを表示し、ユーザーの承認またはキャンセルを待つ
// ユーザーが操作を終えるまでブロックするため、締め切りは呼び出し側のctxで制御する
func (h *Handle) Show(ctx context.Context) (sheet.PaymentResponse, error) {
	ctx, span := h.client.tracer.Start(ctx, "BridgeHandle.Show")
	defer span.End()

	span.SetAttributes(attribute.String("bridge.request_id", h.requestID))

	in, err := h.requestStruct()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	out, err := h.client.invoke(ctx, methodShow, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		// ユーザーによるシートのキャンセルはCanceledで返る
		if status.Code(err) == codes.Canceled && ctx.Err() == nil {
			return nil, sheet.ErrSheetDismissed
		}
		return nil, fmt.Errorf("failed to show payment sheet: %w", err)
	}

	cred, err := credentialFromStruct(out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "payment sheet resolved")
	return newPaymentResponse(h.client, h.requestID, cred), nil
}

// Abort 進行中のリクエストを中断する
// ユーザーが決済操作中の場合、ブリッジはFailedPreconditionを返す
func (h *Handle) Abort(ctx context.Context) error {
	ctx, span := h.client.tracer.Start(ctx, "BridgeHandle.Abort")
	defer span.End()

	span.SetAttributes(attribute.String("bridge.request_id", h.requestID))

	in, err := h.requestStruct()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to encode request: %w", err)
	}

	rpcCtx, cancel := context.WithTimeout(ctx, h.client.config.RequestTimeout)
	defer cancel()

	if _, err := h.client.invoke(rpcCtx, methodAbort, in); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		if status.Code(err) == codes.FailedPrecondition {
			return sheet.ErrCannotAbort
		}
		return fmt.Errorf("failed to abort payment request: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "payment request aborted")
	return nil
}

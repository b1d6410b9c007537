package bridge

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/credential"
	"github.com/kamesh07032005/Gpaydynamic/internal/domain/sheet"
)

// paymentResponse シートでユーザーが承認した決済結果
type paymentResponse struct {
	client    *Client
	requestID string
	cred      *credential.Credential

	mu        sync.Mutex
	completed bool
}

func newPaymentResponse(client *Client, requestID string, cred *credential.Credential) *paymentResponse {
	return &paymentResponse{
		client:    client,
		requestID: requestID,
		cred:      cred,
	}
}

// Credential 承認された決済クレデンシャルを返す
func (r *paymentResponse) Credential() *credential.Credential {
	return r.cred
}

// Complete ネイティブ側へ取引結果を通知し、シートのライフサイクルを閉じる
// 完了通知は一度しか試行できず、2回目以降はErrAlreadyCompletedを返す
func (r *paymentResponse) Complete(ctx context.Context, result sheet.CompletionResult) error {
	r.mu.Lock()
	if r.completed {
		r.mu.Unlock()
		return sheet.ErrAlreadyCompleted
	}
	r.completed = true
	r.mu.Unlock()

	ctx, span := r.client.tracer.Start(ctx, "BridgePaymentResponse.Complete")
	defer span.End()

	span.SetAttributes(
		attribute.String("bridge.request_id", r.requestID),
		attribute.String("bridge.completion_result", result.String()),
	)

	in, err := structpb.NewStruct(map[string]interface{}{
		"requestId": r.requestID,
		"result":    result.String(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to encode completion: %w", err)
	}

	rpcCtx, cancel := context.WithTimeout(ctx, r.client.config.RequestTimeout)
	defer cancel()

	if _, err := r.client.invoke(rpcCtx, methodComplete, in); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to complete payment: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "payment completed")
	return nil
}

package handler

import (
	"context"
	"sync"

	checkoutapp "github.com/kamesh07032005/Gpaydynamic/internal/application/checkout"
	"github.com/kamesh07032005/Gpaydynamic/internal/domain/attempt"

	"github.com/stretchr/testify/mock"
)

// MockAttemptRepository モックAttemptリポジトリ
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Save(ctx context.Context, a *attempt.Attempt) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAttemptRepository) Update(ctx context.Context, a *attempt.Attempt) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAttemptRepository) FindByAttemptID(ctx context.Context, attemptID string) (*attempt.Attempt, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attempt.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) FindBySessionID(ctx context.Context, sessionID string, limit, offset int) ([]*attempt.Attempt, error) {
	args := m.Called(ctx, sessionID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*attempt.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) FindActiveBySessionID(ctx context.Context, sessionID string) (*attempt.Attempt, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attempt.Attempt), args.Error(1)
}

// MockCheckoutService モックチェックアウトサービス
// Executeはハンドラーからgoroutineで起動されるため、完了待ち用のWaitGroupを持つ
type MockCheckoutService struct {
	mock.Mock
	executed sync.WaitGroup
}

func (m *MockCheckoutService) Trigger(ctx context.Context, req *checkoutapp.TriggerCheckoutRequest) (*checkoutapp.TriggerCheckoutResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkoutapp.TriggerCheckoutResponse), args.Error(1)
}

func (m *MockCheckoutService) Execute(ctx context.Context, attemptID string) {
	m.Called(ctx, attemptID)
	m.executed.Done()
}

// ExpectExecute Executeの呼び出しを1回分待てるようにする
func (m *MockCheckoutService) ExpectExecute(attemptID string) {
	m.executed.Add(1)
	m.On("Execute", mock.Anything, attemptID).Return()
}

// WaitExecuted Executeの完了を待つ
func (m *MockCheckoutService) WaitExecuted() {
	m.executed.Wait()
}

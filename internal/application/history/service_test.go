package history

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"

	"gift-server/internal/domain/transaction"
	otelinfra "gift-server/internal/infrastructure/observability/otel"
)

// MockTransactionRepository モックトランザクションリポジトリ
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Save(ctx context.Context, t *transaction.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByTransactionID(ctx context.Context, transactionID string) (*transaction.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func newTestService(repo *MockTransactionRepository) *HistoryApplicationService {
	otel.SetMeterProvider(noop.NewMeterProvider())
	tracer := otel.Tracer("test")
	logger := otelinfra.NewLogger(tracer)
	metrics, _ := otelinfra.NewMetrics("test")
	return NewHistoryApplicationService(repo, logger, metrics)
}

func TestHistoryApplicationService_GetTransactionHistory(t *testing.T) {
	giftTxn := transaction.MustNewTransaction("txn1", "user123", transaction.TransactionTypeGift, 100, 0, transaction.TransactionStatusCompleted)
	depositTxn := transaction.MustNewTransaction("txn2", "user123", transaction.TransactionTypeDeposit, 200, 0, transaction.TransactionStatusCompleted)

	tests := []struct {
		name       string
		req        *GetTransactionHistoryRequest
		setupMocks func(*MockTransactionRepository)
		wantCount  int
		wantError  bool
	}{
		{
			name: "正常系: 履歴を取得",
			req: &GetTransactionHistoryRequest{
				AccountID: "user123",
				Limit:     10,
			},
			setupMocks: func(mtr *MockTransactionRepository) {
				mtr.On("FindByAccountID", mock.Anything, "user123", 10, 0).
					Return([]*transaction.Transaction{giftTxn, depositTxn}, nil)
			},
			wantCount: 2,
		},
		{
			name: "正常系: トランザクションタイプでフィルタ",
			req: &GetTransactionHistoryRequest{
				AccountID:       "user123",
				Limit:           10,
				TransactionType: "gift",
			},
			setupMocks: func(mtr *MockTransactionRepository) {
				mtr.On("FindByAccountID", mock.Anything, "user123", 10, 0).
					Return([]*transaction.Transaction{giftTxn, depositTxn}, nil)
			},
			wantCount: 1,
		},
		{
			name: "正常系: 不正なLimitはデフォルト値に補正",
			req: &GetTransactionHistoryRequest{
				AccountID: "user123",
				Limit:     -1,
				Offset:    -5,
			},
			setupMocks: func(mtr *MockTransactionRepository) {
				mtr.On("FindByAccountID", mock.Anything, "user123", 50, 0).
					Return([]*transaction.Transaction{}, nil)
			},
			wantCount: 0,
		},
		{
			name: "正常系: Limitの上限は100",
			req: &GetTransactionHistoryRequest{
				AccountID: "user123",
				Limit:     500,
			},
			setupMocks: func(mtr *MockTransactionRepository) {
				mtr.On("FindByAccountID", mock.Anything, "user123", 100, 0).
					Return([]*transaction.Transaction{}, nil)
			},
			wantCount: 0,
		},
		{
			name: "異常系: DBエラー",
			req: &GetTransactionHistoryRequest{
				AccountID: "user123",
				Limit:     10,
			},
			setupMocks: func(mtr *MockTransactionRepository) {
				mtr.On("FindByAccountID", mock.Anything, "user123", 10, 0).
					Return(nil, errors.New("db error"))
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockTransactionRepository)
			tt.setupMocks(repo)

			svc := newTestService(repo)
			got, err := svc.GetTransactionHistory(context.Background(), tt.req)

			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Len(t, got.Transactions, tt.wantCount)
				assert.Equal(t, tt.wantCount, got.Total)
			}

			repo.AssertExpectations(t)
		})
	}
}

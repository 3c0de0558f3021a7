package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	giftapp "gift-server/internal/application/gift"
	"gift-server/internal/domain/balance"
	"gift-server/internal/domain/claim"
	"gift-server/internal/domain/giftcode"
	"gift-server/internal/domain/service"
	"gift-server/internal/infrastructure/config"
	otelinfra "gift-server/internal/infrastructure/observability/otel"
	restmiddleware "gift-server/internal/presentation/rest/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newGiftHandlerService(claimRepo *MockClaimRepository, balanceRepo *MockBalanceRepository, txnRepo *MockTransactionRepository, txManager *MockTransactionManager) *giftapp.GiftApplicationService {
	tracer := noop.NewTracerProvider().Tracer("test")
	logger := otelinfra.NewLogger(tracer)
	metrics, _ := otelinfra.NewMetrics("test")

	registry := giftcode.NewRegistry([]giftcode.Definition{
		{Code: "WELCOME", Amount: 100, Message: "ようこそ", Visible: true},
		{Code: "HIDDEN", Amount: 10, Visible: false},
	})

	return giftapp.NewGiftApplicationService(
		registry,
		claimRepo,
		balanceRepo,
		txnRepo,
		txManager,
		service.NewEligibilityService(),
		&config.GiftConfig{Enabled: true, PaidInto: 0, BankEnabled: true},
		logger,
		metrics,
	)
}

// invokeWithErrorHandler エラーハンドリングミドルウェア越しにハンドラーを実行する
func invokeWithErrorHandler(t *testing.T, c echo.Context, fn echo.HandlerFunc) {
	t.Helper()

	tracer := noop.NewTracerProvider().Tracer("test")
	logger := otelinfra.NewLogger(tracer)

	middlewareFunc := restmiddleware.ErrorHandlerMiddleware(logger)
	require.NoError(t, middlewareFunc(fn)(c))
}

func TestGiftHandler_AcceptGift(t *testing.T) {
	tests := []struct {
		name             string
		tokenUserID      string
		requestBody      map[string]interface{}
		setupMock        func(*MockClaimRepository, *MockBalanceRepository, *MockTransactionManager)
		expectedStatus   int
		validateResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "正常系: ギフトコード受け取り成功",
			tokenUserID: "user123",
			requestBody: map[string]interface{}{
				"code": "WELCOME",
			},
			setupMock: func(mcr *MockClaimRepository, mbr *MockBalanceRepository, mtx *MockTransactionManager) {
				record := claim.MustNewClaimRecord("user123", nil)
				mcr.On("GetClaims", mock.Anything, "user123").Return(record, nil)
				mtx.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				mbr.On("FindByAccountIDAndDestination", mock.Anything, "user123", balance.DestinationWallet).
					Return(balance.MustNewBalance("user123", balance.DestinationWallet, 400, 1), nil)
				mbr.On("Save", mock.Anything, mock.Anything).Return(nil)
				mcr.On("SaveClaims", mock.Anything, record).Return(nil)
			},
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var response map[string]interface{}
				err := json.Unmarshal(rec.Body.Bytes(), &response)
				require.NoError(t, err)
				assert.Equal(t, "welcome", response["code"])
				assert.Equal(t, "100", response["amount"])
				assert.Equal(t, "wallet", response["destination"])
				assert.Equal(t, "500", response["balance_after"])
			},
		},
		{
			name:        "異常系: コードが空",
			tokenUserID: "user123",
			requestBody: map[string]interface{}{},
			setupMock: func(mcr *MockClaimRepository, mbr *MockBalanceRepository, mtx *MockTransactionManager) {
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "異常系: 存在しないコード",
			tokenUserID: "user123",
			requestBody: map[string]interface{}{
				"code": "NOPE",
			},
			setupMock: func(mcr *MockClaimRepository, mbr *MockBalanceRepository, mtx *MockTransactionManager) {
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "異常系: 受け取り済みのコード",
			tokenUserID: "user123",
			requestBody: map[string]interface{}{
				"code": "WELCOME",
			},
			setupMock: func(mcr *MockClaimRepository, mbr *MockBalanceRepository, mtx *MockTransactionManager) {
				record := claim.MustNewClaimRecord("user123", []string{"welcome"})
				mcr.On("GetClaims", mock.Anything, "user123").Return(record, nil)
			},
			expectedStatus: http.StatusNotFound, // 存在しないコードと区別できないレスポンス
		},
		{
			name:        "異常系: トークンなし",
			tokenUserID: "",
			requestBody: map[string]interface{}{
				"code": "WELCOME",
			},
			setupMock: func(mcr *MockClaimRepository, mbr *MockBalanceRepository, mtx *MockTransactionManager) {
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			mockClaimRepo := new(MockClaimRepository)
			mockBalanceRepo := new(MockBalanceRepository)
			mockTransactionRepo := new(MockTransactionRepository)
			mockTxManager := new(MockTransactionManager)

			tt.setupMock(mockClaimRepo, mockBalanceRepo, mockTxManager)

			handler := NewGiftHandler(newGiftHandlerService(mockClaimRepo, mockBalanceRepo, mockTransactionRepo, mockTxManager))

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/gifts/accept", bytes.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.tokenUserID != "" {
				c.Set("user_id", tt.tokenUserID)
			}

			invokeWithErrorHandler(t, c, handler.AcceptGift)
			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.validateResponse != nil {
				tt.validateResponse(t, rec)
			}
		})
	}
}

func TestGiftHandler_PreviewGift(t *testing.T) {
	tests := []struct {
		name             string
		tokenUserID      string
		queryCode        string
		setupMock        func(*MockClaimRepository)
		expectedStatus   int
		validateResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "正常系: コード確認成功",
			tokenUserID: "user123",
			queryCode:   "WELCOME",
			setupMock: func(mcr *MockClaimRepository) {
				record := claim.MustNewClaimRecord("user123", nil)
				mcr.On("GetClaims", mock.Anything, "user123").Return(record, nil)
			},
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var response map[string]interface{}
				err := json.Unmarshal(rec.Body.Bytes(), &response)
				require.NoError(t, err)
				assert.Equal(t, "welcome", response["code"])
				assert.Equal(t, "100", response["amount"])
				assert.Equal(t, "ようこそ", response["message"])
			},
		},
		{
			name:        "異常系: コードパラメータなし",
			tokenUserID: "user123",
			queryCode:   "",
			setupMock: func(mcr *MockClaimRepository) {
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "異常系: 受け取り済みのコード",
			tokenUserID: "user123",
			queryCode:   "WELCOME",
			setupMock: func(mcr *MockClaimRepository) {
				record := claim.MustNewClaimRecord("user123", []string{"welcome"})
				mcr.On("GetClaims", mock.Anything, "user123").Return(record, nil)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			mockClaimRepo := new(MockClaimRepository)

			tt.setupMock(mockClaimRepo)

			handler := NewGiftHandler(newGiftHandlerService(mockClaimRepo, new(MockBalanceRepository), new(MockTransactionRepository), new(MockTransactionManager)))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/gifts/preview?code="+tt.queryCode, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.tokenUserID != "" {
				c.Set("user_id", tt.tokenUserID)
			}

			invokeWithErrorHandler(t, c, handler.PreviewGift)
			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.validateResponse != nil {
				tt.validateResponse(t, rec)
			}
		})
	}
}

func TestGiftHandler_GetAdvertisedGifts(t *testing.T) {
	t.Run("正常系: 受け取り可能なギフト一覧を取得", func(t *testing.T) {
		e := echo.New()
		mockClaimRepo := new(MockClaimRepository)

		record := claim.MustNewClaimRecord("user123", nil)
		mockClaimRepo.On("GetClaims", mock.Anything, "user123").Return(record, nil)

		handler := NewGiftHandler(newGiftHandlerService(mockClaimRepo, new(MockBalanceRepository), new(MockTransactionRepository), new(MockTransactionManager)))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/gifts", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user_id", "user123")

		invokeWithErrorHandler(t, c, handler.GetAdvertisedGifts)
		assert.Equal(t, http.StatusOK, rec.Code)

		var response AdvertisedGiftsResponse
		err := json.Unmarshal(rec.Body.Bytes(), &response)
		require.NoError(t, err)

		// 非表示コードは一覧に含まれない
		require.Len(t, response.Gifts, 1)
		assert.Equal(t, "welcome", response.Gifts[0].Code)
		assert.Equal(t, "100", response.Gifts[0].Amount)
		assert.Equal(t, "/?monetarygift=welcome", response.Gifts[0].URL)
	})

	t.Run("異常系: トークンなし", func(t *testing.T) {
		e := echo.New()
		handler := NewGiftHandler(newGiftHandlerService(new(MockClaimRepository), new(MockBalanceRepository), new(MockTransactionRepository), new(MockTransactionManager)))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/gifts", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		invokeWithErrorHandler(t, c, handler.GetAdvertisedGifts)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

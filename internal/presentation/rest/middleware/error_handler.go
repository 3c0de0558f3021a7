package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	otelinfra "gift-server/internal/infrastructure/observability/otel"

	giftapp "gift-server/internal/application/gift"
	"gift-server/internal/domain/account"
	"gift-server/internal/domain/balance"
	"gift-server/internal/domain/claim"
	"gift-server/internal/domain/giftcode"
	"gift-server/internal/domain/transaction"
)

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// giftNotAvailableMessage 受け取れない理由を区別させないための共通メッセージ
// コードの存在・対象者・受け取り済みの別を外部から探られないようにする
const giftNotAvailableMessage = "the gift code either isn't for you, doesn't exist, or has already been accepted"

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			// エラーハンドリング
			return handleError(c, err, logger)
		}
	}
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	// 受け取れない系のエラーは理由を問わず同一のレスポンスへ畳み込む
	if errors.Is(err, giftcode.ErrCodeNotFound) ||
		errors.Is(err, giftcode.ErrNotEligible) ||
		errors.Is(err, giftcode.ErrAlreadyClaimed) {
		logger.Warn(ctx, "Gift code not available", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "gift_not_available",
			Message: giftNotAvailableMessage,
		})
	}

	if errors.Is(err, giftcode.ErrInvalidAmount) {
		logger.Warn(ctx, "Gift code has invalid amount", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "invalid_gift_amount",
			Message: err.Error(),
		})
	}

	if errors.Is(err, giftapp.ErrGiftsDisabled) {
		logger.Warn(ctx, "Gifts are disabled", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "gifts_disabled",
			Message: err.Error(),
		})
	}

	if errors.Is(err, balance.ErrCreditFailed) {
		logger.Error(ctx, "Failed to credit balance", err, map[string]interface{}{
			"path": c.Request().URL.Path,
		})
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "credit_failed",
			Message: "failed to credit balance, nothing was changed",
		})
	}

	if errors.Is(err, claim.ErrPersistFailed) {
		// 入金は成功しているため、呼び出し側が状況を区別できるコードで返す
		logger.Error(ctx, "Failed to persist claim record after credit", err, map[string]interface{}{
			"path": c.Request().URL.Path,
		})
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "claim_persist_failed",
			Message: "the gift was credited but the claim record could not be saved",
		})
	}

	if errors.Is(err, account.ErrInvalidAccountID) || errors.Is(err, claim.ErrInvalidAccountID) {
		logger.Warn(ctx, "Invalid account id", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_account_id",
			Message: err.Error(),
		})
	}

	if errors.Is(err, balance.ErrBalanceNotFound) {
		logger.Warn(ctx, "Balance not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "balance_not_found",
			Message: err.Error(),
		})
	}

	if errors.Is(err, transaction.ErrTransactionNotFound) {
		logger.Warn(ctx, "Transaction not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "transaction_not_found",
			Message: err.Error(),
		})
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		message := ""
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})
	}

	// 予期しないエラー
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_server_error",
		Message: "An unexpected error occurred",
	})
}

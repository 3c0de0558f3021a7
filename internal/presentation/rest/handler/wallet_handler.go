package handler

import (
	"net/http"
	"strconv"

	walletapp "gift-server/internal/application/wallet"

	"github.com/labstack/echo/v4"
)

// WalletHandler 残高関連ハンドラー
type WalletHandler struct {
	walletService *walletapp.WalletApplicationService
}

// NewWalletHandler 新しいWalletHandlerを作成
func NewWalletHandler(walletService *walletapp.WalletApplicationService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// GetBalance 残高取得ハンドラー（ユーザーAPI用）
// @Summary 残高を取得
// @Description 自分のウォレットと銀行の残高を取得します
// @Tags wallet
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} BalanceResponse "残高取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /me/balance [get]
func (h *WalletHandler) GetBalance(c echo.Context) error {
	// トークンからuser_idを取得
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "user_id not found in token")
	}

	return h.getBalanceInternal(c, userID)
}

// GetBalanceAdmin 残高取得ハンドラー（管理API用）
// @Summary 残高を取得（管理API）
// @Description 指定されたユーザーのウォレットと銀行の残高を取得します
// @Tags admin
// @Accept json
// @Produce json
// @Param user_id path string true "ユーザーID" example(user123)
// @Param X-API-Key header string true "APIキー"
// @Success 200 {object} BalanceResponse "残高取得成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/users/{user_id}/balance [get]
func (h *WalletHandler) GetBalanceAdmin(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	return h.getBalanceInternal(c, userID)
}

// getBalanceInternal 残高取得の内部実装
func (h *WalletHandler) getBalanceInternal(c echo.Context, userID string) error {
	req := &walletapp.GetBalanceRequest{
		AccountID: userID,
	}

	resp, err := h.walletService.GetBalance(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, BalanceResponse{
		UserID: resp.AccountID,
		Balances: BalanceItem{
			Wallet: strconv.FormatInt(resp.Balances["wallet"], 10),
			Bank:   strconv.FormatInt(resp.Balances["bank"], 10),
		},
	})
}

package handler

import (
	"net/http"
	"strconv"

	giftapp "gift-server/internal/application/gift"

	"github.com/labstack/echo/v4"
)

// AdminHandler 管理API関連ハンドラー
type AdminHandler struct {
	giftService *giftapp.GiftApplicationService
}

// NewAdminHandler 新しいAdminHandlerを作成
func NewAdminHandler(giftService *giftapp.GiftApplicationService) *AdminHandler {
	return &AdminHandler{
		giftService: giftService,
	}
}

// ListCodes コード定義一覧ハンドラー（管理API用）
// @Summary コード定義一覧を取得（管理API)
// @Description 非表示コードを含む全ギフトコード定義の概要を取得します
// @Tags admin
// @Accept json
// @Produce json
// @Param X-API-Key header string true "APIキー"
// @Success 200 {object} CodeListResponse "一覧取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/codes [get]
func (h *AdminHandler) ListCodes(c echo.Context) error {
	resp, err := h.giftService.ListCodes(c.Request().Context())
	if err != nil {
		return err
	}

	codes := make([]CodeSummaryItem, len(resp.Codes))
	for i, code := range resp.Codes {
		codes[i] = CodeSummaryItem{
			Code:       code.Code,
			Amount:     strconv.FormatInt(code.Amount, 10),
			Message:    code.Message,
			Recipients: code.Recipients,
			Groups:     code.Groups,
			Visible:    code.Visible,
		}
	}

	return c.JSON(http.StatusOK, CodeListResponse{Codes: codes})
}

// ReloadCodes コード定義再読み込みハンドラー（管理API用）
// @Summary コード定義を再読み込み（管理API)
// @Description コード定義ファイルを再読み込みしてレジストリを差し替えます。失敗時は現在の定義を維持します
// @Tags admin
// @Accept json
// @Produce json
// @Param X-API-Key header string true "APIキー"
// @Success 200 {object} ReloadCodesResponse "再読み込み成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 500 {object} ErrorResponse "読み込み失敗"
// @Router /admin/codes/reload [post]
func (h *AdminHandler) ReloadCodes(c echo.Context) error {
	resp, err := h.giftService.ReloadCodes(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ReloadCodesResponse{Count: resp.Count})
}

// CompactClaims 受け取り記録整理ハンドラー（管理API用）
// @Summary 受け取り記録を整理（管理API)
// @Description 指定されたユーザーの受け取り記録から、定義に存在しないコードを取り除きます
// @Tags admin
// @Accept json
// @Produce json
// @Param user_id path string true "ユーザーID" example(user123)
// @Param X-API-Key header string true "APIキー"
// @Success 200 {object} CompactClaimsResponse "整理成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/users/{user_id}/claims/compact [post]
func (h *AdminHandler) CompactClaims(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	resp, err := h.giftService.CompactClaims(c.Request().Context(), &giftapp.CompactClaimsRequest{
		AccountID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CompactClaimsResponse{
		UserID:    resp.AccountID,
		Removed:   resp.Removed,
		Remaining: resp.Remaining,
	})
}

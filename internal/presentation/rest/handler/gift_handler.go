package handler

import (
	"net/http"
	"strconv"

	giftapp "gift-server/internal/application/gift"

	"github.com/labstack/echo/v4"
)

// GiftHandler ギフトコード関連ハンドラー
type GiftHandler struct {
	giftService *giftapp.GiftApplicationService
}

// NewGiftHandler 新しいGiftHandlerを作成
func NewGiftHandler(giftService *giftapp.GiftApplicationService) *GiftHandler {
	return &GiftHandler{
		giftService: giftService,
	}
}

// GetAdvertisedGifts 受け取り可能なギフト一覧ハンドラー
// @Summary 受け取り可能なギフト一覧を取得
// @Description 自分が受け取れる告知対象のギフトコード一覧を取得します
// @Tags gift
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} AdvertisedGiftsResponse "一覧取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /gifts [get]
func (h *GiftHandler) GetAdvertisedGifts(c echo.Context) error {
	userID, groupIDs, err := identityFromToken(c)
	if err != nil {
		return err
	}

	resp, err := h.giftService.Advertised(c.Request().Context(), &giftapp.AdvertisedRequest{
		AccountID: userID,
		GroupIDs:  groupIDs,
	})
	if err != nil {
		return err
	}

	gifts := make([]AdvertisedGiftItem, len(resp.Gifts))
	for i, g := range resp.Gifts {
		gifts[i] = AdvertisedGiftItem{
			Code:    g.Code,
			Amount:  strconv.FormatInt(g.Amount, 10),
			Message: g.Message,
			URL:     g.URL,
		}
	}

	return c.JSON(http.StatusOK, AdvertisedGiftsResponse{Gifts: gifts})
}

// PreviewGift ギフトコード確認ハンドラー
// @Summary ギフトコードの内容を確認
// @Description ギフトコードの金額とメッセージを確認します。受け取りは行いません
// @Tags gift
// @Accept json
// @Produce json
// @Security Bearer
// @Param code query string true "ギフトコード" example(summer2024)
// @Success 200 {object} GiftPreviewResponse "確認成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "受け取れないコード"
// @Router /gifts/preview [get]
func (h *GiftHandler) PreviewGift(c echo.Context) error {
	userID, groupIDs, err := identityFromToken(c)
	if err != nil {
		return err
	}

	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code is required")
	}

	resp, err := h.giftService.Preview(c.Request().Context(), &giftapp.PreviewRequest{
		AccountID: userID,
		GroupIDs:  groupIDs,
		Code:      code,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, GiftPreviewResponse{
		Code:    resp.Code,
		Amount:  strconv.FormatInt(resp.Amount, 10),
		Message: resp.Message,
	})
}

// AcceptGift ギフトコード受け取りハンドラー
// @Summary ギフトコードを受け取る
// @Description ギフトコードを受け取り、残高へ入金します。同じコードは1回だけ受け取れます
// @Tags gift
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body GiftAcceptRequest true "受け取りリクエスト"
// @Success 200 {object} GiftAcceptResponse "受け取り成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Failure 404 {object} ErrorResponse "受け取れないコード"
// @Router /gifts/accept [post]
func (h *GiftHandler) AcceptGift(c echo.Context) error {
	userID, groupIDs, err := identityFromToken(c)
	if err != nil {
		return err
	}

	var reqBody GiftAcceptRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if reqBody.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code is required")
	}

	resp, err := h.giftService.Redeem(c.Request().Context(), &giftapp.RedeemRequest{
		AccountID: userID,
		GroupIDs:  groupIDs,
		Code:      reqBody.Code,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, GiftAcceptResponse{
		Code:         resp.Code,
		Amount:       strconv.FormatInt(resp.Amount, 10),
		Message:      resp.Message,
		Destination:  resp.Destination,
		BalanceAfter: strconv.FormatInt(resp.BalanceAfter, 10),
	})
}

// identityFromToken 認証ミドルウェアが設定したユーザーIDとグループIDを取り出す
func identityFromToken(c echo.Context) (string, []string, error) {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return "", nil, echo.NewHTTPError(http.StatusUnauthorized, "user_id not found in token")
	}
	groupIDs, _ := c.Get("group_ids").([]string)
	return userID, groupIDs, nil
}

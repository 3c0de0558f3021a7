package handler

// GiftPreviewResponse ギフトコード確認レスポンス
// @Description ギフトコード確認レスポンス
type GiftPreviewResponse struct {
	Code    string `json:"code" example:"summer2024"`
	Amount  string `json:"amount" example:"500"`
	Message string `json:"message" example:"夏のキャンペーンです"`
}

// GiftAcceptRequest ギフトコード受け取りリクエスト
// @Description ギフトコード受け取りリクエスト
type GiftAcceptRequest struct {
	Code string `json:"code" example:"summer2024"`
}

// GiftAcceptResponse ギフトコード受け取りレスポンス
// @Description ギフトコード受け取りレスポンス
type GiftAcceptResponse struct {
	Code         string `json:"code" example:"summer2024"`
	Amount       string `json:"amount" example:"500"`
	Message      string `json:"message" example:"夏のキャンペーンです"`
	Destination  string `json:"destination" example:"wallet" enums:"wallet,bank"`
	BalanceAfter string `json:"balance_after" example:"1500"`
}

// AdvertisedGiftItem 告知対象のギフト
// @Description 告知対象のギフト
type AdvertisedGiftItem struct {
	Code    string `json:"code" example:"summer2024"`
	Amount  string `json:"amount" example:"500"`
	Message string `json:"message" example:"夏のキャンペーンです"`
	URL     string `json:"url" example:"/?monetarygift=summer2024"`
}

// AdvertisedGiftsResponse 受け取り可能なギフト一覧レスポンス
// @Description 受け取り可能なギフト一覧レスポンス
type AdvertisedGiftsResponse struct {
	Gifts []AdvertisedGiftItem `json:"gifts"`
}

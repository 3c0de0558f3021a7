package handler

// BalanceItem 入金先ごとの残高
// @Description 入金先ごとの残高
type BalanceItem struct {
	Wallet string `json:"wallet" example:"1000"`
	Bank   string `json:"bank" example:"500"`
}

// BalanceResponse 残高レスポンス
// @Description 残高レスポンス
type BalanceResponse struct {
	UserID   string      `json:"user_id" example:"user123"`
	Balances BalanceItem `json:"balances"`
}

package wallet

// GetBalanceRequest 残高取得リクエスト
type GetBalanceRequest struct {
	AccountID string
}

// GetBalanceResponse 残高取得レスポンス
type GetBalanceResponse struct {
	AccountID string
	Balances  map[string]int64 // "wallet", "bank"
}

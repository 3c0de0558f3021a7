package handler

// TransactionItem トランザクションアイテム
// @Description トランザクションアイテム
type TransactionItem struct {
	TransactionID     string `json:"transaction_id" example:"txn_123"`
	TransactionType   string `json:"transaction_type" example:"gift" enums:"deposit,withdraw,interest,gift"`
	Amount            string `json:"amount" example:"500"`
	CounterpartAmount string `json:"counterpart_amount" example:"0"`
	Status            string `json:"status" example:"completed"`
	CreatedAt         string `json:"created_at" example:"2024-08-01T12:00:00Z"`
}

// TransactionHistoryResponse トランザクション履歴レスポンス
// @Description トランザクション履歴レスポンス
type TransactionHistoryResponse struct {
	Transactions []TransactionItem `json:"transactions"`
	Total        int               `json:"total" example:"3"`
	Limit        int               `json:"limit" example:"50"`
	Offset       int               `json:"offset" example:"0"`
}

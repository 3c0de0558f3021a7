package history

import "gift-server/internal/domain/transaction"

// GetTransactionHistoryRequest 取引履歴取得リクエスト
type GetTransactionHistoryRequest struct {
	AccountID       string
	Limit           int
	Offset          int
	TransactionType string // optional: "deposit", "withdraw", "interest", "gift"
}

// GetTransactionHistoryResponse 取引履歴取得レスポンス
type GetTransactionHistoryResponse struct {
	Transactions []*transaction.Transaction
	Total        int
	Limit        int
	Offset       int
}

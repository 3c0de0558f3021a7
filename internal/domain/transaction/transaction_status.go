package transaction

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStatus ステータスが無効
	ErrInvalidStatus = errors.New("invalid transaction status")
)

// TransactionStatus トランザクションステータスを表す値オブジェクト
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed" // 完了
	TransactionStatusFailed    TransactionStatus = "failed"    // 失敗
)

// NewTransactionStatus 新しいTransactionStatusを作成
func NewTransactionStatus(s string) (TransactionStatus, error) {
	switch s {
	case "completed", "failed":
		return TransactionStatus(s), nil
	default:
		return "", fmt.Errorf("invalid transaction status: %s", s)
	}
}

// String 文字列表現を返す
func (ts TransactionStatus) String() string {
	return string(ts)
}

// Valid 有効なステータスかどうかを返す
func (ts TransactionStatus) Valid() bool {
	return ts == TransactionStatusCompleted || ts == TransactionStatusFailed
}

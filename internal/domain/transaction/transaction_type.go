package transaction

import (
	"fmt"
)

// TransactionType トランザクションタイプを表す値オブジェクト
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "deposit"  // 預け入れ
	TransactionTypeWithdraw TransactionType = "withdraw" // 引き出し
	TransactionTypeInterest TransactionType = "interest" // 利息
	TransactionTypeGift     TransactionType = "gift"     // ギフトコード入金
)

// NewTransactionType 新しいTransactionTypeを作成
func NewTransactionType(s string) (TransactionType, error) {
	switch s {
	case "deposit", "withdraw", "interest", "gift":
		return TransactionType(s), nil
	default:
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
}

// String 文字列表現を返す
func (tt TransactionType) String() string {
	return string(tt)
}

// Valid 有効なトランザクションタイプかどうかを返す
func (tt TransactionType) Valid() bool {
	switch tt {
	case TransactionTypeDeposit, TransactionTypeWithdraw, TransactionTypeInterest, TransactionTypeGift:
		return true
	default:
		return false
	}
}

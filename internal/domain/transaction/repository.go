package transaction

import (
	"context"
	"errors"
)

var (
	// ErrTransactionNotFound トランザクションが見つからない
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionRepository 銀行取引台帳リポジトリインターフェース
type TransactionRepository interface {
	// Save 取引エントリを保存
	Save(ctx context.Context, t *Transaction) error

	// FindByTransactionID トランザクションIDで取引を取得
	FindByTransactionID(ctx context.Context, transactionID string) (*Transaction, error)

	// FindByAccountID アカウントの取引履歴を新しい順で取得
	FindByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*Transaction, error)
}

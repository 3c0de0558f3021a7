package transaction

import (
	"errors"
	"regexp"
	"time"
)

var (
	// ErrInvalidTransactionID トランザクションIDが無効
	ErrInvalidTransactionID = errors.New("invalid transaction id")
	// ErrInvalidAccountID アカウントIDが無効
	ErrInvalidAccountID = errors.New("invalid account id")
	// ErrInvalidAmount 金額が無効
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrAmountTooLarge 金額が大きすぎる
	ErrAmountTooLarge = errors.New("amount too large")
	// ErrNegativeCounterpart 相手方金額が負
	ErrNegativeCounterpart = errors.New("negative counterpart amount")
)

const (
	// MaxAmount 最大金額 (10兆)
	MaxAmount = 10_000_000_000_000
)

var (
	idRegex        = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)
	accountIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)
)

// Transaction 銀行取引エンティティ（銀行側の記録台帳への1エントリ）
// ギフト入金では相手方金額は常に0を記録する
type Transaction struct {
	transactionID     string
	accountID         string
	transactionType   TransactionType
	amount            int64 // 整数値（小数点なし）
	counterpartAmount int64 // 相手方金額（ギフトでは0）
	status            TransactionStatus
	createdAt         time.Time
	updatedAt         time.Time
}

// NewTransaction 新しいTransactionエンティティを作成
func NewTransaction(
	transactionID string,
	accountID string,
	transactionType TransactionType,
	amount int64,
	counterpartAmount int64,
	status TransactionStatus,
) (*Transaction, error) {
	if !idRegex.MatchString(transactionID) {
		return nil, ErrInvalidTransactionID
	}
	if !accountIDRegex.MatchString(accountID) {
		return nil, ErrInvalidAccountID
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if amount > MaxAmount {
		return nil, ErrAmountTooLarge
	}
	if counterpartAmount < 0 {
		return nil, ErrNegativeCounterpart
	}

	now := time.Now()
	return &Transaction{
		transactionID:     transactionID,
		accountID:         accountID,
		transactionType:   transactionType,
		amount:            amount,
		counterpartAmount: counterpartAmount,
		status:            status,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// TransactionID トランザクションIDを返す
func (t *Transaction) TransactionID() string {
	return t.transactionID
}

// AccountID アカウントIDを返す
func (t *Transaction) AccountID() string {
	return t.accountID
}

// TransactionType トランザクションタイプを返す
func (t *Transaction) TransactionType() TransactionType {
	return t.transactionType
}

// Amount 金額を返す
func (t *Transaction) Amount() int64 {
	return t.amount
}

// CounterpartAmount 相手方金額を返す
func (t *Transaction) CounterpartAmount() int64 {
	return t.counterpartAmount
}

// Status ステータスを返す
func (t *Transaction) Status() TransactionStatus {
	return t.status
}

// CreatedAt 作成日時を返す
func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt 更新日時を返す
func (t *Transaction) UpdatedAt() time.Time {
	return t.updatedAt
}

// UpdateStatus ステータスを更新
func (t *Transaction) UpdateStatus(status TransactionStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	t.status = status
	t.updatedAt = time.Now()
	return nil
}

// ReconstructTransaction 永続化済みの取引を日時付きで復元する
func ReconstructTransaction(
	transactionID string,
	accountID string,
	transactionType TransactionType,
	amount int64,
	counterpartAmount int64,
	status TransactionStatus,
	createdAt time.Time,
	updatedAt time.Time,
) (*Transaction, error) {
	t, err := NewTransaction(transactionID, accountID, transactionType, amount, counterpartAmount, status)
	if err != nil {
		return nil, err
	}
	t.createdAt = createdAt
	t.updatedAt = updatedAt
	return t, nil
}

// MustNewTransaction テスト用ヘルパー: NewTransactionを呼び出し、エラーが発生した場合はpanicする
func MustNewTransaction(
	transactionID string,
	accountID string,
	transactionType TransactionType,
	amount int64,
	counterpartAmount int64,
	status TransactionStatus,
) *Transaction {
	tx, err := NewTransaction(transactionID, accountID, transactionType, amount, counterpartAmount, status)
	if err != nil {
		panic(err)
	}
	return tx
}

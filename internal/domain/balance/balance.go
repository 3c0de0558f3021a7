package balance

import (
	"errors"
	"regexp"
)

var (
	// ErrInvalidAccountID アカウントIDが無効
	ErrInvalidAccountID = errors.New("invalid account id")
	// ErrInvalidAmount 金額が無効
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrAmountTooLarge 金額が大きすぎる
	ErrAmountTooLarge = errors.New("amount too large")
	// ErrBalanceOutOfRange 残高が範囲外
	ErrBalanceOutOfRange = errors.New("balance out of range")
	// ErrInvalidDestination 入金先が無効
	ErrInvalidDestination = errors.New("invalid destination")
)

const (
	// MaxAmount 最大金額 (10兆)
	MaxAmount = 10_000_000_000_000
)

var accountIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)

// Balance 残高エンティティ（入金先ごとに1レコード）
type Balance struct {
	accountID   string
	destination Destination
	balance     int64 // 整数値（小数点なし）
	version     int   // 楽観的ロック用
}

// NewBalance 新しいBalanceエンティティを作成
func NewBalance(accountID string, destination Destination, balance int64, version int) (*Balance, error) {
	if !accountIDRegex.MatchString(accountID) {
		return nil, ErrInvalidAccountID
	}
	if !destination.Valid() {
		return nil, ErrInvalidDestination
	}
	if balance < 0 || balance > MaxAmount {
		return nil, ErrBalanceOutOfRange
	}
	return &Balance{
		accountID:   accountID,
		destination: destination,
		balance:     balance,
		version:     version,
	}, nil
}

// AccountID アカウントIDを返す
func (b *Balance) AccountID() string {
	return b.accountID
}

// Destination 入金先を返す
func (b *Balance) Destination() Destination {
	return b.destination
}

// Amount 残高を返す
func (b *Balance) Amount() int64 {
	return b.balance
}

// Version バージョンを返す（楽観的ロック用）
func (b *Balance) Version() int {
	return b.version
}

// Credit 残高へ入金する
func (b *Balance) Credit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > MaxAmount {
		return ErrAmountTooLarge
	}
	// オーバーフローチェック
	if b.balance > MaxAmount-amount {
		return ErrBalanceOutOfRange
	}
	b.balance += amount
	b.version++
	return nil
}

// MustNewBalance テスト用ヘルパー: NewBalanceを呼び出し、エラーが発生した場合はpanicする
func MustNewBalance(accountID string, destination Destination, balance int64, version int) *Balance {
	b, err := NewBalance(accountID, destination, balance, version)
	if err != nil {
		panic(err)
	}
	return b
}

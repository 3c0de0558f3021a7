package balance

import "errors"

var (
	// ErrBalanceNotFound 残高レコードが見つからない
	ErrBalanceNotFound = errors.New("balance not found")
	// ErrCreditFailed 入金に失敗（残高ストア側の失敗）
	// この時点では受け取り記録は一切変更されていない
	ErrCreditFailed = errors.New("failed to credit balance")
)

package giftcode

import "errors"

// 引き換え試行の結果はすべて想定内の状態であり、エラー値として呼び出し元へ返す
// （プログラミングエラーを示すものではない）
var (
	// ErrCodeNotFound コードが見つからない（空トークンを含む）
	ErrCodeNotFound = errors.New("gift code not found")
	// ErrInvalidAmount コードの金額が正の値ではない
	ErrInvalidAmount = errors.New("gift code has no valid amount")
	// ErrNotEligible アカウントがこのコードの受け取り対象ではない
	ErrNotEligible = errors.New("account is not eligible for this gift code")
	// ErrAlreadyClaimed アカウントが既にこのコードを受け取り済み
	ErrAlreadyClaimed = errors.New("gift code already claimed by this account")
)

package gift

import "errors"

var (
	// ErrGiftsDisabled ギフトコードモジュール全体が無効
	ErrGiftsDisabled = errors.New("gifts are disabled")
)

package balance

import (
	"fmt"
)

// Destination 入金先を表す値オブジェクト
type Destination string

const (
	DestinationWallet Destination = "wallet" // 手持ち残高
	DestinationBank   Destination = "bank"   // 銀行残高
)

// NewDestination 新しいDestinationを作成
func NewDestination(s string) (Destination, error) {
	switch s {
	case "wallet", "bank":
		return Destination(s), nil
	default:
		return "", fmt.Errorf("invalid destination: %s", s)
	}
}

// ResolveDestination 設定から実際の入金先を決定する
// paidIntoBankが指定されていても銀行機能が無効な場合はウォレットへ格下げする
// （互換性のための仕様であり、エラーではない）
func ResolveDestination(paidIntoBank bool, bankEnabled bool) Destination {
	if paidIntoBank && bankEnabled {
		return DestinationBank
	}
	return DestinationWallet
}

// String 文字列表現を返す
func (d Destination) String() string {
	return string(d)
}

// IsBank 銀行宛てかどうかを返す
func (d Destination) IsBank() bool {
	return d == DestinationBank
}

// Valid 有効な入金先かどうかを返す
func (d Destination) Valid() bool {
	return d == DestinationWallet || d == DestinationBank
}

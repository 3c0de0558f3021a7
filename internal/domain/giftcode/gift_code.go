package giftcode

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyCode コードが空
	ErrEmptyCode = errors.New("empty gift code")
)

// Normalize コード文字列を正規化する（前後の空白を除去し小文字に変換）
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// GiftCode ギフトコードエンティティ（設定読み込み後は不変）
type GiftCode struct {
	code       string // 正規化済みの一意キー
	amount     int64  // 整数値（小数点なし）
	message    string
	recipients []string // アカウントIDの許可リスト（空 = 制限なし）
	groups     []string // グループIDの許可リスト（空 = 制限なし）
	visible    bool     // 対象ユーザーへ事前に告知するかどうか（引き換え可否には影響しない）
}

// NewGiftCode 新しいGiftCodeエンティティを作成
// amountはここでは検証しない: 不正な金額は引き換え時にErrInvalidAmountとして扱う
func NewGiftCode(
	code string,
	amount int64,
	message string,
	recipients []string,
	groups []string,
	visible bool,
) (*GiftCode, error) {
	normalized := Normalize(code)
	if normalized == "" {
		return nil, ErrEmptyCode
	}

	return &GiftCode{
		code:       normalized,
		amount:     amount,
		message:    message,
		recipients: recipients,
		groups:     groups,
		visible:    visible,
	}, nil
}

// Code 正規化済みコードを返す
func (gc *GiftCode) Code() string {
	return gc.code
}

// Amount 金額を返す
func (gc *GiftCode) Amount() int64 {
	return gc.amount
}

// Message 受け取り時に表示するメッセージを返す（空の場合あり）
func (gc *GiftCode) Message() string {
	return gc.message
}

// Recipients アカウントIDの許可リストを返す
func (gc *GiftCode) Recipients() []string {
	return gc.recipients
}

// Groups グループIDの許可リストを返す
func (gc *GiftCode) Groups() []string {
	return gc.groups
}

// Visible 事前告知の対象かどうかを返す
func (gc *GiftCode) Visible() bool {
	return gc.visible
}

// Redeemable 引き換え可能な金額を持つかどうかを返す
// 金額が0以下のコードは定義済みの失敗（ErrInvalidAmount）として扱われる
func (gc *GiftCode) Redeemable() bool {
	return gc.amount > 0
}

// Unrestricted 受け取り制限が一切ないかどうかを返す
// recipientsとgroupsの両方が空の場合のみ全員が対象になる
func (gc *GiftCode) Unrestricted() bool {
	return len(gc.recipients) == 0 && len(gc.groups) == 0
}

// MustNewGiftCode テスト用ヘルパー: NewGiftCodeを呼び出し、エラーが発生した場合はpanicする
func MustNewGiftCode(
	code string,
	amount int64,
	message string,
	recipients []string,
	groups []string,
	visible bool,
) *GiftCode {
	gc, err := NewGiftCode(code, amount, message, recipients, groups, visible)
	if err != nil {
		panic(err)
	}
	return gc
}

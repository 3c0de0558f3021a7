package claim

import (
	"errors"
	"regexp"

	"gift-server/internal/domain/giftcode"
)

var (
	// ErrInvalidAccountID アカウントIDが無効
	ErrInvalidAccountID = errors.New("invalid account id")
)

var accountIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)

// ClaimRecord アカウントごとの受け取り済みコード記録エンティティ
// エンジンから見れば追記専用だが、レジストリから外れたコードの圧縮は許される
// コードの並びは受け取り順を保持する
type ClaimRecord struct {
	accountID string
	codes     []string
	index     map[string]struct{}
}

// NewClaimRecord 新しいClaimRecordエンティティを作成
// codesに含まれる重複は取り込み時に除去される
func NewClaimRecord(accountID string, codes []string) (*ClaimRecord, error) {
	if !accountIDRegex.MatchString(accountID) {
		return nil, ErrInvalidAccountID
	}

	cr := &ClaimRecord{
		accountID: accountID,
		index:     make(map[string]struct{}, len(codes)),
	}
	for _, code := range codes {
		cr.Add(code)
	}
	return cr, nil
}

// AccountID アカウントIDを返す
func (cr *ClaimRecord) AccountID() string {
	return cr.accountID
}

// Codes 受け取り済みコードを受け取り順で返す
func (cr *ClaimRecord) Codes() []string {
	codes := make([]string, len(cr.codes))
	copy(codes, cr.codes)
	return codes
}

// Has コードが受け取り済みかどうかを返す
func (cr *ClaimRecord) Has(code string) bool {
	_, ok := cr.index[giftcode.Normalize(code)]
	return ok
}

// Add コードを記録へ追加する（冪等: 同じコードを二度追加しても重複しない）
func (cr *ClaimRecord) Add(code string) {
	normalized := giftcode.Normalize(code)
	if normalized == "" {
		return
	}
	if _, ok := cr.index[normalized]; ok {
		return
	}
	cr.index[normalized] = struct{}{}
	cr.codes = append(cr.codes, normalized)
}

// Compact 現在のレジストリに存在しないコードを記録から取り除く
// 運用でコードが入れ替わっても記録サイズが際限なく増えないようにするための操作で、
// 何度実行しても安全であり、レジストリに残っているコードを消すことはない
func (cr *ClaimRecord) Compact(registry *giftcode.Registry) {
	if registry == nil || registry.Len() == 0 {
		cr.codes = nil
		cr.index = make(map[string]struct{})
		return
	}

	kept := cr.codes[:0]
	for _, code := range cr.codes {
		if registry.Has(code) {
			kept = append(kept, code)
		} else {
			delete(cr.index, code)
		}
	}
	cr.codes = kept
}

// Len 記録されているコード数を返す
func (cr *ClaimRecord) Len() int {
	return len(cr.codes)
}

// MustNewClaimRecord テスト用ヘルパー: NewClaimRecordを呼び出し、エラーが発生した場合はpanicする
func MustNewClaimRecord(accountID string, codes []string) *ClaimRecord {
	cr, err := NewClaimRecord(accountID, codes)
	if err != nil {
		panic(err)
	}
	return cr
}

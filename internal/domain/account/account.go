package account

import (
	"errors"
	"regexp"
)

var (
	// ErrInvalidAccountID アカウントIDが無効
	ErrInvalidAccountID = errors.New("invalid account id")
)

var accountIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)

// Account 認証済みアカウントを表す値オブジェクト
// 認証とグループ所属の解決はホスト側のセッション基盤が行い、
// このエンジンには解決済みの値だけが渡される
type Account struct {
	id       string
	groupIDs []string
}

// NewAccount 新しいAccountを作成
func NewAccount(id string, groupIDs []string) (*Account, error) {
	if !accountIDRegex.MatchString(id) {
		return nil, ErrInvalidAccountID
	}
	return &Account{
		id:       id,
		groupIDs: groupIDs,
	}, nil
}

// ID アカウントIDを返す
func (a *Account) ID() string {
	return a.id
}

// GroupIDs 所属グループIDの一覧を返す
func (a *Account) GroupIDs() []string {
	return a.groupIDs
}

// InGroup 指定グループに所属しているかどうかを返す
func (a *Account) InGroup(groupID string) bool {
	for _, id := range a.groupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}

// MustNewAccount テスト用ヘルパー: NewAccountを呼び出し、エラーが発生した場合はpanicする
func MustNewAccount(id string, groupIDs []string) *Account {
	a, err := NewAccount(id, groupIDs)
	if err != nil {
		panic(err)
	}
	return a
}

package service

import (
	"gift-server/internal/domain/account"
	"gift-server/internal/domain/giftcode"
)

// EligibilityService 受け取り資格判定のドメインサービス
// 副作用を持たない純粋な判定ロジックで、同じ入力には常に同じ結果を返す
type EligibilityService struct{}

// NewEligibilityService 新しいEligibilityServiceを作成
func NewEligibilityService() *EligibilityService {
	return &EligibilityService{}
}

// IsEligible アカウントがギフトコードの受け取り対象かどうかを判定する
// recipientsとgroupsの両方が空なら全員が対象
// それ以外はアカウントIDがrecipientsに含まれるか、
// 所属グループのいずれかがgroupsと重なれば対象（どちらか一方で十分）
func (s *EligibilityService) IsEligible(acc *account.Account, code *giftcode.GiftCode) bool {
	if code == nil || acc == nil {
		return false
	}

	if code.Unrestricted() {
		return true
	}

	// 個別指定を先に確認する（これだけで資格が確定する）
	for _, recipient := range code.Recipients() {
		if recipient == acc.ID() {
			return true
		}
	}

	for _, groupID := range code.Groups() {
		if acc.InGroup(groupID) {
			return true
		}
	}

	return false
}

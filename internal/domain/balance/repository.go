package balance

import "context"

// BalanceRepository 残高ストア（ウォレット/銀行）との契約
// エンジンから見れば入金指示を受け取り成否を返すだけの外部コラボレーターであり、
// 失敗時のリトライ方針は呼び出し側が持つ
type BalanceRepository interface {
	// FindByAccountIDAndDestination アカウントIDと入金先で残高を取得
	FindByAccountIDAndDestination(ctx context.Context, accountID string, destination Destination) (*Balance, error)

	// Save 残高を保存（更新、楽観的ロック対応）
	Save(ctx context.Context, b *Balance) error

	// Create 新しい残高レコードを作成
	Create(ctx context.Context, b *Balance) error
}

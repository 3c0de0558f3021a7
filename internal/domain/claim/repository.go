package claim

import "context"

// ClaimRepository アカウントデータストアとの契約
// 1アカウントに閉じた単一フィールドのread-modify-writeのみを要求し、
// アカウント間にまたがる操作は行わない
type ClaimRepository interface {
	// GetClaims アカウントの受け取り記録を取得（未保存のアカウントは空の記録を返す）
	GetClaims(ctx context.Context, accountID string) (*ClaimRecord, error)

	// SaveClaims アカウントの受け取り記録を永続化
	SaveClaims(ctx context.Context, record *ClaimRecord) error

	// ClearClaims アカウントの受け取り記録を全消去
	ClearClaims(ctx context.Context, accountID string) error
}

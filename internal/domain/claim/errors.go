package claim

import "errors"

var (
	// ErrPersistFailed 入金成功後の受け取り記録の永続化に失敗
	// 入金失敗（balance.ErrCreditFailed相当）とは区別して返す:
	// 資金は既に付与されているため、運用者が照合できるように失敗を明示する
	ErrPersistFailed = errors.New("failed to persist claim record")
)

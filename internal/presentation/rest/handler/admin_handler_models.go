package handler

// CodeSummaryItem コード定義の概要
// @Description コード定義の概要
type CodeSummaryItem struct {
	Code       string   `json:"code" example:"summer2024"`
	Amount     string   `json:"amount" example:"500"`
	Message    string   `json:"message" example:"夏のキャンペーンです"`
	Recipients []string `json:"recipients,omitempty" example:"user123"`
	Groups     []string `json:"groups,omitempty" example:"2,5"`
	Visible    bool     `json:"visible" example:"true"`
}

// CodeListResponse コード定義一覧レスポンス
// @Description コード定義一覧レスポンス
type CodeListResponse struct {
	Codes []CodeSummaryItem `json:"codes"`
}

// ReloadCodesResponse コード定義再読み込みレスポンス
// @Description コード定義再読み込みレスポンス
type ReloadCodesResponse struct {
	Count int `json:"count" example:"12"`
}

// CompactClaimsResponse 受け取り記録整理レスポンス
// @Description 受け取り記録整理レスポンス
type CompactClaimsResponse struct {
	UserID    string `json:"user_id" example:"user123"`
	Removed   int    `json:"removed" example:"2"`
	Remaining int    `json:"remaining" example:"5"`
}

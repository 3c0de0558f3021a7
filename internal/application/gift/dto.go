package gift

// PreviewRequest ギフトコード確認リクエスト
type PreviewRequest struct {
	AccountID string
	GroupIDs  []string
	Code      string
}

// PreviewResponse ギフトコード確認レスポンス
// 受け取り処理は行わず、受け取り可能な内容だけを返す
type PreviewResponse struct {
	Code    string
	Amount  int64
	Message string
}

// RedeemRequest ギフトコード受け取りリクエスト
type RedeemRequest struct {
	AccountID string
	GroupIDs  []string
	Code      string
}

// RedeemResponse ギフトコード受け取りレスポンス
type RedeemResponse struct {
	Code         string
	Amount       int64
	Message      string
	Destination  string // "wallet" or "bank"
	BalanceAfter int64
}

// AdvertisedRequest 受け取り可能なギフト一覧リクエスト
type AdvertisedRequest struct {
	AccountID string
	GroupIDs  []string
}

// AdvertisedGift 告知対象のギフト
type AdvertisedGift struct {
	Code    string
	Amount  int64
	Message string
	URL     string // 受け取りページへのリンク
}

// AdvertisedResponse 受け取り可能なギフト一覧レスポンス
type AdvertisedResponse struct {
	Gifts []AdvertisedGift
}

// CompactClaimsRequest 受け取り記録の整理リクエスト
type CompactClaimsRequest struct {
	AccountID string
}

// CompactClaimsResponse 受け取り記録の整理レスポンス
type CompactClaimsResponse struct {
	AccountID string
	Removed   int
	Remaining int
}

// ReloadCodesResponse コード定義の再読み込みレスポンス
type ReloadCodesResponse struct {
	Count int
}

// CodeSummary 管理APIで返すコード定義の概要
type CodeSummary struct {
	Code       string
	Amount     int64
	Message    string
	Recipients []string
	Groups     []string
	Visible    bool
}

// ListCodesResponse コード定義一覧レスポンス
type ListCodesResponse struct {
	Codes []CodeSummary
}

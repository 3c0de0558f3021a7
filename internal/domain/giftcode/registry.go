package giftcode

// Definition 設定ファイルから読み込んだギフトコードの生定義
// 構造以外の検証は読み込み時には行わない: 不正な値は後段で不利に解釈される
// （例: amount欠落は0となり、引き換え時にErrInvalidAmountになる）
type Definition struct {
	Code       string
	Amount     int64
	Message    string
	Recipients []string
	Groups     []string
	Visible    bool
}

// Registry 正規化済みコード文字列からGiftCodeへのインデックス
// 設定読み込みごとに一度だけ構築され、以降は読み取り専用
// 列挙は挿入順を保証する（告知表示の並び順として外部から観測されるため）
type Registry struct {
	codes map[string]*GiftCode
	order []string
}

// NewRegistry 生定義の列からRegistryを構築する
// 重複キーは後勝ち（エラーではなく明示的なポリシー）: 値は置き換え、位置は維持する
func NewRegistry(defs []Definition) *Registry {
	r := &Registry{
		codes: make(map[string]*GiftCode, len(defs)),
	}

	for _, def := range defs {
		gc, err := NewGiftCode(def.Code, def.Amount, def.Message, def.Recipients, def.Groups, def.Visible)
		if err != nil {
			// 空コードの定義は索引化できないため読み捨てる
			continue
		}
		if _, exists := r.codes[gc.Code()]; !exists {
			r.order = append(r.order, gc.Code())
		}
		r.codes[gc.Code()] = gc
	}

	return r
}

// Lookup トークンを正規化して一致するGiftCodeを返す
func (r *Registry) Lookup(token string) (*GiftCode, bool) {
	gc, ok := r.codes[Normalize(token)]
	return gc, ok
}

// Has 正規化済みコードが登録されているかどうかを返す
func (r *Registry) Has(code string) bool {
	_, ok := r.codes[Normalize(code)]
	return ok
}

// All 登録されている全GiftCodeを挿入順で返す
func (r *Registry) All() []*GiftCode {
	codes := make([]*GiftCode, 0, len(r.order))
	for _, key := range r.order {
		codes = append(codes, r.codes[key])
	}
	return codes
}

// Len 登録されているコード数を返す
func (r *Registry) Len() int {
	return len(r.codes)
}

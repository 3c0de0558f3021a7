package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gift-server/internal/domain/giftcode"
)

// codeEntry コード定義ファイル上の1エントリ
// 手書きのJSONを許容するため、スカラー値は文字列/数値のどちらでも受け付ける
type codeEntry struct {
	UniqueCode   flexString   `json:"unique_code"`
	Amount       flexAmount   `json:"amount"`
	Message      flexString   `json:"message"`
	Members      []flexString `json:"members"`
	Groups       []flexString `json:"groups"`
	ShowGiftIcon *flexFlag    `json:"show_gift_icon"`
}

// LoadCodes コード定義ファイル(JSON配列)を読み込んでDefinitionの一覧を返す
// ファイル全体が不正な場合のみエラーを返し、個々のエントリの欠損や型違いは
// 欠損値として扱った上で読み込みを続行する
func LoadCodes(path string) ([]giftcode.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read codes file: %w", err)
	}
	return ParseCodes(data)
}

// ParseCodes JSONバイト列からDefinitionの一覧を組み立てる
func ParseCodes(data []byte) ([]giftcode.Definition, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var entries []codeEntry
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse codes file: %w", err)
	}

	defs := make([]giftcode.Definition, 0, len(entries))
	for _, e := range entries {
		// show_gift_iconは未指定なら表示扱い
		visible := true
		if e.ShowGiftIcon != nil {
			visible = bool(*e.ShowGiftIcon)
		}
		defs = append(defs, giftcode.Definition{
			Code:       string(e.UniqueCode),
			Amount:     int64(e.Amount),
			Message:    string(e.Message),
			Recipients: toStrings(e.Members),
			Groups:     toStrings(e.Groups),
			Visible:    visible,
		})
	}
	return defs, nil
}

func toStrings(values []flexString) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := string(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// flexString 文字列または数値を文字列として受け取る
// どちらでもない値は空文字列として扱う
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	*f = ""
	return nil
}

// flexAmount 数値または数値文字列を金額として受け取る
// 解釈できない値は0（＝受け取り不可の額）として扱う
type flexAmount int64

func (f *flexAmount) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			*f = flexAmount(i)
			return nil
		}
		if fl, err := n.Float64(); err == nil {
			*f = flexAmount(int64(fl))
			return nil
		}
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(s)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			*f = flexAmount(i)
			return nil
		}
		if fl, err := strconv.ParseFloat(s, 64); err == nil {
			*f = flexAmount(int64(fl))
			return nil
		}
	}
	*f = 0
	return nil
}

// flexFlag 真偽値・数値・文字列をフラグとして受け取る
// 文字列と数値の解釈はParseFlagに従う
type flexFlag bool

func (f *flexFlag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexFlag(b)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFlag(ParseFlag(n.String()))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexFlag(ParseFlag(s))
		return nil
	}
	*f = false
	return nil
}

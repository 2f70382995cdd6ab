package model

import "github.com/shopspring/decimal"

// 匿名カートの明細
// unit_priceは追加時点の価格（スナップショット、再取得しない）。
type CartLine struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`

	// 表示用のみ
	Name     string `json:"name,omitempty"`
	ImageRef string `json:"image_ref,omitempty"`
	Variant  string `json:"variant,omitempty"`

	// マージ時にX-Idempotency-Keyとして送る（明細作成時と数量変更時に採番）
	MergeKey string `json:"merge_key,omitempty"`
}

// 小計
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

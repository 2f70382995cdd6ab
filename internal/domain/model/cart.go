package model

import "github.com/shopspring/decimal"

// サーバー側カートの明細（読み取り専用の射影）
// idはサーバー採番で、削除に使う。
type AuthCartItem struct {
	ItemID    ID              `json:"id"`
	ProductID ID              `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
	ImageRef  string          `json:"image,omitempty"`
}

// GET /cart のレスポンス
type AuthCart struct {
	Items []AuthCartItem  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

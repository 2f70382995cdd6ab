package usecase

import (
	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

type LineSource string

const (
	SourceLocal  LineSource = "local"
	SourceServer LineSource = "server"
)

// 表示用の1行。
// localならIndexで、serverならItemIDで削除できる。
type DisplayLine struct {
	Source    LineSource      `json:"source"`
	Index     int             `json:"index"`
	ItemID    string          `json:"item_id,omitempty"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	ImageRef  string          `json:"image_ref,omitempty"`
	Variant   string          `json:"variant,omitempty"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Session     model.SessionStatus `json:"session"`
	Lines       []DisplayLine       `json:"lines"`
	Total       decimal.Decimal     `json:"total"`
	FetchStatus model.OpStatus      `json:"fetch_status"`
}

// Combine は表示用の明細を作る（副作用なし）。
// anonymous: ローカルの明細だけ。
// authenticated: サーバーの明細 + まだマージされていないローカルの明細。
// 商品IDでまとめることはしない。
func Combine(anonymous []model.CartLine, server []model.AuthCartItem, session model.SessionState) []DisplayLine {
	out := make([]DisplayLine, 0, len(anonymous)+len(server))

	if session.Authenticated() {
		for i, it := range server {
			out = append(out, DisplayLine{
				Source:    SourceServer,
				Index:     i,
				ItemID:    it.ItemID.String(),
				ProductID: it.ProductID.String(),
				Name:      it.Name,
				ImageRef:  it.ImageRef,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Subtotal:  it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)),
			})
		}
	}

	for i, l := range anonymous {
		out = append(out, DisplayLine{
			Source:    SourceLocal,
			Index:     i,
			ProductID: l.ProductID,
			Name:      l.Name,
			ImageRef:  l.ImageRef,
			Variant:   l.Variant,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		})
	}

	return out
}

func Total(lines []DisplayLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

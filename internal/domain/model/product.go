package model

import "github.com/shopspring/decimal"

type Product struct {
	ID       ID              `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int64           `json:"stock"`
	ImageRef string          `json:"image,omitempty"`
	Size     string          `json:"size,omitempty"`
	IsActive bool            `json:"is_active"`
}

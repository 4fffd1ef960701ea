package model

import (
	"github.com/shopspring/decimal"
)

// Product is the catalog entry served by the backend. Code is the barcode
// string: numeric digits, variable length up to 100. Quantity is the stock
// on hand; it is decremented server-side when a sale is registered.
type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Code       string          `json:"code"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Laboratory string          `json:"laboratory"`
	Alias      string          `json:"alias"`
}

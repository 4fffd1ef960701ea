package model

import (
	"github.com/shopspring/decimal"
)

// Purchase is a single acquired line. The backend contract stores one
// Purchase record per product; there is no parent grouping like Sale.
type Purchase struct {
	ID          string          `json:"id"`
	Product     NamedRef        `json:"product"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Total       decimal.Decimal `json:"total"`
	TypeReceipt string          `json:"typeReceipt"`
	TypePay     string          `json:"typePay"`
	Date        string          `json:"date"`
}

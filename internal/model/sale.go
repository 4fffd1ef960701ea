package model

import (
	"github.com/shopspring/decimal"
)

// Receipt types as stored by the backend.
const (
	ReceiptBoleta  = "B"
	ReceiptFactura = "F"
	ReceiptTicket  = "T"
)

// Payment methods.
const (
	PayEfectivo = "E"
	PayYape     = "Y"
	PayPlin     = "P"
)

// NamedRef is the short id/name projection the backend embeds for
// related products and providers.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SaleDetail is one line of a registered sale. Subtotal is the
// IGV-exclusive amount; Total is what the customer pays for the line.
type SaleDetail struct {
	ID       string          `json:"id"`
	Product  NamedRef        `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
}

// Sale groups all line items of one transaction under a single record.
// Provider is the optional customer reference.
type Sale struct {
	ID           string          `json:"id"`
	Total        decimal.Decimal `json:"total"`
	TypeReceipt  string          `json:"typeReceipt"`
	TypePay      string          `json:"typePay"`
	DateCreation string          `json:"dateCreation"`
	Provider     *NamedRef       `json:"provider"`
	Details      []SaleDetail    `json:"details"`
}

package model

import (
	"github.com/shopspring/decimal"
)

// Cash session states. The backend allows one open session per
// subsidiary at a time.
const (
	CashOpen   = "OPEN"
	CashClosed = "CLOSED"
)

// CashSession brackets a period during which a physical register is
// open: an initial counted amount on open, a closing counted amount and
// the signed difference on close.
type CashSession struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Status        string           `json:"status"`
	InitialAmount decimal.Decimal  `json:"initialAmount"`
	ClosingAmount *decimal.Decimal `json:"closingAmount"`
	Difference    *decimal.Decimal `json:"difference"`
	DateOpen      string           `json:"dateOpen"`
	DateClose     *string          `json:"dateClose"`
	Subsidiary    *NamedRef        `json:"subsidiary"`
}

// CashPayment is an income or expense movement recorded against an open
// session.
type CashPayment struct {
	ID              string          `json:"id"`
	PaymentType     string          `json:"paymentType"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          string          `json:"status"`
	PaymentDate     string          `json:"paymentDate"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	ReferenceNumber string          `json:"referenceNumber"`
	Notes           string          `json:"notes"`
}

// MethodTotal is one row of the per-payment-method breakdown computed
// by the backend at close time.
type MethodTotal struct {
	Method string          `json:"method"`
	Total  decimal.Decimal `json:"total"`
}

// CashSummary reports expected vs counted totals for a session.
// Difference is signed: counted minus expected.
type CashSummary struct {
	ByMethod      []MethodTotal   `json:"byMethod"`
	TotalExpected decimal.Decimal `json:"totalExpected"`
	TotalCounted  decimal.Decimal `json:"totalCounted"`
	Difference    decimal.Decimal `json:"difference"`
}

package receipt

import (
	"os"
	"path/filepath"
	"testing"

	"farmapos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleSale() *model.Sale {
	return &model.Sale{
		ID:           "s1",
		TypeReceipt:  model.ReceiptBoleta,
		TypePay:      model.PayEfectivo,
		DateCreation: "2025-03-10T14:30:00Z",
		Total:        dec("25.00"),
		Details: []model.SaleDetail{
			{
				Product:  model.NamedRef{ID: "p1", Name: "Paracetamol 500mg"},
				Quantity: 2,
				Price:    dec("10.00"),
				Subtotal: dec("16.95"),
				Total:    dec("20.00"),
			},
			{
				Product:  model.NamedRef{ID: "p2", Name: "Alcohol 96"},
				Quantity: 1,
				Price:    dec("5.00"),
				Subtotal: dec("5.00"),
				Total:    dec("5.00"),
			},
		},
	}
}

func TestWriteSaleTicket(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	path, err := w.WriteSaleTicket(sampleSale())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "venta_s1.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteSaleTicketCreatesStorageDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "receipts")
	w := NewWriter(dir)

	path, err := w.WriteSaleTicket(sampleSale())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestWriteSaleTicketWithClientAndLongName(t *testing.T) {
	sale := sampleSale()
	sale.Provider = &model.NamedRef{ID: "c1", Name: "Botica San Martín de Porres"}
	sale.Details[0].Product.Name = "Amoxicilina + Ácido Clavulánico 875/125mg x 14 tabletas"

	w := NewWriter(t.TempDir())
	path, err := w.WriteSaleTicket(sale)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

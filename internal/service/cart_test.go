package service

import (
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

func productA() model.Product {
	return model.Product{ID: "p1", Name: "Paracetamol 500mg", Code: "75001234", Price: dec("10.00"), Quantity: 50}
}

func productB() model.Product {
	return model.Product{ID: "p2", Name: "Alcohol 96", Code: "75005678", Price: dec("5.00"), Quantity: 10}
}

func TestCartTotals(t *testing.T) {
	cart := NewSaleCart()

	require.NoError(t, cart.AddProduct(productA(), 2, decimal.Zero, dec("18")))
	require.NoError(t, cart.AddProduct(productB(), 1, decimal.Zero, dec("0")))

	assert.Equal(t, "25.00", cart.GrandTotal().StringFixed(2))

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "20.00", lines[0].Total.StringFixed(2))
	assert.Equal(t, "16.95", lines[0].SubtotalExTax().StringFixed(2))
	assert.Equal(t, "5.00", lines[1].Total.StringFixed(2))
	assert.Equal(t, "5.00", lines[1].SubtotalExTax().StringFixed(2))
}

func TestCartAddMergesSameProduct(t *testing.T) {
	cart := NewSaleCart()

	require.NoError(t, cart.AddProduct(productA(), 2, decimal.Zero, dec("18")))
	require.NoError(t, cart.AddProduct(productA(), 3, decimal.Zero, dec("18")))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, "50.00", lines[0].Total.StringFixed(2))
}

func TestCartAddDefaultsQuantityAndPrice(t *testing.T) {
	cart := NewSaleCart()

	require.NoError(t, cart.AddProduct(productA(), 0, decimal.Zero, dec("18")))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "10.00", lines[0].UnitPrice.StringFixed(2))
}

func TestCartSaleStockGuard(t *testing.T) {
	cart := NewSaleCart()

	err := cart.AddProduct(productB(), 11, decimal.Zero, dec("18"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Disponible: 10")
	assert.Zero(t, cart.Len())

	require.NoError(t, cart.AddProduct(productB(), 8, decimal.Zero, dec("18")))
	err = cart.AddProduct(productB(), 3, decimal.Zero, dec("18"))
	require.Error(t, err)

	// Violation leaves the cart unchanged.
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 8, lines[0].Quantity)
}

func TestCartSaleOutOfStock(t *testing.T) {
	cart := NewSaleCart()
	empty := productA()
	empty.Quantity = 0

	err := cart.AddProduct(empty, 1, decimal.Zero, dec("18"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No hay stock disponible")
}

func TestCartPurchaseIgnoresStock(t *testing.T) {
	cart := NewPurchaseCart()
	empty := productA()
	empty.Quantity = 0

	require.NoError(t, cart.AddProduct(empty, 100, dec("7.50"), decimal.Zero))
	assert.Equal(t, "750.00", cart.GrandTotal().StringFixed(2))
}

func TestCartUpdateQuantity(t *testing.T) {
	cart := NewSaleCart()
	require.NoError(t, cart.AddProduct(productA(), 2, decimal.Zero, dec("18")))
	require.NoError(t, cart.AddProduct(productB(), 1, decimal.Zero, dec("18")))

	require.NoError(t, cart.UpdateQuantity("p1", 4))
	assert.Equal(t, "45.00", cart.GrandTotal().StringFixed(2))

	// Zero removes only that line.
	require.NoError(t, cart.UpdateQuantity("p1", 0))
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].Product.ID)

	err := cart.UpdateQuantity("p2", 99)
	require.Error(t, err)
	assert.Equal(t, 1, cart.Lines()[0].Quantity)

	err = cart.UpdateQuantity("nope", 1)
	require.Error(t, err)
}

func TestCartUpdateUnitPrice(t *testing.T) {
	cart := NewSaleCart()
	require.NoError(t, cart.AddProduct(productA(), 2, decimal.Zero, dec("18")))

	require.NoError(t, cart.UpdateUnitPrice("p1", dec("12.50")))
	lines := cart.Lines()
	assert.Equal(t, "12.50", lines[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "25.00", lines[0].Total.StringFixed(2))

	require.Error(t, cart.UpdateUnitPrice("nope", dec("1.00")))
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := NewSaleCart()
	require.NoError(t, cart.AddProduct(productA(), 1, decimal.Zero, dec("18")))
	require.NoError(t, cart.AddProduct(productB(), 1, decimal.Zero, dec("18")))

	cart.Remove("p1")
	assert.Equal(t, 1, cart.Len())

	cart.Clear()
	assert.Zero(t, cart.Len())
	assert.True(t, cart.GrandTotal().IsZero())
}

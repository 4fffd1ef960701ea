package service

import (
	"fmt"
	"sync"

	"farmapos/internal/apierror"
	"farmapos/internal/model"

	"github.com/shopspring/decimal"
)

// CartMode distinguishes the two checkout flows: sales are guarded by
// recorded stock, purchases are not (stock arrives with the purchase).
type CartMode int

const (
	ModeSale CartMode = iota
	ModePurchase
)

// CartLine pairs a catalog product with the quantity, price and tax
// chosen for the current transaction. Total is always Quantity ×
// UnitPrice; IGV is baked into Total, never added on top.
type CartLine struct {
	Product   model.Product
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	IGVPct    decimal.Decimal
}

// SubtotalExTax returns the IGV-exclusive amount of the line:
// Total / (1 + IGV/100), rounded to 2 decimals.
func (l CartLine) SubtotalExTax() decimal.Decimal {
	divisor := decimal.NewFromInt(1).Add(l.IGVPct.Div(decimal.NewFromInt(100)))
	return l.Total.Div(divisor).Round(2)
}

// Cart accumulates the lines of one in-progress sale or purchase. It
// exists only in memory and is destroyed on submit or cancel. Safe for
// concurrent use: the barcode scanner commits from a timer goroutine.
type Cart struct {
	mu    sync.Mutex
	mode  CartMode
	lines []CartLine
}

func NewSaleCart() *Cart     { return &Cart{mode: ModeSale} }
func NewPurchaseCart() *Cart { return &Cart{mode: ModePurchase} }

// AddProduct appends a line, or sums into the existing line for the
// same product. quantity <= 0 defaults to 1; a zero unitPrice falls
// back to the catalog price. In sale mode the resulting quantity must
// not exceed recorded stock; on violation the cart is left unchanged.
func (c *Cart) AddProduct(p model.Product, quantity int, unitPrice, igvPct decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		quantity = 1
	}
	if unitPrice.IsZero() {
		unitPrice = p.Price
	}

	if c.mode == ModeSale && p.Quantity <= 0 {
		return apierror.Validation("quantity", fmt.Sprintf("No hay stock disponible para %s", p.Name))
	}

	for i := range c.lines {
		if c.lines[i].Product.ID != p.ID {
			continue
		}
		newQty := c.lines[i].Quantity + quantity
		if c.mode == ModeSale && newQty > p.Quantity {
			return apierror.Validation("quantity", fmt.Sprintf("No hay suficiente stock. Disponible: %d", p.Quantity))
		}
		c.lines[i].Quantity = newQty
		c.lines[i].Total = c.lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(newQty)))
		return nil
	}

	if c.mode == ModeSale && quantity > p.Quantity {
		return apierror.Validation("quantity", fmt.Sprintf("No hay suficiente stock. Disponible: %d", p.Quantity))
	}
	c.lines = append(c.lines, CartLine{
		Product:   p,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		IGVPct:    igvPct,
	})
	return nil
}

// UpdateQuantity sets a line's quantity. quantity <= 0 removes the line
// entirely. Sale mode re-checks stock; on violation the line keeps its
// previous quantity.
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
		if c.mode == ModeSale && quantity > c.lines[i].Product.Quantity {
			return apierror.Validation("quantity",
				fmt.Sprintf("No hay suficiente stock. Disponible: %d", c.lines[i].Product.Quantity))
		}
		c.lines[i].Quantity = quantity
		c.lines[i].Total = c.lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		return nil
	}
	return apierror.Validation("productId", "El producto no está en el carrito")
}

// UpdateUnitPrice overrides a line's unit price and recomputes its
// total. Price edits are independent of availability: no stock check.
func (c *Cart) UpdateUnitPrice(productID string, price decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID != productID {
			continue
		}
		c.lines[i].UnitPrice = price
		c.lines[i].Total = price.Mul(decimal.NewFromInt(int64(c.lines[i].Quantity)))
		return nil
	}
	return apierror.Validation("productId", "El producto no está en el carrito")
}

// Remove drops the line for productID, if present.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a snapshot copy of the current lines.
func (c *Cart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// GrandTotal sums all line totals. Recomputed on every read, never
// cached.
func (c *Cart) GrandTotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total)
	}
	return total
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Clear empties the cart (submit or cancel).
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

package service

import (
	"context"
	"sync"

	"farmapos/internal/apierror"
	"farmapos/internal/gqlclient"
	"farmapos/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// purchaseAPI is the slice of the GraphQL client purchase checkout needs.
type purchaseAPI interface {
	CreatePurchase(ctx context.Context, input gqlclient.CreatePurchaseInput) (*model.Purchase, error)
	UpdatePurchase(ctx context.Context, id string, input gqlclient.CreatePurchaseInput) (*model.Purchase, error)
	Purchases(ctx context.Context) ([]model.Purchase, error)
}

// PurchaseLineResult is the outcome of one fanned-out mutation.
type PurchaseLineResult struct {
	ProductID   string
	ProductName string
	Purchase    *model.Purchase
	Err         error
}

// PurchaseResult reports per-line outcomes. The backend stores one
// purchase row per product with no grouping, so partial success is a
// real state: already-created rows stay persisted when a later line
// fails, and the caller sees exactly which ones.
type PurchaseResult struct {
	BatchID string
	Lines   []PurchaseLineResult
	Failed  int
}

// PurchaseService submits a purchase cart as N independent
// CreatePurchase mutations, fanned out concurrently.
type PurchaseService struct {
	api purchaseAPI
}

func NewPurchaseService(api purchaseAPI) *PurchaseService {
	return &PurchaseService{api: api}
}

// Checkout validates locally, then fans out one mutation per line and
// joins. The operation as a whole succeeds only when every line does;
// any single rejection surfaces that line's error message. There is no
// compensating transaction.
func (s *PurchaseService) Checkout(ctx context.Context, cart *Cart, opts CheckoutOptions) (*PurchaseResult, error) {
	lines := cart.Lines()
	if len(lines) == 0 {
		return nil, apierror.Validation("details", "Debes agregar al menos un producto a la compra")
	}
	if opts.TypeReceipt == "" {
		return nil, apierror.Validation("typeReceipt", "Debes seleccionar el tipo de comprobante")
	}
	if opts.TypePay == "" {
		return nil, apierror.Validation("typePay", "Debes seleccionar el método de pago")
	}

	result := &PurchaseResult{
		BatchID: uuid.NewString(),
		Lines:   make([]PurchaseLineResult, len(lines)),
	}
	date := saleDate(opts.Date)

	var wg sync.WaitGroup
	for i, l := range lines {
		wg.Add(1)
		go func(i int, l CartLine) {
			defer wg.Done()
			purchase, err := s.api.CreatePurchase(ctx, gqlclient.CreatePurchaseInput{
				ProductID:   l.Product.ID,
				Price:       l.UnitPrice.StringFixed(2),
				Quantity:    l.Quantity,
				Subtotal:    l.SubtotalExTax().StringFixed(2),
				Total:       l.Total.StringFixed(2),
				TypeReceipt: opts.TypeReceipt,
				TypePay:     opts.TypePay,
				Date:        date,
			})
			result.Lines[i] = PurchaseLineResult{
				ProductID:   l.Product.ID,
				ProductName: l.Product.Name,
				Purchase:    purchase,
				Err:         err,
			}
		}(i, l)
	}
	wg.Wait()

	var firstErr error
	for _, lr := range result.Lines {
		if lr.Err != nil {
			result.Failed++
			if firstErr == nil {
				firstErr = lr.Err
			}
		}
	}
	if firstErr != nil {
		log.Warn().Str("batch_id", result.BatchID).Int("failed", result.Failed).
			Int("total", len(lines)).Msg("compra con líneas fallidas, sin rollback")
		return result, firstErr
	}

	cart.Clear()
	return result, nil
}

// Update rewrites one registered purchase row in place. Purchases are
// single rows, so correcting one never touches its batch siblings.
func (s *PurchaseService) Update(ctx context.Context, id string, line CartLine, opts CheckoutOptions) (*model.Purchase, error) {
	if id == "" {
		return nil, apierror.Validation("id", "La compra es obligatoria")
	}
	if opts.TypeReceipt == "" {
		return nil, apierror.Validation("typeReceipt", "Debes seleccionar el tipo de comprobante")
	}
	if opts.TypePay == "" {
		return nil, apierror.Validation("typePay", "Debes seleccionar el método de pago")
	}
	return s.api.UpdatePurchase(ctx, id, gqlclient.CreatePurchaseInput{
		ProductID:   line.Product.ID,
		Price:       line.UnitPrice.StringFixed(2),
		Quantity:    line.Quantity,
		Subtotal:    line.SubtotalExTax().StringFixed(2),
		Total:       line.Total.StringFixed(2),
		TypeReceipt: opts.TypeReceipt,
		TypePay:     opts.TypePay,
		Date:        saleDate(opts.Date),
	})
}

// List returns the registered purchases.
func (s *PurchaseService) List(ctx context.Context) ([]model.Purchase, error) {
	return s.api.Purchases(ctx)
}

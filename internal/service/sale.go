package service

import (
	"context"
	"time"

	"farmapos/internal/apierror"
	"farmapos/internal/gqlclient"
	"farmapos/internal/model"

	"github.com/rs/zerolog/log"
)

// saleAPI is the slice of the GraphQL client the sale checkout needs.
type saleAPI interface {
	CreateSale(ctx context.Context, input gqlclient.CreateSaleInput) (*model.Sale, error)
	Sales(ctx context.Context) ([]model.Sale, error)
}

// TicketWriter renders a local receipt for a completed sale. Optional;
// failures are logged and never block the sale.
type TicketWriter interface {
	WriteSaleTicket(sale *model.Sale) (string, error)
}

// CheckoutOptions carries the receipt/payment/date/client metadata
// chosen on the checkout screen.
type CheckoutOptions struct {
	TypeReceipt string
	TypePay     string
	Date        string // YYYY-MM-DD; empty = now
	Client      *model.ClientSupplier
}

// SaleService submits a sale cart as one grouped CreateSale mutation
// carrying all line items.
type SaleService struct {
	api          saleAPI
	subsidiaryID string
	tickets      TicketWriter
}

func NewSaleService(api saleAPI, subsidiaryID string, tickets TicketWriter) *SaleService {
	return &SaleService{api: api, subsidiaryID: subsidiaryID, tickets: tickets}
}

// Checkout validates the cart and metadata locally, then sends a single
// mutation with the whole detail list. The cart is cleared only on
// success.
func (s *SaleService) Checkout(ctx context.Context, cart *Cart, opts CheckoutOptions) (*model.Sale, error) {
	lines := cart.Lines()
	if len(lines) == 0 {
		return nil, apierror.Validation("details", "Debes agregar al menos un producto a la venta")
	}
	if opts.TypeReceipt == "" {
		return nil, apierror.Validation("typeReceipt", "Debes seleccionar el tipo de comprobante")
	}
	if opts.TypePay == "" {
		return nil, apierror.Validation("typePay", "Debes seleccionar el método de pago")
	}

	details := make([]gqlclient.DetailSaleInput, 0, len(lines))
	for _, l := range lines {
		details = append(details, gqlclient.DetailSaleInput{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice.StringFixed(2),
			Subtotal:  l.SubtotalExTax().StringFixed(2),
			Total:     l.Total.StringFixed(2),
		})
	}

	input := gqlclient.CreateSaleInput{
		TypeReceipt: opts.TypeReceipt,
		TypePay:     opts.TypePay,
		Date:        saleDate(opts.Date),
		Details:     details,
	}
	if opts.Client != nil {
		providerID := opts.Client.ID
		input.ProviderID = &providerID
	}
	if s.subsidiaryID != "" {
		subsidiaryID := s.subsidiaryID
		input.SubsidiaryID = &subsidiaryID
	}

	sale, err := s.api.CreateSale(ctx, input)
	if err != nil {
		return nil, err
	}
	cart.Clear()

	if s.tickets != nil && sale != nil {
		if path, err := s.tickets.WriteSaleTicket(sale); err != nil {
			log.Warn().Err(err).Msg("no se pudo generar el ticket")
		} else {
			log.Info().Str("path", path).Msg("ticket generado")
		}
	}
	return sale, nil
}

// List returns the registered sales.
func (s *SaleService) List(ctx context.Context) ([]model.Sale, error) {
	return s.api.Sales(ctx)
}

// saleDate formats the document date the way the backend's DateTime
// scalar expects it.
func saleDate(date string) string {
	if date == "" {
		return time.Now().UTC().Format(time.RFC3339)
	}
	return date + "T00:00:00Z"
}

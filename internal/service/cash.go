package service

import (
	"context"
	"errors"

	"farmapos/internal/apierror"
	"farmapos/internal/gqlclient"
	"farmapos/internal/model"

	"github.com/shopspring/decimal"
)

// ErrNoSubsidiary is returned without any network call when no
// subsidiary id is configured for this terminal.
var ErrNoSubsidiary = errors.New("no hay sucursal configurada")

// ErrNoOpenSession is returned when an operation needs an open cash
// session and none exists.
var ErrNoOpenSession = errors.New("no hay caja abierta")

// cashAPI is the slice of the GraphQL client the cash tracker needs.
type cashAPI interface {
	CurrentCash(ctx context.Context, subsidiaryID string) (*model.CashSession, error)
	CashPayments(ctx context.Context, cashID string) ([]model.CashPayment, error)
	CashSummary(ctx context.Context, cashID string) (*model.CashSummary, error)
	Cashes(ctx context.Context) ([]model.CashSession, error)
	OpenCash(ctx context.Context, input gqlclient.OpenCashInput) (*model.CashSession, error)
	CloseCash(ctx context.Context, input gqlclient.CloseCashInput) (*model.CashSession, *model.CashSummary, error)
	CreateExpensePayment(ctx context.Context, input gqlclient.CreateExpensePaymentInput) (*model.CashPayment, error)
}

// CashService tracks the register session of this terminal's
// subsidiary: current state, open/close, payment breakdown.
type CashService struct {
	api          cashAPI
	subsidiaryID string
}

func NewCashService(api cashAPI, subsidiaryID string) *CashService {
	return &CashService{api: api, subsidiaryID: subsidiaryID}
}

// CurrentSession returns the open session for this subsidiary, or nil
// when none is open. Skipped entirely when no subsidiary id is
// resolvable.
func (s *CashService) CurrentSession(ctx context.Context) (*model.CashSession, error) {
	if s.subsidiaryID == "" {
		return nil, ErrNoSubsidiary
	}
	return s.api.CurrentCash(ctx, s.subsidiaryID)
}

// Open starts a session with the counted initial amount. A negative
// amount or a missing subsidiary id blocks submission with a local
// validation error before any network call. One active session per
// subsidiary is enforced server-side.
func (s *CashService) Open(ctx context.Context, initialAmount decimal.Decimal) (*model.CashSession, error) {
	if s.subsidiaryID == "" {
		return nil, apierror.Validation("subsidiaryId", "No se pudo resolver la sucursal")
	}
	if initialAmount.IsNegative() {
		return nil, apierror.Validation("initialAmount", "El monto inicial no puede ser negativo")
	}
	return s.api.OpenCash(ctx, gqlclient.OpenCashInput{
		SubsidiaryID:  s.subsidiaryID,
		InitialAmount: initialAmount.StringFixed(2),
	})
}

// Close ends the open session with the manually counted amount and
// returns it alongside the server-computed expected-total-by-method
// breakdown and the resulting signed difference.
func (s *CashService) Close(ctx context.Context, countedAmount decimal.Decimal) (*model.CashSession, *model.CashSummary, error) {
	if countedAmount.IsNegative() {
		return nil, nil, apierror.Validation("closingAmount", "El monto contado no puede ser negativo")
	}
	current, err := s.CurrentSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	if current == nil {
		return nil, nil, ErrNoOpenSession
	}
	return s.api.CloseCash(ctx, gqlclient.CloseCashInput{
		CashID:        current.ID,
		ClosingAmount: countedAmount.StringFixed(2),
	})
}

// Payments lists the movements of the open session.
func (s *CashService) Payments(ctx context.Context) ([]model.CashPayment, error) {
	current, err := s.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoOpenSession
	}
	return s.api.CashPayments(ctx, current.ID)
}

// Summary returns the expected-by-method breakdown of a session.
func (s *CashService) Summary(ctx context.Context, cashID string) (*model.CashSummary, error) {
	return s.api.CashSummary(ctx, cashID)
}

// History lists all sessions.
func (s *CashService) History(ctx context.Context) ([]model.CashSession, error) {
	return s.api.Cashes(ctx)
}

// RecordExpense registers a manual expense payment against the open
// session.
func (s *CashService) RecordExpense(ctx context.Context, method string, amount decimal.Decimal, notes string) (*model.CashPayment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apierror.Validation("totalAmount", "El monto debe ser mayor a cero")
	}
	current, err := s.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoOpenSession
	}
	return s.api.CreateExpensePayment(ctx, gqlclient.CreateExpensePaymentInput{
		CashID:        current.ID,
		PaymentMethod: method,
		TotalAmount:   amount.StringFixed(2),
		Notes:         notes,
	})
}

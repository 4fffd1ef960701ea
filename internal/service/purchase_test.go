package service

import (
	"context"
	"sync"
	"testing"

	"farmapos/internal/apierror"
	"farmapos/internal/gqlclient"
	"farmapos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurchaseAPI struct {
	mu     sync.Mutex
	inputs []gqlclient.CreatePurchaseInput
	// failProducts maps product id to the error its line should return.
	failProducts map[string]error
}

func (f *fakePurchaseAPI) CreatePurchase(ctx context.Context, input gqlclient.CreatePurchaseInput) (*model.Purchase, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, input)
	f.mu.Unlock()
	if err := f.failProducts[input.ProductID]; err != nil {
		return nil, err
	}
	return &model.Purchase{ID: "pu-" + input.ProductID, Quantity: input.Quantity}, nil
}

func (f *fakePurchaseAPI) UpdatePurchase(ctx context.Context, id string, input gqlclient.CreatePurchaseInput) (*model.Purchase, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, input)
	f.mu.Unlock()
	return &model.Purchase{ID: id, Quantity: input.Quantity}, nil
}

func (f *fakePurchaseAPI) Purchases(ctx context.Context) ([]model.Purchase, error) {
	return nil, nil
}

func purchaseCart(t *testing.T) *Cart {
	t.Helper()
	cart := NewPurchaseCart()
	require.NoError(t, cart.AddProduct(productA(), 10, dec("7.00"), decimal.Zero))
	require.NoError(t, cart.AddProduct(productB(), 5, dec("3.00"), decimal.Zero))
	return cart
}

func TestPurchaseCheckoutFansOutPerLine(t *testing.T) {
	api := &fakePurchaseAPI{}
	svc := NewPurchaseService(api)
	cart := purchaseCart(t)

	result, err := svc.Checkout(context.Background(), cart, CheckoutOptions{
		TypeReceipt: model.ReceiptTicket,
		TypePay:     model.PayEfectivo,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.BatchID)
	assert.Len(t, result.Lines, 2)
	assert.Zero(t, result.Failed)

	// One mutation per product line.
	assert.Len(t, api.inputs, 2)
	assert.Zero(t, cart.Len())

	for _, lr := range result.Lines {
		require.NoError(t, lr.Err)
		require.NotNil(t, lr.Purchase)
	}
}

func TestPurchaseCheckoutPartialFailure(t *testing.T) {
	lineErr := apierror.Business([]apierror.FieldError{{Message: "Producto inactivo"}})
	api := &fakePurchaseAPI{failProducts: map[string]error{"p2": lineErr}}
	svc := NewPurchaseService(api)
	cart := purchaseCart(t)

	result, err := svc.Checkout(context.Background(), cart, CheckoutOptions{
		TypeReceipt: model.ReceiptTicket,
		TypePay:     model.PayEfectivo,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Producto inactivo")

	require.NotNil(t, result)
	assert.Equal(t, 1, result.Failed)
	// The caller sees exactly which line failed.
	for _, lr := range result.Lines {
		if lr.ProductID == "p2" {
			assert.Error(t, lr.Err)
		} else {
			assert.NoError(t, lr.Err)
			assert.NotNil(t, lr.Purchase)
		}
	}

	// No rollback and no clear: the cart stays for a retry.
	assert.Equal(t, 2, cart.Len())
}

func TestPurchaseUpdate(t *testing.T) {
	api := &fakePurchaseAPI{}
	svc := NewPurchaseService(api)
	line := CartLine{Product: productA(), Quantity: 4, UnitPrice: dec("6.00"), Total: dec("24.00")}

	_, err := svc.Update(context.Background(), "", line, CheckoutOptions{
		TypeReceipt: model.ReceiptTicket, TypePay: model.PayEfectivo,
	})
	assert.True(t, apierror.IsValidation(err))

	updated, err := svc.Update(context.Background(), "pu-1", line, CheckoutOptions{
		TypeReceipt: model.ReceiptTicket, TypePay: model.PayEfectivo,
	})
	require.NoError(t, err)
	assert.Equal(t, "pu-1", updated.ID)
	require.Len(t, api.inputs, 1)
	assert.Equal(t, "6.00", api.inputs[0].Price)
	assert.Equal(t, "24.00", api.inputs[0].Total)
}

func TestPurchaseCheckoutValidations(t *testing.T) {
	svc := NewPurchaseService(&fakePurchaseAPI{})

	_, err := svc.Checkout(context.Background(), NewPurchaseCart(), CheckoutOptions{
		TypeReceipt: model.ReceiptTicket, TypePay: model.PayEfectivo,
	})
	assert.True(t, apierror.IsValidation(err))

	cart := purchaseCart(t)
	_, err = svc.Checkout(context.Background(), cart, CheckoutOptions{TypePay: model.PayEfectivo})
	assert.True(t, apierror.IsValidation(err))

	_, err = svc.Checkout(context.Background(), cart, CheckoutOptions{TypeReceipt: model.ReceiptTicket})
	assert.True(t, apierror.IsValidation(err))
}

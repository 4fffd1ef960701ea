package gqlclient

import (
	"context"

	"farmapos/internal/apierror"
	"farmapos/internal/model"
)

// ─── Inputs ──────────────────────────────────────────────────────────────────
// Decimal inputs travel as 2dp strings: the backend's Decimal scalar
// rejects bare floats.

type DetailSaleInput struct {
	ProductID   string  `json:"productId"`
	Quantity    int     `json:"quantity"`
	Price       string  `json:"price"`
	Subtotal    string  `json:"subtotal"`
	Total       string  `json:"total"`
	Observation *string `json:"observation,omitempty"`
}

type CreateSaleInput struct {
	ProviderID   *string           `json:"providerId,omitempty"`
	SubsidiaryID *string           `json:"subsidiaryId,omitempty"`
	TypeReceipt  string            `json:"typeReceipt"`
	TypePay      string            `json:"typePay"`
	Date         string            `json:"date"`
	Details      []DetailSaleInput `json:"details"`
}

type CreatePurchaseInput struct {
	ProductID   string `json:"productId"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
	Total       string `json:"total"`
	TypeReceipt string `json:"typeReceipt"`
	TypePay     string `json:"typePay"`
	Date        string `json:"date"`
}

type RegisterUserInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type ProductInput struct {
	Name       string `json:"name"`
	Code       string `json:"code"`
	Price      string `json:"price"`
	Quantity   int    `json:"quantity"`
	Laboratory string `json:"laboratory,omitempty"`
	Alias      string `json:"alias,omitempty"`
}

type ClientSupplierInput struct {
	Name         string `json:"name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Mail         string `json:"mail,omitempty"`
	NDocument    string `json:"nDocument"`
	TypeDocument string `json:"typeDocument"`
	TypePerson   string `json:"typePerson"`
}

type OpenCashInput struct {
	SubsidiaryID  string `json:"subsidiaryId"`
	Name          string `json:"name,omitempty"`
	InitialAmount string `json:"initialAmount"`
}

type CloseCashInput struct {
	CashID        string `json:"cashId"`
	ClosingAmount string `json:"closingAmount"`
}

type CreateExpensePaymentInput struct {
	CashID        string `json:"cashId"`
	PaymentMethod string `json:"paymentMethod"`
	TotalAmount   string `json:"totalAmount"`
	PaymentDate   string `json:"paymentDate,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// messagesError is the `errors { messages }` shape used by the cash
// mutations; everything else uses `errors { field message }`.
type messagesError struct {
	Messages []string `json:"messages"`
}

func flattenMessages(errs []messagesError) []apierror.FieldError {
	var out []apierror.FieldError
	for _, e := range errs {
		for _, m := range e.Messages {
			out = append(out, apierror.FieldError{Message: m})
		}
	}
	return out
}

// ─── Auth ────────────────────────────────────────────────────────────────────

// LoginResult is the normalized login envelope. Token fields are only
// set when Success is true.
type LoginResult struct {
	Token        string
	RefreshToken string
	User         *model.User
	Success      bool
	Errors       []apierror.FieldError
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var resp struct {
		LoginUser struct {
			Token        string                `json:"token"`
			RefreshToken string                `json:"refreshToken"`
			User         *model.User           `json:"user"`
			Success      bool                  `json:"success"`
			Errors       []apierror.FieldError `json:"errors"`
		} `json:"loginUser"`
	}
	vars := map[string]interface{}{"username": username, "password": password}
	if err := c.run(ctx, "LoginUser", loginUserDoc, vars, &resp); err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:        resp.LoginUser.Token,
		RefreshToken: resp.LoginUser.RefreshToken,
		User:         resp.LoginUser.User,
		Success:      resp.LoginUser.Success,
		Errors:       resp.LoginUser.Errors,
	}, nil
}

// RegisterResult is the normalized register envelope.
type RegisterResult struct {
	User    *model.User
	Success bool
	Errors  []apierror.FieldError
}

func (c *Client) Register(ctx context.Context, input RegisterUserInput) (*RegisterResult, error) {
	var resp struct {
		RegisterUser struct {
			User    *model.User           `json:"user"`
			Success bool                  `json:"success"`
			Errors  []apierror.FieldError `json:"errors"`
		} `json:"registerUser"`
	}
	if err := c.run(ctx, "RegisterUser", registerUserDoc, map[string]interface{}{"input": input}, &resp); err != nil {
		return nil, err
	}
	return &RegisterResult{
		User:    resp.RegisterUser.User,
		Success: resp.RegisterUser.Success,
		Errors:  resp.RegisterUser.Errors,
	}, nil
}

func (c *Client) Logout(ctx context.Context) error {
	var resp struct {
		LogoutUser struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		} `json:"logoutUser"`
	}
	return c.run(ctx, "LogoutUser", logoutUserDoc, nil, &resp)
}

func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var resp struct {
		Me *model.User `json:"me"`
	}
	if err := c.run(ctx, "GetCurrentUser", getCurrentUserDoc, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Me, nil
}

// ─── Catalog ─────────────────────────────────────────────────────────────────

// Products returns the full catalog. The list is fetched eagerly and
// cached process-wide; the cache is flushed on login/logout.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var resp struct {
		Products []model.Product `json:"products"`
	}
	if err := c.query(ctx, "GetProducts", getProductsDoc, nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (c *Client) ProductByCode(ctx context.Context, code string) (*model.Product, error) {
	var resp struct {
		ProductByCode *model.Product `json:"productByCode"`
	}
	vars := map[string]interface{}{"code": code}
	if err := c.run(ctx, "GetProductByCode", getProductByCodeDoc, vars, &resp); err != nil {
		return nil, err
	}
	return resp.ProductByCode, nil
}

func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error) {
	var resp struct {
		CreateProduct struct {
			Product *model.Product        `json:"product"`
			Success bool                  `json:"success"`
			Errors  []apierror.FieldError `json:"errors"`
		} `json:"createProduct"`
	}
	if err := c.run(ctx, "CreateProduct", createProductDoc, map[string]interface{}{"input": input}, &resp); err != nil {
		return nil, err
	}
	if !resp.CreateProduct.Success {
		return nil, apierror.Business(resp.CreateProduct.Errors)
	}
	c.cache.Delete("GetProducts")
	return resp.CreateProduct.Product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (*model.Product, error) {
	var resp struct {
		UpdateProduct struct {
			Product *model.Product        `json:"product"`
			Success bool                  `json:"success"`
			Errors  []apierror.FieldError `json:"errors"`
		} `json:"updateProduct"`
	}
	vars := map[string]interface{}{"id": id, "input": input}
	if err := c.run(ctx, "UpdateProduct", updateProductDoc, vars, &resp); err != nil {
		return nil, err
	}
	if !resp.UpdateProduct.Success {
		return nil, apierror.Business(resp.UpdateProduct.Errors)
	}
	c.cache.Delete("GetProducts")
	return resp.UpdateProduct.Product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	var resp struct {
		DeleteProduct struct {
			Success bool                  `json:"success"`
			Message string                `json:"message"`
			Errors  []apierror.FieldError `json:"errors"`
		} `json:"deleteProduct"`
	}
	if err := c.run(ctx, "DeleteProduct", deleteProductDoc, map[string]interface{}{"id": id}, &resp); err != nil {
		return err
	}
	if !resp.DeleteProduct.Success {
		return apierror.Business(resp.DeleteProduct.Errors)
	}
	c.cache.Delete("GetProducts")
	return nil
}

// ─── Client/suppliers ────────────────────────────────────────────────────────

func (c *Client) ClientSuppliers(ctx context.Context) ([]model.ClientSupplier, error) {
	var resp struct {
		ClientSuppliers []model.ClientSupplier `json:"clientSuppliers"`
	}
	if err := c.query(ctx, "GetClientSuppliers", getClientSuppliersDoc, nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.ClientSuppliers, nil
}

func (c *Client) CreateClientSupplier(ctx context.Context, input ClientSupplierInput) (*model.ClientSupplier, error) {
	var resp struct {
		CreateClientSupplier struct {
			ClientSupplier *model.ClientSupplier `json:"clientSupplier"`
			Success        bool                  `json:"success"`
			Errors         []apierror.FieldError `json:"errors"`
		} `json:"createClientSupplier"`
	}
	if err := c.run(ctx, "CreateClientSupplier", createClientSupplierDoc, map[string]interface{}{"input": input}, &resp); err != nil {
		return nil, err
	}
	if !resp.CreateClientSupplier.Success {
		return nil, apierror.Business(resp.CreateClientSupplier.Errors)
	}
	c.cache.Delete("GetClientSuppliers")
	return resp.CreateClientSupplier.ClientSupplier, nil
}

func (c *Client) UpdateClientSupplier(ctx context.Context, id string, input ClientSupplierInput) (*model.ClientSupplier, error) {
	var resp struct {
		UpdateClientSupplier struct {
			ClientSupplier *model.ClientSupplier `json:"clientSupplier"`
			Success        bool                  `json:"success"`
			Errors         []apierror.FieldError `json:"errors"`
		} `json:"updateClientSupplier"`
	}
	vars := map[string]interface{}{"id": id, "input": input}
	if err := c.run(ctx, "UpdateClientSupplier", updateClientSupplierDoc, vars, &resp); err != nil {
		return nil, err
	}
	if !resp.UpdateClientSupplier.Success {
		return nil, apierror.Business(resp.UpdateClientSupplier.Errors)
	}
	c.cache.Delete("GetClientSuppliers")
	return resp.UpdateClientSupplier.ClientSupplier, nil
}

func (c *Client) DeleteClientSupplier(ctx context.Context, id string) error {
	var resp struct {
		DeleteClientSupplier struct {
			Success bool                  `json:"success"`
			Message string                `json:"message"`
			Errors  []apierror.FieldError `json:"errors"`
		} `json:"deleteClientSupplier"`
	}
	if err := c.run(ctx, "DeleteClientSupplier", deleteClientSupplierDoc, map[string]interface{}{"id": id}, &resp); err != nil {
		return err
	}
	if !resp.DeleteClientSupplier.Success {
		return apierror.Business(resp.DeleteClientSupplier.Errors)
	}
	c.cache.Delete("GetClientSuppliers")
	return nil
}

// ─── Sales / purchases ───────────────────────────────────────────────────────

func (c *Client) Sales(ctx context.Context) ([]model.Sale, error) {
	var resp struct {
		Sales []model.Sale `json:"sales"`
	}
	if err := c.run(ctx, "GetSales", getSalesDoc, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sales, nil
}

func (c *Client) Purchases(ctx context.Context) ([]model.Purchase, error) {
	var resp struct {
		Purchases []model.Purchase `json:"purchases"`
	}
	if err := c.run(ctx, "GetPurchase", getPurchasesDoc, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Purchases, nil
}

// CreateSale registers one sale carrying all line items in a single
// request.
func (c *Client) CreateSale(ctx context.Context, input CreateSaleInput) (*model.Sale, error) {
	var resp struct {
		CreateSale struct {
			Sale    *model.Sale           `json:"sale"`
			Success bool                  `json:"success"`
			Errors  []apierror.FieldError `json:"errors"`
		} `json:"createSale"`
	}
	if err := c.run(ctx, "CreateSale", createSaleDoc, map[string]interface{}{"input": input}, &resp); err != nil {
		return nil, err
	}
	if !resp.CreateSale.Success {
		return nil, apierror.Business(resp.CreateSale.Errors)
	}
	c.cache.Delete("GetProducts") // stock changed server-side
	return resp.CreateSale.Sale, nil
}

// CreatePurchase registers one purchase row. The contract stores one
// row per product, so checkout fans this out per line.
func (c *Client) CreatePurchase(ctx context.Context, input CreatePurchaseInput) (*model.Purchase, error) {
	var resp struct {
		CreatePurchase struct {
			Purchase *model.Purchase       `json:"purchase"`
			Success  bool                  `json:"success"`
			Errors   []apierror.FieldError `json:"errors"`
		} `json:"createPurchase"`
	}
	if err := c.run(ctx, "CreatePurchase", createPurchaseDoc, map[string]interface{}{"input": input}, &resp); err != nil {
		return nil, err
	}
	if !resp.CreatePurchase.Success {
		return nil, apierror.Business(resp.CreatePurchase.Errors)
	}
	return resp.CreatePurchase.Purchase, nil
}

func (c *Client) UpdatePurchase(ctx context.Context, id string, input CreatePurchaseInput) (*model.Purchase, error) {
	var resp struct {
		UpdatePurchase struct {
			Purchase *model.Purchase       `json:"purchase"`
			Success  bool                  `json:"success"`
			Errors   []apierror.FieldError `json:"errors"`
		} `json:"updatePurchase"`
	}
	vars := map[string]interface{}{"id": id, "input": input}
	if err := c.run(ctx, "UpdatePurchase", updatePurchaseDoc, vars, &resp); err != nil {
		return nil, err
	}
	if !resp.UpdatePurchase.Success {
		return nil, apierror.Business(resp.UpdatePurchase.Errors)
	}
	return resp.UpdatePurchase.Purchase, nil
}

// ─── Cash ────────────────────────────────────────────────────────────────────

// CurrentCash returns the open session for a subsidiary, or nil when
// none is open.
func (c *Client) CurrentCash(ctx context.Context, subsidiaryID string) (*model.CashSession, error) {
	var resp struct {
		CurrentCash *model.CashSession `json:"currentCash"`
	}
	vars := map[string]interface{}{"subsidiaryId": subsidiaryID}
	if err := c.run(ctx, "CurrentCash", currentCashDoc, vars, &resp); err != nil {
		return nil, err
	}
	return resp.CurrentCash, nil
}

func (c *Client) CashPayments(ctx context.Context, cashID string) ([]model.CashPayment, error) {
	var resp struct {
		CashPayments []model.CashPayment `json:"cashPayments"`
	}
	vars := map[string]interface{}{"cashId": cashID}
	if err := c.run(ctx, "CashPayments", cashPaymentsDoc, vars, &resp); err != nil {
		return nil, err
	}
	return resp.CashPayments, nil
}

func (c *Client) CashSummary(ctx context.Context, cashID string) (*model.CashSummary, error) {
	var resp struct {
		CashSummary *model.CashSummary `json:"cashSummary"`
	}
	vars := map[string]interface{}{"cashId": cashID}
	if err := c.run(ctx, "CashSummary", cashSummaryDoc, vars, &resp); err != nil {
		return nil, err
	}
	return resp.CashSummary, nil
}

func (c *Client) Cashes(ctx context.Context) ([]model.CashSession, error) {
	var resp struct {
		Cashes []model.CashSession `json:"cashes"`
	}
	if err := c.run(ctx, "GetCashes", getCashesDoc, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cashes, nil
}

func (c *Client) OpenCash(ctx context.Context, input OpenCashInput) (*model.CashSession, error) {
	var resp struct {
		OpenCash struct {
			Cash    *model.CashSession `json:"cash"`
			Success bool               `json:"success"`
			Errors  []messagesError    `json:"errors"`
		} `json:"openCash"`
	}
	if err := c.run(ctx, "OpenCash", openCashDoc, map[string]interface{}{"input": input}, &resp); err != nil {
		return nil, err
	}
	if !resp.OpenCash.Success {
		return nil, apierror.Business(flattenMessages(resp.OpenCash.Errors))
	}
	return resp.OpenCash.Cash, nil
}

func (c *Client) CloseCash(ctx context.Context, input CloseCashInput) (*model.CashSession, *model.CashSummary, error) {
	var resp struct {
		CloseCash struct {
			Cash    *model.CashSession `json:"cash"`
			Summary *model.CashSummary `json:"summary"`
			Success bool               `json:"success"`
			Errors  []messagesError    `json:"errors"`
		} `json:"closeCash"`
	}
	if err := c.run(ctx, "CloseCash", closeCashDoc, map[string]interface{}{"input": input}, &resp); err != nil {
		return nil, nil, err
	}
	if !resp.CloseCash.Success {
		return nil, nil, apierror.Business(flattenMessages(resp.CloseCash.Errors))
	}
	return resp.CloseCash.Cash, resp.CloseCash.Summary, nil
}

func (c *Client) CreateExpensePayment(ctx context.Context, input CreateExpensePaymentInput) (*model.CashPayment, error) {
	var resp struct {
		CreateExpensePayment struct {
			Payment *model.CashPayment `json:"payment"`
			Success bool               `json:"success"`
			Errors  []messagesError    `json:"errors"`
		} `json:"createExpensePayment"`
	}
	if err := c.run(ctx, "CreateExpensePayment", createExpensePaymentDoc, map[string]interface{}{"input": input}, &resp); err != nil {
		return nil, err
	}
	if !resp.CreateExpensePayment.Success {
		return nil, apierror.Business(flattenMessages(resp.CreateExpensePayment.Errors))
	}
	return resp.CreateExpensePayment.Payment, nil
}

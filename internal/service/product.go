package service

import (
	"context"
	"regexp"

	"farmapos/internal/apierror"
	"farmapos/internal/gqlclient"
	"farmapos/internal/model"

	"github.com/shopspring/decimal"
)

// codePattern: product codes are numeric digits, variable length up to
// 100 (shorter than the 8-digit scanner minimum is still a valid code).
var codePattern = regexp.MustCompile(`^\d{1,100}$`)

// productAPI is the slice of the GraphQL client the product CRUD needs.
type productAPI interface {
	Products(ctx context.Context) ([]model.Product, error)
	ProductByCode(ctx context.Context, code string) (*model.Product, error)
	CreateProduct(ctx context.Context, input gqlclient.ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, input gqlclient.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductForm is the mutation form of the product screens.
type ProductForm struct {
	Name       string
	Code       string
	Price      decimal.Decimal
	Quantity   int
	Laboratory string
	Alias      string
}

func (f ProductForm) validate() error {
	if f.Name == "" {
		return apierror.Validation("name", "El nombre es obligatorio")
	}
	if f.Code != "" && !codePattern.MatchString(f.Code) {
		return apierror.Validation("code", "El código debe ser numérico (hasta 100 dígitos)")
	}
	if f.Price.IsNegative() {
		return apierror.Validation("price", "El precio no puede ser negativo")
	}
	if f.Quantity < 0 {
		return apierror.Validation("quantity", "La cantidad no puede ser negativa")
	}
	return nil
}

func (f ProductForm) toInput() gqlclient.ProductInput {
	return gqlclient.ProductInput{
		Name:       f.Name,
		Code:       f.Code,
		Price:      f.Price.StringFixed(2),
		Quantity:   f.Quantity,
		Laboratory: f.Laboratory,
		Alias:      f.Alias,
	}
}

// ProductService is the CRUD passthrough for the catalog, with local
// field validation before any network call.
type ProductService struct {
	api productAPI
}

func NewProductService(api productAPI) *ProductService {
	return &ProductService{api: api}
}

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	return s.api.Products(ctx)
}

func (s *ProductService) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	if !codePattern.MatchString(code) {
		return nil, apierror.Validation("code", "El código debe ser numérico (hasta 100 dígitos)")
	}
	return s.api.ProductByCode(ctx, code)
}

func (s *ProductService) Create(ctx context.Context, form ProductForm) (*model.Product, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}
	return s.api.CreateProduct(ctx, form.toInput())
}

func (s *ProductService) Update(ctx context.Context, id string, form ProductForm) (*model.Product, error) {
	if id == "" {
		return nil, apierror.Validation("id", "El producto es obligatorio")
	}
	if err := form.validate(); err != nil {
		return nil, err
	}
	return s.api.UpdateProduct(ctx, id, form.toInput())
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apierror.Validation("id", "El producto es obligatorio")
	}
	return s.api.DeleteProduct(ctx, id)
}

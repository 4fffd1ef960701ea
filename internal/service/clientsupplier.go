package service

import (
	"context"
	"regexp"

	"farmapos/internal/apierror"
	"farmapos/internal/gqlclient"
	"farmapos/internal/model"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// contactAPI is the slice of the GraphQL client the contact CRUD needs.
type contactAPI interface {
	ClientSuppliers(ctx context.Context) ([]model.ClientSupplier, error)
	CreateClientSupplier(ctx context.Context, input gqlclient.ClientSupplierInput) (*model.ClientSupplier, error)
	UpdateClientSupplier(ctx context.Context, id string, input gqlclient.ClientSupplierInput) (*model.ClientSupplier, error)
	DeleteClientSupplier(ctx context.Context, id string) error
}

// ContactForm is the mutation form of the client/supplier screens.
type ContactForm struct {
	Name         string
	Address      string
	Phone        string
	Mail         string
	NDocument    string
	TypeDocument string
	TypePerson   string
}

func (f ContactForm) validate() error {
	if f.Name == "" {
		return apierror.Validation("name", "El nombre es obligatorio")
	}
	switch f.TypePerson {
	case model.PersonClient, model.PersonCompany:
	default:
		return apierror.Validation("typePerson", "Tipo de persona inválido")
	}
	switch f.TypeDocument {
	case model.DocumentDNI:
		if len(f.NDocument) != 8 || !digitsOnly.MatchString(f.NDocument) {
			return apierror.Validation("nDocument", "El DNI debe tener 8 dígitos")
		}
	case model.DocumentRUC:
		if len(f.NDocument) != 11 || !digitsOnly.MatchString(f.NDocument) {
			return apierror.Validation("nDocument", "El RUC debe tener 11 dígitos")
		}
	case model.DocumentOther:
		if f.NDocument != "" && !digitsOnly.MatchString(f.NDocument) {
			return apierror.Validation("nDocument", "El documento debe ser numérico")
		}
	default:
		return apierror.Validation("typeDocument", "Tipo de documento inválido")
	}
	return nil
}

func (f ContactForm) toInput() gqlclient.ClientSupplierInput {
	return gqlclient.ClientSupplierInput{
		Name:         f.Name,
		Address:      f.Address,
		Phone:        f.Phone,
		Mail:         f.Mail,
		NDocument:    f.NDocument,
		TypeDocument: f.TypeDocument,
		TypePerson:   f.TypePerson,
	}
}

// ContactService manages the clients and suppliers book.
type ContactService struct {
	api contactAPI
}

func NewContactService(api contactAPI) *ContactService {
	return &ContactService{api: api}
}

func (s *ContactService) List(ctx context.Context) ([]model.ClientSupplier, error) {
	return s.api.ClientSuppliers(ctx)
}

// Clients returns only the contacts usable as the customer of a sale.
func (s *ContactService) Clients(ctx context.Context) ([]model.ClientSupplier, error) {
	all, err := s.api.ClientSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	var clients []model.ClientSupplier
	for _, cs := range all {
		if cs.TypePerson == model.PersonClient || cs.TypePerson == "" {
			clients = append(clients, cs)
		}
	}
	return clients, nil
}

func (s *ContactService) Create(ctx context.Context, form ContactForm) (*model.ClientSupplier, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}
	return s.api.CreateClientSupplier(ctx, form.toInput())
}

func (s *ContactService) Update(ctx context.Context, id string, form ContactForm) (*model.ClientSupplier, error) {
	if id == "" {
		return nil, apierror.Validation("id", "El contacto es obligatorio")
	}
	if err := form.validate(); err != nil {
		return nil, err
	}
	return s.api.UpdateClientSupplier(ctx, id, form.toInput())
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apierror.Validation("id", "El contacto es obligatorio")
	}
	return s.api.DeleteClientSupplier(ctx, id)
}

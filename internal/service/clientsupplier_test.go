package service

import (
	"context"
	"testing"

	"farmapos/internal/apierror"
	"farmapos/internal/gqlclient"
	"farmapos/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContactAPI struct {
	contacts []model.ClientSupplier
	created  *gqlclient.ClientSupplierInput
}

func (f *fakeContactAPI) ClientSuppliers(ctx context.Context) ([]model.ClientSupplier, error) {
	return f.contacts, nil
}

func (f *fakeContactAPI) CreateClientSupplier(ctx context.Context, input gqlclient.ClientSupplierInput) (*model.ClientSupplier, error) {
	f.created = &input
	return &model.ClientSupplier{ID: "c1", Name: input.Name}, nil
}

func (f *fakeContactAPI) UpdateClientSupplier(ctx context.Context, id string, input gqlclient.ClientSupplierInput) (*model.ClientSupplier, error) {
	return &model.ClientSupplier{ID: id, Name: input.Name}, nil
}

func (f *fakeContactAPI) DeleteClientSupplier(ctx context.Context, id string) error { return nil }

func validContact() ContactForm {
	return ContactForm{
		Name:         "Juana Pérez",
		NDocument:    "12345678",
		TypeDocument: model.DocumentDNI,
		TypePerson:   model.PersonClient,
	}
}

func TestContactFormValidation(t *testing.T) {
	svc := NewContactService(&fakeContactAPI{})
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*ContactForm)
	}{
		{"missing name", func(f *ContactForm) { f.Name = "" }},
		{"dni wrong length", func(f *ContactForm) { f.NDocument = "1234567" }},
		{"dni not numeric", func(f *ContactForm) { f.NDocument = "1234567a" }},
		{"ruc wrong length", func(f *ContactForm) {
			f.TypeDocument = model.DocumentRUC
			f.NDocument = "123"
		}},
		{"other not numeric", func(f *ContactForm) {
			f.TypeDocument = model.DocumentOther
			f.NDocument = "abc"
		}},
		{"bad document type", func(f *ContactForm) { f.TypeDocument = "X" }},
		{"bad person type", func(f *ContactForm) { f.TypePerson = "Z" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validContact()
			tc.mutate(&form)
			_, err := svc.Create(ctx, form)
			assert.True(t, apierror.IsValidation(err))
		})
	}
}

func TestContactCreateValidForms(t *testing.T) {
	api := &fakeContactAPI{}
	svc := NewContactService(api)
	ctx := context.Background()

	_, err := svc.Create(ctx, validContact())
	require.NoError(t, err)

	ruc := validContact()
	ruc.TypeDocument = model.DocumentRUC
	ruc.NDocument = "20123456789"
	ruc.TypePerson = model.PersonCompany
	_, err = svc.Create(ctx, ruc)
	require.NoError(t, err)

	// OTHER allows an empty document number.
	other := validContact()
	other.TypeDocument = model.DocumentOther
	other.NDocument = ""
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)
}

func TestContactClientsFilter(t *testing.T) {
	api := &fakeContactAPI{contacts: []model.ClientSupplier{
		{ID: "c1", TypePerson: model.PersonClient},
		{ID: "c2", TypePerson: model.PersonCompany},
		{ID: "c3", TypePerson: ""},
	}}
	svc := NewContactService(api)

	clients, err := svc.Clients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "c1", clients[0].ID)
	assert.Equal(t, "c3", clients[1].ID)
}

func TestContactUpdateDeleteRequireID(t *testing.T) {
	svc := NewContactService(&fakeContactAPI{})
	_, err := svc.Update(context.Background(), "", validContact())
	assert.True(t, apierror.IsValidation(err))

	err = svc.Delete(context.Background(), "")
	assert.True(t, apierror.IsValidation(err))
}

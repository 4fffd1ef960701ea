package model

// Document types accepted by the backend for a ClientSupplier.
const (
	DocumentDNI   = "DNI"
	DocumentRUC   = "RUC"
	DocumentOther = "OTHER"
)

// Person types: "C" natural client, "E" company.
const (
	PersonClient  = "C"
	PersonCompany = "E"
)

// ClientSupplier is a contact that can act as the customer of a sale or
// the supplier of a purchase, depending on TypePerson.
type ClientSupplier struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Mail         string `json:"mail"`
	NDocument    string `json:"nDocument"`
	TypeDocument string `json:"typeDocument"`
	TypePerson   string `json:"typePerson"`
}

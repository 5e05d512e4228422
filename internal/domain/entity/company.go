package entity

import "time"

// Company representa una empresa emisora de documentos. Es la raíz del árbol
// de datos de referencia: Brand y BankAccount cuelgan de ella.
type Company struct {
	ID         string
	Name       string
	TaxID      string // identificación tributaria
	Address    string
	Director   string // representante legal
	Accountant string // contador responsable
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Brand representa una marca comercial de una empresa (many-to-one con Company).
type Brand struct {
	ID        string
	Name      string
	CompanyID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BankAccount representa una cuenta bancaria de una empresa.
type BankAccount struct {
	ID                   string
	CompanyID            string
	AccountNumber        string
	BankName             string
	RoutingCode          string
	CorrespondentAccount string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

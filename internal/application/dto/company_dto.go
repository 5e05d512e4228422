package dto

import "time"

// CreateCompanyRequest alta de empresa.
type CreateCompanyRequest struct {
	Name       string `json:"name" validate:"required"`
	TaxID      string `json:"tax_id" validate:"required"`
	Address    string `json:"address"`
	Director   string `json:"director"`
	Accountant string `json:"accountant"`
}

// UpdateCompanyRequest modificación de empresa (el ID va en la ruta).
type UpdateCompanyRequest struct {
	Name       string `json:"name" validate:"required"`
	TaxID      string `json:"tax_id" validate:"required"`
	Address    string `json:"address"`
	Director   string `json:"director"`
	Accountant string `json:"accountant"`
}

// CompanyResponse representación de empresa en respuestas.
type CompanyResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	TaxID      string    `json:"tax_id"`
	Address    string    `json:"address"`
	Director   string    `json:"director"`
	Accountant string    `json:"accountant"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CompanyListResponse listado paginado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateBrandRequest alta de marca (la empresa va en la ruta).
type CreateBrandRequest struct {
	Name string `json:"name" validate:"required"`
}

// BrandResponse representación de marca en respuestas.
type BrandResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CompanyID string    `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BrandListResponse marcas de una empresa.
type BrandListResponse struct {
	Items []BrandResponse `json:"items"`
}

// CreateBankAccountRequest alta de cuenta bancaria (la empresa va en la ruta).
type CreateBankAccountRequest struct {
	AccountNumber        string `json:"account_number" validate:"required"`
	BankName             string `json:"bank_name" validate:"required"`
	RoutingCode          string `json:"routing_code" validate:"required"`
	CorrespondentAccount string `json:"correspondent_account"`
}

// BankAccountResponse representación de cuenta bancaria en respuestas.
type BankAccountResponse struct {
	ID                   string    `json:"id"`
	CompanyID            string    `json:"company_id"`
	AccountNumber        string    `json:"account_number"`
	BankName             string    `json:"bank_name"`
	RoutingCode          string    `json:"routing_code"`
	CorrespondentAccount string    `json:"correspondent_account"`
	CreatedAt            time.Time `json:"created_at"`
}

// BankAccountListResponse cuentas de una empresa.
type BankAccountListResponse struct {
	Items []BankAccountResponse `json:"items"`
}

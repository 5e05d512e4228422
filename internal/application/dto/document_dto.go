package dto

import (
	"encoding/json"
	"time"
)

// CreateDocumentRequest alta de documento. El autor sale del token.
type CreateDocumentRequest struct {
	Title         string `json:"title" validate:"required"`
	Type          string `json:"type" validate:"required"`
	CompanyID     string `json:"company_id" validate:"required"`
	BrandID       string `json:"brand_id" validate:"required"`
	BankAccountID string `json:"bank_account_id"`
}

// AddVersionRequest agrega una versión nueva con el snapshot de contenido.
type AddVersionRequest struct {
	Data json.RawMessage `json:"data"`
}

// UpdateStatusRequest transición de estado del documento.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// GenerateRequest parámetros de generación de un artefacto.
// EffectiveDate en formato 2006-01-02; vacío = fecha actual.
type GenerateRequest struct {
	EffectiveDate string `json:"effective_date"`
	Format        string `json:"format"` // pdf (default) | xml
}

// DocumentResponse representación de documento en respuestas.
type DocumentResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Type             string    `json:"type"`
	CompanyID        string    `json:"company_id"`
	BrandID          string    `json:"brand_id"`
	BankAccountID    string    `json:"bank_account_id,omitempty"`
	Status           string    `json:"status"`
	CreatedBy        string    `json:"created_by"`
	CurrentVersionID string    `json:"current_version_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DocumentListResponse listado paginado de documentos.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// VersionResponse representación de una versión inmutable.
type VersionResponse struct {
	ID            string          `json:"id"`
	DocumentID    string          `json:"document_id"`
	VersionNumber int             `json:"version_number"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by"`
	Data          json.RawMessage `json:"data"`
}

// VersionListResponse versiones ascendentes de un documento.
type VersionListResponse struct {
	Items []VersionResponse `json:"items"`
}

package entity

import (
	"encoding/json"
	"time"
)

// Tipos de documento soportados.
const (
	DocTypeInvoice  = "invoice"
	DocTypeContract = "contract"
	DocTypeAct      = "act"
	DocTypeOther    = "other"
)

// ValidDocType informa si el tipo es uno de los conocidos.
func ValidDocType(t string) bool {
	return t == DocTypeInvoice || t == DocTypeContract || t == DocTypeAct || t == DocTypeOther
}

// Estados del ciclo de vida de un documento.
const (
	DocStatusDraft    = "draft"
	DocStatusActive   = "active"
	DocStatusArchived = "archived"
)

// ValidStatusTransition informa si el cambio de estado es legal:
// draft → active → archived; no hay vuelta atrás.
func ValidStatusTransition(from, to string) bool {
	switch from {
	case DocStatusDraft:
		return to == DocStatusActive || to == DocStatusArchived
	case DocStatusActive:
		return to == DocStatusArchived
	default:
		return false
	}
}

// Document representa un documento de negocio versionado (factura, contrato...).
//
// Invariantes:
//   - CurrentVersionID siempre referencia una versión existente del documento.
//   - Un documento nunca existe sin versiones: se crea con la versión 1.
//   - Los números de versión son enteros estrictamente crecientes desde 1,
//     asignados al crear la versión e inmutables después.
//
// Las versiones viven en su propia tabla (arena por id); el documento solo
// guarda el puntero a la versión vigente. El invariante se impone en la
// operación que muta (AddVersion), nunca en lectura.
type Document struct {
	ID               string
	Title            string
	Type             string // ver constantes DocType*
	CompanyID        string
	BrandID          string
	BankAccountID    string // opcional, vacío si no aplica
	Status           string // ver constantes DocStatus*
	CreatedBy        string
	CurrentVersionID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DocumentVersion es una instantánea inmutable del contenido de un documento.
// Una edición siempre produce una versión nueva, jamás muta una existente.
type DocumentVersion struct {
	ID            string
	DocumentID    string
	VersionNumber int
	CreatedAt     time.Time
	CreatedBy     string
	Data          json.RawMessage // snapshot opaco del contenido
}

// Formatos de artefacto generable.
const (
	ArtifactPDF = "pdf"
	ArtifactXML = "xml"
)

// GeneratedArtifact es la salida de generar una versión con una fecha efectiva.
// Es una proyección pura: generarlo no toca el documento ni sus versiones, y con
// los mismos argumentos el resultado es estructuralmente igual (por eso no lleva
// marca de tiempo de generación; Digest cubre la identidad del contenido).
type GeneratedArtifact struct {
	DocumentID    string    `json:"document_id"`
	VersionID     string    `json:"version_id"`
	VersionNumber int       `json:"version_number"`
	EffectiveDate time.Time `json:"effective_date"`
	Format        string    `json:"format"`
	Filename      string    `json:"filename"`
	Digest        string    `json:"digest"` // SHA-256 hex de la proyección canónica
	Content       []byte    `json:"content"`
}

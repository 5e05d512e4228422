package repository

import "github.com/tu-usuario/docflow-api/internal/domain/entity"

// DocumentRepository define el puerto de persistencia para Document y sus
// versiones. Las versiones se borran en cascada con el documento (ownership
// exclusivo); todo lo demás es append-only.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	GetByID(id string) (*entity.Document, error)
	List(limit, offset int) ([]*entity.Document, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Document, error)
	// UpdatePointer actualiza current_version_id, updated_at y status.
	// Es la única mutación permitida sobre un documento existente.
	UpdatePointer(doc *entity.Document) error
	Delete(id string) error

	CreateVersion(version *entity.DocumentVersion) error
	GetVersion(versionID string) (*entity.DocumentVersion, error)
	// ListVersions devuelve las versiones ascendentes por version_number.
	ListVersions(documentID string) ([]*entity.DocumentVersion, error)
	// MaxVersionNumber devuelve 0 si el documento no tiene versiones.
	MaxVersionNumber(documentID string) (int, error)
	CountVersions(documentID string) (int, error)
}

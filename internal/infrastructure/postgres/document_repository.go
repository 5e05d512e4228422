package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/docflow-api/internal/domain/entity"
	"github.com/tu-usuario/docflow-api/internal/domain/repository"
)

// Asegura que DocumentRepo implementa repository.DocumentRepository.
var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL.
//
// current_version_id es nullable en la tabla porque el documento se inserta
// antes que su versión 1 dentro de la misma transacción; fuera de esa ventana
// nunca es NULL.
type DocumentRepo struct {
	db DB
}

// NewDocumentRepository construye el adaptador de persistencia para documentos.
func NewDocumentRepository(db DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Create persiste un documento nuevo (sin puntero de versión todavía).
func (r *DocumentRepo) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (id, title, type, company_id, brand_id, bank_account_id, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10)`
	_, err := r.db.Exec(context.Background(), query,
		doc.ID, doc.Title, doc.Type, doc.CompanyID, doc.BrandID, doc.BankAccountID,
		doc.Status, doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	query := `
		SELECT id, title, type, company_id, brand_id, COALESCE(bank_account_id, ''), status, created_by,
		       COALESCE(current_version_id, ''), created_at, updated_at
		FROM documents WHERE id = $1`
	var d entity.Document
	err := r.db.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Title, &d.Type, &d.CompanyID, &d.BrandID, &d.BankAccountID,
		&d.Status, &d.CreatedBy, &d.CurrentVersionID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

// List devuelve documentos con paginación.
func (r *DocumentRepo) List(limit, offset int) ([]*entity.Document, error) {
	query := `
		SELECT id, title, type, company_id, brand_id, COALESCE(bank_account_id, ''), status, created_by,
		       COALESCE(current_version_id, ''), created_at, updated_at
		FROM documents ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, limit, offset)
}

// ListByCompany devuelve los documentos de una empresa.
func (r *DocumentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Document, error) {
	query := `
		SELECT id, title, type, company_id, brand_id, COALESCE(bank_account_id, ''), status, created_by,
		       COALESCE(current_version_id, ''), created_at, updated_at
		FROM documents WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, companyID, limit, offset)
}

func (r *DocumentRepo) scanMany(query string, args ...any) ([]*entity.Document, error) {
	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Type, &d.CompanyID, &d.BrandID, &d.BankAccountID, &d.Status, &d.CreatedBy, &d.CurrentVersionID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// UpdatePointer actualiza current_version_id, status y updated_at.
// Es la única mutación permitida sobre un documento existente.
func (r *DocumentRepo) UpdatePointer(doc *entity.Document) error {
	query := `
		UPDATE documents SET current_version_id = NULLIF($2, ''), status = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.db.Exec(context.Background(), query,
		doc.ID, doc.CurrentVersionID, doc.Status, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document pointer: %w", err)
	}
	return nil
}

// Delete elimina un documento; sus versiones caen por ON DELETE CASCADE.
func (r *DocumentRepo) Delete(id string) error {
	_, err := r.db.Exec(context.Background(), `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// CreateVersion persiste una versión nueva. Las versiones nunca se actualizan.
func (r *DocumentRepo) CreateVersion(version *entity.DocumentVersion) error {
	query := `
		INSERT INTO document_versions (id, document_id, version_number, created_at, created_by, data)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(context.Background(), query,
		version.ID, version.DocumentID, version.VersionNumber,
		version.CreatedAt, version.CreatedBy, []byte(version.Data),
	)
	if err != nil {
		return fmt.Errorf("insert version: %w", err)
	}
	return nil
}

// GetVersion obtiene una versión por ID.
func (r *DocumentRepo) GetVersion(versionID string) (*entity.DocumentVersion, error) {
	query := `
		SELECT id, document_id, version_number, created_at, created_by, data
		FROM document_versions WHERE id = $1`
	var v entity.DocumentVersion
	var data []byte
	err := r.db.QueryRow(context.Background(), query, versionID).Scan(
		&v.ID, &v.DocumentID, &v.VersionNumber, &v.CreatedAt, &v.CreatedBy, &data,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get version: %w", err)
	}
	v.Data = data
	return &v, nil
}

// ListVersions devuelve las versiones de un documento, ascendentes por número.
func (r *DocumentRepo) ListVersions(documentID string) ([]*entity.DocumentVersion, error) {
	query := `
		SELECT id, document_id, version_number, created_at, created_by, data
		FROM document_versions WHERE document_id = $1 ORDER BY version_number ASC`
	rows, err := r.db.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var list []*entity.DocumentVersion
	for rows.Next() {
		var v entity.DocumentVersion
		var data []byte
		if err := rows.Scan(&v.ID, &v.DocumentID, &v.VersionNumber, &v.CreatedAt, &v.CreatedBy, &data); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		v.Data = data
		list = append(list, &v)
	}
	return list, rows.Err()
}

// MaxVersionNumber devuelve el número de versión más alto, 0 si no hay versiones.
func (r *DocumentRepo) MaxVersionNumber(documentID string) (int, error) {
	const query = `
		SELECT COALESCE(MAX(version_number), 0) FROM document_versions WHERE document_id = $1`
	var n int
	if err := r.db.QueryRow(context.Background(), query, documentID).Scan(&n); err != nil {
		return 0, fmt.Errorf("max version number: %w", err)
	}
	return n, nil
}

// CountVersions cuenta las versiones de un documento.
func (r *DocumentRepo) CountVersions(documentID string) (int, error) {
	const query = `
		SELECT COUNT(*) FROM document_versions WHERE document_id = $1`
	var n int
	if err := r.db.QueryRow(context.Background(), query, documentID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count versions: %w", err)
	}
	return n, nil
}

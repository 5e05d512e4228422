package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/docflow-api/internal/domain/entity"
	"github.com/tu-usuario/docflow-api/internal/domain/repository"
)

// Asegura que BrandRepo implementa repository.BrandRepository.
var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo implementación del puerto BrandRepository sobre PostgreSQL.
type BrandRepo struct {
	db DB
}

// NewBrandRepository construye el adaptador de persistencia para marcas.
func NewBrandRepository(db DB) *BrandRepo {
	return &BrandRepo{db: db}
}

// Create persiste una nueva marca.
func (r *BrandRepo) Create(brand *entity.Brand) error {
	query := `
		INSERT INTO brands (id, name, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(context.Background(), query,
		brand.ID, brand.Name, brand.CompanyID, brand.CreatedAt, brand.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

// GetByID obtiene una marca por ID.
func (r *BrandRepo) GetByID(id string) (*entity.Brand, error) {
	query := `
		SELECT id, name, company_id, created_at, updated_at
		FROM brands WHERE id = $1`
	var b entity.Brand
	err := r.db.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Name, &b.CompanyID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

// ListByCompany devuelve las marcas de una empresa.
func (r *BrandRepo) ListByCompany(companyID string) ([]*entity.Brand, error) {
	query := `
		SELECT id, name, company_id, created_at, updated_at
		FROM brands WHERE company_id = $1 ORDER BY name`
	rows, err := r.db.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var list []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CompanyID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Delete elimina una marca por ID.
func (r *BrandRepo) Delete(id string) error {
	_, err := r.db.Exec(context.Background(), `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	return nil
}

// CountDependents cuenta productos y documentos que referencian la marca.
func (r *BrandRepo) CountDependents(id string) (int, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM products  WHERE brand_id = $1) +
			(SELECT COUNT(*) FROM documents WHERE brand_id = $1)`
	var n int
	if err := r.db.QueryRow(context.Background(), query, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count brand dependents: %w", err)
	}
	return n, nil
}

package repository

import "github.com/tu-usuario/docflow-api/internal/domain/entity"

// BrandRepository define el puerto de persistencia para Brand.
type BrandRepository interface {
	Create(brand *entity.Brand) error
	GetByID(id string) (*entity.Brand, error)
	ListByCompany(companyID string) ([]*entity.Brand, error)
	Delete(id string) error
	// CountDependents cuenta productos y documentos que referencian la marca.
	CountDependents(id string) (int, error)
}

package repository

import "github.com/tu-usuario/docflow-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByTaxID(taxID string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
	Delete(id string) error
	// CountDependents cuenta marcas, cuentas bancarias y documentos que aún
	// referencian la empresa (para la política de borrado: rechazar, no cascada).
	CountDependents(id string) (int, error)
}

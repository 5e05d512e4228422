package repository

import "github.com/tu-usuario/docflow-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	ListByBrand(brandID string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}

package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/docflow-api/internal/application/dto"
	"github.com/tu-usuario/docflow-api/internal/domain"
	"github.com/tu-usuario/docflow-api/internal/domain/entity"
	"github.com/tu-usuario/docflow-api/internal/domain/repository"
)

// BrandUseCase casos de uso para marcas de una empresa.
type BrandUseCase struct {
	repo        repository.BrandRepository
	companyRepo repository.CompanyRepository
}

// NewBrandUseCase construye el caso de uso con sus puertos.
func NewBrandUseCase(repo repository.BrandRepository, companyRepo repository.CompanyRepository) *BrandUseCase {
	return &BrandUseCase{repo: repo, companyRepo: companyRepo}
}

// Create crea una marca bajo una empresa.
// Devuelve domain.ErrValidation si el nombre está vacío o la empresa no existe.
func (uc *BrandUseCase) Create(companyID string, in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	if in.Name == "" || companyID == "" {
		return nil, domain.ErrValidation
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrValidation // la empresa referenciada no existe
	}
	now := time.Now()
	brand := &entity.Brand{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CompanyID: companyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(brand); err != nil {
		return nil, err
	}
	return entityToBrandResponse(brand), nil
}

// ListByCompany lista las marcas de una empresa.
func (uc *BrandUseCase) ListByCompany(companyID string) (*dto.BrandListResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *entityToBrandResponse(b))
	}
	return &dto.BrandListResponse{Items: items}, nil
}

// Delete elimina una marca. Misma política que Company: se rechaza con
// domain.ErrConflict mientras haya productos o documentos que la referencien.
func (uc *BrandUseCase) Delete(id string) error {
	brand, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return domain.ErrNotFound
	}
	dependents, err := uc.repo.CountDependents(id)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func entityToBrandResponse(b *entity.Brand) *dto.BrandResponse {
	if b == nil {
		return nil
	}
	return &dto.BrandResponse{
		ID:        b.ID,
		Name:      b.Name,
		CompanyID: b.CompanyID,
		CreatedAt: b.CreatedAt,
	}
}

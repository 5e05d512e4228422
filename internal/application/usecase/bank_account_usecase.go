package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/docflow-api/internal/application/dto"
	"github.com/tu-usuario/docflow-api/internal/domain"
	"github.com/tu-usuario/docflow-api/internal/domain/entity"
	"github.com/tu-usuario/docflow-api/internal/domain/repository"
)

// BankAccountUseCase casos de uso para cuentas bancarias de una empresa.
type BankAccountUseCase struct {
	repo        repository.BankAccountRepository
	companyRepo repository.CompanyRepository
}

// NewBankAccountUseCase construye el caso de uso con sus puertos.
func NewBankAccountUseCase(repo repository.BankAccountRepository, companyRepo repository.CompanyRepository) *BankAccountUseCase {
	return &BankAccountUseCase{repo: repo, companyRepo: companyRepo}
}

// Create crea una cuenta bancaria bajo una empresa.
// Devuelve domain.ErrValidation si faltan campos o la empresa no existe.
func (uc *BankAccountUseCase) Create(companyID string, in dto.CreateBankAccountRequest) (*dto.BankAccountResponse, error) {
	if companyID == "" || in.AccountNumber == "" || in.BankName == "" || in.RoutingCode == "" {
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
	account := &entity.BankAccount{
		ID:                   uuid.New().String(),
		CompanyID:            companyID,
		AccountNumber:        in.AccountNumber,
		BankName:             in.BankName,
		RoutingCode:          in.RoutingCode,
		CorrespondentAccount: in.CorrespondentAccount,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Create(account); err != nil {
		return nil, err
	}
	return entityToBankAccountResponse(account), nil
}

// ListByCompany lista las cuentas de una empresa.
func (uc *BankAccountUseCase) ListByCompany(companyID string) (*dto.BankAccountListResponse, error) {
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
	items := make([]dto.BankAccountResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *entityToBankAccountResponse(a))
	}
	return &dto.BankAccountListResponse{Items: items}, nil
}

// Delete elimina una cuenta bancaria.
func (uc *BankAccountUseCase) Delete(id string) error {
	account, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func entityToBankAccountResponse(a *entity.BankAccount) *dto.BankAccountResponse {
	if a == nil {
		return nil
	}
	return &dto.BankAccountResponse{
		ID:                   a.ID,
		CompanyID:            a.CompanyID,
		AccountNumber:        a.AccountNumber,
		BankName:             a.BankName,
		RoutingCode:          a.RoutingCode,
		CorrespondentAccount: a.CorrespondentAccount,
		CreatedAt:            a.CreatedAt,
	}
}

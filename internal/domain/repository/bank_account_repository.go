package repository

import "github.com/tu-usuario/docflow-api/internal/domain/entity"

// BankAccountRepository define el puerto de persistencia para BankAccount.
type BankAccountRepository interface {
	Create(account *entity.BankAccount) error
	GetByID(id string) (*entity.BankAccount, error)
	ListByCompany(companyID string) ([]*entity.BankAccount, error)
	Delete(id string) error
}

package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/docflow-api/internal/domain/entity"
	"github.com/tu-usuario/docflow-api/internal/domain/repository"
)

// Asegura que BankAccountRepo implementa repository.BankAccountRepository.
var _ repository.BankAccountRepository = (*BankAccountRepo)(nil)

// BankAccountRepo implementación del puerto BankAccountRepository sobre PostgreSQL.
type BankAccountRepo struct {
	db DB
}

// NewBankAccountRepository construye el adaptador de persistencia para cuentas bancarias.
func NewBankAccountRepository(db DB) *BankAccountRepo {
	return &BankAccountRepo{db: db}
}

// Create persiste una nueva cuenta bancaria.
func (r *BankAccountRepo) Create(account *entity.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (id, company_id, account_number, bank_name, routing_code, correspondent_account, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(context.Background(), query,
		account.ID, account.CompanyID, account.AccountNumber, account.BankName,
		account.RoutingCode, account.CorrespondentAccount,
		account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bank account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta bancaria por ID.
func (r *BankAccountRepo) GetByID(id string) (*entity.BankAccount, error) {
	query := `
		SELECT id, company_id, account_number, bank_name, routing_code, correspondent_account, created_at, updated_at
		FROM bank_accounts WHERE id = $1`
	var a entity.BankAccount
	err := r.db.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.CompanyID, &a.AccountNumber, &a.BankName,
		&a.RoutingCode, &a.CorrespondentAccount, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank account: %w", err)
	}
	return &a, nil
}

// ListByCompany devuelve las cuentas de una empresa.
func (r *BankAccountRepo) ListByCompany(companyID string) ([]*entity.BankAccount, error) {
	query := `
		SELECT id, company_id, account_number, bank_name, routing_code, correspondent_account, created_at, updated_at
		FROM bank_accounts WHERE company_id = $1 ORDER BY bank_name`
	rows, err := r.db.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	defer rows.Close()

	var list []*entity.BankAccount
	for rows.Next() {
		var a entity.BankAccount
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.AccountNumber, &a.BankName, &a.RoutingCode, &a.CorrespondentAccount, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bank account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete elimina una cuenta bancaria por ID.
func (r *BankAccountRepo) Delete(id string) error {
	_, err := r.db.Exec(context.Background(), `DELETE FROM bank_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bank account: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

var _ repository.LedgerAccountRepository = (*LedgerAccountRepo)(nil)

const accountColumns = `id, company_id, code, name, account_type, currency,
	total_debit, total_credit, balance, is_active, created_at, updated_at`

// LedgerAccountRepo implementación del puerto LedgerAccountRepository sobre
// PostgreSQL (usable con pool o tx).
type LedgerAccountRepo struct {
	q Querier
}

// NewLedgerAccountRepository construye el adaptador de persistencia del plan de cuentas. Pasar pool o tx (Querier).
func NewLedgerAccountRepository(q Querier) *LedgerAccountRepo {
	return &LedgerAccountRepo{q: q}
}

// CreateIfAbsent inserta la cuenta si no existe. ON CONFLICT DO NOTHING sobre
// (company_id, code): dos transacciones concurrentes pueden intentar crear la
// misma cuenta y ninguna falla; el caller relee con GetByCode.
func (r *LedgerAccountRepo) CreateIfAbsent(a *entity.LedgerAccount) error {
	query := `
		INSERT INTO ledger_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (company_id, code) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.CompanyID, a.Code, a.Name, a.AccountType, a.Currency,
		a.TotalDebit, a.TotalCredit, a.Balance, a.IsActive, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *LedgerAccountRepo) GetByID(id string) (*entity.LedgerAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM ledger_accounts WHERE id = $1`
	a, err := r.scanRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger account: %w", err)
	}
	return a, nil
}

// GetByCode obtiene una cuenta por (empresa, código PUC).
func (r *LedgerAccountRepo) GetByCode(companyID, code string) (*entity.LedgerAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM ledger_accounts WHERE company_id = $1 AND code = $2`
	a, err := r.scanRow(r.q.QueryRow(context.Background(), query, companyID, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger account by code: %w", err)
	}
	return a, nil
}

// ApplyPosting acumula débito/crédito y recalcula balance en un único UPDATE
// atómico. Debe ejecutarse en la misma transacción que inserta el asiento; el
// UPDATE toma row lock, así que postings concurrentes a la misma cuenta se
// serializan sin lost updates.
func (r *LedgerAccountRepo) ApplyPosting(accountID string, debit, credit decimal.Decimal) error {
	query := `
		UPDATE ledger_accounts
		SET total_debit  = total_debit + $2,
		    total_credit = total_credit + $3,
		    balance      = (total_debit + $2) - (total_credit + $3),
		    updated_at   = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, accountID, debit, credit)
	if err != nil {
		return fmt.Errorf("apply posting: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista el plan de cuentas de la empresa ordenado por código
// (balance de prueba). limit <= 0 lista todo.
func (r *LedgerAccountRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.LedgerAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM ledger_accounts WHERE company_id = $1 ORDER BY code ASC`
	args := []any{companyID}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger accounts: %w", err)
	}
	defer rows.Close()

	var list []*entity.LedgerAccount
	for rows.Next() {
		a, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *LedgerAccountRepo) scanRow(row rowScanner) (*entity.LedgerAccount, error) {
	var a entity.LedgerAccount
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.Code, &a.Name, &a.AccountType, &a.Currency,
		&a.TotalDebit, &a.TotalCredit, &a.Balance, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

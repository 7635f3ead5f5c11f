package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

var _ repository.JournalEntryRepository = (*JournalEntryRepo)(nil)

const entryColumns = `id, company_id, entry_number, entry_date, entry_type, description,
	total_debit, total_credit, reference, reference_id, created_by, created_at`

// JournalEntryRepo implementación del puerto JournalEntryRepository sobre
// PostgreSQL (usable con pool o tx). Los asientos son inmutables: no hay
// UPDATE ni DELETE.
type JournalEntryRepo struct {
	q Querier
}

// NewJournalEntryRepository construye el adaptador de persistencia de comprobantes. Pasar pool o tx (Querier).
func NewJournalEntryRepository(q Querier) *JournalEntryRepo {
	return &JournalEntryRepo{q: q}
}

// LockCompanyJournal toma un advisory lock transaccional por empresa. Serializa
// la asignación de números de comprobante: mientras otra tx tenga el lock, esta
// espera; al commit/rollback se libera solo. FOR UPDATE sobre el último asiento
// no sirve aquí porque no bloquea los INSERT nuevos.
func (r *JournalEntryRepo) LockCompanyJournal(companyID string) error {
	_, err := r.q.Exec(context.Background(),
		`SELECT pg_advisory_xact_lock(hashtext($1))`, companyID)
	if err != nil {
		return fmt.Errorf("lock company journal: %w", err)
	}
	return nil
}

// GetLastEntryNumber devuelve el mayor entry_number de la empresa ("" si no hay).
// El formato YF-###### de ancho fijo hace que el orden lexicográfico coincida
// con el numérico hasta 999999; a partir de ahí se ordena por longitud primero.
func (r *JournalEntryRepo) GetLastEntryNumber(companyID string) (string, error) {
	query := `
		SELECT entry_number FROM journal_entries
		WHERE company_id = $1
		ORDER BY length(entry_number) DESC, entry_number DESC
		LIMIT 1`
	var last string
	err := r.q.QueryRow(context.Background(), query, companyID).Scan(&last)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("get last entry number: %w", err)
	}
	return last, nil
}

// Create persiste cabecera y líneas del comprobante. El constraint único
// (company_id, entry_number) convierte una carrera de numeración en
// domain.ErrDuplicate para que el caso de uso reintente.
func (r *JournalEntryRepo) Create(e *entity.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.CompanyID, e.EntryNumber, e.EntryDate, e.EntryType, e.Description,
		e.TotalDebit, e.TotalCredit, nullIfEmpty(e.Reference), nullIfEmpty(e.ReferenceID),
		nullIfEmpty(e.CreatedBy), e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert journal entry: %w", err)
	}

	lineQuery := `
		INSERT INTO journal_entry_lines (id, entry_id, account_id, account_code, debit_amount, credit_amount, description, customer_id, supplier_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i := range e.Lines {
		l := &e.Lines[i]
		_, err := r.q.Exec(context.Background(), lineQuery,
			l.ID, e.ID, l.AccountID, l.AccountCode, l.DebitAmount, l.CreditAmount,
			l.Description, nullIfEmpty(l.CustomerID), nullIfEmpty(l.SupplierID),
		)
		if err != nil {
			return fmt.Errorf("insert journal entry line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un comprobante con sus líneas.
func (r *JournalEntryRepo) GetByID(id string) (*entity.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE id = $1`
	e, err := r.scanEntry(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get journal entry: %w", err)
	}
	if err := r.loadLines(e); err != nil {
		return nil, err
	}
	return e, nil
}

// ListByCompany lista comprobantes de la empresa, más recientes primero, con
// filtros opcionales de tipo y rango de fechas. Incluye las líneas de cada uno.
func (r *JournalEntryRepo) ListByCompany(companyID string, filter repository.EntryFilter) ([]*entity.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE company_id = $1`
	args := []any{companyID}
	if filter.EntryType != "" {
		args = append(args, filter.EntryType)
		query += fmt.Sprintf(" AND entry_type = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	query += " ORDER BY entry_date DESC, entry_number DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.JournalEntry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, e := range list {
		if err := r.loadLines(e); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *JournalEntryRepo) scanEntry(row rowScanner) (*entity.JournalEntry, error) {
	var e entity.JournalEntry
	var reference, referenceID, createdBy *string
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.EntryNumber, &e.EntryDate, &e.EntryType, &e.Description,
		&e.TotalDebit, &e.TotalCredit, &reference, &referenceID, &createdBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Reference = strOrEmpty(reference)
	e.ReferenceID = strOrEmpty(referenceID)
	e.CreatedBy = strOrEmpty(createdBy)
	return &e, nil
}

func (r *JournalEntryRepo) loadLines(e *entity.JournalEntry) error {
	query := `
		SELECT id, entry_id, account_id, account_code, debit_amount, credit_amount, description, customer_id, supplier_id
		FROM journal_entry_lines WHERE entry_id = $1 ORDER BY account_code ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, e.ID)
	if err != nil {
		return fmt.Errorf("load entry lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.JournalEntryLine
	for rows.Next() {
		var l entity.JournalEntryLine
		var customerID, supplierID *string
		if err := rows.Scan(&l.ID, &l.EntryID, &l.AccountID, &l.AccountCode,
			&l.DebitAmount, &l.CreditAmount, &l.Description, &customerID, &supplierID); err != nil {
			return fmt.Errorf("scan entry line: %w", err)
		}
		l.CustomerID = strOrEmpty(customerID)
		l.SupplierID = strOrEmpty(supplierID)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	e.Lines = lines
	return nil
}

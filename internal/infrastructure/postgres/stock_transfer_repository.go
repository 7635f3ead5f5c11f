package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

const transferColumns = `id, company_id, transfer_number, equipment_id, quantity,
	from_location, to_location, status, requested_by, received_by,
	carrier, tracking_number, expected_date, received_date, notes, created_at, updated_at`

// StockTransferRepo implementación del puerto StockTransferRepository sobre
// PostgreSQL (usable con pool o tx).
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador de persistencia para traslados. Pasar pool o tx (Querier).
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

// Create persiste un nuevo traslado.
func (r *StockTransferRepo) Create(t *entity.StockTransfer) error {
	query := `
		INSERT INTO stock_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.CompanyID, t.TransferNumber, t.EquipmentID, t.Quantity,
		t.FromLocation, t.ToLocation, t.Status, nullIfEmpty(t.RequestedBy), nullIfEmpty(t.ReceivedBy),
		t.Carrier, t.TrackingNumber, t.ExpectedDate, t.ReceivedDate, t.Notes, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID.
func (r *StockTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	return r.getOne(`SELECT `+transferColumns+` FROM stock_transfers WHERE id = $1`, id)
}

// GetForUpdate obtiene un traslado bloqueando su fila (SELECT FOR UPDATE).
// Serializa las transiciones de estado: dos recepciones concurrentes del mismo
// traslado no pueden pasar ambas.
func (r *StockTransferRepo) GetForUpdate(id string) (*entity.StockTransfer, error) {
	return r.getOne(`SELECT `+transferColumns+` FROM stock_transfers WHERE id = $1 FOR UPDATE`, id)
}

func (r *StockTransferRepo) getOne(query, id string) (*entity.StockTransfer, error) {
	var t entity.StockTransfer
	var requestedBy, receivedBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.CompanyID, &t.TransferNumber, &t.EquipmentID, &t.Quantity,
		&t.FromLocation, &t.ToLocation, &t.Status, &requestedBy, &receivedBy,
		&t.Carrier, &t.TrackingNumber, &t.ExpectedDate, &t.ReceivedDate,
		&t.Notes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transfer: %w", err)
	}
	t.RequestedBy = strOrEmpty(requestedBy)
	t.ReceivedBy = strOrEmpty(receivedBy)
	return &t, nil
}

// UpdateStatus persiste la transición de estado y los campos de recepción.
func (r *StockTransferRepo) UpdateStatus(t *entity.StockTransfer) error {
	query := `
		UPDATE stock_transfers
		SET status = $2, carrier = $3, tracking_number = $4,
		    received_by = $5, received_date = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		t.ID, t.Status, t.Carrier, t.TrackingNumber,
		nullIfEmpty(t.ReceivedBy), t.ReceivedDate, t.Notes, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock transfer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista traslados por empresa, más recientes primero, con filtro
// opcional de estado.
func (r *StockTransferRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
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
		return nil, fmt.Errorf("list stock transfers: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockTransfer
	for rows.Next() {
		var t entity.StockTransfer
		var requestedBy, receivedBy *string
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.TransferNumber, &t.EquipmentID, &t.Quantity,
			&t.FromLocation, &t.ToLocation, &t.Status, &requestedBy, &receivedBy,
			&t.Carrier, &t.TrackingNumber, &t.ExpectedDate, &t.ReceivedDate,
			&t.Notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock transfer: %w", err)
		}
		t.RequestedBy = strOrEmpty(requestedBy)
		t.ReceivedBy = strOrEmpty(receivedBy)
		list = append(list, &t)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, company_id, equipment_id, movement_type, movement_reason, quantity,
	stock_before, stock_after, invoice_id, order_id, delivery_note_id,
	from_location, to_location, reference, notes, performed_by, created_at`

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL (usable con pool o tx). Los movimientos son inmutables: no hay
// UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de persistencia para movimientos. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.CompanyID, m.EquipmentID, m.MovementType, m.MovementReason, m.Quantity,
		m.StockBefore, m.StockAfter,
		nullIfEmpty(m.InvoiceID), nullIfEmpty(m.OrderID), nullIfEmpty(m.DeliveryNoteID),
		nullIfEmpty(m.FromLocation), nullIfEmpty(m.ToLocation),
		nullIfEmpty(m.Reference), m.Notes, nullIfEmpty(m.PerformedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := r.scanRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// GetLastByEquipment devuelve el movimiento más reciente del equipo (nil si no hay).
func (r *StockMovementRepo) GetLastByEquipment(equipmentID string) (*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE equipment_id = $1
		ORDER BY created_at DESC, id DESC LIMIT 1`
	m, err := r.scanRow(r.q.QueryRow(context.Background(), query, equipmentID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get last stock movement: %w", err)
	}
	return m, nil
}

// ListByEquipment lista movimientos de un equipo, más recientes primero,
// con filtros opcionales de tipo y rango de fechas.
func (r *StockMovementRepo) ListByEquipment(equipmentID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE equipment_id = $1`
	query, args := movementFilterSQL(query, []any{equipmentID}, filter)
	query += " ORDER BY created_at DESC, id DESC"
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
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountByEquipment cuenta movimientos de un equipo con los mismos filtros del listado.
func (r *StockMovementRepo) CountByEquipment(equipmentID string, filter repository.MovementFilter) (int, error) {
	query := `SELECT count(*) FROM stock_movements WHERE equipment_id = $1`
	query, args := movementFilterSQL(query, []any{equipmentID}, filter)
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return total, nil
}

func movementFilterSQL(query string, args []any, filter repository.MovementFilter) (string, []any) {
	if filter.MovementType != "" {
		args = append(args, filter.MovementType)
		query += fmt.Sprintf(" AND movement_type = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	return query, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *StockMovementRepo) scanRow(row rowScanner) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var invoiceID, orderID, deliveryNoteID, fromLoc, toLoc, reference, performedBy *string
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.EquipmentID, &m.MovementType, &m.MovementReason, &m.Quantity,
		&m.StockBefore, &m.StockAfter, &invoiceID, &orderID, &deliveryNoteID,
		&fromLoc, &toLoc, &reference, &m.Notes, &performedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.InvoiceID = strOrEmpty(invoiceID)
	m.OrderID = strOrEmpty(orderID)
	m.DeliveryNoteID = strOrEmpty(deliveryNoteID)
	m.FromLocation = strOrEmpty(fromLoc)
	m.ToLocation = strOrEmpty(toLoc)
	m.Reference = strOrEmpty(reference)
	m.PerformedBy = strOrEmpty(performedBy)
	return &m, nil
}

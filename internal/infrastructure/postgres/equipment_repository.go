package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

const equipmentColumns = `id, company_id, code, name, category, quantity, min_stock, critical_stock, daily_rate, status, created_at, updated_at`

// EquipmentRepo implementación del puerto EquipmentRepository sobre PostgreSQL
// (usable con pool o tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador de persistencia para equipos. Pasar pool o tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

// Create persiste un nuevo equipo del catálogo.
func (r *EquipmentRepo) Create(equipment *entity.Equipment) error {
	query := `
		INSERT INTO equipment (` + equipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		equipment.ID, equipment.CompanyID, equipment.Code, equipment.Name, equipment.Category,
		equipment.Quantity, equipment.MinStock, equipment.CriticalStock, equipment.DailyRate,
		equipment.Status, equipment.CreatedAt, equipment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por ID.
func (r *EquipmentRepo) GetByID(id string) (*entity.Equipment, error) {
	return r.scanOne(`SELECT `+equipmentColumns+` FROM equipment WHERE id = $1`, id)
}

// GetForUpdate obtiene un equipo bloqueando su fila (SELECT FOR UPDATE).
// Debe invocarse dentro de una transacción; serializa los movimientos
// concurrentes sobre el mismo equipo.
func (r *EquipmentRepo) GetForUpdate(id string) (*entity.Equipment, error) {
	return r.scanOne(`SELECT `+equipmentColumns+` FROM equipment WHERE id = $1 FOR UPDATE`, id)
}

func (r *EquipmentRepo) scanOne(query, id string) (*entity.Equipment, error) {
	var e entity.Equipment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.CompanyID, &e.Code, &e.Name, &e.Category,
		&e.Quantity, &e.MinStock, &e.CriticalStock, &e.DailyRate,
		&e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return &e, nil
}

// UpdateQuantity escribe el nuevo total en mano del equipo. Solo el libro de
// inventario debe invocarlo, dentro de la misma tx que inserta el movimiento.
func (r *EquipmentRepo) UpdateQuantity(id string, quantity int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE equipment SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update equipment quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista equipos por empresa, más recientes primero.
// limit <= 0 lista todo (barrido completo de la empresa).
func (r *EquipmentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Equipment, error) {
	query := `
		SELECT ` + equipmentColumns + `
		FROM equipment WHERE company_id = $1 ORDER BY created_at DESC`
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
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()
	return scanEquipmentRows(rows)
}

// ListForSummary lista equipos de la empresa ordenados por cantidad ascendente
// (los más escasos primero), con filtros opcionales de categoría y stock bajo.
// El umbral efectivo por equipo es min_stock, o lowThreshold cuando min_stock = 0.
func (r *EquipmentRepo) ListForSummary(companyID, category string, lowStockOnly bool, lowThreshold int) ([]*entity.Equipment, error) {
	query := `
		SELECT ` + equipmentColumns + `
		FROM equipment WHERE company_id = $1`
	args := []any{companyID}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if lowStockOnly {
		args = append(args, lowThreshold)
		query += fmt.Sprintf(" AND quantity <= CASE WHEN min_stock > 0 THEN min_stock ELSE $%d END", len(args))
	}
	query += " ORDER BY quantity ASC, name ASC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list equipment summary: %w", err)
	}
	defer rows.Close()
	return scanEquipmentRows(rows)
}

func scanEquipmentRows(rows pgx.Rows) ([]*entity.Equipment, error) {
	var list []*entity.Equipment
	for rows.Next() {
		var e entity.Equipment
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Code, &e.Name, &e.Category,
			&e.Quantity, &e.MinStock, &e.CriticalStock, &e.DailyRate,
			&e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

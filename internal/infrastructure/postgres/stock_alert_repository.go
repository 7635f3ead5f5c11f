package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

const alertColumns = `id, company_id, equipment_id, alert_type, severity, message,
	current_stock, threshold_value, status, acknowledged_by, acknowledged_at, resolved_at, created_at`

// StockAlertRepo implementación del puerto StockAlertRepository sobre PostgreSQL.
// El índice único parcial ux_stock_alerts_active (equipment_id WHERE status =
// 'active') hace imposible tener dos alertas activas del mismo equipo, incluso
// bajo chequeos concurrentes.
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador de persistencia para alertas.
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

// Create persiste una nueva alerta. Devuelve domain.ErrDuplicate si el equipo
// ya tiene una alerta activa (carrera entre chequeos concurrentes).
func (r *StockAlertRepo) Create(a *entity.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.CompanyID, a.EquipmentID, a.AlertType, a.Severity, a.Message,
		a.CurrentStock, a.ThresholdValue, a.Status,
		nullIfEmpty(a.AcknowledgedBy), a.AcknowledgedAt, a.ResolvedAt, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *StockAlertRepo) GetByID(id string) (*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts WHERE id = $1`
	a, err := r.scanRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock alert: %w", err)
	}
	return a, nil
}

// GetActiveByEquipment devuelve la alerta activa del equipo (nil si no hay).
func (r *StockAlertRepo) GetActiveByEquipment(equipmentID string) (*entity.StockAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM stock_alerts WHERE equipment_id = $1 AND status = 'active'`
	a, err := r.scanRow(r.q.QueryRow(context.Background(), query, equipmentID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active alert: %w", err)
	}
	return a, nil
}

// Resolve marca la alerta como resuelta con timestamp.
func (r *StockAlertRepo) Resolve(alertID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE stock_alerts SET status = 'resolved', resolved_at = now() WHERE id = $1`,
		alertID,
	)
	if err != nil {
		return fmt.Errorf("resolve stock alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Acknowledge marca la alerta como reconocida por un usuario.
func (r *StockAlertRepo) Acknowledge(alertID, userID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE stock_alerts SET status = 'acknowledged', acknowledged_by = $2, acknowledged_at = now() WHERE id = $1`,
		alertID, userID,
	)
	if err != nil {
		return fmt.Errorf("acknowledge stock alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActive lista alertas activas de la empresa, severidad descendente
// (critical primero) y luego las más recientes primero.
func (r *StockAlertRepo) ListActive(companyID string, filter repository.AlertFilter) ([]*entity.StockAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM stock_alerts WHERE company_id = $1 AND status = 'active'`
	args := []any{companyID}
	if filter.Severity != "" {
		args = append(args, filter.Severity)
		query += fmt.Sprintf(" AND severity = $%d", len(args))
	}
	if filter.AlertType != "" {
		args = append(args, filter.AlertType)
		query += fmt.Sprintf(" AND alert_type = $%d", len(args))
	}
	query += ` ORDER BY CASE severity WHEN 'critical' THEN 2 ELSE 1 END DESC, created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockAlert
	for rows.Next() {
		a, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *StockAlertRepo) scanRow(row rowScanner) (*entity.StockAlert, error) {
	var a entity.StockAlert
	var ackBy *string
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.EquipmentID, &a.AlertType, &a.Severity, &a.Message,
		&a.CurrentStock, &a.ThresholdValue, &a.Status,
		&ackBy, &a.AcknowledgedAt, &a.ResolvedAt, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.AcknowledgedBy = strOrEmpty(ackBy)
	return &a, nil
}

package repository

import "github.com/tu-usuario/rental-pro/internal/domain/entity"

// AlertFilter filtros para listar alertas activas.
type AlertFilter struct {
	Severity  string
	AlertType string
	Limit     int
}

// StockAlertRepository define el puerto de persistencia para alertas de stock
// (DIP). El índice único parcial sobre (equipment_id) WHERE status='active'
// garantiza a nivel de datos la singularidad de alerta activa por equipo.
type StockAlertRepository interface {
	Create(alert *entity.StockAlert) error
	GetByID(id string) (*entity.StockAlert, error)
	// GetActiveByEquipment devuelve la alerta activa del equipo (nil si no hay).
	GetActiveByEquipment(equipmentID string) (*entity.StockAlert, error)
	// Resolve marca la alerta como resuelta con timestamp.
	Resolve(alertID string) error
	// Acknowledge marca la alerta como reconocida por un usuario.
	Acknowledge(alertID, userID string) error
	// ListActive lista alertas activas de la empresa, severidad descendente y
	// luego las más recientes primero.
	ListActive(companyID string, filter AlertFilter) ([]*entity.StockAlert, error)
}

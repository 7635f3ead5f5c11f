package repository

import (
	"time"

	"github.com/tu-usuario/rental-pro/internal/domain/entity"
)

// MovementFilter filtros de consulta del historial de movimientos.
type MovementFilter struct {
	MovementType string
	From, To     *time.Time
	Limit        int
	Offset       int
}

// StockMovementRepository define el puerto de persistencia para movimientos de
// stock (DIP). Los movimientos son inmutables: solo Create y lecturas.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByEquipment(equipmentID string, filter MovementFilter) ([]*entity.StockMovement, error)
	CountByEquipment(equipmentID string, filter MovementFilter) (int, error)
	// GetLastByEquipment devuelve el movimiento más reciente (nil si no hay).
	GetLastByEquipment(equipmentID string) (*entity.StockMovement, error)
}

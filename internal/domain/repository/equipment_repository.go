package repository

import "github.com/tu-usuario/rental-pro/internal/domain/entity"

// EquipmentRepository define el puerto de persistencia para Equipment (DIP).
// El catálogo (creación, tarifas) pertenece a otro subsistema; el núcleo de
// inventario solo lee y muta Quantity — siempre dentro de una transacción que
// también inserta el StockMovement correspondiente.
type EquipmentRepository interface {
	Create(equipment *entity.Equipment) error
	GetByID(id string) (*entity.Equipment, error)
	// GetForUpdate bloquea la fila del equipo (SELECT FOR UPDATE) para evitar
	// lost updates entre movimientos concurrentes sobre el mismo equipo.
	GetForUpdate(id string) (*entity.Equipment, error)
	// UpdateQuantity escribe el nuevo total en mano. Solo el libro de
	// inventario debe invocarlo.
	UpdateQuantity(id string, quantity int) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Equipment, error)
	// ListForSummary lista equipos de la empresa ordenados por cantidad
	// ascendente, con filtros opcionales de categoría y stock bajo.
	ListForSummary(companyID, category string, lowStockOnly bool, lowThreshold int) ([]*entity.Equipment, error)
}

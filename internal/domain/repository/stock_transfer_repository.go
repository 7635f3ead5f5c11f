package repository

import "github.com/tu-usuario/rental-pro/internal/domain/entity"

// StockTransferRepository define el puerto de persistencia para traslados (DIP).
type StockTransferRepository interface {
	Create(transfer *entity.StockTransfer) error
	GetByID(id string) (*entity.StockTransfer, error)
	// GetForUpdate bloquea la fila del traslado para serializar las
	// transiciones de estado (dos recepciones concurrentes no deben pasar).
	GetForUpdate(id string) (*entity.StockTransfer, error)
	UpdateStatus(transfer *entity.StockTransfer) error
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.StockTransfer, error)
}

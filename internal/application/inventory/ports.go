package inventory

import (
	"context"

	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de
// inventario: leer cantidad, calcular, escribir equipo e insertar movimiento
// ocurren juntos o no ocurren.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		equipmentRepo repository.EquipmentRepository,
	) error) error

	// RunTransfer añade el repositorio de traslados para las dos fases del
	// coordinador (salida al crear, entrada al completar).
	RunTransfer(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		equipmentRepo repository.EquipmentRepository,
		transferRepo repository.StockTransferRepository,
	) error) error
}

// StockLevelChecker es el contrato del monitor de alertas visto desde el libro
// de inventario. Se invoca después del commit como efecto best-effort: su
// fallo se registra en el log pero nunca revierte ni bloquea el movimiento.
type StockLevelChecker interface {
	CheckStockLevels(ctx context.Context, equipmentID, companyID string) error
}

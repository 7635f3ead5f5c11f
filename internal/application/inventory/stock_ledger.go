package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
	"github.com/tu-usuario/rental-pro/pkg/logger"
)

// StockLedgerUseCase es el libro de inventario: único mutador autorizado de
// Equipment.Quantity. Cada mutación se hace en una transacción con bloqueo de
// fila (SELECT FOR UPDATE) y deja un StockMovement inmutable con snapshot
// antes/después. Tras el commit invoca el monitor de alertas en modo
// best-effort.
type StockLedgerUseCase struct {
	txRunner      TxRunner
	equipmentRepo repository.EquipmentRepository
	movementRepo  repository.StockMovementRepository
	alerts        StockLevelChecker
	log           *logger.Logger
}

// NewStockLedgerUseCase construye el caso de uso. alerts puede ser nil
// (ej. en la fase de salida de un traslado que ya verifica al completar).
func NewStockLedgerUseCase(
	txRunner TxRunner,
	equipmentRepo repository.EquipmentRepository,
	movementRepo repository.StockMovementRepository,
	alerts StockLevelChecker,
	log *logger.Logger,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:      txRunner,
		equipmentRepo: equipmentRepo,
		movementRepo:  movementRepo,
		alerts:        alerts,
		log:           log,
	}
}

// MovementInput entrada para registrar un movimiento. La semántica de Quantity
// depende del tipo:
//   - in:  unidades que entran (> 0)
//   - out: unidades que salen (> 0); falla con ErrInsufficientStock si el
//     resultado sería negativo
//   - adjustment: total absoluto nuevo (>= 0); el movimiento guarda la
//     diferencia firmada nuevo-anterior para auditoría
//   - transfer: delta firmado directo (negativo pata de salida, positivo
//     pata de entrada)
type MovementInput struct {
	CompanyID      string
	EquipmentID    string
	MovementType   string
	MovementReason string
	Quantity       int
	InvoiceID      string
	OrderID        string
	DeliveryNoteID string
	FromLocation   string
	ToLocation     string
	Reference      string
	Notes          string
	PerformedBy    string
}

// RecordMovement valida, abre la transacción, aplica el movimiento y tras el
// commit dispara la verificación de niveles de stock (best-effort).
func (uc *StockLedgerUseCase) RecordMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	equipment, err := uc.equipmentRepo.GetByID(input.EquipmentID)
	if err != nil {
		return nil, err
	}
	if equipment == nil {
		return nil, domain.ErrNotFound
	}
	if equipment.CompanyID != input.CompanyID {
		return nil, domain.ErrForbidden
	}

	var movement *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		equipmentRepo repository.EquipmentRepository,
	) error {
		movement, err = ApplyMovement(movRepo, equipmentRepo, input, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.checkLevels(ctx, input.EquipmentID, input.CompanyID)
	return movement, nil
}

// validate revisa tipo y cantidad según la semántica de cada tipo.
func (uc *StockLedgerUseCase) validate(input MovementInput) error {
	if input.EquipmentID == "" || input.CompanyID == "" {
		return domain.ErrInvalidInput
	}
	switch input.MovementType {
	case entity.MovementTypeIn, entity.MovementTypeOut:
		if input.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		if input.Quantity < 0 {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeTransfer:
		if input.Quantity == 0 {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// checkLevels invoca el monitor de alertas tras un commit exitoso.
// Es un efecto secundario aislado: el error se registra y se descarta.
func (uc *StockLedgerUseCase) checkLevels(ctx context.Context, equipmentID, companyID string) {
	if uc.alerts == nil {
		return
	}
	if err := uc.alerts.CheckStockLevels(ctx, equipmentID, companyID); err != nil && uc.log != nil {
		uc.log.Warn().
			Err(err).
			Str("equipment_id", equipmentID).
			Msg("verificación de alertas de stock falló tras el movimiento")
	}
}

// ApplyMovement aplica un movimiento usando repositorios atados a la
// transacción del caller: bloquea la fila del equipo, calcula antes/después,
// actualiza la cantidad e inserta el registro inmutable. Lo usan
// RecordMovement y el coordinador de traslados (ambas patas).
func ApplyMovement(
	movRepo repository.StockMovementRepository,
	equipmentRepo repository.EquipmentRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	equipment, err := equipmentRepo.GetForUpdate(input.EquipmentID)
	if err != nil {
		return nil, err
	}
	if equipment == nil {
		return nil, domain.ErrNotFound
	}

	before := equipment.Quantity
	var delta int
	switch input.MovementType {
	case entity.MovementTypeIn:
		delta = input.Quantity
	case entity.MovementTypeOut:
		delta = -input.Quantity
	case entity.MovementTypeAdjustment:
		// El caller envía el total absoluto; se audita la diferencia firmada.
		delta = input.Quantity - before
	case entity.MovementTypeTransfer:
		delta = input.Quantity
	default:
		return nil, domain.ErrInvalidInput
	}

	after := before + delta
	if after < 0 {
		return nil, domain.ErrInsufficientStock
	}

	if err := equipmentRepo.UpdateQuantity(input.EquipmentID, after); err != nil {
		return nil, err
	}

	movement := &entity.StockMovement{
		ID:             uuid.New().String(),
		CompanyID:      input.CompanyID,
		EquipmentID:    input.EquipmentID,
		MovementType:   input.MovementType,
		MovementReason: input.MovementReason,
		Quantity:       delta,
		StockBefore:    before,
		StockAfter:     after,
		InvoiceID:      input.InvoiceID,
		OrderID:        input.OrderID,
		DeliveryNoteID: input.DeliveryNoteID,
		FromLocation:   input.FromLocation,
		ToLocation:     input.ToLocation,
		Reference:      input.Reference,
		Notes:          input.Notes,
		PerformedBy:    input.PerformedBy,
		CreatedAt:      now,
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// ── Especializaciones ─────────────────────────────────────────────────────────

// SaleInput entrada para registrar una venta/entrega de alquiler (salida).
type SaleInput struct {
	CompanyID      string
	EquipmentID    string
	Quantity       int
	InvoiceID      string
	OrderID        string
	DeliveryNoteID string
	PerformedBy    string
	Notes          string
}

// RecordSale registra una salida por venta.
func (uc *StockLedgerUseCase) RecordSale(ctx context.Context, input SaleInput) (*entity.StockMovement, error) {
	return uc.RecordMovement(ctx, MovementInput{
		CompanyID:      input.CompanyID,
		EquipmentID:    input.EquipmentID,
		MovementType:   entity.MovementTypeOut,
		MovementReason: entity.ReasonSale,
		Quantity:       input.Quantity,
		InvoiceID:      input.InvoiceID,
		OrderID:        input.OrderID,
		DeliveryNoteID: input.DeliveryNoteID,
		PerformedBy:    input.PerformedBy,
		Notes:          input.Notes,
	})
}

// ReturnInput entrada para registrar una devolución (entrada).
type ReturnInput struct {
	CompanyID   string
	EquipmentID string
	Quantity    int
	InvoiceID   string
	OrderID     string
	Reason      string
	PerformedBy string
	Notes       string
}

// RecordReturn registra una entrada por devolución.
func (uc *StockLedgerUseCase) RecordReturn(ctx context.Context, input ReturnInput) (*entity.StockMovement, error) {
	reason := input.Reason
	if reason == "" {
		reason = entity.ReasonReturn
	}
	return uc.RecordMovement(ctx, MovementInput{
		CompanyID:      input.CompanyID,
		EquipmentID:    input.EquipmentID,
		MovementType:   entity.MovementTypeIn,
		MovementReason: reason,
		Quantity:       input.Quantity,
		InvoiceID:      input.InvoiceID,
		OrderID:        input.OrderID,
		PerformedBy:    input.PerformedBy,
		Notes:          input.Notes,
	})
}

// AdjustmentInput entrada para un ajuste manual. NewQuantity es el total
// absoluto que debe quedar en mano.
type AdjustmentInput struct {
	CompanyID   string
	EquipmentID string
	NewQuantity int
	Reason      string
	PerformedBy string
	Notes       string
}

// AdjustStock corrige la cantidad en mano a un total absoluto.
func (uc *StockLedgerUseCase) AdjustStock(ctx context.Context, input AdjustmentInput) (*entity.StockMovement, error) {
	reason := input.Reason
	if reason == "" {
		reason = entity.ReasonAdjustment
	}
	return uc.RecordMovement(ctx, MovementInput{
		CompanyID:      input.CompanyID,
		EquipmentID:    input.EquipmentID,
		MovementType:   entity.MovementTypeAdjustment,
		MovementReason: reason,
		Quantity:       input.NewQuantity,
		PerformedBy:    input.PerformedBy,
		Notes:          input.Notes,
	})
}

// ── Proyecciones de lectura ───────────────────────────────────────────────────

// MovementHistory resultado paginado del historial de un equipo.
type MovementHistory struct {
	Movements []*entity.StockMovement
	Total     int
	Limit     int
	Offset    int
}

// GetMovementHistory lista los movimientos de un equipo, más recientes primero.
func (uc *StockLedgerUseCase) GetMovementHistory(ctx context.Context, companyID, equipmentID string, filter repository.MovementFilter) (*MovementHistory, error) {
	equipment, err := uc.equipmentRepo.GetByID(equipmentID)
	if err != nil {
		return nil, err
	}
	if equipment == nil {
		return nil, domain.ErrNotFound
	}
	if equipment.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	movements, err := uc.movementRepo.ListByEquipment(equipmentID, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.movementRepo.CountByEquipment(equipmentID, filter)
	if err != nil {
		return nil, err
	}
	return &MovementHistory{Movements: movements, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// StockSummary agregado de inventario de una empresa.
type StockSummary struct {
	TotalItems      int
	TotalQuantity   int
	LowStockItems   int
	OutOfStockItems int
	Categories      []string
	Equipment       []*entity.Equipment
}

// GetStockSummary resume el inventario: totales, equipos en stock bajo/agotado
// y categorías presentes, con los equipos ordenados por cantidad ascendente.
func (uc *StockLedgerUseCase) GetStockSummary(ctx context.Context, companyID, category string, lowStockOnly bool, lowThreshold int) (*StockSummary, error) {
	items, err := uc.equipmentRepo.ListForSummary(companyID, category, lowStockOnly, lowThreshold)
	if err != nil {
		return nil, err
	}
	summary := &StockSummary{Equipment: items, TotalItems: len(items)}
	seen := map[string]bool{}
	for _, eq := range items {
		summary.TotalQuantity += eq.Quantity
		if eq.Quantity == 0 {
			summary.OutOfStockItems++
		}
		if eq.Quantity <= eq.LowThreshold(lowThreshold) {
			summary.LowStockItems++
		}
		if eq.Category != "" && !seen[eq.Category] {
			seen[eq.Category] = true
			summary.Categories = append(summary.Categories, eq.Category)
		}
	}
	return summary, nil
}

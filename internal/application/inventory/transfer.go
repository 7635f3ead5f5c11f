package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
	"github.com/tu-usuario/rental-pro/pkg/logger"
)

// TransferUseCase coordina traslados de stock entre ubicaciones en dos fases
// sobre el libro de inventario: al iniciar registra la pata de salida (delta
// negativo) en la misma transacción que crea el traslado, y al completar
// registra la pata de entrada (delta positivo). Así la cantidad nunca se
// cuenta disponible en dos ubicaciones a la vez.
type TransferUseCase struct {
	txRunner      TxRunner
	equipmentRepo repository.EquipmentRepository
	transferRepo  repository.StockTransferRepository
	alerts        StockLevelChecker
	log           *logger.Logger
}

// NewTransferUseCase construye el coordinador de traslados.
func NewTransferUseCase(
	txRunner TxRunner,
	equipmentRepo repository.EquipmentRepository,
	transferRepo repository.StockTransferRepository,
	alerts StockLevelChecker,
	log *logger.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		equipmentRepo: equipmentRepo,
		transferRepo:  transferRepo,
		alerts:        alerts,
		log:           log,
	}
}

// TransferInput entrada para iniciar un traslado.
type TransferInput struct {
	CompanyID      string
	EquipmentID    string
	Quantity       int
	FromLocation   string
	ToLocation     string
	RequestedBy    string
	Carrier        string
	TrackingNumber string
	ExpectedDate   *time.Time
	Notes          string
}

// InitiateTransfer crea el traslado en pending y registra la salida en la
// misma transacción. Falla con ErrInsufficientStock si el origen no tiene la
// cantidad (la pata de salida lo garantiza también bajo concurrencia, porque
// se evalúa con la fila del equipo bloqueada).
func (uc *TransferUseCase) InitiateTransfer(ctx context.Context, input TransferInput) (*entity.StockTransfer, error) {
	if input.EquipmentID == "" || input.CompanyID == "" || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.FromLocation == "" || input.ToLocation == "" || input.FromLocation == input.ToLocation {
		return nil, domain.ErrInvalidInput
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
	if equipment.Quantity < input.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	now := time.Now()
	transfer := &entity.StockTransfer{
		ID:             uuid.New().String(),
		CompanyID:      input.CompanyID,
		TransferNumber: fmt.Sprintf("TRF-%d", now.UnixMilli()),
		EquipmentID:    input.EquipmentID,
		Quantity:       input.Quantity,
		FromLocation:   input.FromLocation,
		ToLocation:     input.ToLocation,
		Status:         entity.TransferStatusPending,
		RequestedBy:    input.RequestedBy,
		Carrier:        input.Carrier,
		TrackingNumber: input.TrackingNumber,
		ExpectedDate:   input.ExpectedDate,
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.StockMovementRepository,
		equipmentRepo repository.EquipmentRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		if err := transferRepo.Create(transfer); err != nil {
			return err
		}
		_, err := ApplyMovement(movRepo, equipmentRepo, MovementInput{
			CompanyID:      input.CompanyID,
			EquipmentID:    input.EquipmentID,
			MovementType:   entity.MovementTypeTransfer,
			MovementReason: entity.ReasonTransfer,
			Quantity:       -input.Quantity, // pata de salida
			FromLocation:   input.FromLocation,
			ToLocation:     input.ToLocation,
			Reference:      transfer.TransferNumber,
			Notes:          fmt.Sprintf("Traslado hacia %s", input.ToLocation),
			PerformedBy:    input.RequestedBy,
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.checkLevels(ctx, input.EquipmentID, input.CompanyID)
	return transfer, nil
}

// StartTransit marca el traslado como en tránsito (pending → in_transit),
// anotando transportista y guía si se conocen.
func (uc *TransferUseCase) StartTransit(ctx context.Context, companyID, transferID, carrier, trackingNumber string) (*entity.StockTransfer, error) {
	var transfer *entity.StockTransfer
	err := uc.txRunner.RunTransfer(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.EquipmentRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		var err error
		transfer, err = transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if transfer.Status != entity.TransferStatusPending {
			return domain.ErrInvalidTransferState
		}
		transfer.Status = entity.TransferStatusInTransit
		if carrier != "" {
			transfer.Carrier = carrier
		}
		if trackingNumber != "" {
			transfer.TrackingNumber = trackingNumber
		}
		transfer.UpdatedAt = time.Now()
		return transferRepo.UpdateStatus(transfer)
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// CompleteTransfer recibe el traslado: solo desde pending o in_transit
// (ErrInvalidTransferState en cualquier otro estado). En una transacción marca
// completed con receptor/fecha y registra la pata de entrada con la misma
// referencia.
func (uc *TransferUseCase) CompleteTransfer(ctx context.Context, companyID, transferID, receivedBy string) (*entity.StockTransfer, error) {
	var transfer *entity.StockTransfer
	err := uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.StockMovementRepository,
		equipmentRepo repository.EquipmentRepository,
		transferRepo repository.StockTransferRepository,
	) error {
		var err error
		transfer, err = transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if !transfer.CanComplete() {
			return domain.ErrInvalidTransferState
		}

		now := time.Now()
		transfer.Status = entity.TransferStatusCompleted
		transfer.ReceivedBy = receivedBy
		transfer.ReceivedDate = &now
		transfer.UpdatedAt = now
		if err := transferRepo.UpdateStatus(transfer); err != nil {
			return err
		}

		_, err = ApplyMovement(movRepo, equipmentRepo, MovementInput{
			CompanyID:      transfer.CompanyID,
			EquipmentID:    transfer.EquipmentID,
			MovementType:   entity.MovementTypeTransfer,
			MovementReason: entity.ReasonTransfer,
			Quantity:       transfer.Quantity, // pata de entrada
			FromLocation:   transfer.FromLocation,
			ToLocation:     transfer.ToLocation,
			Reference:      transfer.TransferNumber,
			Notes:          fmt.Sprintf("Traslado recibido desde %s", transfer.FromLocation),
			PerformedBy:    receivedBy,
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.checkLevels(ctx, transfer.EquipmentID, transfer.CompanyID)
	return transfer, nil
}

// GetTransfer devuelve un traslado de la empresa.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, companyID, transferID string) (*entity.StockTransfer, error) {
	transfer, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	if transfer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return transfer, nil
}

// ListTransfers lista traslados de la empresa, opcionalmente por estado.
func (uc *TransferUseCase) ListTransfers(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.StockTransfer, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.transferRepo.ListByCompany(companyID, status, limit, offset)
}

func (uc *TransferUseCase) checkLevels(ctx context.Context, equipmentID, companyID string) {
	if uc.alerts == nil {
		return
	}
	if err := uc.alerts.CheckStockLevels(ctx, equipmentID, companyID); err != nil && uc.log != nil {
		uc.log.Warn().
			Err(err).
			Str("equipment_id", equipmentID).
			Msg("verificación de alertas de stock falló tras el traslado")
	}
}

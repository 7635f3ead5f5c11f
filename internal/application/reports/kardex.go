package reports

import (
	"context"
	"time"

	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

// KardexPDFGenerator genera la representación PDF del kardex de un equipo.
type KardexPDFGenerator interface {
	GenerateKardexPDF(
		ctx context.Context,
		company *entity.Company,
		equipment *entity.Equipment,
		movements []*entity.StockMovement,
	) ([]byte, error)
}

// KardexUseCase arma el kardex (historial cronológico de movimientos con
// saldos) de un equipo y lo exporta como PDF.
type KardexUseCase struct {
	companyRepo   repository.CompanyRepository
	equipmentRepo repository.EquipmentRepository
	movRepo       repository.StockMovementRepository
	generator     KardexPDFGenerator
}

// NewKardexUseCase construye el caso de uso de kardex.
func NewKardexUseCase(
	companyRepo repository.CompanyRepository,
	equipmentRepo repository.EquipmentRepository,
	movRepo repository.StockMovementRepository,
	generator KardexPDFGenerator,
) *KardexUseCase {
	return &KardexUseCase{
		companyRepo:   companyRepo,
		equipmentRepo: equipmentRepo,
		movRepo:       movRepo,
		generator:     generator,
	}
}

// GenerateKardex genera el PDF del kardex del equipo, opcionalmente acotado
// por rango de fechas. Los movimientos van en orden cronológico ascendente.
func (uc *KardexUseCase) GenerateKardex(ctx context.Context, companyID, equipmentID string, from, to *time.Time) ([]byte, error) {
	equipment, err := uc.equipmentRepo.GetByID(equipmentID)
	if err != nil {
		return nil, err
	}
	if equipment == nil || equipment.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	movements, err := uc.movRepo.ListByEquipment(equipmentID, repository.MovementFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	// El repo devuelve descendente; el kardex se lee de viejo a nuevo.
	for i, j := 0, len(movements)-1; i < j; i, j = i+1, j-1 {
		movements[i], movements[j] = movements[j], movements[i]
	}

	return uc.generator.GenerateKardexPDF(ctx, company, equipment, movements)
}

package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rental-pro/internal/application/dto"
	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

// EquipmentUseCase casos de uso del catálogo de equipos. La cantidad en mano
// no se toca acá: entra y sale exclusivamente vía movimientos de stock.
type EquipmentUseCase struct {
	repo repository.EquipmentRepository
}

// NewEquipmentUseCase construye el caso de uso con el puerto de persistencia.
func NewEquipmentUseCase(repo repository.EquipmentRepository) *EquipmentUseCase {
	return &EquipmentUseCase{repo: repo}
}

// Create da de alta un equipo en el catálogo con cantidad cero.
// Devuelve domain.ErrDuplicate si el código ya existe en la empresa.
func (uc *EquipmentUseCase) Create(companyID string, in dto.CreateEquipmentRequest) (*dto.EquipmentResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	equipment := &entity.Equipment{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Code:          in.Code,
		Name:          in.Name,
		Category:      in.Category,
		Quantity:      0,
		MinStock:      in.MinStock,
		CriticalStock: in.CriticalStock,
		DailyRate:     in.DailyRate,
		Status:        entity.EquipmentStatusAvailable,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(equipment); err != nil {
		return nil, err
	}
	return entityToEquipmentResponse(equipment), nil
}

// GetByID obtiene un equipo de la empresa (nil si no existe o es de otra empresa).
func (uc *EquipmentUseCase) GetByID(companyID, id string) (*dto.EquipmentResponse, error) {
	equipment, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if equipment == nil || equipment.CompanyID != companyID {
		return nil, nil
	}
	return entityToEquipmentResponse(equipment), nil
}

// List lista el catálogo de la empresa con paginación.
func (uc *EquipmentUseCase) List(companyID string, limit, offset int) ([]dto.EquipmentResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EquipmentResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *entityToEquipmentResponse(e))
	}
	return items, nil
}

func entityToEquipmentResponse(e *entity.Equipment) *dto.EquipmentResponse {
	if e == nil {
		return nil
	}
	return &dto.EquipmentResponse{
		ID:            e.ID,
		Code:          e.Code,
		Name:          e.Name,
		Category:      e.Category,
		Quantity:      e.Quantity,
		MinStock:      e.MinStock,
		CriticalStock: e.CriticalStock,
		DailyRate:     e.DailyRate,
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
	}
}

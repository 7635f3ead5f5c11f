package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
	"github.com/tu-usuario/rental-pro/pkg/logger"
)

// AlertMonitorUseCase deriva el estado de alerta de cada equipo a partir de su
// cantidad actual. Tabla de decisión (primera coincidencia gana):
//
//	cantidad == 0            → out_of_stock / critical
//	cantidad <= crítico      → low_stock    / critical
//	cantidad <= bajo         → low_stock    / high
//	en otro caso             → sin alerta
//
// Invariante: como máximo una alerta active por equipo. Mientras una alerta
// siga activa no se escala la severidad en el sitio (comportamiento de
// referencia; decisión registrada en DESIGN.md).
type AlertMonitorUseCase struct {
	equipmentRepo   repository.EquipmentRepository
	alertRepo       repository.StockAlertRepository
	lowDefault      int
	criticalDefault int
	log             *logger.Logger
}

// Umbrales por defecto cuando el equipo no define los suyos.
const (
	DefaultLowThreshold      = 5
	DefaultCriticalThreshold = 2
)

// NewAlertMonitorUseCase construye el monitor. lowDefault/criticalDefault en 0
// usan los valores por defecto del paquete.
func NewAlertMonitorUseCase(
	equipmentRepo repository.EquipmentRepository,
	alertRepo repository.StockAlertRepository,
	lowDefault, criticalDefault int,
	log *logger.Logger,
) *AlertMonitorUseCase {
	if lowDefault <= 0 {
		lowDefault = DefaultLowThreshold
	}
	if criticalDefault <= 0 {
		criticalDefault = DefaultCriticalThreshold
	}
	return &AlertMonitorUseCase{
		equipmentRepo:   equipmentRepo,
		alertRepo:       alertRepo,
		lowDefault:      lowDefault,
		criticalDefault: criticalDefault,
		log:             log,
	}
}

// CheckStockLevels evalúa la tabla de decisión para un equipo y concilia la
// alerta activa: crea si corresponde y no hay, resuelve si no corresponde y
// hay, deja intacta si corresponde y ya existe. Idempotente.
func (uc *AlertMonitorUseCase) CheckStockLevels(ctx context.Context, equipmentID, companyID string) error {
	equipment, err := uc.equipmentRepo.GetByID(equipmentID)
	if err != nil {
		return err
	}
	if equipment == nil || equipment.CompanyID != companyID {
		return nil // best-effort: equipo desaparecido no es un error del caller
	}

	current := equipment.Quantity
	low := equipment.LowThreshold(uc.lowDefault)
	critical := equipment.CriticalThreshold(uc.criticalDefault)

	var alertType, severity, message string
	threshold := low
	switch {
	case current == 0:
		alertType = entity.AlertTypeOutOfStock
		severity = entity.AlertSeverityCritical
		message = fmt.Sprintf("%s está agotado", equipment.Name)
		threshold = 0
	case current <= critical:
		alertType = entity.AlertTypeLowStock
		severity = entity.AlertSeverityCritical
		message = fmt.Sprintf("%s con stock crítico (%d unidades)", equipment.Name, current)
	case current <= low:
		alertType = entity.AlertTypeLowStock
		severity = entity.AlertSeverityHigh
		message = fmt.Sprintf("%s con stock bajo (%d unidades)", equipment.Name, current)
	}

	existing, err := uc.alertRepo.GetActiveByEquipment(equipmentID)
	if err != nil {
		return err
	}

	switch {
	case alertType != "" && existing == nil:
		alert := &entity.StockAlert{
			ID:             uuid.New().String(),
			CompanyID:      companyID,
			EquipmentID:    equipmentID,
			AlertType:      alertType,
			Severity:       severity,
			Message:        message,
			CurrentStock:   current,
			ThresholdValue: threshold,
			Status:         entity.AlertStatusActive,
		}
		if err := uc.alertRepo.Create(alert); err != nil {
			// Carrera con otro checker: el índice único parcial ya garantizó
			// la alerta activa; la verificación sigue siendo idempotente.
			if errors.Is(err, domain.ErrDuplicate) {
				return nil
			}
			return err
		}
	case alertType == "" && existing != nil:
		if err := uc.alertRepo.Resolve(existing.ID); err != nil {
			return err
		}
	}
	return nil
}

// GenerateAlerts ejecuta la verificación sobre todo el inventario de la
// empresa y devuelve las alertas activas resultantes, ordenadas por severidad
// descendente y luego las más recientes primero.
func (uc *AlertMonitorUseCase) GenerateAlerts(ctx context.Context, companyID string) ([]*entity.StockAlert, error) {
	items, err := uc.equipmentRepo.ListByCompany(companyID, 0, 0)
	if err != nil {
		return nil, err
	}
	for _, eq := range items {
		if err := uc.CheckStockLevels(ctx, eq.ID, companyID); err != nil && uc.log != nil {
			uc.log.Warn().Err(err).Str("equipment_id", eq.ID).Msg("verificación de alerta falló en el barrido")
		}
	}
	return uc.alertRepo.ListActive(companyID, repository.AlertFilter{})
}

// GetActiveAlerts lista alertas activas con filtros opcionales.
func (uc *AlertMonitorUseCase) GetActiveAlerts(ctx context.Context, companyID string, filter repository.AlertFilter) ([]*entity.StockAlert, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return uc.alertRepo.ListActive(companyID, filter)
}

// AcknowledgeAlert marca una alerta activa como reconocida por el usuario.
// Reconocer no bloquea la creación de una alerta nueva si el stock sigue
// degradándose: la alerta reconocida deja de contar como "active".
func (uc *AlertMonitorUseCase) AcknowledgeAlert(ctx context.Context, companyID, alertID, userID string) (*entity.StockAlert, error) {
	alert, err := uc.alertRepo.GetByID(alertID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	if alert.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if alert.Status != entity.AlertStatusActive {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.alertRepo.Acknowledge(alertID, userID); err != nil {
		return nil, err
	}
	return uc.alertRepo.GetByID(alertID)
}

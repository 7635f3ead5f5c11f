package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rental-pro/internal/application/dto"
	"github.com/tu-usuario/rental-pro/internal/application/inventory"
	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

// AlertHandler maneja las alertas de stock (protegido).
type AlertHandler struct {
	uc *inventory.AlertMonitorUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *inventory.AlertMonitorUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// ListActive godoc
// @Summary      Listar alertas activas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        severity    query  string  false  "high | critical"
// @Param        alert_type  query  string  false  "low_stock | out_of_stock"
// @Param        limit       query  int     false  "Límite"  default(50)
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) ListActive(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	alerts, err := h.uc.GetActiveAlerts(c.Context(), companyID, repository.AlertFilter{
		Severity:  c.Query("severity"),
		AlertType: c.Query("alert_type"),
		Limit:     limit,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, *toAlertResponse(a))
	}
	return c.JSON(out)
}

// Generate godoc
// @Summary      Recorrer el inventario y generar/resolver alertas
// @Description  Evalúa el nivel de stock de todos los equipos de la empresa y
//
//	reconcilia las alertas (crea, actualiza o resuelve).
//
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts/generate [post]
func (h *AlertHandler) Generate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	alerts, err := h.uc.GenerateAlerts(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, *toAlertResponse(a))
	}
	return c.JSON(out)
}

// Acknowledge godoc
// @Summary      Reconocer una alerta activa
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/acknowledge [post]
func (h *AlertHandler) Acknowledge(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	alert, err := h.uc.AcknowledgeAlert(c.Context(), companyID, c.Params("id"), userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "alerta no encontrada"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "solo alertas activas pueden reconocerse"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toAlertResponse(alert))
}

func toAlertResponse(a *entity.StockAlert) *dto.AlertResponse {
	if a == nil {
		return nil
	}
	return &dto.AlertResponse{
		ID:             a.ID,
		EquipmentID:    a.EquipmentID,
		AlertType:      a.AlertType,
		Severity:       a.Severity,
		Message:        a.Message,
		CurrentStock:   a.CurrentStock,
		ThresholdValue: a.ThresholdValue,
		Status:         a.Status,
		AcknowledgedBy: a.AcknowledgedBy,
		AcknowledgedAt: a.AcknowledgedAt,
		ResolvedAt:     a.ResolvedAt,
		CreatedAt:      a.CreatedAt,
	}
}

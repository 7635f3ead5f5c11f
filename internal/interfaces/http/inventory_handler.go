package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rental-pro/internal/application/dto"
	"github.com/tu-usuario/rental-pro/internal/application/inventory"
	"github.com/tu-usuario/rental-pro/internal/application/reports"
	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario (protegido).
type InventoryHandler struct {
	ledger       *inventory.StockLedgerUseCase
	kardex       *reports.KardexUseCase
	lowThreshold int // umbral por defecto para el resumen de stock
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.StockLedgerUseCase, kardex *reports.KardexUseCase, lowThreshold int) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, kardex: kardex, lowThreshold: lowThreshold}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "equipment_id, movement_type, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.ledger.RecordMovement(c.Context(), inventory.MovementInput{
		CompanyID:      companyID,
		EquipmentID:    in.EquipmentID,
		MovementType:   in.MovementType,
		MovementReason: in.MovementReason,
		Quantity:       in.Quantity,
		InvoiceID:      in.InvoiceID,
		OrderID:        in.OrderID,
		DeliveryNoteID: in.DeliveryNoteID,
		FromLocation:   in.FromLocation,
		ToLocation:     in.ToLocation,
		Reference:      in.Reference,
		Notes:          in.Notes,
		PerformedBy:    userID,
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// RecordSale godoc
// @Summary      Registrar salida por venta/entrega
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "equipment_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/sales [post]
func (h *InventoryHandler) RecordSale(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.ledger.RecordSale(c.Context(), inventory.SaleInput{
		CompanyID:      companyID,
		EquipmentID:    in.EquipmentID,
		Quantity:       in.Quantity,
		InvoiceID:      in.InvoiceID,
		OrderID:        in.OrderID,
		DeliveryNoteID: in.DeliveryNoteID,
		PerformedBy:    userID,
		Notes:          in.Notes,
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// RecordReturn godoc
// @Summary      Registrar entrada por devolución
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordReturnRequest  true  "equipment_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/returns [post]
func (h *InventoryHandler) RecordReturn(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.ledger.RecordReturn(c.Context(), inventory.ReturnInput{
		CompanyID:   companyID,
		EquipmentID: in.EquipmentID,
		Quantity:    in.Quantity,
		InvoiceID:   in.InvoiceID,
		OrderID:     in.OrderID,
		Reason:      in.Reason,
		PerformedBy: userID,
		Notes:       in.Notes,
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// AdjustStock godoc
// @Summary      Ajustar stock a un total absoluto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "equipment_id, new_quantity, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "reason es requerido en un ajuste"})
	}
	movement, err := h.ledger.AdjustStock(c.Context(), inventory.AdjustmentInput{
		CompanyID:   companyID,
		EquipmentID: in.EquipmentID,
		NewQuantity: in.NewQuantity,
		Reason:      in.Reason,
		PerformedBy: userID,
		Notes:       in.Notes,
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// GetMovementHistory godoc
// @Summary      Historial de movimientos de un equipo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id             path   string  true   "ID del equipo"
// @Param        movement_type  query  string  false  "in | out | adjustment | transfer"
// @Param        from           query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        to             query  string  false  "Fecha final (YYYY-MM-DD)"
// @Param        limit          query  int     false  "Límite"  default(50)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/equipment/{id}/movements [get]
func (h *InventoryHandler) GetMovementHistory(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	filter := repository.MovementFilter{
		MovementType: c.Query("movement_type"),
		Limit:        c.QueryInt("limit", 50),
		Offset:       c.QueryInt("offset", 0),
	}
	var err error
	if filter.From, filter.To, err = parseDateRange(c); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato de fecha inválido, usar YYYY-MM-DD"})
	}

	history, err := h.ledger.GetMovementHistory(c.Context(), companyID, c.Params("id"), filter)
	if err != nil {
		return movementError(c, err)
	}
	out := dto.MovementHistoryResponse{
		Movements: make([]dto.MovementResponse, 0, len(history.Movements)),
		Total:     history.Total,
		Limit:     history.Limit,
		Offset:    history.Offset,
	}
	for _, m := range history.Movements {
		out.Movements = append(out.Movements, *toMovementResponse(m))
	}
	return c.JSON(out)
}

// GetStockSummary godoc
// @Summary      Resumen de stock de la empresa
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        category        query  string  false  "Filtrar por categoría"
// @Param        low_stock_only  query  bool    false  "Solo equipos en stock bajo"
// @Success      200  {object}  dto.StockSummaryResponse
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) GetStockSummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	summary, err := h.ledger.GetStockSummary(c.Context(), companyID, c.Query("category"), c.QueryBool("low_stock_only", false), h.lowThreshold)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.StockSummaryResponse{
		TotalItems:      summary.TotalItems,
		TotalQuantity:   summary.TotalQuantity,
		LowStockItems:   summary.LowStockItems,
		OutOfStockItems: summary.OutOfStockItems,
		Categories:      summary.Categories,
		Equipment:       make([]dto.EquipmentSummary, 0, len(summary.Equipment)),
	}
	for _, eq := range summary.Equipment {
		out.Equipment = append(out.Equipment, dto.EquipmentSummary{
			ID:       eq.ID,
			Code:     eq.Code,
			Name:     eq.Name,
			Category: eq.Category,
			Quantity: eq.Quantity,
			Status:   eq.Status,
		})
	}
	return c.JSON(out)
}

// GetKardexPDF godoc
// @Summary      Kardex del equipo en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        id    path   string  true   "ID del equipo"
// @Param        from  query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        to    query  string  false  "Fecha final (YYYY-MM-DD)"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/equipment/{id}/kardex [get]
func (h *InventoryHandler) GetKardexPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato de fecha inválido, usar YYYY-MM-DD"})
	}
	pdfBytes, err := h.kardex.GenerateKardex(c.Context(), companyID, c.Params("id"), from, to)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "equipo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="kardex.pdf"`)
	return c.Send(pdfBytes)
}

// movementError mapea errores de dominio del libro de inventario a HTTP.
func movementError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "equipo no encontrado"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// parseDateRange lee from/to (YYYY-MM-DD) de la query; to es inclusivo hasta fin de día.
func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, err
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:             m.ID,
		EquipmentID:    m.EquipmentID,
		MovementType:   m.MovementType,
		MovementReason: m.MovementReason,
		Quantity:       m.Quantity,
		StockBefore:    m.StockBefore,
		StockAfter:     m.StockAfter,
		FromLocation:   m.FromLocation,
		ToLocation:     m.ToLocation,
		Reference:      m.Reference,
		Notes:          m.Notes,
		PerformedBy:    m.PerformedBy,
		CreatedAt:      m.CreatedAt,
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rental-pro/internal/application/dto"
	"github.com/tu-usuario/rental-pro/internal/application/inventory"
	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
)

// TransferHandler maneja los traslados de stock entre ubicaciones (protegido).
type TransferHandler struct {
	uc *inventory.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *inventory.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Initiate godoc
// @Summary      Iniciar traslado
// @Description  Crea el traslado en pending y registra la salida del origen en
//
//	la misma transacción; la cantidad queda en tránsito.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitiateTransferRequest  true  "equipment_id, quantity, from_location, to_location"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Initiate(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.InitiateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	transfer, err := h.uc.InitiateTransfer(c.Context(), inventory.TransferInput{
		CompanyID:      companyID,
		EquipmentID:    in.EquipmentID,
		Quantity:       in.Quantity,
		FromLocation:   in.FromLocation,
		ToLocation:     in.ToLocation,
		RequestedBy:    userID,
		Carrier:        in.Carrier,
		TrackingNumber: in.TrackingNumber,
		ExpectedDate:   in.ExpectedDate,
		Notes:          in.Notes,
	})
	if err != nil {
		return transferError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(transfer))
}

// StartTransit godoc
// @Summary      Despachar traslado (pending → in_transit)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del traslado"
// @Param        body  body  dto.StartTransitRequest  false  "carrier, tracking_number"
// @Success      200   {object}  dto.TransferResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/transit [post]
func (h *TransferHandler) StartTransit(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.StartTransitRequest
	// Cuerpo opcional
	_ = c.BodyParser(&in)
	transfer, err := h.uc.StartTransit(c.Context(), companyID, c.Params("id"), in.Carrier, in.TrackingNumber)
	if err != nil {
		return transferError(c, err)
	}
	return c.JSON(toTransferResponse(transfer))
}

// Complete godoc
// @Summary      Completar traslado (recepción en destino)
// @Description  Marca el traslado como completed y registra la entrada en el
//
//	destino en la misma transacción. Idempotencia: una segunda
//	recepción falla con 409.
//
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/complete [post]
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	transfer, err := h.uc.CompleteTransfer(c.Context(), companyID, c.Params("id"), userID)
	if err != nil {
		return transferError(c, err)
	}
	return c.JSON(toTransferResponse(transfer))
}

// GetByID godoc
// @Summary      Obtener traslado por ID
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	transfer, err := h.uc.GetTransfer(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return transferError(c, err)
	}
	return c.JSON(toTransferResponse(transfer))
}

// List godoc
// @Summary      Listar traslados
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | in_transit | completed"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit, offset := dto.ClampPage(c.QueryInt("limit", 20), c.QueryInt("offset", 0), 20)
	list, err := h.uc.ListTransfers(c.Context(), companyID, c.Query("status"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTransferResponse(t))
	}
	return c.JSON(out)
}

func transferError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "traslado o equipo no encontrado"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en el origen"})
	case domain.ErrInvalidTransferState:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "el traslado no admite esa transición"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toTransferResponse(t *entity.StockTransfer) *dto.TransferResponse {
	if t == nil {
		return nil
	}
	return &dto.TransferResponse{
		ID:             t.ID,
		TransferNumber: t.TransferNumber,
		EquipmentID:    t.EquipmentID,
		Quantity:       t.Quantity,
		FromLocation:   t.FromLocation,
		ToLocation:     t.ToLocation,
		Status:         t.Status,
		RequestedBy:    t.RequestedBy,
		ReceivedBy:     t.ReceivedBy,
		Carrier:        t.Carrier,
		TrackingNumber: t.TrackingNumber,
		ExpectedDate:   t.ExpectedDate,
		ReceivedDate:   t.ReceivedDate,
		Notes:          t.Notes,
		CreatedAt:      t.CreatedAt,
	}
}

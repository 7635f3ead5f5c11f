package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	appacc "github.com/tu-usuario/rental-pro/internal/application/accounting"
	"github.com/tu-usuario/rental-pro/internal/application/dto"
	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

// AccountingHandler maneja el motor contable: comprobantes de diario y plan de
// cuentas (protegido).
type AccountingHandler struct {
	uc *appacc.PostEntryUseCase
}

// NewAccountingHandler construye el handler.
func NewAccountingHandler(uc *appacc.PostEntryUseCase) *AccountingHandler {
	return &AccountingHandler{uc: uc}
}

// CreateEntry godoc
// @Summary      Registrar asiento manual
// @Description  Valida partida doble (débitos == créditos, epsilon 0.01) y
//
//	persiste el comprobante con número secuencial por empresa.
//
// @Tags         accounting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "description + lines (débito XOR crédito)"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/accounting/entries [post]
func (h *AccountingHandler) CreateEntry(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entryDate := time.Now()
	if in.EntryDate != nil {
		entryDate = *in.EntryDate
	}
	lines := make([]appacc.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, appacc.LineInput{
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
			CustomerID:  l.CustomerID,
			SupplierID:  l.SupplierID,
		})
	}
	entry, err := h.uc.Post(c.Context(), appacc.EntryInput{
		CompanyID:   companyID,
		EntryDate:   entryDate,
		EntryType:   entity.EntryTypeManual,
		Description: in.Description,
		Lines:       lines,
		Reference:   in.Reference,
		CreatedBy:   userID,
	})
	if err != nil {
		return accountingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toEntryResponse(entry))
}

// CreateInvoiceEntry godoc
// @Summary      Asiento automático de factura
// @Tags         accounting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InvoiceEntryRequest  true  "invoice_id, total_amount, vat_amount, invoice_number"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/accounting/entries/invoice [post]
func (h *AccountingHandler) CreateInvoiceEntry(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.InvoiceEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.InvoiceID == "" || in.InvoiceNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invoice_id e invoice_number son requeridos"})
	}
	entry, err := h.uc.PostInvoiceEntry(c.Context(), appacc.InvoiceEntryInput{
		InvoiceID:     in.InvoiceID,
		CompanyID:     companyID,
		CustomerID:    in.CustomerID,
		TotalAmount:   in.TotalAmount,
		VATAmount:     in.VATAmount,
		InvoiceNumber: in.InvoiceNumber,
		CreatedBy:     userID,
	})
	if err != nil {
		return accountingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toEntryResponse(entry))
}

// CreatePaymentEntry godoc
// @Summary      Asiento automático de pago
// @Tags         accounting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaymentEntryRequest  true  "payment_id, amount, payment_method"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/accounting/entries/payment [post]
func (h *AccountingHandler) CreatePaymentEntry(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.PaymentEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PaymentID == "" || in.PaymentMethod == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "payment_id y payment_method son requeridos"})
	}
	entry, err := h.uc.PostPaymentEntry(c.Context(), appacc.PaymentEntryInput{
		PaymentID:     in.PaymentID,
		InvoiceID:     in.InvoiceID,
		CompanyID:     companyID,
		CustomerID:    in.CustomerID,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		InvoiceNumber: in.InvoiceNumber,
		CreatedBy:     userID,
	})
	if err != nil {
		return accountingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toEntryResponse(entry))
}

// CreateExpenseEntry godoc
// @Summary      Asiento automático de gasto
// @Tags         accounting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExpenseEntryRequest  true  "expense_id, amount, description"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/accounting/entries/expense [post]
func (h *AccountingHandler) CreateExpenseEntry(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ExpenseEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ExpenseID == "" || in.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expense_id y description son requeridos"})
	}
	entry, err := h.uc.PostExpenseEntry(c.Context(), appacc.ExpenseEntryInput{
		ExpenseID:   in.ExpenseID,
		CompanyID:   companyID,
		SupplierID:  in.SupplierID,
		Amount:      in.Amount,
		VATAmount:   in.VATAmount,
		Description: in.Description,
		CreatedBy:   userID,
	})
	if err != nil {
		return accountingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toEntryResponse(entry))
}

// GetEntry godoc
// @Summary      Obtener comprobante por ID (con líneas)
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del comprobante"
// @Success      200  {object}  dto.EntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounting/entries/{id} [get]
func (h *AccountingHandler) GetEntry(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	entry, err := h.uc.GetEntry(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return accountingError(c, err)
	}
	return c.JSON(toEntryResponse(entry))
}

// ListEntries godoc
// @Summary      Listar comprobantes
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        entry_type  query  string  false  "manual | auto_invoice | auto_payment | auto_expense"
// @Param        from        query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        to          query  string  false  "Fecha final (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Límite"  default(50)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.EntryResponse
// @Router       /api/accounting/entries [get]
func (h *AccountingHandler) ListEntries(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	filter := repository.EntryFilter{
		EntryType: c.Query("entry_type"),
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
	}
	var err error
	if filter.From, filter.To, err = parseDateRange(c); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato de fecha inválido, usar YYYY-MM-DD"})
	}
	entries, err := h.uc.ListEntries(c.Context(), companyID, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, *toEntryResponse(e))
	}
	return c.JSON(out)
}

// ListAccounts godoc
// @Summary      Plan de cuentas con saldos (balance de prueba)
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (0 = todo)"
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.AccountResponse
// @Router       /api/accounting/accounts [get]
func (h *AccountingHandler) ListAccounts(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	accounts, err := h.uc.ListAccounts(c.Context(), companyID, c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, dto.AccountResponse{
			ID:          a.ID,
			Code:        a.Code,
			Name:        a.Name,
			AccountType: a.AccountType,
			Currency:    a.Currency,
			TotalDebit:  a.TotalDebit,
			TotalCredit: a.TotalCredit,
			Balance:     a.Balance,
		})
	}
	return c.JSON(out)
}

func accountingError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrUnbalancedEntry:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNBALANCED_ENTRY", Message: "débitos y créditos no cuadran"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comprobante no encontrado"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toEntryResponse(e *entity.JournalEntry) *dto.EntryResponse {
	if e == nil {
		return nil
	}
	lines := make([]dto.EntryLineResponse, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, dto.EntryLineResponse{
			ID:          l.ID,
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
			Debit:       l.DebitAmount,
			Credit:      l.CreditAmount,
			Description: l.Description,
		})
	}
	return &dto.EntryResponse{
		ID:          e.ID,
		EntryNumber: e.EntryNumber,
		EntryDate:   e.EntryDate,
		EntryType:   e.EntryType,
		Description: e.Description,
		TotalDebit:  e.TotalDebit,
		TotalCredit: e.TotalCredit,
		Reference:   e.Reference,
		CreatedAt:   e.CreatedAt,
		Lines:       lines,
	}
}

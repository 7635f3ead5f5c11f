package http

import (
	"github.com/gofiber/fiber/v2"
	appacc "github.com/tu-usuario/rental-pro/internal/application/accounting"
	"github.com/tu-usuario/rental-pro/internal/application/auth"
	"github.com/tu-usuario/rental-pro/internal/application/inventory"
	"github.com/tu-usuario/rental-pro/internal/application/reports"
	"github.com/tu-usuario/rental-pro/internal/application/usecase"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC    *usecase.CompanyUseCase
	EquipmentUC  *usecase.EquipmentUseCase
	StockLedger  *inventory.StockLedgerUseCase
	AlertMonitor *inventory.AlertMonitorUseCase
	TransferUC   *inventory.TransferUseCase
	KardexUC     *reports.KardexUseCase
	PostEntry    *appacc.PostEntryUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
	LowThreshold int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	admin := entity.RoleAdmin
	contador := entity.RoleContador
	bodeguero := entity.RoleBodeguero

	// Equipment (protegido; alta solo admin)
	equipment := protected.Group("/equipment")
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC)
	equipment.Post("/", RequireRole(admin), equipmentHandler.Create)
	equipment.Get("/", equipmentHandler.List)
	equipment.Get("/:id", equipmentHandler.GetByID)

	// Inventory: libro de movimientos (protegido; escribe bodeguero o admin)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockLedger, deps.KardexUC, deps.LowThreshold)
	write := RequireRole(admin, bodeguero)
	invGroup.Post("/movements", write, inventoryHandler.RecordMovement)
	invGroup.Post("/sales", write, inventoryHandler.RecordSale)
	invGroup.Post("/returns", write, inventoryHandler.RecordReturn)
	invGroup.Post("/adjustments", write, inventoryHandler.AdjustStock)
	invGroup.Get("/summary", inventoryHandler.GetStockSummary)
	invGroup.Get("/equipment/:id/movements", inventoryHandler.GetMovementHistory)
	invGroup.Get("/equipment/:id/kardex", inventoryHandler.GetKardexPDF)

	// Transfers (protegido)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", write, transferHandler.Initiate)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/transit", write, transferHandler.StartTransit)
	transfers.Post("/:id/complete", write, transferHandler.Complete)

	// Alerts (protegido)
	alerts := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertMonitor)
	alerts.Get("/", alertHandler.ListActive)
	alerts.Post("/generate", alertHandler.Generate)
	alerts.Post("/:id/acknowledge", alertHandler.Acknowledge)

	// Accounting (protegido; escribe contador o admin)
	accounting := protected.Group("/accounting")
	accountingHandler := NewAccountingHandler(deps.PostEntry)
	books := RequireRole(admin, contador)
	accounting.Post("/entries", books, accountingHandler.CreateEntry)
	accounting.Post("/entries/invoice", books, accountingHandler.CreateInvoiceEntry)
	accounting.Post("/entries/payment", books, accountingHandler.CreatePaymentEntry)
	accounting.Post("/entries/expense", books, accountingHandler.CreateExpenseEntry)
	accounting.Get("/entries", accountingHandler.ListEntries)
	accounting.Get("/entries/:id", accountingHandler.GetEntry)
	accounting.Get("/accounts", accountingHandler.ListAccounts)
}

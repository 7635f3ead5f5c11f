package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appacc "github.com/tu-usuario/rental-pro/internal/application/accounting"
	"github.com/tu-usuario/rental-pro/internal/application/auth"
	"github.com/tu-usuario/rental-pro/internal/application/inventory"
	"github.com/tu-usuario/rental-pro/internal/application/reports"
	"github.com/tu-usuario/rental-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/rental-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/rental-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/rental-pro/internal/interfaces/http"
	"github.com/tu-usuario/rental-pro/pkg/config"
	"github.com/tu-usuario/rental-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	equipmentRepo := postgres.NewEquipmentRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	transferRepo := postgres.NewStockTransferRepository(pool)
	alertRepo := postgres.NewStockAlertRepository(pool)
	accountRepo := postgres.NewLedgerAccountRepository(pool)
	entryRepo := postgres.NewJournalEntryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	equipmentUC := usecase.NewEquipmentUseCase(equipmentRepo)

	alertMonitorUC := inventory.NewAlertMonitorUseCase(
		equipmentRepo, alertRepo,
		cfg.Stock.LowThreshold, cfg.Stock.CriticalThreshold,
		log,
	)
	stockLedgerUC := inventory.NewStockLedgerUseCase(
		txRunner, equipmentRepo, movementRepo, alertMonitorUC, log,
	)
	transferUC := inventory.NewTransferUseCase(
		txRunner, equipmentRepo, transferRepo, alertMonitorUC, log,
	)

	postEntryUC := appacc.NewPostEntryUseCase(
		txRunner, accountRepo, entryRepo, cfg.Stock.Currency, log,
	)

	// PDF: kardex del equipo (historial valorizado de movimientos)
	kardexGenerator := infrapdf.NewMarotoKardexGenerator()
	kardexUC := reports.NewKardexUseCase(
		companyRepo, equipmentRepo, movementRepo, kardexGenerator,
	)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Rental Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:    companyUC,
		EquipmentUC:  equipmentUC,
		StockLedger:  stockLedgerUC,
		AlertMonitor: alertMonitorUC,
		TransferUC:   transferUC,
		KardexUC:     kardexUC,
		PostEntry:    postEntryUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
		LowThreshold: cfg.Stock.LowThreshold,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

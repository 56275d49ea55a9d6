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

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/catalog"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/inventory"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/sales"
	infrapdf "github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/infrastructure/pdf"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/interfaces/http"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/pkg/config"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/pkg/logger"
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

	productRepo := postgres.NewProductRepository(pool)
	balanceRepo := postgres.NewInventoryBalanceRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	paymentRepo := postgres.NewPaymentLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := catalog.NewProductUseCase(productRepo)
	ledgerUC := inventory.NewLedgerUseCase(txRunner, productRepo, movementRepo, balanceRepo)
	engineUC := sales.NewEngineUseCase(txRunner, ledgerUC, productRepo, transactionRepo, paymentRepo)
	voidUC := sales.NewVoidUseCase(txRunner, ledgerUC, productRepo)

	// PDF: recibo imprimible de la venta
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	receiptUC := sales.NewReceiptUseCase(
		transactionRepo, paymentRepo, productRepo, receiptGenerator,
		sales.ClinicInfo{
			Name:    cfg.Clinic.Name,
			TaxID:   cfg.Clinic.TaxID,
			Address: cfg.Clinic.Address,
			Phone:   cfg.Clinic.Phone,
		},
	)

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
		Title:    cfg.App.Name,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC: productUC,
		LedgerUC:  ledgerUC,
		EngineUC:  engineUC,
		VoidUC:    voidUC,
		ReceiptUC: receiptUC,
		JWTSecret: cfg.JWT.Secret,
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

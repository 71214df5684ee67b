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
	_ "github.com/jhoicas/activos-api/docs"
	"github.com/jhoicas/activos-api/internal/application/auth"
	"github.com/jhoicas/activos-api/internal/application/dispatcher"
	"github.com/jhoicas/activos-api/internal/application/ledger"
	"github.com/jhoicas/activos-api/internal/application/lending"
	"github.com/jhoicas/activos-api/internal/application/usecase"
	"github.com/jhoicas/activos-api/internal/application/workflow"
	infrapdf "github.com/jhoicas/activos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/activos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/activos-api/internal/interfaces/http"
	"github.com/jhoicas/activos-api/pkg/config"
	"github.com/jhoicas/activos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	userRepo := postgres.NewUserRepository(pool)
	unitRepo := postgres.NewBusinessUnitRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	requestRepo := postgres.NewRequestRepository(pool)
	approvalRepo := postgres.NewRequestApprovalRepository(pool)
	loanRepo := postgres.NewLoanRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	disp := dispatcher.New(userRepo, log)
	stockLedger := ledger.New(itemRepo)

	authUC := auth.NewAuthUseCase(userRepo, auditRepo, disp, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, stockLedger, auditRepo, disp)
	itemUC := usecase.NewItemUseCase(itemRepo, productRepo, auditRepo, disp)
	unitUC := usecase.NewUnitUseCase(unitRepo, userRepo, auditRepo, disp)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo)

	approvalUC := workflow.NewApprovalUseCase(txRunner, userRepo, productRepo, unitRepo, requestRepo, approvalRepo, disp)
	actaUC := workflow.NewActaUseCase(requestRepo, userRepo, productRepo, itemRepo, approvalRepo, infrapdf.NewMarotoActaGenerator())
	loanUC := lending.NewLoanUseCase(txRunner, userRepo, loanRepo, disp)

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
		Title:    "Activos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      productUC,
		ItemUC:         itemUC,
		UnitUC:         unitUC,
		NotificationUC: notificationUC,
		AuditUC:        auditUC,
		ApprovalUC:     approvalUC,
		ActaUC:         actaUC,
		LoanUC:         loanUC,
		JWTSecret:      cfg.JWT.Secret,
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

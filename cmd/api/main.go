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

	"github.com/Rowther/multitenantcrm/internal/application/auth"
	"github.com/Rowther/multitenantcrm/internal/application/billing"
	"github.com/Rowther/multitenantcrm/internal/application/maintenance"
	"github.com/Rowther/multitenantcrm/internal/application/usecase"
	"github.com/Rowther/multitenantcrm/internal/application/workorder"
	infrapdf "github.com/Rowther/multitenantcrm/internal/infrastructure/pdf"
	"github.com/Rowther/multitenantcrm/internal/infrastructure/postgres"
	"github.com/Rowther/multitenantcrm/internal/infrastructure/storage"
	httpRouter "github.com/Rowther/multitenantcrm/internal/interfaces/http"
	"github.com/Rowther/multitenantcrm/pkg/config"
	"github.com/Rowther/multitenantcrm/pkg/logger"
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
	clientRepo := postgres.NewClientRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	woRepo := postgres.NewWorkOrderRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	taskRepo := postgres.NewPreventiveTaskRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Adjuntos opcionales: sin STORAGE_ENDPOINT el endpoint de upload responde 503.
	var store *storage.MinioStorage
	if cfg.Storage.Endpoint != "" {
		store, err = storage.NewMinioStorage(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión al almacenamiento de adjuntos")
		}
	} else {
		log.Warn().Msg("almacenamiento de adjuntos deshabilitado (STORAGE_ENDPOINT vacío)")
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	authUC := auth.NewUseCase(userRepo, cfg.JWT)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	userUC := usecase.NewUserUseCase(userRepo, companyRepo)
	directoryUC := usecase.NewDirectoryUseCase(clientRepo, employeeRepo, vehicleRepo, userRepo, companyRepo)
	notificationUC := usecase.NewNotificationUseCase(notifRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo)
	workOrderUC := workorder.NewUseCase(txRunner, woRepo, companyRepo, clientRepo, vehicleRepo, notifRepo, auditRepo)
	paymentUC := billing.NewPaymentUseCase(txRunner, paymentRepo, woRepo, notifRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, companyRepo, notifRepo, pdfGenerator)
	maintenanceUC := maintenance.NewUseCase(taskRepo)

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

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CompanyUC:      companyUC,
		UserUC:         userUC,
		DirectoryUC:    directoryUC,
		NotificationUC: notificationUC,
		AuditUC:        auditUC,
		WorkOrderUC:    workOrderUC,
		PaymentUC:      paymentUC,
		InvoiceUC:      invoiceUC,
		MaintenanceUC:  maintenanceUC,
		Storage:        store,
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

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Rowther/multitenantcrm/internal/application/auth"
	"github.com/Rowther/multitenantcrm/internal/application/billing"
	"github.com/Rowther/multitenantcrm/internal/application/maintenance"
	"github.com/Rowther/multitenantcrm/internal/application/usecase"
	"github.com/Rowther/multitenantcrm/internal/application/workorder"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/internal/infrastructure/storage"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	CompanyUC      *usecase.CompanyUseCase
	UserUC         *usecase.UserUseCase
	DirectoryUC    *usecase.DirectoryUseCase
	NotificationUC *usecase.NotificationUseCase
	AuditUC        *usecase.AuditUseCase
	WorkOrderUC    *workorder.UseCase
	PaymentUC      *billing.PaymentUseCase
	InvoiceUC      *billing.InvoiceUseCase
	MaintenanceUC  *maintenance.UseCase
	Storage        *storage.MinioStorage // nil deshabilita uploads
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin)
	staff := RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleEmployee)

	// Companies (SUPERADMIN administra; cualquier usuario lee la suya)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)

	// Users (administración de cuentas)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)

	// Directorio: clientes, técnicos, vehículos
	directoryHandler := NewDirectoryHandler(deps.DirectoryUC)
	clients := protected.Group("/clients", staff)
	clients.Post("/", adminOnly, directoryHandler.CreateClient)
	clients.Get("/", directoryHandler.ListClients)

	employees := protected.Group("/employees", staff)
	employees.Post("/", adminOnly, directoryHandler.CreateEmployee)
	employees.Get("/", directoryHandler.ListEmployees)

	vehicles := protected.Group("/vehicles", staff)
	vehicles.Post("/", directoryHandler.CreateVehicle)
	vehicles.Get("/", directoryHandler.ListVehicles)

	// Work orders (el caso de uso aplica las reglas de rol por industria)
	workOrders := protected.Group("/work-orders", staff)
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC)
	workOrders.Post("/", workOrderHandler.Create)
	workOrders.Get("/", workOrderHandler.List)
	workOrders.Get("/:id", workOrderHandler.GetByID)
	workOrders.Put("/:id", workOrderHandler.Update)

	// Pagos anidados bajo la orden
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	workOrders.Post("/:id/payments", paymentHandler.Apply)
	workOrders.Get("/:id/payments", paymentHandler.List)

	// Adjuntos
	uploadHandler := NewUploadHandler(deps.Storage)
	workOrders.Post("/:id/attachments", uploadHandler.Upload)

	// Invoices
	invoices := protected.Group("/invoices", staff)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", adminOnly, invoiceHandler.Generate)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", adminOnly, invoiceHandler.Update)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	workOrders.Get("/:id/invoices", invoiceHandler.ListByWorkOrder)

	// Mantenimiento preventivo
	preventive := protected.Group("/preventive-tasks", staff)
	preventiveHandler := NewPreventiveHandler(deps.MaintenanceUC)
	preventive.Post("/", adminOnly, preventiveHandler.Create)
	preventive.Get("/", preventiveHandler.List)
	preventive.Post("/:id/complete", preventiveHandler.Complete)
	preventive.Put("/:id/status", adminOnly, preventiveHandler.SetStatus)

	// Notificaciones del usuario autenticado
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	// Registro de actividad
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit-logs", adminOnly, auditHandler.List)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/activos-api/internal/application/auth"
	"github.com/jhoicas/activos-api/internal/application/lending"
	"github.com/jhoicas/activos-api/internal/application/usecase"
	"github.com/jhoicas/activos-api/internal/application/workflow"
	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProductUC      *usecase.ProductUseCase
	ItemUC         *usecase.ItemUseCase
	UnitUC         *usecase.UnitUseCase
	NotificationUC *usecase.NotificationUseCase
	AuditUC        *usecase.AuditUseCase
	ApprovalUC     *workflow.ApprovalUseCase
	ActaUC         *workflow.ActaUseCase
	LoanUC         *lending.LoanUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, registro y listado solo ADMIN.
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)
	api.Get("/users", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.ListUsers)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	staff := RequireRole(entity.RoleAdmin, entity.RoleInventoryOfficer)

	// Units (solo ADMIN gestiona; lectura para todos los autenticados)
	units := protected.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Post("/", adminOnly, unitHandler.Create)
	units.Get("/", unitHandler.List)
	units.Get("/:id", unitHandler.GetByID)
	units.Put("/:id/director", adminOnly, unitHandler.AssignDirector)

	// Products (catálogo: escritura para staff de inventario, lectura libre)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", staff, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/stock", productHandler.Stock)
	products.Put("/:id", staff, productHandler.Update)
	products.Delete("/:id", staff, productHandler.Delete)

	// Items (unidades físicas: escritura para staff, lectura libre)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", staff, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", staff, itemHandler.Update)
	items.Delete("/:id", staff, itemHandler.Delete)

	// Requests (flujo de aprobación; el RBAC fino lo aplican los casos de uso)
	requests := protected.Group("/requests")
	requestHandler := NewRequestHandler(deps.ApprovalUC, deps.ActaUC)
	requests.Post("/", RequireRole(entity.RoleEmployee), requestHandler.Submit)
	requests.Get("/", requestHandler.List)
	requests.Get("/:id", requestHandler.GetByID)
	requests.Get("/:id/history", requestHandler.History)
	requests.Get("/:id/acta", requestHandler.Acta)
	requests.Post("/:id/approve", RequireRole(entity.RoleDirector, entity.RoleInventoryOfficer), requestHandler.Approve)
	requests.Post("/:id/reject", RequireRole(entity.RoleDirector, entity.RoleInventoryOfficer), requestHandler.Reject)

	// Loans (préstamos directos)
	loans := protected.Group("/loans")
	loanHandler := NewLoanHandler(deps.LoanUC)
	loans.Post("/", RequireRole(entity.RoleEmployee), loanHandler.Borrow)
	loans.Get("/", loanHandler.List)
	loans.Get("/overdue", staff, loanHandler.Overdue)
	loans.Get("/:id", loanHandler.GetByID)
	loans.Post("/:id/return", RequireRole(entity.RoleEmployee), loanHandler.Return)

	// Notifications (siempre del usuario autenticado)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/:id/read", notificationHandler.MarkRead)

	// Audit logs (propios; ADMIN ve todo)
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit-logs", auditHandler.List)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lop-gin/nexus-backoffice/internal/application/auth"
	"github.com/lop-gin/nexus-backoffice/internal/application/usecase"
	"github.com/lop-gin/nexus-backoffice/internal/domain/authz"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Authz        *usecase.AuthorizationService
	CompanyUC    *usecase.CompanyUseCase
	EmployeeUC   *usecase.EmployeeUseCase
	RoleUC       *usecase.RoleUseCase
	ModuleSvc    *usecase.ModuleService
	RoleReportUC *usecase.RoleReportUseCase
	InvitationUC *usecase.InvitationUseCase
	CustomerUC   *usecase.CustomerUseCase
	ProductUC    *usecase.ProductUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Authz)
	invitationHandler := NewInvitationHandler(deps.InvitationUC)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Aceptar invitación: token de identidad, todavía sin empleado.
	api.Post("/invitations/accept", AuthMiddleware(deps.JWTSecret), invitationHandler.Accept)

	// Rutas protegidas: identidad + empleado activo; cada ruta exige su permiso.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), EmployeeMiddleware(deps.Authz))
	can := func(module string, action authz.Action) fiber.Handler {
		return RequirePermission(module, action, deps.Authz)
	}

	protected.Get("/me", authHandler.Me)
	protected.Get("/me/permissions", authHandler.Permissions)

	// Company
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/company", can(entity.ModuleSettings, authz.ActionView), companyHandler.Get)
	protected.Put("/company", can(entity.ModuleSettings, authz.ActionEdit), companyHandler.Update)

	// Roles y módulos
	roleHandler := NewRoleHandler(deps.RoleUC, deps.ModuleSvc, deps.RoleReportUC)
	protected.Get("/modules", can(entity.ModuleRoles, authz.ActionView), roleHandler.ListModules)
	roles := protected.Group("/roles")
	roles.Get("/", can(entity.ModuleRoles, authz.ActionView), roleHandler.List)
	roles.Post("/", can(entity.ModuleRoles, authz.ActionCreate), roleHandler.Create)
	roles.Get("/:id", can(entity.ModuleRoles, authz.ActionView), roleHandler.GetByID)
	roles.Put("/:id", can(entity.ModuleRoles, authz.ActionEdit), roleHandler.Update)
	roles.Delete("/:id", can(entity.ModuleRoles, authz.ActionDelete), roleHandler.Delete)
	roles.Patch("/:id/permissions", can(entity.ModuleRoles, authz.ActionEdit), roleHandler.ChangePermission)
	roles.Get("/:id/report", can(entity.ModuleRoles, authz.ActionView), roleHandler.Report)

	// Employees
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees := protected.Group("/employees")
	employees.Get("/", can(entity.ModuleEmployees, authz.ActionView), employeeHandler.List)
	employees.Post("/", can(entity.ModuleEmployees, authz.ActionCreate), employeeHandler.Create)
	employees.Get("/:id", can(entity.ModuleEmployees, authz.ActionView), employeeHandler.GetByID)
	employees.Put("/:id", can(entity.ModuleEmployees, authz.ActionEdit), employeeHandler.Update)
	employees.Delete("/:id", can(entity.ModuleEmployees, authz.ActionDelete), employeeHandler.Delete)

	// Invitations
	invitations := protected.Group("/invitations")
	invitations.Get("/", can(entity.ModuleEmployees, authz.ActionView), invitationHandler.List)
	invitations.Post("/", can(entity.ModuleEmployees, authz.ActionCreate), invitationHandler.Create)
	invitations.Delete("/:id", can(entity.ModuleEmployees, authz.ActionDelete), invitationHandler.Revoke)

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := protected.Group("/customers")
	customers.Get("/", can(entity.ModuleCustomers, authz.ActionView), customerHandler.List)
	customers.Post("/", can(entity.ModuleCustomers, authz.ActionCreate), customerHandler.Create)
	customers.Get("/:id", can(entity.ModuleCustomers, authz.ActionView), customerHandler.GetByID)
	customers.Put("/:id", can(entity.ModuleCustomers, authz.ActionEdit), customerHandler.Update)
	customers.Delete("/:id", can(entity.ModuleCustomers, authz.ActionDelete), customerHandler.Delete)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", can(entity.ModuleInventory, authz.ActionView), productHandler.List)
	products.Post("/", can(entity.ModuleInventory, authz.ActionCreate), productHandler.Create)
	products.Get("/:id", can(entity.ModuleInventory, authz.ActionView), productHandler.GetByID)
	products.Put("/:id", can(entity.ModuleInventory, authz.ActionEdit), productHandler.Update)
	products.Delete("/:id", can(entity.ModuleInventory, authz.ActionDelete), productHandler.Delete)
}

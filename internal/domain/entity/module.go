package entity

import "time"

// Nombres de los módulos de la aplicación (unidad de granularidad de permisos).
const (
	ModuleDashboard   = "dashboard"
	ModuleCustomers   = "customers"
	ModuleSales       = "sales"
	ModuleInvoices    = "invoices"
	ModuleEstimates   = "estimates"
	ModuleInventory   = "inventory"
	ModuleProduction  = "production"
	ModuleProcurement = "procurement"
	ModuleEmployees   = "employees"
	ModuleRoles       = "roles"
	ModuleSettings    = "settings"
)

// DefaultModules es el catálogo sembrado por cmd/seed, en orden de menú.
var DefaultModules = []Module{
	{Name: ModuleDashboard, Description: "Resumen general"},
	{Name: ModuleCustomers, Description: "Clientes"},
	{Name: ModuleSales, Description: "Ventas"},
	{Name: ModuleInvoices, Description: "Facturas"},
	{Name: ModuleEstimates, Description: "Cotizaciones"},
	{Name: ModuleInventory, Description: "Inventario y productos"},
	{Name: ModuleProduction, Description: "Producción"},
	{Name: ModuleProcurement, Description: "Compras"},
	{Name: ModuleEmployees, Description: "Empleados e invitaciones"},
	{Name: ModuleRoles, Description: "Roles y permisos"},
	{Name: ModuleSettings, Description: "Configuración de la empresa"},
}

// Module representa una sección de la aplicación.
type Module struct {
	ID          string
	Name        string // único
	Description string
	CreatedAt   time.Time
}

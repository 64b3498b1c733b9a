package entity

import "time"

// Estados de un empleado.
const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
	EmployeeStatusInvited  = "invited"
)

// Employee pertenece a una Company. Su acceso efectivo depende solo de IsAdmin
// o de la fila de permisos de su RoleID para el módulo consultado.
type Employee struct {
	ID        string
	UserID    *string // nil mientras la invitación no se acepta
	FullName  string
	Email     string // único por empresa
	Phone     string
	Address   string
	CompanyID string
	RoleID    *string // nil = sin rol (cero permisos salvo admin)
	IsAdmin   bool
	Status    string // active, inactive, invited
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRole informa si el empleado tiene un rol asignado.
func (e *Employee) HasRole() bool {
	return e != nil && e.RoleID != nil && *e.RoleID != ""
}

// IsValidEmployeeStatus informa si s es un estado admitido.
func IsValidEmployeeStatus(s string) bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusInvited:
		return true
	}
	return false
}

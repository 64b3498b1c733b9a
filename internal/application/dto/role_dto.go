package dto

import (
	"time"

	"github.com/lop-gin/nexus-backoffice/internal/domain/authz"
)

// PermissionGrid moduleID → capacidades, tal como lo envía y recibe la UI.
type PermissionGrid map[string]authz.Capabilities

// CreateRoleRequest alta de un rol personalizado.
type CreateRoleRequest struct {
	Name        string         `json:"name" validate:"required,min=1,max=100"`
	Description string         `json:"description" validate:"omitempty,max=500"`
	Permissions PermissionGrid `json:"permissions"`
}

// UpdateRoleRequest renombra/describe el rol y reemplaza su grid completo.
type UpdateRoleRequest struct {
	Name        string         `json:"name" validate:"required,min=1,max=100"`
	Description string         `json:"description" validate:"omitempty,max=500"`
	Permissions PermissionGrid `json:"permissions"`
}

// ChangePermissionRequest un cambio individual (módulo, acción, valor) con cascada.
type ChangePermissionRequest struct {
	ModuleID string `json:"module_id" validate:"required"`
	Action   string `json:"action" validate:"required,oneof=view create edit delete"`
	Value    *bool  `json:"value" validate:"required"` // obligatorio: ausente no equivale a revocar
}

// RoleResponse salida de un rol; Locked indica que no es editable.
type RoleResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	IsPredefined bool           `json:"is_predefined"`
	Locked       bool           `json:"locked"`
	Permissions  PermissionGrid `json:"permissions,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ModuleResponse salida de un módulo.
type ModuleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ModulePermissionResponse capacidades efectivas del empleado en un módulo.
type ModulePermissionResponse struct {
	ModuleID     string             `json:"module_id"`
	ModuleName   string             `json:"module_name"`
	Capabilities authz.Capabilities `json:"capabilities"`
}

// EffectivePermissionsResponse lo que la UI usa para mostrar/ocultar secciones.
type EffectivePermissionsResponse struct {
	IsAdmin bool                       `json:"is_admin"`
	RoleID  *string                    `json:"role_id"`
	Modules []ModulePermissionResponse `json:"modules"`
}

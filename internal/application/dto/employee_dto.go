package dto

import "time"

// CreateEmployeeRequest alta directa de un empleado en la empresa del usuario.
type CreateEmployeeRequest struct {
	FullName string  `json:"full_name" validate:"required,min=1,max=200"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"phone" validate:"omitempty,max=50"`
	Address  string  `json:"address" validate:"omitempty,max=300"`
	RoleID   *string `json:"role_id" validate:"omitempty,uuid"`
	IsAdmin  bool    `json:"is_admin"`
}

// UpdateEmployeeRequest campos editables de un empleado (opcionales).
// ClearRole quita el rol asignado (RoleID nil no lo cambia).
type UpdateEmployeeRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	Address   *string `json:"address" validate:"omitempty,max=300"`
	RoleID    *string `json:"role_id" validate:"omitempty,uuid"`
	ClearRole bool    `json:"clear_role"`
	IsAdmin   *bool   `json:"is_admin"`
	Status    *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CompanyID string    `json:"company_id"`
	RoleID    *string   `json:"role_id"`
	IsAdmin   bool      `json:"is_admin"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmployeeListResponse lista paginada de empleados.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

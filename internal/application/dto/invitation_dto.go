package dto

import "time"

// CreateInvitationRequest invita a un email a la empresa del usuario.
type CreateInvitationRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	FullName string  `json:"full_name" validate:"omitempty,max=200"`
	RoleID   *string `json:"role_id" validate:"omitempty,uuid"`
}

// AcceptInvitationRequest aceptación con el token recibido.
type AcceptInvitationRequest struct {
	Token string `json:"token" validate:"required"`
}

// InvitationResponse salida de una invitación. Token solo se incluye al crearla.
type InvitationResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	CompanyID  string    `json:"company_id"`
	RoleID     *string   `json:"role_id"`
	EmployeeID string    `json:"employee_id"`
	InvitedBy  string    `json:"invited_by"`
	Token      string    `json:"token,omitempty"`
	Status     string    `json:"status"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

package entity

import "time"

// Estados de una invitación.
const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusExpired  = "expired"
)

// Invitation invita un email a unirse a una empresa con un rol opcional.
type Invitation struct {
	ID         string
	Email      string
	CompanyID  string
	RoleID     *string
	EmployeeID string // empleado en estado invited creado junto con la invitación
	InvitedBy  string // employee_id de quien invita
	Token      string // único
	ExpiresAt  time.Time
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsExpiredAt informa si la invitación venció en el instante now.
func (i *Invitation) IsExpiredAt(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

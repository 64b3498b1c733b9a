// Package queue encola y procesa trabajos en segundo plano con asynq (Redis).
package queue

const (
	// TypeInvitationExpire expira una invitación concreta al vencer su plazo.
	TypeInvitationExpire = "invitation:expire"
	// TypeInvitationSweep expira en bloque las invitaciones pending vencidas (tarea periódica).
	TypeInvitationSweep = "invitation:sweep"
)

// InvitationExpirePayload payload de TypeInvitationExpire.
type InvitationExpirePayload struct {
	CompanyID    string `json:"company_id"`
	InvitationID string `json:"invitation_id"`
}

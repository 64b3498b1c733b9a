package ports

import (
	"context"
	"time"
)

// InvitationExpiryScheduler programa la expiración diferida de una invitación.
// Es opcional: sin cola configurada la expiración periódica del worker cubre el caso.
type InvitationExpiryScheduler interface {
	ScheduleInvitationExpiry(ctx context.Context, companyID, invitationID string, at time.Time) error
}

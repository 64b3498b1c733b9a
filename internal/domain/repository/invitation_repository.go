package repository

import (
	"context"
	"time"

	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
)

// InvitationRepository define el puerto de persistencia para Invitation.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *entity.Invitation) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Invitation, error)
	GetByToken(ctx context.Context, token string) (*entity.Invitation, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invitation, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	// ListExpiredPending devuelve hasta limit invitaciones pending con expires_at <= now, más antiguas primero.
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*entity.Invitation, error)
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

// InvitationRepo implementación de InvitationRepository.
type InvitationRepo struct {
	q Querier
}

// NewInvitationRepository construye el adaptador de invitaciones.
func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

const invitationColumns = `id, email, company_id, role_id, employee_id, invited_by, token, expires_at, status, created_at, updated_at`

func scanInvitation(row pgx.Row) (*entity.Invitation, error) {
	var i entity.Invitation
	var employeeID *string // NULL cuando el empleado invitado ya se eliminó (revocada o expirada)
	err := row.Scan(
		&i.ID, &i.Email, &i.CompanyID, &i.RoleID, &employeeID, &i.InvitedBy,
		&i.Token, &i.ExpiresAt, &i.Status, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if employeeID != nil {
		i.EmployeeID = *employeeID
	}
	return &i, nil
}

// Create persiste una invitación. El token es único.
func (r *InvitationRepo) Create(ctx context.Context, i *entity.Invitation) error {
	query := `INSERT INTO invitations (` + invitationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		i.ID, i.Email, i.CompanyID, nullableString(i.RoleID), i.EmployeeID, i.InvitedBy,
		i.Token, i.ExpiresAt, i.Status, i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// GetByID obtiene una invitación de la empresa.
func (r *InvitationRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1 AND company_id = $2`
	i, err := scanInvitation(r.q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return i, nil
}

// GetByToken obtiene una invitación por su token (sin filtro de empresa: el token es el secreto).
func (r *InvitationRepo) GetByToken(ctx context.Context, token string) (*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE token = $1`
	i, err := scanInvitation(r.q.QueryRow(ctx, query, token))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation by token: %w", err)
	}
	return i, nil
}

// ListByCompany lista invitaciones de la empresa, más recientes primero.
func (r *InvitationRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invitation
	for rows.Next() {
		i, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de una invitación.
func (r *InvitationRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE invitations SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update invitation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListExpiredPending lista las invitaciones pending ya vencidas (barrido del worker).
func (r *InvitationRepo) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations
		WHERE status = $1 AND expires_at <= $2
		ORDER BY expires_at LIMIT $3`
	rows, err := r.q.Query(ctx, query, entity.InvitationStatusPending, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list expired invitations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invitation
	for rows.Next() {
		i, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

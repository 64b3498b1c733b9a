package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/application/ports"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/internal/domain/repository"
	"github.com/lop-gin/nexus-backoffice/pkg/logger"
)

// DefaultInvitationTTL vigencia de una invitación si no se configura otra.
const DefaultInvitationTTL = 7 * 24 * time.Hour

// InvitationUseCase invita emails a una empresa y gestiona el ciclo pending → accepted | expired.
// El envío del email queda fuera: el token se devuelve al crear la invitación.
type InvitationUseCase struct {
	tx          ports.TxRunner
	invitations repository.InvitationRepository
	employees   repository.EmployeeRepository
	roles       repository.RoleRepository
	scheduler   ports.InvitationExpiryScheduler // opcional
	ttl         time.Duration
	log         *logger.Logger
	now         func() time.Time
}

// NewInvitationUseCase construye el caso de uso. scheduler puede ser nil; ttl <= 0 usa DefaultInvitationTTL.
func NewInvitationUseCase(
	tx ports.TxRunner,
	invitations repository.InvitationRepository,
	employees repository.EmployeeRepository,
	roles repository.RoleRepository,
	scheduler ports.InvitationExpiryScheduler,
	ttl time.Duration,
	log *logger.Logger,
) *InvitationUseCase {
	if ttl <= 0 {
		ttl = DefaultInvitationTTL
	}
	return &InvitationUseCase{
		tx:          tx,
		invitations: invitations,
		employees:   employees,
		roles:       roles,
		scheduler:   scheduler,
		ttl:         ttl,
		log:         log.Component("invitations"),
		now:         time.Now,
	}
}

// Create crea la invitación y un empleado en estado invited, en una misma transacción.
// La respuesta incluye el token.
func (uc *InvitationUseCase) Create(ctx context.Context, inviter *entity.Employee, in dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	if inviter == nil {
		return nil, domain.ErrUnauthorized
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.employees.GetByEmailAndCompany(ctx, email, inviter.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("invitaciones: buscar email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	var roleID *string
	if in.RoleID != nil && *in.RoleID != "" {
		role, err := uc.roles.GetByID(ctx, *in.RoleID)
		if err != nil {
			return nil, fmt.Errorf("invitaciones: obtener rol: %w", err)
		}
		if role == nil {
			return nil, fmt.Errorf("%w: rol %s no existe", domain.ErrInvalidInput, *in.RoleID)
		}
		roleID = &role.ID
	}

	now := uc.now()
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		fullName = email
	}
	employee := &entity.Employee{
		ID:        uuid.New().String(),
		FullName:  fullName,
		Email:     email,
		CompanyID: inviter.CompanyID,
		RoleID:    roleID,
		Status:    entity.EmployeeStatusInvited,
		CreatedAt: now,
		UpdatedAt: now,
	}
	inv := &entity.Invitation{
		ID:         uuid.New().String(),
		Email:      email,
		CompanyID:  inviter.CompanyID,
		RoleID:     roleID,
		EmployeeID: employee.ID,
		InvitedBy:  inviter.ID,
		Token:      uuid.New().String(),
		ExpiresAt:  now.Add(uc.ttl),
		Status:     entity.InvitationStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		if err := repos.Employees.Create(ctx, employee); err != nil {
			return err
		}
		return repos.Invitations.Create(ctx, inv)
	})
	if err != nil {
		return nil, fmt.Errorf("invitaciones: crear: %w", err)
	}

	if uc.scheduler != nil {
		if err := uc.scheduler.ScheduleInvitationExpiry(ctx, inv.CompanyID, inv.ID, inv.ExpiresAt); err != nil {
			// El barrido periódico del worker la expirará igualmente.
			uc.log.Warn().Err(err).Str("invitation_id", inv.ID).Msg("could not schedule invitation expiry")
		}
	}
	uc.log.Info().Str("invitation_id", inv.ID).Str("company_id", inv.CompanyID).Msg("invitation created")

	resp := dto.InvitationFromEntity(inv)
	resp.Token = inv.Token
	return &resp, nil
}

// List lista las invitaciones de la empresa.
func (uc *InvitationUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.InvitationResponse, error) {
	page.DefaultPage()
	list, err := uc.invitations.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("invitaciones: listar: %w", err)
	}
	out := make([]dto.InvitationResponse, 0, len(list))
	for _, i := range list {
		out = append(out, dto.InvitationFromEntity(i))
	}
	return out, nil
}

// Accept vincula la identidad al empleado invitado y lo activa.
//   - token desconocido ⇒ ErrNotFound
//   - invitación no pending ⇒ ErrConflict
//   - vencida ⇒ se marca expired y se devuelve ErrInvitationExpired
//   - email distinto al de la identidad ⇒ ErrForbidden
//   - la identidad ya tiene empleado ⇒ ErrConflict
func (uc *InvitationUseCase) Accept(ctx context.Context, userID, email, token string) (*dto.EmployeeResponse, error) {
	inv, err := uc.invitations.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("invitaciones: obtener: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Status != entity.InvitationStatusPending {
		return nil, fmt.Errorf("%w: la invitación está %s", domain.ErrConflict, inv.Status)
	}
	now := uc.now()
	if inv.IsExpiredAt(now) {
		if err := uc.expire(ctx, inv, now); err != nil {
			uc.log.Error().Err(err).Str("invitation_id", inv.ID).Msg("could not mark invitation expired")
		}
		return nil, domain.ErrInvitationExpired
	}
	if email != "" && !strings.EqualFold(strings.TrimSpace(email), inv.Email) {
		return nil, fmt.Errorf("%w: la invitación es para otro email", domain.ErrForbidden)
	}
	current, err := uc.employees.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("invitaciones: empleado actual: %w", err)
	}
	if current != nil {
		return nil, fmt.Errorf("%w: la identidad ya pertenece a una empresa", domain.ErrConflict)
	}

	var accepted *entity.Employee
	err = uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		e, err := repos.Employees.GetByID(ctx, inv.CompanyID, inv.EmployeeID)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrEmployeeNotFound
		}
		uid := userID
		e.UserID = &uid
		e.Status = entity.EmployeeStatusActive
		e.UpdatedAt = now
		if err := repos.Employees.Update(ctx, e); err != nil {
			return err
		}
		accepted = e
		return repos.Invitations.UpdateStatus(ctx, inv.ID, entity.InvitationStatusAccepted, now)
	})
	if err != nil {
		return nil, fmt.Errorf("invitaciones: aceptar: %w", err)
	}
	uc.log.Info().Str("invitation_id", inv.ID).Str("employee_id", accepted.ID).Msg("invitation accepted")
	resp := dto.EmployeeFromEntity(accepted)
	return &resp, nil
}

// Revoke anula una invitación pending: queda expired y se elimina el empleado invitado.
func (uc *InvitationUseCase) Revoke(ctx context.Context, companyID, id string) error {
	inv, err := uc.invitations.GetByID(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("invitaciones: obtener: %w", err)
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if inv.Status != entity.InvitationStatusPending {
		return fmt.Errorf("%w: la invitación está %s", domain.ErrConflict, inv.Status)
	}
	return uc.expire(ctx, inv, uc.now())
}

// ExpireOne expira una invitación concreta si sigue pending y ya venció. Devuelve si la expiró.
func (uc *InvitationUseCase) ExpireOne(ctx context.Context, companyID, id string, now time.Time) (bool, error) {
	inv, err := uc.invitations.GetByID(ctx, companyID, id)
	if err != nil {
		return false, fmt.Errorf("invitaciones: obtener: %w", err)
	}
	if inv == nil || inv.Status != entity.InvitationStatusPending || !inv.IsExpiredAt(now) {
		return false, nil
	}
	if err := uc.expire(ctx, inv, now); err != nil {
		return false, fmt.Errorf("invitaciones: expirar: %w", err)
	}
	return true, nil
}

// staleBatch limita cuántas invitaciones vencidas se leen por vuelta del barrido.
const staleBatch = 200

// ExpireStale expira todas las invitaciones pending vencidas a now y devuelve cuántas.
// Cada una se expira en su propia transacción; un fallo corta el barrido y conserva lo ya hecho.
func (uc *InvitationUseCase) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for {
		stale, err := uc.invitations.ListExpiredPending(ctx, now, staleBatch)
		if err != nil {
			return n, fmt.Errorf("invitaciones: barrido: %w", err)
		}
		for _, inv := range stale {
			if err := uc.expire(ctx, inv, now); err != nil {
				return n, fmt.Errorf("invitaciones: barrido %s: %w", inv.ID, err)
			}
			n++
		}
		if len(stale) < staleBatch {
			return n, nil
		}
	}
}

// expire marca la invitación como expired y, en la misma transacción, elimina el empleado
// que sigue en estado invited, para que el email pueda volver a invitarse.
func (uc *InvitationUseCase) expire(ctx context.Context, inv *entity.Invitation, now time.Time) error {
	return uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		if err := repos.Invitations.UpdateStatus(ctx, inv.ID, entity.InvitationStatusExpired, now); err != nil {
			return err
		}
		if inv.EmployeeID == "" {
			return nil
		}
		e, err := repos.Employees.GetByID(ctx, inv.CompanyID, inv.EmployeeID)
		if err != nil {
			return err
		}
		if e != nil && e.Status == entity.EmployeeStatusInvited {
			return repos.Employees.Delete(ctx, inv.CompanyID, e.ID)
		}
		return nil
	})
}

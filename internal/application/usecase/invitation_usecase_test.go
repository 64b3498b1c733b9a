package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/application/usecase"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/internal/testutil/memstore"
	"github.com/lop-gin/nexus-backoffice/pkg/logger"
)

// fakeScheduler registra las expiraciones programadas.
type fakeScheduler struct {
	scheduled map[string]time.Time
	err       error
}

func (f *fakeScheduler) ScheduleInvitationExpiry(_ context.Context, _, invitationID string, at time.Time) error {
	if f.err != nil {
		return f.err
	}
	if f.scheduled == nil {
		f.scheduled = map[string]time.Time{}
	}
	f.scheduled[invitationID] = at
	return nil
}

type invitationFixture struct {
	store     *memstore.Store
	tx        *memstore.TxRunner
	scheduler *fakeScheduler
	inviter   *entity.Employee
	uc        *usecase.InvitationUseCase
}

func newInvitationFixture(t *testing.T) *invitationFixture {
	t.Helper()
	store := memstore.New()
	f := &invitationFixture{store: store, tx: store.Tx(), scheduler: &fakeScheduler{}}
	f.inviter = store.AddEmployee(store.AddCompany("Acme"), "admin", nil, true)
	f.uc = usecase.NewInvitationUseCase(f.tx, store.Invitations(), store.Employees(), store.Roles(), f.scheduler, 0, logger.Nop())
	return f
}

func (f *invitationFixture) invite(t *testing.T, email string) *dto.InvitationResponse {
	t.Helper()
	inv, err := f.uc.Create(context.Background(), f.inviter, dto.CreateInvitationRequest{Email: email, FullName: "Invitado"})
	require.NoError(t, err)
	return inv
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestInvitationCreate_CreaEmpleadoInvitadoYProgramaExpiracion(t *testing.T) {
	f := newInvitationFixture(t)
	inv := f.invite(t, "Nuevo@Acme.co")

	assert.NotEmpty(t, inv.Token)
	assert.Equal(t, "nuevo@acme.co", inv.Email)
	assert.Equal(t, entity.InvitationStatusPending, inv.Status)
	assert.WithinDuration(t, time.Now().Add(usecase.DefaultInvitationTTL), inv.ExpiresAt, time.Minute)
	assert.Equal(t, 1, f.tx.Calls, "empleado e invitación en una sola transacción")
	assert.Equal(t, inv.ExpiresAt, f.scheduler.scheduled[inv.ID])

	e, err := f.store.Employees().GetByID(context.Background(), f.inviter.CompanyID, inv.EmployeeID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, entity.EmployeeStatusInvited, e.Status)
	assert.Nil(t, e.UserID)
}

func TestInvitationCreate_EmailYaEnLaEmpresa(t *testing.T) {
	f := newInvitationFixture(t)
	f.invite(t, "dup@acme.co")

	_, err := f.uc.Create(context.Background(), f.inviter, dto.CreateInvitationRequest{Email: "dup@acme.co"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestInvitationCreate_FalloDelProgramadorNoFallaLaInvitacion(t *testing.T) {
	f := newInvitationFixture(t)
	f.scheduler.err = errors.New("redis caído")

	inv := f.invite(t, "x@acme.co")
	assert.NotEmpty(t, inv.ID)
}

// ── Accept ───────────────────────────────────────────────────────────────────

func TestInvitationAccept_VinculaYActiva(t *testing.T) {
	f := newInvitationFixture(t)
	inv := f.invite(t, "nuevo@acme.co")
	ctx := context.Background()

	e, err := f.uc.Accept(ctx, "user-nuevo", "nuevo@acme.co", inv.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.EmployeeStatusActive, e.Status)
	require.NotNil(t, e.UserID)
	assert.Equal(t, "user-nuevo", *e.UserID)

	stored, err := f.store.Invitations().GetByToken(ctx, inv.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.InvitationStatusAccepted, stored.Status)

	// Una segunda aceptación ya no está pending.
	_, err = f.uc.Accept(ctx, "otro", "nuevo@acme.co", inv.Token)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestInvitationAccept_TokenDesconocido(t *testing.T) {
	f := newInvitationFixture(t)
	_, err := f.uc.Accept(context.Background(), "u", "a@acme.co", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvitationAccept_VencidaSeMarcaExpirada(t *testing.T) {
	f := newInvitationFixture(t)
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)
	require.NoError(t, f.store.Invitations().Create(ctx, &entity.Invitation{
		ID: "inv-vencida", Email: "tarde@acme.co", CompanyID: f.inviter.CompanyID,
		Token: "tok-vencido", ExpiresAt: past, Status: entity.InvitationStatusPending, CreatedAt: past.Add(-time.Hour),
	}))

	_, err := f.uc.Accept(ctx, "u-tarde", "tarde@acme.co", "tok-vencido")
	assert.ErrorIs(t, err, domain.ErrInvitationExpired)

	stored, _ := f.store.Invitations().GetByToken(ctx, "tok-vencido")
	assert.Equal(t, entity.InvitationStatusExpired, stored.Status)
}

func TestInvitationAccept_EmailDistinto(t *testing.T) {
	f := newInvitationFixture(t)
	inv := f.invite(t, "nuevo@acme.co")

	_, err := f.uc.Accept(context.Background(), "u", "otro@acme.co", inv.Token)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInvitationAccept_IdentidadConEmpleado(t *testing.T) {
	f := newInvitationFixture(t)
	inv := f.invite(t, "nuevo@acme.co")

	_, err := f.uc.Accept(context.Background(), "admin", "nuevo@acme.co", inv.Token)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ── Revoke / Expire ──────────────────────────────────────────────────────────

func TestInvitationRevoke(t *testing.T) {
	f := newInvitationFixture(t)
	inv := f.invite(t, "nuevo@acme.co")
	ctx := context.Background()

	require.NoError(t, f.uc.Revoke(ctx, f.inviter.CompanyID, inv.ID))

	stored, _ := f.store.Invitations().GetByID(ctx, f.inviter.CompanyID, inv.ID)
	assert.Equal(t, entity.InvitationStatusExpired, stored.Status)
	e, _ := f.store.Employees().GetByID(ctx, f.inviter.CompanyID, inv.EmployeeID)
	assert.Nil(t, e, "el empleado invitado se elimina")

	assert.ErrorIs(t, f.uc.Revoke(ctx, f.inviter.CompanyID, inv.ID), domain.ErrConflict)
	assert.ErrorIs(t, f.uc.Revoke(ctx, "otra-empresa", inv.ID), domain.ErrNotFound)
}

func TestInvitationExpireOne(t *testing.T) {
	f := newInvitationFixture(t)
	inv := f.invite(t, "nuevo@acme.co")
	ctx := context.Background()

	done, err := f.uc.ExpireOne(ctx, f.inviter.CompanyID, inv.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, done, "todavía vigente")

	done, err = f.uc.ExpireOne(ctx, f.inviter.CompanyID, inv.ID, inv.ExpiresAt)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = f.uc.ExpireOne(ctx, f.inviter.CompanyID, inv.ID, inv.ExpiresAt)
	require.NoError(t, err)
	assert.False(t, done, "ya expirada")
}

func TestInvitationExpireStale(t *testing.T) {
	f := newInvitationFixture(t)
	f.invite(t, "a@acme.co")
	f.invite(t, "b@acme.co")
	accepted := f.invite(t, "c@acme.co")
	_, err := f.uc.Accept(context.Background(), "user-c", "c@acme.co", accepted.Token)
	require.NoError(t, err)

	n, err := f.uc.ExpireStale(context.Background(), time.Now().Add(usecase.DefaultInvitationTTL+time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "solo las pending vencidas")

	list, err := f.uc.List(context.Background(), f.inviter.CompanyID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 3)
	for _, i := range list {
		assert.Empty(t, i.Token, "el listado no expone tokens")
	}
}

func TestInvitationExpireOne_EliminaInvitadoYPermiteReinvitar(t *testing.T) {
	f := newInvitationFixture(t)
	inv := f.invite(t, "nuevo@acme.co")
	ctx := context.Background()

	done, err := f.uc.ExpireOne(ctx, f.inviter.CompanyID, inv.ID, inv.ExpiresAt)
	require.NoError(t, err)
	require.True(t, done)

	e, err := f.store.Employees().GetByID(ctx, f.inviter.CompanyID, inv.EmployeeID)
	require.NoError(t, err)
	assert.Nil(t, e, "el empleado invitado se elimina al expirar")

	again := f.invite(t, "nuevo@acme.co")
	assert.NotEqual(t, inv.ID, again.ID)
	assert.Equal(t, entity.InvitationStatusPending, again.Status)
}

func TestInvitationExpireStale_PermiteReinvitar(t *testing.T) {
	f := newInvitationFixture(t)
	first := f.invite(t, "a@acme.co")
	ctx := context.Background()

	n, err := f.uc.ExpireStale(ctx, first.ExpiresAt.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	e, _ := f.store.Employees().GetByID(ctx, f.inviter.CompanyID, first.EmployeeID)
	assert.Nil(t, e)
	f.invite(t, "a@acme.co")
}

func TestInvitationAccept_VencidaEliminaInvitadoYPermiteReinvitar(t *testing.T) {
	f := newInvitationFixture(t)
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)
	invited := &entity.Employee{
		ID: "emp-tarde", FullName: "Tarde", Email: "tarde@acme.co", CompanyID: f.inviter.CompanyID,
		Status: entity.EmployeeStatusInvited, CreatedAt: past, UpdatedAt: past,
	}
	require.NoError(t, f.store.Employees().Create(ctx, invited))
	require.NoError(t, f.store.Invitations().Create(ctx, &entity.Invitation{
		ID: "inv-tarde", Email: "tarde@acme.co", CompanyID: f.inviter.CompanyID, EmployeeID: invited.ID,
		Token: "tok-tarde", ExpiresAt: past, Status: entity.InvitationStatusPending, CreatedAt: past.Add(-time.Hour),
	}))

	_, err := f.uc.Accept(ctx, "u-tarde", "tarde@acme.co", "tok-tarde")
	require.ErrorIs(t, err, domain.ErrInvitationExpired)

	e, _ := f.store.Employees().GetByID(ctx, f.inviter.CompanyID, invited.ID)
	assert.Nil(t, e, "el empleado invitado se elimina al expirar")
	f.invite(t, "tarde@acme.co")
}

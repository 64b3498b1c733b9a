package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/application/usecase"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/internal/testutil/memstore"
)

func ptr[T any](v T) *T { return &v }

func TestEmployeeCreate_EmailDuplicadoEnEmpresa(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewEmployeeUseCase(store.Employees(), store.Roles())
	actor := store.AddEmployee(store.AddCompany("Acme"), "admin", nil, true)
	ctx := context.Background()

	e, err := uc.Create(ctx, actor, dto.CreateEmployeeRequest{FullName: "Ana", Email: "Ana@Acme.co"})
	require.NoError(t, err)
	assert.Equal(t, "ana@acme.co", e.Email)
	assert.Equal(t, entity.EmployeeStatusActive, e.Status)

	_, err = uc.Create(ctx, actor, dto.CreateEmployeeRequest{FullName: "Ana B", Email: "ana@acme.co"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// El mismo email en otra empresa es válido.
	otherAdmin := store.AddEmployee(store.AddCompany("Otra"), "admin-otra", nil, true)
	_, err = uc.Create(ctx, otherAdmin, dto.CreateEmployeeRequest{FullName: "Ana", Email: "ana@acme.co"})
	assert.NoError(t, err)
}

func TestEmployeeCreate_RolInexistente(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewEmployeeUseCase(store.Employees(), store.Roles())
	actor := store.AddEmployee(store.AddCompany("Acme"), "admin", nil, true)
	_, err := uc.Create(context.Background(), actor, dto.CreateEmployeeRequest{
		FullName: "Luis", Email: "luis@acme.co", RoleID: ptr("00000000-0000-0000-0000-00000000dead"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEmployeeGetByID_OtraEmpresaEsNotFound(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewEmployeeUseCase(store.Employees(), store.Roles())
	e := store.AddEmployee(store.AddCompany("Acme"), "u1", nil, false)

	_, err := uc.GetByID(context.Background(), store.AddCompany("Otra"), e.ID)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestEmployeeUpdate_RolEstadoYAdmin(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewEmployeeUseCase(store.Employees(), store.Roles())
	companyID := store.AddCompany("Acme")
	roleID := store.AddRole("Bodega", false)
	actor := store.AddEmployee(companyID, "admin", nil, true)
	e := store.AddEmployee(companyID, "u1", nil, false)
	ctx := context.Background()

	out, err := uc.Update(ctx, actor, e.ID, dto.UpdateEmployeeRequest{
		FullName: ptr("Luis Pérez"),
		RoleID:   &roleID,
		Status:   ptr(entity.EmployeeStatusInactive),
	})
	require.NoError(t, err)
	assert.Equal(t, "Luis Pérez", out.FullName)
	require.NotNil(t, out.RoleID)
	assert.Equal(t, roleID, *out.RoleID)
	assert.Equal(t, entity.EmployeeStatusInactive, out.Status)

	out, err = uc.Update(ctx, actor, e.ID, dto.UpdateEmployeeRequest{ClearRole: true})
	require.NoError(t, err)
	assert.Nil(t, out.RoleID)
}

func TestEmployeeUpdate_NoPuedeQuitarseAdminNiDesactivarse(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewEmployeeUseCase(store.Employees(), store.Roles())
	companyID := store.AddCompany("Acme")
	actor := store.AddEmployee(companyID, "admin", nil, true)
	ctx := context.Background()

	_, err := uc.Update(ctx, actor, actor.ID, dto.UpdateEmployeeRequest{IsAdmin: ptr(false)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Update(ctx, actor, actor.ID, dto.UpdateEmployeeRequest{Status: ptr(entity.EmployeeStatusInactive)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.ErrorIs(t, uc.Delete(ctx, actor, actor.ID), domain.ErrConflict)
}

func TestEmployeeListYDelete(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewEmployeeUseCase(store.Employees(), store.Roles())
	companyID := store.AddCompany("Acme")
	actor := store.AddEmployee(companyID, "admin", nil, true)
	e := store.AddEmployee(companyID, "u1", nil, false)
	store.AddEmployee(store.AddCompany("Otra"), "u2", nil, false)
	ctx := context.Background()

	list, err := uc.List(ctx, companyID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2, "solo empleados de la empresa")
	assert.Equal(t, 20, list.Page.Limit)

	require.NoError(t, uc.Delete(ctx, actor, e.ID))
	assert.ErrorIs(t, uc.Delete(ctx, actor, e.ID), domain.ErrNotFound)
}

// ── Escalada a administrador ─────────────────────────────────────────────────

func TestEmployeeUpdate_NoAdminNoPuedeConcederseAdmin(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewEmployeeUseCase(store.Employees(), store.Roles())
	companyID := store.AddCompany("Acme")
	roleID := store.AddRole("HR Clerk", false)
	clerk := store.AddEmployee(companyID, "clerk", &roleID, false)
	ctx := context.Background()

	_, err := uc.Update(ctx, clerk, clerk.ID, dto.UpdateEmployeeRequest{IsAdmin: ptr(true)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	other := store.AddEmployee(companyID, "u1", nil, false)
	_, err = uc.Update(ctx, clerk, other.ID, dto.UpdateEmployeeRequest{IsAdmin: ptr(true)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	stored, err := store.Employees().GetByID(ctx, companyID, clerk.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsAdmin, "la bandera no cambia")

	// Sin tocar is_admin, el resto de la edición sigue permitida.
	out, err := uc.Update(ctx, clerk, other.ID, dto.UpdateEmployeeRequest{FullName: ptr("Otro"), IsAdmin: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Otro", out.FullName)
}

func TestEmployeeUpdate_NoAdminNoEditaNiEliminaAdministradores(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewEmployeeUseCase(store.Employees(), store.Roles())
	companyID := store.AddCompany("Acme")
	admin := store.AddEmployee(companyID, "admin", nil, true)
	clerk := store.AddEmployee(companyID, "clerk", nil, false)
	ctx := context.Background()

	_, err := uc.Update(ctx, clerk, admin.ID, dto.UpdateEmployeeRequest{Status: ptr(entity.EmployeeStatusInactive)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, clerk, admin.ID), domain.ErrForbidden)

	// Un administrador sí puede promover.
	out, err := uc.Update(ctx, admin, clerk.ID, dto.UpdateEmployeeRequest{IsAdmin: ptr(true)})
	require.NoError(t, err)
	assert.True(t, out.IsAdmin)
}

func TestEmployeeCreate_NoAdminNoCreaAdministradores(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewEmployeeUseCase(store.Employees(), store.Roles())
	clerk := store.AddEmployee(store.AddCompany("Acme"), "clerk", nil, false)

	_, err := uc.Create(context.Background(), clerk, dto.CreateEmployeeRequest{FullName: "Eva", Email: "eva@acme.co", IsAdmin: true})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	e, err := uc.Create(context.Background(), clerk, dto.CreateEmployeeRequest{FullName: "Eva", Email: "eva@acme.co"})
	require.NoError(t, err)
	assert.False(t, e.IsAdmin)
}

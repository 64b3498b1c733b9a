package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/application/usecase"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/authz"
	"github.com/lop-gin/nexus-backoffice/internal/testutil/memstore"
	"github.com/lop-gin/nexus-backoffice/pkg/logger"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type roleFixture struct {
	store   *memstore.Store
	cache   *memstore.PermissionCache
	modules map[string]string
	uc      *usecase.RoleUseCase
}

func newRoleFixture(t *testing.T) *roleFixture {
	t.Helper()
	store := memstore.New()
	cache := memstore.NewPermissionCache()
	modules := store.SeedModules()
	uc := usecase.NewRoleUseCase(store.Roles(), store.Permissions(), store.Modules(), store.Employees(), cache, logger.Nop())
	return &roleFixture{store: store, cache: cache, modules: modules, uc: uc}
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestRoleCreate_NormalizaCascada(t *testing.T) {
	f := newRoleFixture(t)
	sales := f.modules["sales"]

	role, err := f.uc.Create(context.Background(), dto.CreateRoleRequest{
		Name:        "Cajero",
		Permissions: dto.PermissionGrid{sales: {Edit: true}},
	})
	require.NoError(t, err)
	assert.False(t, role.Locked)
	assert.False(t, role.IsPredefined)
	assert.Equal(t, authz.Capabilities{View: true, Create: true, Edit: true}, role.Permissions[sales],
		"editar implica ver y crear")

	rows, err := f.store.Permissions().ListByRole(context.Background(), role.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].CanCreate)
}

func TestRoleCreate_NombreReservadoEsConflicto(t *testing.T) {
	f := newRoleFixture(t)
	_, err := f.uc.Create(context.Background(), dto.CreateRoleRequest{Name: "Admin"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// "admin" en minúsculas no está reservado.
	_, err = f.uc.Create(context.Background(), dto.CreateRoleRequest{Name: "admin"})
	assert.NoError(t, err)
}

func TestRoleCreate_ModuloDesconocido(t *testing.T) {
	f := newRoleFixture(t)
	_, err := f.uc.Create(context.Background(), dto.CreateRoleRequest{
		Name:        "Auditor",
		Permissions: dto.PermissionGrid{"no-existe": {View: true}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Update ───────────────────────────────────────────────────────────────────

func TestRoleUpdate_RolPredefinidoBloqueado(t *testing.T) {
	f := newRoleFixture(t)
	id := f.store.AddRole(authz.RoleSalesRep, true)

	_, err := f.uc.Update(context.Background(), id, dto.UpdateRoleRequest{Name: "Vendedor"})
	assert.ErrorIs(t, err, domain.ErrRoleLocked)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	role, err := f.store.Roles().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleSalesRep, role.Name, "el nombre no debe cambiar")
}

func TestRoleUpdate_NombreReservadoSinBanderaTambienBloqueado(t *testing.T) {
	f := newRoleFixture(t)
	id := f.store.AddRole(authz.RoleAdmin, false)

	_, err := f.uc.Update(context.Background(), id, dto.UpdateRoleRequest{Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrRoleLocked)
}

func TestRoleUpdate_FalloParcialNoRevierteNombre(t *testing.T) {
	f := newRoleFixture(t)
	id := f.store.AddRole("Bodega", false)
	f.store.ErrReplacePermissions = errors.New("conexión perdida")

	_, err := f.uc.Update(context.Background(), id, dto.UpdateRoleRequest{
		Name:        "Bodega Norte",
		Permissions: dto.PermissionGrid{f.modules["inventory"]: {View: true}},
	})
	require.ErrorIs(t, err, domain.ErrPartialFailure)

	role, err := f.store.Roles().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Bodega Norte", role.Name, "el renombrado queda aplicado")
	assert.Contains(t, f.cache.Invalidated, id, "la caché se invalida aunque el reemplazo falle")
}

func TestRoleUpdate_SinPermisosConservaGrid(t *testing.T) {
	f := newRoleFixture(t)
	inventory := f.modules["inventory"]
	created, err := f.uc.Create(context.Background(), dto.CreateRoleRequest{
		Name:        "Bodega",
		Permissions: dto.PermissionGrid{inventory: {View: true}},
	})
	require.NoError(t, err)

	updated, err := f.uc.Update(context.Background(), created.ID, dto.UpdateRoleRequest{Name: "Almacén"})
	require.NoError(t, err)
	assert.Equal(t, "Almacén", updated.Name)
	assert.True(t, updated.Permissions[inventory].View)
}

// ── ChangePermission ─────────────────────────────────────────────────────────

func TestRoleChangePermission_Cascada(t *testing.T) {
	f := newRoleFixture(t)
	id := f.store.AddRole("Compras", false)
	procurement := f.modules["procurement"]
	ctx := context.Background()

	resp, err := f.uc.ChangePermission(ctx, id, dto.ChangePermissionRequest{ModuleID: procurement, Action: "delete", Value: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, authz.AllCapabilities, resp.Permissions[procurement])

	resp, err = f.uc.ChangePermission(ctx, id, dto.ChangePermissionRequest{ModuleID: procurement, Action: "create", Value: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, authz.Capabilities{View: true}, resp.Permissions[procurement],
		"revocar crear revoca editar y eliminar")
	assert.Contains(t, f.cache.Invalidated, id)
}

func TestRoleChangePermission_RolBloqueado(t *testing.T) {
	f := newRoleFixture(t)
	id := f.store.AddRole(authz.RoleHRSupervisor, true)

	_, err := f.uc.ChangePermission(context.Background(), id, dto.ChangePermissionRequest{
		ModuleID: f.modules["employees"], Action: "view", Value: ptr(true),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	rows, _ := f.store.Permissions().ListByRole(context.Background(), id)
	assert.Empty(t, rows)
}

func TestRoleChangePermission_AccionInvalida(t *testing.T) {
	f := newRoleFixture(t)
	id := f.store.AddRole("Compras", false)
	_, err := f.uc.ChangePermission(context.Background(), id, dto.ChangePermissionRequest{
		ModuleID: f.modules["sales"], Action: "approve", Value: ptr(true),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestRoleDelete_ConEmpleadosEsConflicto(t *testing.T) {
	f := newRoleFixture(t)
	id := f.store.AddRole("Transporte Norte", false)
	f.store.AddEmployee(f.store.AddCompany("Acme"), "u1", &id, false)

	err := f.uc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRoleDelete_EliminaRolYPermisos(t *testing.T) {
	f := newRoleFixture(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, dto.CreateRoleRequest{
		Name:        "Temporal",
		Permissions: dto.PermissionGrid{f.modules["sales"]: {View: true}},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, created.ID))

	_, err = f.uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	rows, _ := f.store.Permissions().ListByRole(ctx, created.ID)
	assert.Empty(t, rows)
}

func TestRoleDelete_Predefinido(t *testing.T) {
	f := newRoleFixture(t)
	id := f.store.AddRole(authz.RoleAdmin, true)
	assert.ErrorIs(t, f.uc.Delete(context.Background(), id), domain.ErrRoleLocked)
}

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
	"github.com/lop-gin/nexus-backoffice/internal/domain/authz"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/internal/domain/repository"
	"github.com/lop-gin/nexus-backoffice/pkg/logger"
)

// RoleUseCase gestiona roles y su matriz de permisos.
// Los roles bloqueados (predefinidos por bandera o por nombre) se rechazan aquí: el almacén no lo impide.
type RoleUseCase struct {
	roles       repository.RoleRepository
	permissions repository.PermissionRepository
	modules     repository.ModuleRepository
	employees   repository.EmployeeRepository
	cache       ports.PermissionCache // opcional
	log         *logger.Logger
	now         func() time.Time
}

// NewRoleUseCase construye el caso de uso. cache puede ser nil.
func NewRoleUseCase(
	roles repository.RoleRepository,
	permissions repository.PermissionRepository,
	modules repository.ModuleRepository,
	employees repository.EmployeeRepository,
	cache ports.PermissionCache,
	log *logger.Logger,
) *RoleUseCase {
	return &RoleUseCase{
		roles:       roles,
		permissions: permissions,
		modules:     modules,
		employees:   employees,
		cache:       cache,
		log:         log.Component("roles"),
		now:         time.Now,
	}
}

// List devuelve todos los roles (predefinidos primero), sin grid.
func (uc *RoleUseCase) List(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := uc.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("roles: listar: %w", err)
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleFromEntity(r, nil))
	}
	return out, nil
}

// GetByID devuelve el rol con su grid de permisos.
func (uc *RoleUseCase) GetByID(ctx context.Context, id string) (*dto.RoleResponse, error) {
	role, grid, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.RoleFromEntity(role, grid)
	return &resp, nil
}

// Create crea un rol personalizado (nunca predefinido). El grid recibido se normaliza con la cascada.
// Si la inserción de permisos falla tras crear el rol se devuelve ErrPartialFailure.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del rol es obligatorio", domain.ErrInvalidInput)
	}
	if authz.IsPredefinedRole(name) {
		return nil, fmt.Errorf("%w: %q es un nombre reservado", domain.ErrConflict, name)
	}
	grid, err := uc.validGrid(ctx, in.Permissions)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	role := &entity.Role{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	if err := uc.permissions.Replace(ctx, role.ID, grid.Rows(role.ID)); err != nil {
		uc.log.Error().Err(err).Str("role_id", role.ID).Msg("role created but permissions not stored")
		return nil, fmt.Errorf("%w: rol creado sin permisos: %v", domain.ErrPartialFailure, err)
	}
	resp := dto.RoleFromEntity(role, grid)
	return &resp, nil
}

// Update renombra el rol (updateRole) y luego reemplaza su grid (replacePermissions).
// Las dos escrituras no son atómicas: si la segunda falla se devuelve ErrPartialFailure y el
// cambio de nombre queda aplicado. Permissions nil deja el grid intacto.
func (uc *RoleUseCase) Update(ctx context.Context, id string, in dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	role, err := uc.roles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("roles: obtener: %w", err)
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	if authz.IsLocked(role) {
		return nil, domain.ErrRoleLocked
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del rol es obligatorio", domain.ErrInvalidInput)
	}
	if authz.IsPredefinedRole(name) {
		return nil, fmt.Errorf("%w: %q es un nombre reservado", domain.ErrConflict, name)
	}
	var grid authz.Grid
	if in.Permissions != nil {
		if grid, err = uc.validGrid(ctx, in.Permissions); err != nil {
			return nil, err
		}
	}

	if err := uc.roles.Update(ctx, id, name, strings.TrimSpace(in.Description)); err != nil {
		return nil, err
	}
	if grid != nil {
		err := uc.permissions.Replace(ctx, id, grid.Rows(id))
		// El borrado pudo aplicarse aunque la inserción fallara: la caché se invalida siempre.
		uc.invalidate(ctx, id)
		if err != nil {
			uc.log.Error().Err(err).Str("role_id", id).Msg("role renamed but permissions not replaced")
			return nil, fmt.Errorf("%w: el rol se renombró pero sus permisos no se actualizaron: %v", domain.ErrPartialFailure, err)
		}
	}
	return uc.GetByID(ctx, id)
}

// ChangePermission aplica un cambio individual con cascada y persiste el grid completo.
// Si la persistencia falla se devuelve el error y no se reporta ningún grid nuevo.
func (uc *RoleUseCase) ChangePermission(ctx context.Context, id string, in dto.ChangePermissionRequest) (*dto.RoleResponse, error) {
	action, err := authz.ParseAction(in.Action)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.Value == nil {
		return nil, fmt.Errorf("%w: value es obligatorio", domain.ErrInvalidInput)
	}
	role, current, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	module, err := uc.modules.GetByID(ctx, in.ModuleID)
	if err != nil {
		return nil, fmt.Errorf("roles: obtener módulo: %w", err)
	}
	if module == nil {
		return nil, fmt.Errorf("%w: módulo %s", domain.ErrNotFound, in.ModuleID)
	}
	updated, err := authz.ApplyRolePermissionChange(role, current, module.ID, action, *in.Value)
	if err != nil {
		return nil, err
	}
	err = uc.permissions.Replace(ctx, id, updated.Rows(id))
	uc.invalidate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("roles: guardar permisos: %w", err)
	}
	resp := dto.RoleFromEntity(role, updated)
	return &resp, nil
}

// Delete elimina un rol personalizado sin empleados asignados.
func (uc *RoleUseCase) Delete(ctx context.Context, id string) error {
	role, err := uc.roles.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("roles: obtener: %w", err)
	}
	if role == nil {
		return domain.ErrNotFound
	}
	if authz.IsLocked(role) {
		return domain.ErrRoleLocked
	}
	n, err := uc.employees.CountByRole(ctx, id)
	if err != nil {
		return fmt.Errorf("roles: contar empleados: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %d empleado(s) tienen este rol", domain.ErrConflict, n)
	}
	if err := uc.permissions.Replace(ctx, id, nil); err != nil {
		return fmt.Errorf("roles: borrar permisos: %w", err)
	}
	if err := uc.roles.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

// load obtiene el rol y su grid actual.
func (uc *RoleUseCase) load(ctx context.Context, id string) (*entity.Role, authz.Grid, error) {
	role, err := uc.roles.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("roles: obtener: %w", err)
	}
	if role == nil {
		return nil, nil, domain.ErrNotFound
	}
	rows, err := uc.permissions.ListByRole(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("roles: listar permisos: %w", err)
	}
	return role, authz.GridFromPermissions(rows), nil
}

// validGrid rechaza módulos desconocidos y normaliza la cascada.
func (uc *RoleUseCase) validGrid(ctx context.Context, in dto.PermissionGrid) (authz.Grid, error) {
	grid := authz.Grid{}
	if len(in) == 0 {
		return grid, nil
	}
	modules, err := uc.modules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("roles: listar módulos: %w", err)
	}
	known := make(map[string]struct{}, len(modules))
	for _, m := range modules {
		known[m.ID] = struct{}{}
	}
	for moduleID, caps := range in {
		if _, ok := known[moduleID]; !ok {
			return nil, fmt.Errorf("%w: módulo desconocido %s", domain.ErrInvalidInput, moduleID)
		}
		grid[moduleID] = caps
	}
	return authz.Normalize(grid), nil
}

func (uc *RoleUseCase) invalidate(ctx context.Context, roleID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateRole(ctx, roleID); err != nil {
		uc.log.Warn().Err(err).Str("role_id", roleID).Msg("permission cache invalidation failed")
	}
}

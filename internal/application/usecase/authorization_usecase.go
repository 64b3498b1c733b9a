package usecase

import (
	"context"
	"fmt"

	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/application/ports"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/authz"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/internal/domain/repository"
	"github.com/lop-gin/nexus-backoffice/pkg/logger"
)

// AuthorizationService evalúa "¿puede este empleado hacer A sobre el módulo M?".
// Es el único punto que consulta filas de permiso para decidir acceso; cualquier fallo niega.
type AuthorizationService struct {
	employees   repository.EmployeeRepository
	modules     repository.ModuleRepository
	permissions repository.PermissionRepository
	cache       ports.PermissionCache // opcional
	log         *logger.Logger
}

// NewAuthorizationService construye el servicio. cache puede ser nil.
func NewAuthorizationService(
	employees repository.EmployeeRepository,
	modules repository.ModuleRepository,
	permissions repository.PermissionRepository,
	cache ports.PermissionCache,
	log *logger.Logger,
) *AuthorizationService {
	return &AuthorizationService{
		employees:   employees,
		modules:     modules,
		permissions: permissions,
		cache:       cache,
		log:         log.Component("authz"),
	}
}

// ResolveEmployee resuelve el empleado de la identidad autenticada (getEmployeeByUserId).
// Devuelve domain.ErrEmployeeNotFound si la identidad no tiene empleado.
func (s *AuthorizationService) ResolveEmployee(ctx context.Context, userID string) (*entity.Employee, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	employee, err := s.employees.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolver empleado: %w", err)
	}
	if employee == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return employee, nil
}

// Check informa si employee puede ejecutar action sobre moduleName.
// Nunca devuelve error: módulo inexistente, fila ausente o fallo del almacén equivalen a false.
func (s *AuthorizationService) Check(ctx context.Context, employee *entity.Employee, moduleName string, action authz.Action) bool {
	if employee == nil || !action.Valid() {
		return false
	}
	if employee.IsAdmin {
		return authz.HasPermission(employee, nil, action)
	}
	if !employee.HasRole() {
		return false
	}
	module, err := s.modules.GetByName(ctx, moduleName)
	if err != nil {
		s.log.Error().Err(err).Str("module", moduleName).Msg("permission check: module lookup failed")
		return false
	}
	if module == nil {
		s.log.Warn().Str("module", moduleName).Msg("permission check: unknown module")
		return false
	}
	perm, err := s.permission(ctx, *employee.RoleID, module.ID)
	if err != nil {
		s.log.Error().Err(err).Str("role_id", *employee.RoleID).Str("module", moduleName).Msg("permission check: lookup failed")
		return false
	}
	return authz.HasPermission(employee, perm, action)
}

// permission lee la fila (rol, módulo) pasando primero por la caché. Un fallo de caché se registra y se ignora.
// Solo se cachea lo leído si la generación del rol no cambió mientras tanto.
func (s *AuthorizationService) permission(ctx context.Context, roleID, moduleID string) (*entity.Permission, error) {
	cacheable := false
	var gen int64
	if s.cache != nil {
		perm, found, g, err := s.cache.Get(ctx, roleID, moduleID)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("permission cache get failed")
		case found:
			return perm, nil
		default:
			cacheable, gen = true, g
		}
	}
	perm, err := s.permissions.Get(ctx, roleID, moduleID)
	if err != nil {
		return nil, err
	}
	if cacheable {
		if err := s.cache.Set(ctx, roleID, moduleID, gen, perm); err != nil {
			s.log.Warn().Err(err).Msg("permission cache set failed")
		}
	}
	return perm, nil
}

// EffectivePermissions devuelve las capacidades del empleado en cada módulo (para la UI).
func (s *AuthorizationService) EffectivePermissions(ctx context.Context, employee *entity.Employee) (*dto.EffectivePermissionsResponse, error) {
	if employee == nil {
		return nil, domain.ErrUnauthorized
	}
	modules, err := s.modules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar módulos: %w", err)
	}
	grid := authz.Grid{}
	if !employee.IsAdmin && employee.HasRole() {
		rows, err := s.permissions.ListByRole(ctx, *employee.RoleID)
		if err != nil {
			return nil, fmt.Errorf("listar permisos: %w", err)
		}
		grid = authz.GridFromPermissions(rows)
	}
	out := &dto.EffectivePermissionsResponse{
		IsAdmin: employee.IsAdmin,
		RoleID:  employee.RoleID,
		Modules: make([]dto.ModulePermissionResponse, 0, len(modules)),
	}
	for _, m := range modules {
		caps := grid[m.ID]
		if employee.IsAdmin {
			caps = authz.AllCapabilities
		}
		out.Modules = append(out.Modules, dto.ModulePermissionResponse{
			ModuleID:     m.ID,
			ModuleName:   m.Name,
			Capabilities: caps,
		})
	}
	return out, nil
}

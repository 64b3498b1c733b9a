package authz

import "github.com/lop-gin/nexus-backoffice/internal/domain/entity"

// HasPermission decide si el empleado puede ejecutar action sobre el módulo de perm.
//
//  1. Admin → true, sin más consultas.
//  2. Sin rol → false.
//  3. Sin fila de permisos (nil) o fila de otro rol → false.
//  4. El booleano correspondiente a action.
//
// El llamador busca perm con (employee.RoleID, moduleID) y pasa nil ante cualquier
// error de búsqueda: la función nunca falla abierta.
func HasPermission(employee *entity.Employee, perm *entity.Permission, action Action) bool {
	if employee == nil {
		return false
	}
	if employee.IsAdmin {
		return true
	}
	if !employee.HasRole() {
		return false
	}
	if perm == nil || perm.RoleID != *employee.RoleID {
		return false
	}
	return CapabilitiesOf(perm).Get(action)
}

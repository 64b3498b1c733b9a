package authz

import "github.com/lop-gin/nexus-backoffice/internal/domain/entity"

// Nombres reservados de roles predefinidos. La comparación es exacta y sensible a mayúsculas.
const (
	RoleAdmin                 = "Admin"
	RoleSalesSupervisor       = "Sales Supervisor"
	RoleSalesRep              = "Sales Rep"
	RoleProcurementSupervisor = "Procurement Supervisor"
	RoleProcurementRep        = "Procurement Rep"
	RoleProductionSupervisor  = "Production Supervisor"
	RoleMachineOperator       = "Machine Operator"
	RolePackagingSupervisor   = "Packaging Supervisor"
	RolePackagingPerson       = "Packaging Person"
	RoleTransportSupervisor   = "Transport Supervisor"
	RoleTransportPerson       = "Transport Person"
	RoleStoreSupervisor       = "Store Supervisor"
	RoleStorePerson           = "Store Person"
	RoleHRSupervisor          = "HR Supervisor"
)

var predefinedRoleNames = []string{
	RoleAdmin,
	RoleSalesSupervisor,
	RoleSalesRep,
	RoleProcurementSupervisor,
	RoleProcurementRep,
	RoleProductionSupervisor,
	RoleMachineOperator,
	RolePackagingSupervisor,
	RolePackagingPerson,
	RoleTransportSupervisor,
	RoleTransportPerson,
	RoleStoreSupervisor,
	RoleStorePerson,
	RoleHRSupervisor,
}

var predefinedRoleSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(predefinedRoleNames))
	for _, n := range predefinedRoleNames {
		set[n] = struct{}{}
	}
	return set
}()

// PredefinedRoleNames devuelve una copia de la lista reservada, en orden de siembra.
func PredefinedRoleNames() []string {
	out := make([]string, len(predefinedRoleNames))
	copy(out, predefinedRoleNames)
	return out
}

// IsPredefinedRole informa si name coincide exactamente con un nombre reservado.
// "Admin" es predefinido; "admin" no.
func IsPredefinedRole(name string) bool {
	_, ok := predefinedRoleSet[name]
	return ok
}

// IsLocked informa si el rol está bloqueado para edición estructural (nombre, descripción, permisos).
// Un rol está bloqueado si su bandera almacenada lo dice o si su nombre está reservado;
// un rol personalizado llamado "Admin" también queda protegido.
// El estado es fijo durante la vida del rol: nunca pasa de Locked a Editable ni al revés.
func IsLocked(role *entity.Role) bool {
	if role == nil {
		return false
	}
	return role.IsPredefined || IsPredefinedRole(role.Name)
}

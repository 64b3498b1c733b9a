package authz

import (
	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
)

// ApplyPermissionChange fija current[moduleID][action] = value y propaga la cascada:
//   - conceder una acción concede todas las inferiores (delete ⇒ edit ⇒ create ⇒ view);
//   - revocar una acción revoca todas las superiores.
//
// Devuelve un grid nuevo; current no se modifica. Es idempotente. Una acción inválida
// devuelve una copia sin cambios. No verifica si el rol es predefinido: para eso está
// ApplyRolePermissionChange.
func ApplyPermissionChange(current Grid, moduleID string, action Action, value bool) Grid {
	updated := current.Clone()
	pos := action.rank()
	if pos < 0 {
		return updated
	}
	caps := updated[moduleID]
	caps.set(action, value)
	if value {
		for _, lower := range Actions[:pos] {
			caps.set(lower, true)
		}
	} else {
		for _, higher := range Actions[pos+1:] {
			caps.set(higher, false)
		}
	}
	updated[moduleID] = caps
	return updated
}

// ApplyRolePermissionChange es ApplyPermissionChange con la verificación de bloqueo:
// devuelve domain.ErrRoleLocked si el rol es predefinido.
func ApplyRolePermissionChange(role *entity.Role, current Grid, moduleID string, action Action, value bool) (Grid, error) {
	if IsLocked(role) {
		return nil, domain.ErrRoleLocked
	}
	if !action.Valid() {
		return nil, domain.ErrInvalidAction
	}
	return ApplyPermissionChange(current, moduleID, action, value), nil
}

// Normalize fuerza el invariante can_delete ⇒ can_edit ⇒ can_create ⇒ can_view sobre un
// grid recibido completo (alta o reemplazo de un rol). La acción concedida más alta manda.
func Normalize(g Grid) Grid {
	out := make(Grid, len(g))
	for moduleID, caps := range g {
		normalized := Capabilities{}
		for i := len(Actions) - 1; i >= 0; i-- {
			if caps.Get(Actions[i]) {
				for _, a := range Actions[:i+1] {
					normalized.set(a, true)
				}
				break
			}
		}
		out[moduleID] = normalized
	}
	return out
}

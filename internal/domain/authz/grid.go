package authz

import (
	"sort"

	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
)

// Capabilities son los cuatro booleanos de un par (role, module).
type Capabilities struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// AllCapabilities concede todo; es lo que ve un administrador.
var AllCapabilities = Capabilities{View: true, Create: true, Edit: true, Delete: true}

// Get devuelve el valor de la acción; una acción desconocida es siempre false.
func (c Capabilities) Get(a Action) bool {
	switch a {
	case ActionView:
		return c.View
	case ActionCreate:
		return c.Create
	case ActionEdit:
		return c.Edit
	case ActionDelete:
		return c.Delete
	}
	return false
}

func (c *Capabilities) set(a Action, v bool) {
	switch a {
	case ActionView:
		c.View = v
	case ActionCreate:
		c.Create = v
	case ActionEdit:
		c.Edit = v
	case ActionDelete:
		c.Delete = v
	}
}

// CapabilitiesOf extrae las capacidades de una fila de permisos; nil equivale a ninguna.
func CapabilitiesOf(p *entity.Permission) Capabilities {
	if p == nil {
		return Capabilities{}
	}
	return Capabilities{View: p.CanView, Create: p.CanCreate, Edit: p.CanEdit, Delete: p.CanDelete}
}

// Grid es el mapa completo de permisos de un rol: moduleID → capacidades.
type Grid map[string]Capabilities

// GridFromPermissions construye el grid a partir de las filas almacenadas de un rol.
func GridFromPermissions(rows []*entity.Permission) Grid {
	g := make(Grid, len(rows))
	for _, p := range rows {
		if p == nil {
			continue
		}
		g[p.ModuleID] = CapabilitiesOf(p)
	}
	return g
}

// Clone devuelve una copia independiente del grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for k, v := range g {
		out[k] = v
	}
	return out
}

// Rows convierte el grid en filas de permisos para roleID, ordenadas por módulo.
// Es la entrada de replacePermissions.
func (g Grid) Rows(roleID string) []*entity.Permission {
	ids := make([]string, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rows := make([]*entity.Permission, 0, len(ids))
	for _, id := range ids {
		c := g[id]
		rows = append(rows, &entity.Permission{
			RoleID:    roleID,
			ModuleID:  id,
			CanView:   c.View,
			CanCreate: c.Create,
			CanEdit:   c.Edit,
			CanDelete: c.Delete,
		})
	}
	return rows
}

package authz

import (
	"fmt"

	"github.com/lop-gin/nexus-backoffice/internal/domain"
)

// Action es una de las cuatro capacidades sobre un módulo.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Actions es el orden total view < create < edit < delete sobre el que opera la cascada.
var Actions = [...]Action{ActionView, ActionCreate, ActionEdit, ActionDelete}

// ParseAction convierte el texto recibido por la API en Action.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidAction, s)
}

// rank devuelve la posición de la acción en el orden, o -1 si no es válida.
func (a Action) rank() int {
	for i, x := range Actions {
		if x == a {
			return i
		}
	}
	return -1
}

// Valid informa si la acción pertenece al orden conocido.
func (a Action) Valid() bool { return a.rank() >= 0 }

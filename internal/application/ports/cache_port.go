package ports

import (
	"context"

	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
)

// PermissionCache caché de lectura de filas de permiso por (rol, módulo).
// Un error de la caché nunca debe negar ni conceder acceso: el llamador consulta la base de datos.
//
// Cada rol tiene una generación que InvalidateRole incrementa. Get la devuelve y Set solo escribe
// si sigue siendo la misma: una fila leída antes de un replacePermissions concurrente no vuelve
// a la caché después de su invalidación.
type PermissionCache interface {
	// Get devuelve (perm, true, gen, nil) en un acierto. perm puede ser nil: la ausencia de fila también se cachea.
	// En un fallo devuelve la generación vigente, que debe pasarse a Set.
	Get(ctx context.Context, roleID, moduleID string) (perm *entity.Permission, found bool, gen int64, err error)
	// Set guarda la fila si la generación del rol sigue siendo gen; si no, no escribe nada.
	Set(ctx context.Context, roleID, moduleID string, gen int64, perm *entity.Permission) error
	// InvalidateRole descarta todas las entradas del rol e incrementa su generación.
	InvalidateRole(ctx context.Context, roleID string) error
}

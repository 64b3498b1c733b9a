package repository

import (
	"context"

	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
)

// PermissionRepository define el puerto de persistencia para las filas (role, module).
type PermissionRepository interface {
	// Get devuelve (nil, nil) si no existe fila para el par.
	Get(ctx context.Context, roleID, moduleID string) (*entity.Permission, error)
	ListByRole(ctx context.Context, roleID string) ([]*entity.Permission, error)
	// Replace borra las filas del rol y luego inserta rows (delete-then-insert, no upsert).
	Replace(ctx context.Context, roleID string, rows []*entity.Permission) error
}

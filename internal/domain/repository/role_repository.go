package repository

import (
	"context"

	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para Role (dato de referencia global).
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context) ([]*entity.Role, error)
	// Update escribe solo name y description (updateRole). No es atómico con ReplacePermissions.
	Update(ctx context.Context, id, name, description string) error
	Delete(ctx context.Context, id string) error
}

package repository

import (
	"context"

	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
)

// ModuleRepository define el puerto de lectura del catálogo de módulos.
type ModuleRepository interface {
	List(ctx context.Context) ([]*entity.Module, error)
	GetByID(ctx context.Context, id string) (*entity.Module, error)
	GetByName(ctx context.Context, name string) (*entity.Module, error)
	Create(ctx context.Context, module *entity.Module) error
}

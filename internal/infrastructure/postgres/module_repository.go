package postgres

import (
	"context"
	"fmt"

	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/internal/domain/repository"
)

var _ repository.ModuleRepository = (*ModuleRepo)(nil)

// ModuleRepo implementación de ModuleRepository.
type ModuleRepo struct {
	q Querier
}

// NewModuleRepository construye el adaptador del catálogo de módulos.
func NewModuleRepository(q Querier) *ModuleRepo {
	return &ModuleRepo{q: q}
}

// List devuelve el catálogo completo ordenado por nombre.
func (r *ModuleRepo) List(ctx context.Context) ([]*entity.Module, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, created_at FROM modules ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()
	var list []*entity.Module
	for rows.Next() {
		var m entity.Module
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// GetByID obtiene un módulo por ID.
func (r *ModuleRepo) GetByID(ctx context.Context, id string) (*entity.Module, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// GetByName obtiene un módulo por nombre.
func (r *ModuleRepo) GetByName(ctx context.Context, name string) (*entity.Module, error) {
	return r.findOne(ctx, `WHERE name = $1`, name)
}

func (r *ModuleRepo) findOne(ctx context.Context, where string, arg any) (*entity.Module, error) {
	var m entity.Module
	err := r.q.QueryRow(ctx, `SELECT id, name, description, created_at FROM modules `+where, arg).
		Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get module: %w", err)
	}
	return &m, nil
}

// Create persiste un módulo (usado por cmd/seed).
func (r *ModuleRepo) Create(ctx context.Context, m *entity.Module) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO modules (id, name, description, created_at) VALUES ($1, $2, $3, $4)`,
		m.ID, m.Name, m.Description, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert module: %w", err)
	}
	return nil
}

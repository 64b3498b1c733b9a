package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo implementación de PermissionRepository.
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository construye el adaptador de permisos.
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

const permissionColumns = `id, role_id, module_id, can_view, can_create, can_edit, can_delete`

// Get devuelve la fila (role, module) o (nil, nil) si no existe.
func (r *PermissionRepo) Get(ctx context.Context, roleID, moduleID string) (*entity.Permission, error) {
	query := `SELECT ` + permissionColumns + ` FROM permissions WHERE role_id = $1 AND module_id = $2`
	var p entity.Permission
	err := r.q.QueryRow(ctx, query, roleID, moduleID).Scan(
		&p.ID, &p.RoleID, &p.ModuleID, &p.CanView, &p.CanCreate, &p.CanEdit, &p.CanDelete,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return &p, nil
}

// ListByRole devuelve todas las filas del rol.
func (r *PermissionRepo) ListByRole(ctx context.Context, roleID string) ([]*entity.Permission, error) {
	rows, err := r.q.Query(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE role_id = $1`, roleID)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Permission
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(&p.ID, &p.RoleID, &p.ModuleID, &p.CanView, &p.CanCreate, &p.CanEdit, &p.CanDelete); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Replace borra las filas del rol y luego inserta las nuevas en un batch.
// El DELETE y el batch son sentencias separadas, como en el almacén original:
// no hay transacción que las cubra ni que cubra una actualización previa del rol.
func (r *PermissionRepo) Replace(ctx context.Context, roleID string, rows []*entity.Permission) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM permissions WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("delete permissions: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}
	const insert = `INSERT INTO permissions (` + permissionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	batch := &pgx.Batch{}
	for _, p := range rows {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		batch.Queue(insert, p.ID, roleID, p.ModuleID, p.CanView, p.CanCreate, p.CanEdit, p.CanDelete)
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()
	for range rows {
		if _, err := results.Exec(); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrConflict
			}
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: módulo inexistente", domain.ErrInvalidInput)
			}
			return fmt.Errorf("insert permission: %w", err)
		}
	}
	return nil
}

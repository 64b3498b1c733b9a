package repository

import (
	"context"

	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee.
// Todas las operaciones por ID exigen companyID: una fila de otra empresa se trata como inexistente.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Employee, error)
	// GetByUserID resuelve "qué empleado soy" a partir de la identidad autenticada.
	GetByUserID(ctx context.Context, userID string) (*entity.Employee, error)
	GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.Employee, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	Delete(ctx context.Context, companyID, id string) error
	CountByRole(ctx context.Context, roleID string) (int, error)
}

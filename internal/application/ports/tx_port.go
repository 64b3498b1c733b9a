package ports

import (
	"context"

	"github.com/lop-gin/nexus-backoffice/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción.
type TxRepos struct {
	Users       repository.UserRepository
	Companies   repository.CompanyRepository
	Employees   repository.EmployeeRepository
	Roles       repository.RoleRepository
	Invitations repository.InvitationRepository
}

// TxRunner ejecuta fn dentro de una transacción. Si fn retorna error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

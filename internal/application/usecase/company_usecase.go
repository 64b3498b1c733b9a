package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/internal/domain/repository"
)

// CompanyUseCase lectura y edición de la empresa del usuario.
type CompanyUseCase struct {
	repo repository.CompanyRepository
	now  func() time.Time
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, now: time.Now}
}

// GetByID obtiene la empresa. ErrNotFound si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.CompanyFromEntity(company)
	return &resp, nil
}

// Update edita los datos de la empresa. Solo un administrador puede hacerlo.
func (uc *CompanyUseCase) Update(ctx context.Context, actor *entity.Employee, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if actor == nil || !actor.IsAdmin {
		return nil, fmt.Errorf("%w: solo un administrador puede editar la empresa", domain.ErrForbidden)
	}
	company, err := uc.get(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		company.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		if !entity.IsValidCompanyType(*in.Type) {
			return nil, fmt.Errorf("%w: tipo de empresa %q", domain.ErrInvalidInput, *in.Type)
		}
		company.Type = *in.Type
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	company.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	resp := dto.CompanyFromEntity(company)
	return &resp, nil
}

func (uc *CompanyUseCase) get(ctx context.Context, id string) (*entity.Company, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("empresa: obtener: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

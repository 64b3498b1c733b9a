package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/internal/domain/repository"
)

// EmployeeUseCase CRUD de empleados, siempre acotado a la empresa del usuario.
// Un id de otra empresa se reporta como ErrNotFound.
type EmployeeUseCase struct {
	employees repository.EmployeeRepository
	roles     repository.RoleRepository
	now       func() time.Time
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(employees repository.EmployeeRepository, roles repository.RoleRepository) *EmployeeUseCase {
	return &EmployeeUseCase{employees: employees, roles: roles, now: time.Now}
}

// List lista empleados de la empresa.
func (uc *EmployeeUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.EmployeeListResponse, error) {
	page.DefaultPage()
	list, err := uc.employees.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("empleados: listar: %w", err)
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.EmployeeFromEntity(e))
	}
	return &dto.EmployeeListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// GetByID obtiene un empleado de la empresa.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.EmployeeResponse, error) {
	e, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := dto.EmployeeFromEntity(e)
	return &resp, nil
}

// Create da de alta un empleado activo en la empresa del actor. Email duplicado en la empresa ⇒ ErrEmailAlreadyExists.
// Solo un administrador puede crear otro administrador.
func (uc *EmployeeUseCase) Create(ctx context.Context, actor *entity.Employee, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if in.IsAdmin && !actor.IsAdmin {
		return nil, fmt.Errorf("%w: solo un administrador puede conceder is_admin", domain.ErrForbidden)
	}
	companyID := actor.CompanyID
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.employees.GetByEmailAndCompany(ctx, email, companyID)
	if err != nil {
		return nil, fmt.Errorf("empleados: buscar email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	roleID, err := uc.checkRole(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	e := &entity.Employee{
		ID:        uuid.New().String(),
		FullName:  strings.TrimSpace(in.FullName),
		Email:     email,
		Phone:     in.Phone,
		Address:   in.Address,
		CompanyID: companyID,
		RoleID:    roleID,
		IsAdmin:   in.IsAdmin,
		Status:    entity.EmployeeStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.employees.Create(ctx, e); err != nil {
		return nil, err
	}
	resp := dto.EmployeeFromEntity(e)
	return &resp, nil
}

// Update modifica nombre, contacto, rol, bandera admin y estado.
// Un actor no administrador no toca is_admin ni edita administradores; nadie se quita a sí mismo
// el acceso de administrador ni se desactiva.
func (uc *EmployeeUseCase) Update(ctx context.Context, actor *entity.Employee, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	e, err := uc.get(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin {
		if e.IsAdmin {
			return nil, fmt.Errorf("%w: solo un administrador puede editar a otro administrador", domain.ErrForbidden)
		}
		if in.IsAdmin != nil && *in.IsAdmin != e.IsAdmin {
			return nil, fmt.Errorf("%w: solo un administrador puede cambiar is_admin", domain.ErrForbidden)
		}
	}
	if in.FullName != nil {
		e.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		e.Phone = *in.Phone
	}
	if in.Address != nil {
		e.Address = *in.Address
	}
	switch {
	case in.ClearRole:
		e.RoleID = nil
	case in.RoleID != nil:
		if e.RoleID, err = uc.checkRole(ctx, in.RoleID); err != nil {
			return nil, err
		}
	}
	if in.IsAdmin != nil {
		if id == actor.ID && e.IsAdmin && !*in.IsAdmin {
			return nil, fmt.Errorf("%w: no puede quitarse a sí mismo el rol de administrador", domain.ErrConflict)
		}
		e.IsAdmin = *in.IsAdmin
	}
	if in.Status != nil {
		if !entity.IsValidEmployeeStatus(*in.Status) {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, *in.Status)
		}
		if id == actor.ID && *in.Status != entity.EmployeeStatusActive {
			return nil, fmt.Errorf("%w: no puede desactivarse a sí mismo", domain.ErrConflict)
		}
		e.Status = *in.Status
	}
	e.UpdatedAt = uc.now()
	if err := uc.employees.Update(ctx, e); err != nil {
		return nil, err
	}
	resp := dto.EmployeeFromEntity(e)
	return &resp, nil
}

// Delete elimina un empleado de la empresa del actor. Nadie puede eliminarse a sí mismo
// y solo un administrador elimina a otro administrador.
func (uc *EmployeeUseCase) Delete(ctx context.Context, actor *entity.Employee, id string) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if id == actor.ID {
		return fmt.Errorf("%w: no puede eliminarse a sí mismo", domain.ErrConflict)
	}
	if !actor.IsAdmin {
		e, err := uc.get(ctx, actor.CompanyID, id)
		if err != nil {
			return err
		}
		if e.IsAdmin {
			return fmt.Errorf("%w: solo un administrador puede eliminar a otro administrador", domain.ErrForbidden)
		}
	}
	return uc.employees.Delete(ctx, actor.CompanyID, id)
}

func (uc *EmployeeUseCase) get(ctx context.Context, companyID, id string) (*entity.Employee, error) {
	e, err := uc.employees.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("empleados: obtener: %w", err)
	}
	if e == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return e, nil
}

// checkRole verifica que el rol exista; nil o "" significa sin rol.
func (uc *EmployeeUseCase) checkRole(ctx context.Context, roleID *string) (*string, error) {
	if roleID == nil || *roleID == "" {
		return nil, nil
	}
	role, err := uc.roles.GetByID(ctx, *roleID)
	if err != nil {
		return nil, fmt.Errorf("empleados: obtener rol: %w", err)
	}
	if role == nil {
		return nil, fmt.Errorf("%w: rol %s no existe", domain.ErrInvalidInput, *roleID)
	}
	id := role.ID
	return &id, nil
}

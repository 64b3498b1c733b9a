package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/application/ports"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/authz"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/internal/domain/repository"
	"github.com/lop-gin/nexus-backoffice/pkg/logger"
)

// AuthUseCase casos de uso de autenticación: onboarding (signup), login e identidad actual.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	employeeRepo repository.EmployeeRepository
	tx           ports.TxRunner
	tokens       ports.TokenIssuer
	log          *logger.Logger
	now          func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	employeeRepo repository.EmployeeRepository,
	tx ports.TxRunner,
	tokens ports.TokenIssuer,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		tx:           tx,
		tokens:       tokens,
		log:          log.Component("auth"),
		now:          time.Now,
	}
}

// Signup crea en una sola transacción la identidad, la empresa y su empleado administrador.
// El administrador recibe el rol Admin si está sembrado. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.SignupResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("signup: buscar usuario: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("signup: hash: %w", err)
	}

	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.CompanyName),
		Type:      in.CompanyType,
		Email:     email,
		Phone:     in.Phone,
		Address:   in.Address,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	employee := &entity.Employee{
		ID:        uuid.New().String(),
		UserID:    &user.ID,
		FullName:  strings.TrimSpace(in.FullName),
		Email:     email,
		Phone:     in.Phone,
		Address:   in.Address,
		CompanyID: company.ID,
		IsAdmin:   true,
		Status:    entity.EmployeeStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !entity.IsValidCompanyType(company.Type) {
		return nil, fmt.Errorf("%w: tipo de empresa %q", domain.ErrInvalidInput, company.Type)
	}

	err = uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		if err := repos.Users.Create(ctx, user); err != nil {
			return err
		}
		if err := repos.Companies.Create(ctx, company); err != nil {
			return err
		}
		adminRole, err := repos.Roles.GetByName(ctx, authz.RoleAdmin)
		if err != nil {
			return err
		}
		if adminRole != nil {
			employee.RoleID = &adminRole.ID
		}
		return repos.Employees.Create(ctx, employee)
	})
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	token, err := uc.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("signup: token: %w", err)
	}
	uc.log.Info().Str("company_id", company.ID).Str("user_id", user.ID).Msg("company onboarded")
	return &dto.SignupResponse{
		Token:    token,
		User:     dto.UserResponse{ID: user.ID, Email: user.Email},
		Company:  dto.CompanyFromEntity(company),
		Employee: dto.EmployeeFromEntity(employee),
	}, nil
}

// Login verifica email/password y emite el token. Credenciales incorrectas ⇒ ErrUnauthorized
// (sin distinguir email inexistente); empleado inactivo ⇒ ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	employee, err := uc.employeeRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: empleado: %w", err)
	}
	if employee != nil && employee.Status == entity.EmployeeStatusInactive {
		return nil, domain.ErrForbidden
	}
	token, err := uc.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("login: token: %w", err)
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserResponse{ID: user.ID, Email: user.Email},
	}, nil
}

// CurrentUser devuelve {id, email} de la identidad autenticada o ErrUnauthorized si ya no existe.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return &dto.UserResponse{ID: user.ID, Email: user.Email}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lop-gin/nexus-backoffice/internal/application/auth"
	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/application/usecase"
)

// AuthHandler maneja onboarding, login y la identidad actual.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	authz *usecase.AuthorizationService
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, authz *usecase.AuthorizationService) *AuthHandler {
	return &AuthHandler{uc: uc, authz: authz}
}

// Signup godoc
// @Summary      Registrar empresa y administrador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "Datos del administrador y la empresa"
// @Success      201   {object}  dto.SignupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Signup(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Identidad actual y su empleado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.CurrentUser(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MeResponse{User: *user, Employee: dto.EmployeeFromEntity(GetEmployee(c))})
}

// Permissions godoc
// @Summary      Permisos efectivos del empleado por módulo
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EffectivePermissionsResponse
// @Router       /api/me/permissions [get]
func (h *AuthHandler) Permissions(c *fiber.Ctx) error {
	out, err := h.authz.EffectivePermissions(c.Context(), GetEmployee(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/authz"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
)

// LocalEmployee key del empleado resuelto en c.Locals.
const LocalEmployee = "employee"

// employeeResolver es el contrato mínimo para resolver el empleado de la identidad.
// Lo implementa *usecase.AuthorizationService; el uso de interfaz evita el import circular.
type employeeResolver interface {
	ResolveEmployee(ctx context.Context, userID string) (*entity.Employee, error)
}

// permissionChecker decide si un empleado puede ejecutar una acción sobre un módulo.
// Debe devolver false ante cualquier fallo interno.
type permissionChecker interface {
	Check(ctx context.Context, employee *entity.Employee, moduleName string, action authz.Action) bool
}

// EmployeeMiddleware resuelve el empleado de la identidad autenticada. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 403 Forbidden → la identidad no tiene empleado o el empleado no está activo.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func EmployeeMiddleware(resolver employeeResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		employee, err := resolver.ResolveEmployee(c.Context(), GetUserID(c))
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no encontrada en el token"})
		case errors.Is(err, domain.ErrEmployeeNotFound):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NO_EMPLOYEE", Message: "la identidad no pertenece a ninguna empresa"})
		case err != nil:
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "EMPLOYEE_LOOKUP_FAILED", Message: "no se pudo resolver el empleado, intente más tarde"})
		}
		if employee.Status != entity.EmployeeStatusActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "EMPLOYEE_INACTIVE", Message: "el empleado no está activo"})
		}
		c.Locals(LocalEmployee, employee)
		return c.Next()
	}
}

// RequirePermission devuelve un middleware que exige action sobre moduleName.
// Debe usarse DESPUÉS de EmployeeMiddleware. El checker niega ante fallos (fail closed), por eso no hay 503.
func RequirePermission(moduleName string, action authz.Action, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		employee := GetEmployee(c)
		if employee == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "empleado no resuelto"})
		}
		if !checker.Check(c.Context(), employee, moduleName, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_DENIED",
				Message: "sin permiso '" + string(action) + "' sobre el módulo '" + moduleName + "'",
			})
		}
		return c.Next()
	}
}

// GetEmployee devuelve el empleado resuelto por EmployeeMiddleware, o nil.
func GetEmployee(c *fiber.Ctx) *entity.Employee {
	e, _ := c.Locals(LocalEmployee).(*entity.Employee)
	return e
}

// GetCompanyID devuelve la empresa del empleado resuelto.
func GetCompanyID(c *fiber.Ctx) string {
	if e := GetEmployee(c); e != nil {
		return e.CompanyID
	}
	return ""
}

package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
)

// ErrorStatus traduce un error de dominio a (status HTTP, código de error).
// El orden importa: ErrRoleLocked envuelve ErrForbidden.
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrPartialFailure):
		return fiber.StatusInternalServerError, "PARTIAL_FAILURE"
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidAction):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrRoleLocked):
		return fiber.StatusForbidden, "ROLE_LOCKED"
	case errors.Is(err, domain.ErrInvitationExpired):
		return fiber.StatusForbidden, "INVITATION_EXPIRED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrEmployeeNotFound), errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde {code, message} según ErrorStatus.
func writeError(c *fiber.Ctx, err error) error {
	status, code := ErrorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// parseBody decodifica el cuerpo JSON y aplica las etiquetas validate:.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	return dto.Validate(out)
}

// parsePage lee limit/offset de la query; DefaultPage los acota en el caso de uso.
func parsePage(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
}

// requiredParam devuelve el parámetro de ruta o ErrInvalidInput si viene vacío.
func requiredParam(c *fiber.Ctx, name string) (string, error) {
	v := c.Params(name)
	if v == "" {
		return "", fmt.Errorf("%w: %s es requerido", domain.ErrInvalidInput, name)
	}
	return v, nil
}

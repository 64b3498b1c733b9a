package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/application/usecase"
)

// RoleHandler maneja roles, su matriz de permisos y el catálogo de módulos.
type RoleHandler struct {
	roles   *usecase.RoleUseCase
	modules *usecase.ModuleService
	report  *usecase.RoleReportUseCase
}

// NewRoleHandler construye el handler.
func NewRoleHandler(roles *usecase.RoleUseCase, modules *usecase.ModuleService, report *usecase.RoleReportUseCase) *RoleHandler {
	return &RoleHandler{roles: roles, modules: modules, report: report}
}

// ListModules godoc
// @Summary      Listar módulos
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ModuleResponse
// @Router       /api/modules [get]
func (h *RoleHandler) ListModules(c *fiber.Ctx) error {
	out, err := h.modules.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar roles
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RoleResponse
// @Router       /api/roles [get]
func (h *RoleHandler) List(c *fiber.Ctx) error {
	out, err := h.roles.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener rol con su matriz de permisos
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del rol"
// @Success      200  {object}  dto.RoleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [get]
func (h *RoleHandler) GetByID(c *fiber.Ctx) error {
	id, err := requiredParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.roles.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear rol personalizado
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoleRequest  true  "Nombre, descripción y permisos"
// @Success      201   {object}  dto.RoleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/roles [post]
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRoleRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.roles.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar rol y reemplazar su matriz
// @Description  Dos escrituras no atómicas: si falla el reemplazo de permisos responde 500 PARTIAL_FAILURE y el nombre queda cambiado.
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del rol"
// @Param        body  body  dto.UpdateRoleRequest  true  "Datos del rol"
// @Success      200   {object}  dto.RoleResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [put]
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	id, err := requiredParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateRoleRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.roles.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangePermission godoc
// @Summary      Cambiar un permiso con cascada
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del rol"
// @Param        body  body  dto.ChangePermissionRequest  true  "Módulo, acción y valor"
// @Success      200   {object}  dto.RoleResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/roles/{id}/permissions [patch]
func (h *RoleHandler) ChangePermission(c *fiber.Ctx) error {
	id, err := requiredParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ChangePermissionRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.roles.ChangePermission(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar rol personalizado
// @Tags         roles
// @Security     Bearer
// @Param        id   path  string  true  "ID del rol"
// @Success      204  "sin contenido"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [delete]
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id, err := requiredParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.roles.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Report godoc
// @Summary      Descargar matriz de permisos del rol en PDF
// @Tags         roles
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del rol"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{id}/report [get]
func (h *RoleHandler) Report(c *fiber.Ctx) error {
	id, err := requiredParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	pdf, filename, err := h.report.Download(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

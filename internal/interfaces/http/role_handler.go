package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// RoleHandler maneja las peticiones HTTP para Role (todas admin-only, el gate
// vive en el router).
type RoleHandler struct {
	uc  *usecase.RoleUseCase
	log *logger.Logger
}

// NewRoleHandler construye el handler.
func NewRoleHandler(uc *usecase.RoleUseCase, log *logger.Logger) *RoleHandler {
	return &RoleHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar roles
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse
// @Router       /api/roles [get]
func (h *RoleHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	roles, total, err := h.uc.List(page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page.DefaultPage()
	return c.JSON(dto.OKPage(roles, dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}))
}

// GetByID godoc
// @Summary      Obtener rol por ID
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del rol"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/roles/{id} [get]
func (h *RoleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "rol no encontrado")
	}
	return c.JSON(dto.OK(out))
}

// Create godoc
// @Summary      Crear rol
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoleRequest  true  "name, description"
// @Success      201   {object}  dto.APIResponse
// @Failure      400   {object}  dto.APIResponse
// @Router       /api/roles [post]
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Name == "" {
		return badRequest(c, "name es requerido")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage(out, "rol creado"))
}

// Update godoc
// @Summary      Actualizar rol
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del rol"
// @Param        body  body  dto.UpdateRoleRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/roles/{id} [put]
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "rol no encontrado")
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Eliminar rol (bloqueado si tiene asignaciones)
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del rol"
// @Success      200  {object}  dto.APIResponse
// @Failure      400  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/roles/{id} [delete]
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.uc.Delete(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if !deleted {
		return notFound(c, "rol no encontrado")
	}
	return c.JSON(dto.OKMessage(nil, "rol eliminado"))
}

// Assign godoc
// @Summary      Asignar rol a usuario
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignRoleRequest  true  "userId, roleId"
// @Success      201   {object}  dto.APIResponse
// @Failure      400   {object}  dto.APIResponse
// @Router       /api/roles/assign [post]
func (h *RoleHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Assign(in, GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage(out, "rol asignado"))
}

// Remove godoc
// @Summary      Quitar rol a usuario
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignRoleRequest  true  "userId, roleId"
// @Success      200   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/roles/remove [post]
func (h *RoleHandler) Remove(c *fiber.Ctx) error {
	var in dto.AssignRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := h.uc.Remove(in); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OKMessage(nil, "rol removido"))
}

// RolesByUser godoc
// @Summary      Roles de un usuario
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200     {object}  dto.APIResponse
// @Router       /api/users/{userId}/roles [get]
func (h *RoleHandler) RolesByUser(c *fiber.Ctx) error {
	out, err := h.uc.RolesByUser(c.Params("userId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK(out))
}

// UsersByRole godoc
// @Summary      Usuarios con un rol
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        roleId  path  string  true  "ID del rol"
// @Success      200     {object}  dto.APIResponse
// @Router       /api/roles/{roleId}/users [get]
func (h *RoleHandler) UsersByRole(c *fiber.Ctx) error {
	out, err := h.uc.UsersByRole(c.Params("roleId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK(out))
}

package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// FileHandler maneja subida, descarga y gestión de archivos. Un archivo solo
// es visible para quien lo subió o para un admin.
type FileHandler struct {
	uc  *usecase.FileUseCase
	log *logger.Logger
}

// NewFileHandler construye el handler.
func NewFileHandler(uc *usecase.FileUseCase, log *logger.Logger) *FileHandler {
	return &FileHandler{uc: uc, log: log}
}

// Upload godoc
// @Summary      Subir archivo (multipart, campo "file")
// @Tags         files
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo"
// @Success      201   {object}  dto.APIResponse
// @Failure      400   {object}  dto.APIResponse
// @Router       /api/files/upload [post]
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "se requiere el campo multipart 'file'")
	}
	src, err := header.Open()
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer src.Close()

	uploader := GetUserID(c)
	out, err := h.uc.Upload(header.Filename, header.Header.Get("Content-Type"), header.Size, src, &uploader)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage(out, "archivo subido"))
}

// Download godoc
// @Summary      Descargar archivo
// @Tags         files
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        id   path  string  true  "ID del archivo"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/files/{id}/download [get]
func (h *FileHandler) Download(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.authorizeFileAccess(c, id); err != nil {
		return err
	}
	meta, rc, err := h.uc.Download(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, meta.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", meta.OriginalName))
	return c.SendStream(rc, int(meta.Size))
}

// List godoc
// @Summary      Listar los archivos propios
// @Tags         files
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse
// @Router       /api/files [get]
func (h *FileHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	files, total, err := h.uc.ListByUploader(GetUserID(c), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page.DefaultPage()
	return c.JSON(dto.OKPage(files, dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}))
}

// ListAll godoc
// @Summary      Listar todos los archivos (admin)
// @Tags         files
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse
// @Router       /api/files/admin/all [get]
func (h *FileHandler) ListAll(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	files, total, err := h.uc.ListAll(page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page.DefaultPage()
	return c.JSON(dto.OKPage(files, dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}))
}

// Stats godoc
// @Summary      Agregados de archivos del usuario (admin: globales)
// @Tags         files
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse
// @Router       /api/files/stats/overview [get]
func (h *FileHandler) Stats(c *fiber.Ctx) error {
	var scope *string
	if !IsAdmin(c) {
		userID := GetUserID(c)
		scope = &userID
	}
	out, err := h.uc.Stats(scope)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Metadatos de un archivo
// @Tags         files
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del archivo"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/files/{id} [get]
func (h *FileHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.authorizeFileAccess(c, id); err != nil {
		return err
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "archivo no encontrado")
	}
	return c.JSON(dto.OK(out))
}

// Update godoc
// @Summary      Renombrar archivo (solo metadatos)
// @Tags         files
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del archivo"
// @Param        body  body  dto.UpdateFileRequest  true  "originalName"
// @Success      200   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/files/{id} [put]
func (h *FileHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.authorizeFileAccess(c, id); err != nil {
		return err
	}
	var in dto.UpdateFileRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Rename(id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "archivo no encontrado")
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Eliminar archivo (metadatos y binario)
// @Tags         files
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del archivo"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/files/{id} [delete]
func (h *FileHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.authorizeFileAccess(c, id); err != nil {
		return err
	}
	deleted, err := h.uc.Delete(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if !deleted {
		return notFound(c, "archivo no encontrado")
	}
	return c.JSON(dto.OKMessage(nil, "archivo eliminado"))
}

// authorizeFileAccess devuelve nil si el caller es admin o el uploader del
// archivo. Un archivo inexistente responde 404 para no filtrar existencia.
func (h *FileHandler) authorizeFileAccess(c *fiber.Ctx, id string) error {
	if IsAdmin(c) {
		return nil
	}
	owner, found, err := h.uc.Owner(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if !found {
		return notFound(c, "archivo no encontrado")
	}
	if owner == nil || *owner != GetUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail(fiber.StatusForbidden, "solo el dueño del archivo o un admin"))
	}
	return nil
}

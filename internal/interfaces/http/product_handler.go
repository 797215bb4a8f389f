package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP para Product. Las lecturas son
// públicas; las escrituras pasan por el gate admin en el router.
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.APIResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	products, total, err := h.uc.List(page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page.DefaultPage()
	return c.JSON(dto.OKPage(products, dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}))
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(dto.OK(out))
}

// ListByCategory godoc
// @Summary      Productos por categoría
// @Tags         products
// @Produce      json
// @Param        category  path  string  true  "Categoría"
// @Success      200       {object}  dto.APIResponse
// @Router       /api/products/category/{category} [get]
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListByCategory(c.Params("category"), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK(out))
}

// ListAvailable godoc
// @Summary      Productos con stock disponible
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.APIResponse
// @Router       /api/products/stock/available [get]
func (h *ProductHandler) ListAvailable(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListAvailable(page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.OK(out))
}

// Create godoc
// @Summary      Crear producto (admin)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.APIResponse
// @Failure      400   {object}  dto.APIResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if in.Name == "" || in.SKU == "" {
		return badRequest(c, "name y sku son requeridos")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage(out, "producto creado"))
}

// Update godoc
// @Summary      Actualizar producto (admin)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(dto.OK(out))
}

// UpdateStock godoc
// @Summary      Ajustar stock (admin). inStock se deriva del nuevo stock.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateStockRequest  true  "stockQuantity"
// @Success      200   {object}  dto.APIResponse
// @Failure      400   {object}  dto.APIResponse
// @Router       /api/products/{id}/stock [patch]
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateStock(c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Eliminar producto (admin)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.uc.Delete(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if !deleted {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(dto.OKMessage(nil, "producto eliminado"))
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pyme/internal/application/articulos"
	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
)

// ArticuloHandler maneja las peticiones HTTP de artículos (protegido).
type ArticuloHandler struct {
	uc *articulos.UseCase
}

// NewArticuloHandler construye el handler.
func NewArticuloHandler(uc *articulos.UseCase) *ArticuloHandler {
	return &ArticuloHandler{uc: uc}
}

// Create crea un artículo.
// POST /api/articulos
func (h *ArticuloHandler) Create(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	var in dto.CreateArticuloRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	articulo, err := h.uc.Create(empresaID, in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(articulo)
}

// GetByID obtiene un artículo.
// GET /api/articulos/:id
func (h *ArticuloHandler) GetByID(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	articulo, err := h.uc.Get(empresaID, c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(articulo)
}

// List lista los artículos de la empresa.
// GET /api/articulos
func (h *ArticuloHandler) List(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	list, err := h.uc.List(empresaID, page)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(list)
}

// Update actualiza un artículo (el stock se mueve sólo por ajustes y ventas).
// PUT /api/articulos/:id
func (h *ArticuloHandler) Update(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateArticuloRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	articulo, err := h.uc.Update(empresaID, c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(articulo)
}

// AjustarStock aplica un ajuste manual de stock (delta positivo o negativo).
// POST /api/articulos/:id/ajuste-stock
func (h *ArticuloHandler) AjustarStock(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	var in dto.AjusteStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	articulo, err := h.uc.AjustarStock(empresaID, c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(articulo)
}

// BajoMinimo lista los artículos activos con stock en o bajo el mínimo.
// GET /api/articulos/bajo-minimo
func (h *ArticuloHandler) BajoMinimo(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	list, err := h.uc.BajoMinimo(empresaID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(list)
}

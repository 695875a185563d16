package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/application/gastos"
)

// GastoHandler maneja las peticiones HTTP de gastos (protegido).
type GastoHandler struct {
	uc *gastos.UseCase
}

// NewGastoHandler construye el handler.
func NewGastoHandler(uc *gastos.UseCase) *GastoHandler {
	return &GastoHandler{uc: uc}
}

// Create registra un gasto.
// POST /api/gastos
func (h *GastoHandler) Create(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	var in dto.CreateGastoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	gasto, err := h.uc.Create(empresaID, in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(gasto)
}

// List lista los gastos del período (?desde=AAAA-MM-DD&hasta=AAAA-MM-DD).
// GET /api/gastos
func (h *GastoHandler) List(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	desde, hasta, err := parsePeriodo(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas del período inválidas (AAAA-MM-DD)"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	list, err := h.uc.List(empresaID, desde, hasta, page)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(list)
}

// Resumen totaliza los gastos del período por categoría.
// GET /api/gastos/resumen
func (h *GastoHandler) Resumen(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	desde, hasta, err := parsePeriodo(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas del período inválidas (AAAA-MM-DD)"})
	}
	resumen, err := h.uc.Resumen(empresaID, desde, hasta)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(resumen)
}

// Delete elimina un gasto.
// DELETE /api/gastos/:id
func (h *GastoHandler) Delete(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(empresaID, c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parsePeriodo lee los query params desde/hasta en formato AAAA-MM-DD.
func parsePeriodo(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var desde, hasta *time.Time
	if s := c.Query("desde"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, err
		}
		desde = &t
	}
	if s := c.Query("hasta"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, err
		}
		hasta = &t
	}
	return desde, hasta, nil
}

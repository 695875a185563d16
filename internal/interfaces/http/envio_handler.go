package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/application/envios"
)

// EnvioHandler maneja las peticiones HTTP de envíos (protegido).
type EnvioHandler struct {
	uc *envios.UseCase
}

// NewEnvioHandler construye el handler.
func NewEnvioHandler(uc *envios.UseCase) *EnvioHandler {
	return &EnvioHandler{uc: uc}
}

// Create crea el remito de envío para un comprobante.
// POST /api/envios
func (h *EnvioHandler) Create(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	var in dto.CreateEnvioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	envio, err := h.uc.Create(empresaID, in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(envio)
}

// GetByID obtiene un envío.
// GET /api/envios/:id
func (h *EnvioHandler) GetByID(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	envio, err := h.uc.Get(empresaID, c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(envio)
}

// List lista los envíos de la empresa.
// GET /api/envios
func (h *EnvioHandler) List(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	if comprobanteID := c.Query("comprobante_id"); comprobanteID != "" {
		list, err := h.uc.ListByComprobante(empresaID, comprobanteID)
		if err != nil {
			return mapError(c, err)
		}
		return c.JSON(list)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	list, err := h.uc.List(empresaID, page)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(list)
}

// ActualizarEstado avanza el estado del envío (despacho / entrega).
// PATCH /api/envios/:id/estado
func (h *EnvioHandler) ActualizarEstado(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	var in dto.ActualizarEnvioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	envio, err := h.uc.ActualizarEstado(empresaID, c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(envio)
}

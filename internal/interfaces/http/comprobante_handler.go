package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pyme/internal/application/comprobantes"
	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
)

// ComprobanteHandler maneja las peticiones HTTP de comprobantes (protegido).
type ComprobanteHandler struct {
	uc *comprobantes.UseCase
}

// NewComprobanteHandler construye el handler.
func NewComprobanteHandler(uc *comprobantes.UseCase) *ComprobanteHandler {
	return &ComprobanteHandler{uc: uc}
}

// Create crea la venta (comprobante en BORRADOR) y descuenta stock.
// POST /api/comprobantes
func (h *ComprobanteHandler) Create(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	var in dto.CreateComprobanteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	comprobante, err := h.uc.Create(c.Context(), empresaID, in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comprobante)
}

// GetByID obtiene el comprobante con detalles y cuotas.
// GET /api/comprobantes/:id
func (h *ComprobanteHandler) GetByID(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	comprobante, err := h.uc.Get(empresaID, c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(comprobante)
}

// List lista los comprobantes de la empresa.
// GET /api/comprobantes
func (h *ComprobanteHandler) List(c *fiber.Ctx) error {
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

// Facturar encola el comprobante para solicitar el CAE contra AFIP.
// POST /api/comprobantes/:id/facturar
func (h *ComprobanteHandler) Facturar(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	comprobante, err := h.uc.Facturar(c.Context(), empresaID, c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	// 202: la solicitud de CAE es asíncrona, consultar el estado por GET.
	return c.Status(fiber.StatusAccepted).JSON(comprobante)
}

// PDF descarga la representación gráfica del comprobante.
// GET /api/comprobantes/:id/pdf
func (h *ComprobanteHandler) PDF(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	data, err := h.uc.PDF(c.Context(), empresaID, c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="comprobante.pdf"`)
	return c.Send(data)
}

// PagarCuota registra el pago de una cuota.
// POST /api/cuotas/:id/pagar
func (h *ComprobanteHandler) PagarCuota(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	var in dto.PagarCuotaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cuota, err := h.uc.PagarCuota(empresaID, c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(cuota)
}

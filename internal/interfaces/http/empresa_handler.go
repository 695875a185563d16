package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/application/empresas"
)

// EmpresaHandler maneja las peticiones HTTP de empresas.
type EmpresaHandler struct {
	uc *empresas.UseCase
}

// NewEmpresaHandler construye el handler.
func NewEmpresaHandler(uc *empresas.UseCase) *EmpresaHandler {
	return &EmpresaHandler{uc: uc}
}

// Create da de alta una empresa emisora (público: bootstrap inicial).
// POST /api/empresas
func (h *EmpresaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	empresa, err := h.uc.Create(in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(empresa)
}

// GetByID obtiene los datos de la empresa del token.
// GET /api/empresas/me
func (h *EmpresaHandler) Me(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	empresa, err := h.uc.Get(empresaID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(empresa)
}

// Update actualiza los datos fiscales de la empresa (solo admin).
// PUT /api/empresas/me
func (h *EmpresaHandler) Update(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	if empresaID == "" {
		return unauthorized(c)
	}
	var in dto.CreateEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	empresa, err := h.uc.Update(empresaID, in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(empresa)
}
